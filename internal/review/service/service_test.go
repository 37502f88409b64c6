package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"balangay/internal/feed"
	"balangay/internal/notify"
	"balangay/internal/review/models"
	"balangay/internal/review/store"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/platform/audit/publisher"
	auditmem "balangay/pkg/platform/audit/store/memory"
	"balangay/pkg/requestcontext"
)

type ReviewServiceSuite struct {
	suite.Suite

	statuses *store.InMemory
	notifier *notify.Recorder
	feed     *feed.Memory
	audit    *auditmem.InMemoryStore
	svc      *Service

	now time.Time
	ctx context.Context
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

func (s *ReviewServiceSuite) SetupTest() {
	s.statuses = store.NewInMemory()
	s.notifier = notify.NewRecorder()
	s.feed = feed.NewMemory()
	s.audit = auditmem.NewInMemoryStore()
	s.svc = NewService(s.statuses, s.notifier,
		WithFeed(s.feed),
		WithAudit(publisher.NewPublisher(s.audit)),
	)

	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctx = requestcontext.WithAdminActor(s.ctx, "kap.delacruz")
}

func (s *ReviewServiceSuite) seed(status models.Status, reason *string) id.ResidentID {
	rid := id.NewResidentID()
	s.Require().NoError(s.statuses.Create(s.ctx, &models.ProfileStatus{
		ResidentID:      rid,
		Status:          status,
		RejectionReason: reason,
		UpdatedAt:       s.now.Add(-24 * time.Hour),
	}))
	return rid
}

func (s *ReviewServiceSuite) TestApprove() {
	s.Run("pending profile is approved and notified", func() {
		rid := s.seed(models.StatusPending, nil)

		outcome, err := s.svc.Approve(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, outcome.Status.Status)
		s.Equal(s.now, outcome.Status.UpdatedAt)
		s.Empty(outcome.Warning)

		stored, err := s.statuses.Get(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, stored.Status)

		calls := s.notifier.CallsOf(notify.EventApproval)
		s.Require().Len(calls, 1)
		s.Equal(rid, calls[0].ResidentID)
	})

	s.Run("approving an already approved profile fails", func() {
		rid := s.seed(models.StatusApproved, nil)
		before := len(s.notifier.Calls())

		_, err := s.svc.Approve(s.ctx, rid)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Len(s.notifier.Calls(), before)
	})

	s.Run("unknown resident yields not found", func() {
		_, err := s.svc.Approve(s.ctx, id.NewResidentID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ReviewServiceSuite) TestReject() {
	s.Run("rejection persists the reason and sends exactly one notification", func() {
		rid := s.seed(models.StatusPending, nil)

		outcome, err := s.svc.Reject(s.ctx, rid, "photo does not match the submitted ID")
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, outcome.Status.Status)
		s.Require().NotNil(outcome.Status.RejectionReason)
		s.Equal("photo does not match the submitted ID", *outcome.Status.RejectionReason)
		s.Equal(s.now, outcome.Status.UpdatedAt)

		calls := s.notifier.CallsOf(notify.EventRejection)
		s.Require().Len(calls, 1)
		s.Equal("photo does not match the submitted ID", calls[0].Payload.Reason)
		s.Len(s.notifier.Calls(), 1)
	})

	s.Run("blank reason causes no transition and no notification", func() {
		rid := s.seed(models.StatusPending, nil)
		callsBefore := len(s.notifier.Calls())
		feedBefore := len(s.feed.Published())

		_, err := s.svc.Reject(s.ctx, rid, "   ")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		stored, err := s.statuses.Get(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, stored.Status)
		s.Len(s.notifier.Calls(), callsBefore)
		s.Len(s.feed.Published(), feedBefore)
	})
}

func (s *ReviewServiceSuite) TestNotificationFailureDoesNotRollBack() {
	rid := s.seed(models.StatusPending, nil)
	s.notifier.Fail = errors.New("gateway unreachable")

	outcome, err := s.svc.Approve(s.ctx, rid)
	s.Require().NoError(err)
	s.NotEmpty(outcome.Warning)

	stored, err := s.statuses.Get(s.ctx, rid)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, stored.Status)
}

func (s *ReviewServiceSuite) TestRequestUpdate() {
	s.Run("approved profile can be recalled", func() {
		rid := s.seed(models.StatusApproved, nil)

		outcome, err := s.svc.RequestUpdate(s.ctx, rid, "address changed per field visit")
		s.Require().NoError(err)
		s.Equal(models.StatusUpdateRequested, outcome.Status.Status)
		s.Require().NotNil(outcome.Status.RejectionReason)
		s.Equal("address changed per field visit", *outcome.Status.RejectionReason)
		s.Len(s.notifier.CallsOf(notify.EventUpdateRequest), 1)
	})

	s.Run("update-approved profile can be recalled again", func() {
		rid := s.seed(models.StatusUpdateApproved, nil)

		outcome, err := s.svc.RequestUpdate(s.ctx, rid, "need new household census")
		s.Require().NoError(err)
		s.Equal(models.StatusUpdateRequested, outcome.Status.Status)
	})

	s.Run("pending profile cannot be recalled", func() {
		rid := s.seed(models.StatusPending, nil)

		_, err := s.svc.RequestUpdate(s.ctx, rid, "some reason")
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *ReviewServiceSuite) TestAcceptUpdate() {
	reason := "address changed per field visit"
	rid := s.seed(models.StatusUpdateRequested, &reason)

	outcome, err := s.svc.AcceptUpdate(s.ctx, rid)
	s.Require().NoError(err)
	s.Equal(models.StatusUpdateApproved, outcome.Status.Status)
	s.Nil(outcome.Status.RejectionReason)
	s.Len(s.notifier.CallsOf(notify.EventUpdateApproval), 1)
}

func (s *ReviewServiceSuite) TestDeclineUpdate() {
	reason := "address changed per field visit"
	rid := s.seed(models.StatusUpdateRequested, &reason)

	outcome, err := s.svc.DeclineUpdate(s.ctx, rid, "submitted documents were illegible")
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, outcome.Status.Status)
	s.Require().NotNil(outcome.Status.RejectionReason)
	s.Equal("submitted documents were illegible", *outcome.Status.RejectionReason)
	s.Len(s.notifier.CallsOf(notify.EventUpdateDecline), 1)
}

func (s *ReviewServiceSuite) TestRecordSubmission() {
	s.Run("first submission creates a pending record and notifies reviewers", func() {
		rid := id.NewResidentID()

		status, warning, err := s.svc.RecordSubmission(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, status.Status)
		s.Empty(warning)
		s.Len(s.notifier.CallsOf(notify.EventPendingSubmission), 1)
	})

	s.Run("resubmission after rejection returns to pending", func() {
		reason := "photo does not match"
		rid := s.seed(models.StatusRejected, &reason)

		status, _, err := s.svc.RecordSubmission(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, status.Status)
	})

	s.Run("resubmission of a recalled profile completes the edit cycle", func() {
		reason := "address changed"
		rid := s.seed(models.StatusUpdateRequested, &reason)
		before := len(s.notifier.CallsOf(notify.EventPendingSubmission))

		status, _, err := s.svc.RecordSubmission(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusUpdateApproved, status.Status)
		// no re-review, so reviewers are not notified
		s.Len(s.notifier.CallsOf(notify.EventPendingSubmission), before)
	})

	s.Run("failed pending notification yields a warning, submission stands", func() {
		rid := id.NewResidentID()
		s.notifier.Fail = errors.New("gateway down")

		status, warning, err := s.svc.RecordSubmission(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, status.Status)
		s.NotEmpty(warning)

		_, err = s.statuses.Get(s.ctx, rid)
		s.NoError(err)
	})
}

func (s *ReviewServiceSuite) TestFeedAndAuditOnTransition() {
	rid := s.seed(models.StatusPending, nil)

	_, err := s.svc.Approve(s.ctx, rid)
	s.Require().NoError(err)

	published := s.feed.Published()
	s.Require().Len(published, 1)
	s.Equal("status", published[0].Kind)
	s.Equal(rid.String(), published[0].ResidentID)

	events, err := s.audit.ListByResident(s.ctx, rid.String())
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("profile_approved", events[0].Action)
	s.Equal("kap.delacruz", events[0].Actor)
}

func (s *ReviewServiceSuite) TestDelete() {
	rid := s.seed(models.StatusApproved, nil)

	s.Require().NoError(s.svc.Delete(s.ctx, rid))

	_, err := s.svc.Get(s.ctx, rid)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	// deleting again is idempotent
	s.NoError(s.svc.Delete(s.ctx, rid))
}
