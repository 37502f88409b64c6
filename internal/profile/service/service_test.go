package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"balangay/internal/feed"
	"balangay/internal/notify"
	"balangay/internal/profile/models"
	"balangay/internal/profile/store"
	reviewmodels "balangay/internal/review/models"
	reviewservice "balangay/internal/review/service"
	reviewstore "balangay/internal/review/store"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/requestcontext"
)

type memoryBlobs struct {
	stored map[string]bool
}

func (b *memoryBlobs) Exists(_ context.Context, path string) (bool, error) {
	return b.stored[path], nil
}

type ProfileServiceSuite struct {
	suite.Suite

	profiles *store.InMemory
	statuses *reviewstore.InMemory
	notifier *notify.Recorder
	blobs    *memoryBlobs
	feed     *feed.Memory
	svc      *Service

	now time.Time
	ctx context.Context
}

func TestProfileServiceSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}

func (s *ProfileServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.profiles = store.NewInMemory(logger, nil)
	s.statuses = reviewstore.NewInMemory()
	s.notifier = notify.NewRecorder()
	s.blobs = &memoryBlobs{stored: make(map[string]bool)}
	s.feed = feed.NewMemory()

	review := reviewservice.NewService(s.statuses, s.notifier, reviewservice.WithLogger(logger))
	s.svc = NewService(s.profiles, review,
		WithBlobChecker(s.blobs),
		WithFeed(s.feed),
		WithLogger(logger),
	)

	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ProfileServiceSuite) profile() *models.ResidentProfile {
	return &models.ResidentProfile{
		HouseholdHead: models.HouseholdHead{
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			CivilStatus: models.CivilStatusSingle,
			Nationality: "Filipino",
		},
		Census: models.Census{RegisteredVoter: "No"},
	}
}

func (s *ProfileServiceSuite) TestSubmitCreatesPendingStatus() {
	rid := id.NewResidentID()

	result, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)
	s.Equal(reviewmodels.StatusPending, result.Status.Status)
	s.Equal(rid, result.Profile.ResidentID)
	s.Empty(result.Warning)

	s.Len(s.notifier.CallsOf(notify.EventPendingSubmission), 1)

	stored, err := s.profiles.Get(s.ctx, rid)
	s.Require().NoError(err)
	s.Equal("Juan", stored.HouseholdHead.FirstName)
}

func (s *ProfileServiceSuite) TestSubmitRejectsInvalidProfile() {
	rid := id.NewResidentID()
	p := s.profile()
	p.HouseholdHead.FirstName = ""

	_, err := s.svc.Submit(s.ctx, rid, p)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	// nothing was written
	_, err = s.profiles.Get(s.ctx, rid)
	s.Error(err)
	s.Empty(s.notifier.Calls())
}

func (s *ProfileServiceSuite) TestSubmitEnforcesUploadThenLink() {
	rid := id.NewResidentID()
	p := s.profile()
	p.HouseholdHead.PhotoPath = "household-head/missing.jpg"

	_, err := s.svc.Submit(s.ctx, rid, p)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.blobs.stored["household-head/missing.jpg"] = true
	_, err = s.svc.Submit(s.ctx, rid, p)
	s.NoError(err)
}

func (s *ProfileServiceSuite) TestResubmissionAfterRecallCompletesEditCycle() {
	rid := id.NewResidentID()

	_, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)

	stored, err := s.statuses.Get(s.ctx, rid)
	s.Require().NoError(err)
	stored.Status = reviewmodels.StatusUpdateRequested
	s.Require().NoError(s.statuses.Update(s.ctx, stored))

	result, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)
	s.Equal(reviewmodels.StatusUpdateApproved, result.Status.Status)
}

func (s *ProfileServiceSuite) TestGetOwnReturnsProfileAndStatus() {
	rid := id.NewResidentID()
	_, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)

	record, err := s.svc.GetOwn(s.ctx, rid)
	s.Require().NoError(err)
	s.Equal("Juan", record.Profile.HouseholdHead.FirstName)
	s.Require().NotNil(record.Status)
	s.Equal(reviewmodels.StatusPending, record.Status.Status)
}

func (s *ProfileServiceSuite) TestGetOwnUnknownResident() {
	_, err := s.svc.GetOwn(s.ctx, id.NewResidentID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ProfileServiceSuite) TestListAllJoinsStatusesAndSurvivesCorruptRecord() {
	rid := id.NewResidentID()
	_, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)

	corruptID := id.NewResidentID()
	census, err := json.Marshal(models.Census{})
	s.Require().NoError(err)
	s.profiles.PutRaw(store.Raw{
		ResidentID: corruptID,
		Household:  []byte(`{{not json`),
		Census:     census,
		CreatedAt:  s.now.Add(time.Minute),
		UpdatedAt:  s.now.Add(time.Minute),
	})

	records, err := s.svc.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	s.Equal("Juan", records[0].Profile.HouseholdHead.FirstName)
	s.Require().NotNil(records[0].Status)

	s.Equal("Unknown", records[1].Profile.HouseholdHead.FirstName)
	s.Nil(records[1].Status)
}

func (s *ProfileServiceSuite) TestDeleteCascadesToStatus() {
	rid := id.NewResidentID()
	_, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, rid))

	_, err = s.profiles.Get(s.ctx, rid)
	s.Error(err)
	_, err = s.statuses.Get(s.ctx, rid)
	s.Error(err)
}

func (s *ProfileServiceSuite) TestDeleteUnknownResident() {
	err := s.svc.Delete(s.ctx, id.NewResidentID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ProfileServiceSuite) TestMutationsPublishChangeEvents() {
	rid := id.NewResidentID()
	_, err := s.svc.Submit(s.ctx, rid, s.profile())
	s.Require().NoError(err)

	published := s.feed.Published()
	s.Require().NotEmpty(published)
	s.Equal("profile", published[len(published)-1].Kind)
}
