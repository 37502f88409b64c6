// Package service orchestrates the resident profile review workflow: who may
// move a profile between states, and which side effects each transition
// triggers. The service considers its job done once the status record is
// durably written; notifications and feed publishes are best effort.
package service

import (
	"context"
	"errors"
	"log/slog"

	"balangay/internal/feed"
	"balangay/internal/notify"
	reviewmetrics "balangay/internal/review/metrics"
	"balangay/internal/review/models"
	"balangay/internal/review/store"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	audit "balangay/pkg/platform/audit"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/requestcontext"
)

// AuditEmitter records workflow actions for the audit trail.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Outcome is the result of a completed transition. Warning is non-empty when
// the transition committed but a best-effort side effect (the resident
// notification) failed.
type Outcome struct {
	Status  *models.ProfileStatus
	Warning string
}

// Service applies status machine transitions and their side effects.
type Service struct {
	statuses store.Store
	notifier notify.Gateway
	feed     feed.Publisher
	auditor  AuditEmitter
	metrics  *reviewmetrics.Metrics
	logger   *slog.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

// WithFeed publishes a change event after every committed transition.
func WithFeed(publisher feed.Publisher) Option {
	return func(s *Service) { s.feed = publisher }
}

// WithAudit records every committed transition in the audit trail.
func WithAudit(emitter AuditEmitter) Option {
	return func(s *Service) { s.auditor = emitter }
}

// WithMetrics counts transitions and notification failures.
func WithMetrics(m *reviewmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger for side-effect failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService builds the review service. A nil notifier disables resident
// notifications.
func NewService(statuses store.Store, notifier notify.Gateway, opts ...Option) *Service {
	s := &Service{
		statuses: statuses,
		notifier: notifier,
		feed:     feed.Noop{},
		logger:   slog.Default(),
	}
	if s.notifier == nil {
		s.notifier = notify.Noop{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Approve transitions Pending -> Approved and notifies the resident.
func (s *Service) Approve(ctx context.Context, residentID id.ResidentID) (*Outcome, error) {
	return s.transition(ctx, residentID, "approve", audit.EventProfileApproved, notify.EventApproval, "",
		func(p *models.ProfileStatus) error { return p.CanApprove() },
		func(p *models.ProfileStatus) { p.ApplyApprove(requestcontext.Now(ctx)) },
	)
}

// Reject transitions Pending -> Rejected with a mandatory reason.
func (s *Service) Reject(ctx context.Context, residentID id.ResidentID, reason string) (*Outcome, error) {
	return s.transition(ctx, residentID, "reject", audit.EventProfileRejected, notify.EventRejection, reason,
		func(p *models.ProfileStatus) error { return p.CanReject(reason) },
		func(p *models.ProfileStatus) { p.ApplyReject(reason, requestcontext.Now(ctx)) },
	)
}

// RequestUpdate recalls an approved profile for edits.
func (s *Service) RequestUpdate(ctx context.Context, residentID id.ResidentID, reason string) (*Outcome, error) {
	return s.transition(ctx, residentID, "request_update", audit.EventUpdateRequested, notify.EventUpdateRequest, reason,
		func(p *models.ProfileStatus) error { return p.CanRequestUpdate(reason) },
		func(p *models.ProfileStatus) { p.ApplyRequestUpdate(reason, requestcontext.Now(ctx)) },
	)
}

// AcceptUpdate completes a recalled profile's edit cycle.
func (s *Service) AcceptUpdate(ctx context.Context, residentID id.ResidentID) (*Outcome, error) {
	return s.transition(ctx, residentID, "accept_update", audit.EventUpdateAccepted, notify.EventUpdateApproval, "",
		func(p *models.ProfileStatus) error { return p.CanAcceptUpdate() },
		func(p *models.ProfileStatus) { p.ApplyAcceptUpdate(requestcontext.Now(ctx)) },
	)
}

// DeclineUpdate rejects the requested edits; the resident keeps approved
// status.
func (s *Service) DeclineUpdate(ctx context.Context, residentID id.ResidentID, reason string) (*Outcome, error) {
	return s.transition(ctx, residentID, "decline_update", audit.EventUpdateDeclined, notify.EventUpdateDecline, reason,
		func(p *models.ProfileStatus) error { return p.CanDeclineUpdate(reason) },
		func(p *models.ProfileStatus) { p.ApplyDeclineUpdate(reason, requestcontext.Now(ctx)) },
	)
}

// transition is the shared admin-action skeleton: load, validate, apply,
// persist, then fire best-effort side effects. Validation failures abort
// before any write and therefore before any notification.
func (s *Service) transition(
	ctx context.Context,
	residentID id.ResidentID,
	action string,
	auditEvent audit.AuditEvent,
	notifyKind notify.EventKind,
	reason string,
	can func(*models.ProfileStatus) error,
	apply func(*models.ProfileStatus),
) (*Outcome, error) {
	status, err := s.statuses.Get(ctx, residentID)
	if err != nil {
		return nil, wrapStatusErr(err)
	}
	if err := can(status); err != nil {
		return nil, err
	}
	apply(status)
	if err := s.statuses.Update(ctx, status); err != nil {
		return nil, wrapStatusErr(err)
	}

	s.metrics.IncTransition(action)
	s.emitAudit(ctx, auditEvent, residentID, reason)
	s.publishChange(ctx, residentID)

	outcome := &Outcome{Status: status}
	if err := s.notifier.Send(ctx, notifyKind, residentID, notify.Payload{Reason: reason}); err != nil {
		// The transition is durably committed; deliverability problems are
		// surfaced to the acting admin as a warning, never as a rollback.
		s.metrics.IncNotificationFailure()
		s.logger.WarnContext(ctx, "resident notification failed",
			"kind", string(notifyKind),
			"resident_id", residentID.String(),
			"error", err,
		)
		outcome.Warning = "resident notification could not be delivered"
	}
	return outcome, nil
}

// RecordSubmission creates the status record on first submission or applies
// the resubmission transition afterwards. Returns the resulting status plus
// a warning when the pending-submission notification failed.
func (s *Service) RecordSubmission(ctx context.Context, residentID id.ResidentID) (*models.ProfileStatus, string, error) {
	now := requestcontext.Now(ctx)

	status, err := s.statuses.Get(ctx, residentID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		status = models.NewProfileStatus(residentID, now)
		if err := s.statuses.Create(ctx, status); err != nil {
			return nil, "", wrapStatusErr(err)
		}
		s.metrics.IncTransition("submit")
		s.emitAudit(ctx, audit.EventProfileSubmitted, residentID, "")
	case err != nil:
		return nil, "", wrapStatusErr(err)
	default:
		status.ApplyResubmission(now)
		if err := s.statuses.Update(ctx, status); err != nil {
			return nil, "", wrapStatusErr(err)
		}
		s.metrics.IncTransition("resubmit")
		s.emitAudit(ctx, audit.EventProfileResubmitted, residentID, "")
	}

	s.publishChange(ctx, residentID)

	var warning string
	if status.Status == models.StatusPending {
		if err := s.notifier.Send(ctx, notify.EventPendingSubmission, residentID, notify.Payload{}); err != nil {
			s.metrics.IncNotificationFailure()
			s.logger.WarnContext(ctx, "pending-submission notification failed",
				"resident_id", residentID.String(),
				"error", err,
			)
			warning = "submission recorded, but the review notification could not be delivered"
		}
	}
	return status, warning, nil
}

// Get returns the status record for one resident.
func (s *Service) Get(ctx context.Context, residentID id.ResidentID) (*models.ProfileStatus, error) {
	status, err := s.statuses.Get(ctx, residentID)
	if err != nil {
		return nil, wrapStatusErr(err)
	}
	return status, nil
}

// ListAll returns every status record keyed by resident.
func (s *Service) ListAll(ctx context.Context) (map[id.ResidentID]*models.ProfileStatus, error) {
	statuses, err := s.statuses.ListAll(ctx)
	if err != nil {
		return nil, wrapStatusErr(err)
	}
	return statuses, nil
}

// Delete removes the status record as part of the admin resident-deletion
// cascade.
func (s *Service) Delete(ctx context.Context, residentID id.ResidentID) error {
	if err := s.statuses.Delete(ctx, residentID); err != nil {
		return wrapStatusErr(err)
	}
	return nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.AuditEvent, residentID id.ResidentID, reason string) {
	if s.auditor == nil {
		return
	}
	actor := requestcontext.AdminActor(ctx)
	if actor == "" {
		actor = "resident"
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		ResidentID: residentID.String(),
		Action:     string(event),
		Actor:      actor,
		Reason:     reason,
		RequestID:  requestcontext.RequestID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
		UserAgent:  requestcontext.UserAgent(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", string(event), "error", err)
	}
}

func (s *Service) publishChange(ctx context.Context, residentID id.ResidentID) {
	err := s.feed.Publish(ctx, feed.Event{
		Kind:       "status",
		ResidentID: residentID.String(),
		At:         requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "feed publish failed", "resident_id", residentID.String(), "error", err)
	}
}

func wrapStatusErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "no status record for resident")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "status record already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "status store failure")
	}
}
