// Package service implements profile submission, lookup, and admin deletion.
package service

import (
	"context"
	"errors"
	"log/slog"

	"balangay/internal/feed"
	profilemetrics "balangay/internal/profile/metrics"
	"balangay/internal/profile/models"
	"balangay/internal/profile/store"
	reviewmodels "balangay/internal/review/models"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	audit "balangay/pkg/platform/audit"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/requestcontext"
)

// ReviewWorkflow is the slice of the review service the profile service
// drives: status creation on submission and cascade deletion.
type ReviewWorkflow interface {
	RecordSubmission(ctx context.Context, residentID id.ResidentID) (*reviewmodels.ProfileStatus, string, error)
	Get(ctx context.Context, residentID id.ResidentID) (*reviewmodels.ProfileStatus, error)
	ListAll(ctx context.Context) (map[id.ResidentID]*reviewmodels.ProfileStatus, error)
	Delete(ctx context.Context, residentID id.ResidentID) error
}

// BlobChecker verifies that an opaque storage path refers to a stored blob.
type BlobChecker interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// AuditEmitter records profile lifecycle actions.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// SubmitResult is a completed submission: the stored profile, the resulting
// review status, and a warning when the review notification failed.
type SubmitResult struct {
	Profile *models.ResidentProfile
	Status  *reviewmodels.ProfileStatus
	Warning string
}

// ResidentRecord pairs a profile with its review status for listings. Status
// is nil when the paired record is missing, which only happens for rows
// written before the status table existed.
type ResidentRecord struct {
	Profile *models.ResidentProfile
	Status  *reviewmodels.ProfileStatus
}

// Service coordinates the profile store with the review workflow.
type Service struct {
	profiles store.Store
	review   ReviewWorkflow
	blobs    BlobChecker
	feed     feed.Publisher
	auditor  AuditEmitter
	metrics  *profilemetrics.Metrics
	logger   *slog.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

// WithBlobChecker enforces upload-then-link ordering on submissions.
func WithBlobChecker(blobs BlobChecker) Option {
	return func(s *Service) { s.blobs = blobs }
}

// WithFeed publishes a change event after every profile mutation.
func WithFeed(publisher feed.Publisher) Option {
	return func(s *Service) { s.feed = publisher }
}

// WithAudit records profile deletions in the audit trail.
func WithAudit(emitter AuditEmitter) Option {
	return func(s *Service) { s.auditor = emitter }
}

// WithMetrics counts accepted submissions.
func WithMetrics(m *profilemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger for side-effect failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService builds the profile service.
func NewService(profiles store.Store, review ReviewWorkflow, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		review:   review,
		feed:     feed.Noop{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and upserts the resident's profile, then records the
// submission with the review workflow. Every referenced file must already be
// stored: a record is never written pointing at a file that does not exist.
func (s *Service) Submit(ctx context.Context, residentID id.ResidentID, profile *models.ResidentProfile) (*SubmitResult, error) {
	profile.ResidentID = residentID
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.verifyFileRefs(ctx, profile); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "profile store failure")
	}
	s.metrics.IncSubmission()

	status, warning, err := s.review.RecordSubmission(ctx, residentID)
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, residentID)
	return &SubmitResult{Profile: profile, Status: status, Warning: warning}, nil
}

// GetOwn returns the authenticated resident's profile and status.
func (s *Service) GetOwn(ctx context.Context, residentID id.ResidentID) (*ResidentRecord, error) {
	return s.get(ctx, residentID)
}

// Get returns one resident's profile and status for the admin surface.
func (s *Service) Get(ctx context.Context, residentID id.ResidentID) (*ResidentRecord, error) {
	return s.get(ctx, residentID)
}

func (s *Service) get(ctx context.Context, residentID id.ResidentID) (*ResidentRecord, error) {
	profile, err := s.profiles.Get(ctx, residentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no profile for resident")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "profile store failure")
	}

	status, err := s.review.Get(ctx, residentID)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil, err
	}
	return &ResidentRecord{Profile: profile, Status: status}, nil
}

// ListAll returns every resident's profile joined with its status. Corrupt
// stored sections come back as fallbacks; the listing itself never fails for
// one bad record.
func (s *Service) ListAll(ctx context.Context) ([]*ResidentRecord, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "profile store failure")
	}
	statuses, err := s.review.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*ResidentRecord, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, &ResidentRecord{Profile: p, Status: statuses[p.ResidentID]})
	}
	return out, nil
}

// Delete removes the resident's profile and cascades to the status record.
// Admin-only; residents never hard-delete their own profiles.
func (s *Service) Delete(ctx context.Context, residentID id.ResidentID) error {
	if _, err := s.profiles.Get(ctx, residentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no profile for resident")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "profile store failure")
	}

	if err := s.profiles.Delete(ctx, residentID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "profile store failure")
	}
	if err := s.review.Delete(ctx, residentID); err != nil {
		return err
	}

	s.emitDeleted(ctx, residentID)
	s.publishChange(ctx, residentID)
	return nil
}

func (s *Service) verifyFileRefs(ctx context.Context, profile *models.ResidentProfile) error {
	if s.blobs == nil {
		return nil
	}
	for _, ref := range profile.FileRefs() {
		ok, err := s.blobs.Exists(ctx, ref)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "file storage check failed")
		}
		if !ok {
			return dErrors.Newf(dErrors.CodeInvalidInput, "referenced file %q has not been uploaded", ref)
		}
	}
	return nil
}

func (s *Service) emitDeleted(ctx context.Context, residentID id.ResidentID) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		ResidentID: residentID.String(),
		Action:     string(audit.EventProfileDeleted),
		Actor:      requestcontext.AdminActor(ctx),
		RequestID:  requestcontext.RequestID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
		UserAgent:  requestcontext.UserAgent(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", string(audit.EventProfileDeleted), "error", err)
	}
}

func (s *Service) publishChange(ctx context.Context, residentID id.ResidentID) {
	err := s.feed.Publish(ctx, feed.Event{
		Kind:       "profile",
		ResidentID: residentID.String(),
		At:         requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "feed publish failed", "resident_id", residentID.String(), "error", err)
	}
}
