// Package service implements the officials roster CRUD, the public roster
// view, and the footer configuration.
package service

import (
	"context"
	"errors"
	"log/slog"

	"balangay/internal/transparency/models"
	"balangay/internal/transparency/store"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	audit "balangay/pkg/platform/audit"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/requestcontext"
)

// URLSigner issues short-lived signed URLs for privately stored files.
type URLSigner interface {
	Sign(path string) (string, error)
}

// AuditEmitter records transparency content changes.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RosterEntry is a roster record enriched with a signed portrait URL for
// public rendering. PortraitURL is empty when no portrait is stored.
type RosterEntry struct {
	*models.OfficialRecord
	PortraitURL string `json:"portrait_url,omitempty"`
}

// Service manages transparency content.
type Service struct {
	officials store.Officials
	footer    store.Footer
	signer    URLSigner
	auditor   AuditEmitter
	logger    *slog.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

// WithSigner enables signed portrait URLs on the public roster.
func WithSigner(signer URLSigner) Option {
	return func(s *Service) { s.signer = signer }
}

// WithAudit records every roster and footer mutation.
func WithAudit(emitter AuditEmitter) Option {
	return func(s *Service) { s.auditor = emitter }
}

// WithLogger sets the logger for side-effect failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService builds the transparency service.
func NewService(officials store.Officials, footer store.Footer, opts ...Option) *Service {
	s := &Service{
		officials: officials,
		footer:    footer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOfficial validates and stores a new roster entry.
func (s *Service) CreateOfficial(ctx context.Context, official *models.OfficialRecord) (*models.OfficialRecord, error) {
	if err := official.Validate(); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	official.ID = id.NewOfficialID()
	official.CreatedAt = now
	official.UpdatedAt = now

	if err := s.officials.Create(ctx, official); err != nil {
		return nil, wrapStoreErr(err)
	}
	s.emit(ctx, audit.EventOfficialCreated, official.ID.String())
	return official, nil
}

// GetOfficial returns one roster entry.
func (s *Service) GetOfficial(ctx context.Context, officialID id.OfficialID) (*models.OfficialRecord, error) {
	official, err := s.officials.Get(ctx, officialID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return official, nil
}

// UpdateOfficial validates and replaces a roster entry. The entry keeps its
// ID and creation time; everything else comes from the caller.
func (s *Service) UpdateOfficial(ctx context.Context, officialID id.OfficialID, official *models.OfficialRecord) (*models.OfficialRecord, error) {
	if err := official.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.officials.Get(ctx, officialID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	official.ID = officialID
	official.CreatedAt = existing.CreatedAt
	official.UpdatedAt = requestcontext.Now(ctx)

	if err := s.officials.Update(ctx, official); err != nil {
		return nil, wrapStoreErr(err)
	}
	s.emit(ctx, audit.EventOfficialUpdated, officialID.String())
	return official, nil
}

// DeleteOfficial removes a roster entry. Deleting an unknown ID succeeds.
func (s *Service) DeleteOfficial(ctx context.Context, officialID id.OfficialID) error {
	if err := s.officials.Delete(ctx, officialID); err != nil {
		return wrapStoreErr(err)
	}
	s.emit(ctx, audit.EventOfficialDeleted, officialID.String())
	return nil
}

// ListOfficials returns the raw records for one roster in display order,
// without signed portrait URLs. This backs the admin management screen.
func (s *Service) ListOfficials(ctx context.Context, officialType models.OfficialType) ([]*models.OfficialRecord, error) {
	if !officialType.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "roster type must be %q or %q", models.TypeBarangay, models.TypeSK)
	}
	officials, err := s.officials.ListByType(ctx, officialType)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	models.SortForDisplay(officials)
	return officials, nil
}

// PublicRoster returns the display-sorted roster for one type with signed
// portrait URLs. A signing failure degrades to an entry without a URL rather
// than failing the roster.
func (s *Service) PublicRoster(ctx context.Context, officialType models.OfficialType) ([]*RosterEntry, error) {
	if !officialType.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "roster type must be %q or %q", models.TypeBarangay, models.TypeSK)
	}
	officials, err := s.officials.ListByType(ctx, officialType)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	models.SortForDisplay(officials)

	out := make([]*RosterEntry, 0, len(officials))
	for _, official := range officials {
		entry := &RosterEntry{OfficialRecord: official}
		if official.PortraitPath != "" && s.signer != nil {
			url, err := s.signer.Sign(official.PortraitPath)
			if err != nil {
				s.logger.WarnContext(ctx, "portrait URL signing failed",
					"official_id", official.ID.String(), "error", err)
			} else {
				entry.PortraitURL = url
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetFooter returns the footer configuration, or an empty default before the
// first save so the public site always has something to render.
func (s *Service) GetFooter(ctx context.Context) (*models.FooterConfig, error) {
	config, err := s.footer.Get(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return &models.FooterConfig{}, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return config, nil
}

// UpdateFooter validates and replaces the singleton footer row.
func (s *Service) UpdateFooter(ctx context.Context, config *models.FooterConfig) (*models.FooterConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.UpdatedAt = requestcontext.Now(ctx)
	if err := s.footer.Put(ctx, config); err != nil {
		return nil, wrapStoreErr(err)
	}
	s.emit(ctx, audit.EventFooterUpdated, "")
	return config, nil
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, subject string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Subject:   subject,
		Action:    string(event),
		Actor:     requestcontext.AdminActor(ctx),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", string(event), "error", err)
	}
}

func wrapStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "official not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "official already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "transparency store failure")
	}
}
