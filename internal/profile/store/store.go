// Package store persists resident household profiles.
//
// Profiles are stored with each JSON-typed section (household head, spouse,
// composition, census) in its own column so a corrupt section degrades to a
// fallback value on read without losing the rest of the record.
package store

import (
	"context"

	"balangay/internal/profile/models"
	id "balangay/pkg/domain"
)

// Store is the profile persistence contract.
//
// Upsert creates or replaces the resident's profile document. Get returns
// sentinel.ErrNotFound for unknown residents. Delete is idempotent. ListAll
// never fails because of one corrupt record; damaged sections come back as
// their documented fallbacks.
type Store interface {
	Upsert(ctx context.Context, profile *models.ResidentProfile) error
	Get(ctx context.Context, residentID id.ResidentID) (*models.ResidentProfile, error)
	Delete(ctx context.Context, residentID id.ResidentID) error
	ListAll(ctx context.Context) ([]*models.ResidentProfile, error)
}
