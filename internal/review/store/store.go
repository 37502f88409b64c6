// Package store persists profile status records. The memory implementation
// backs unit tests and single-node development; postgres is the production
// store. Both return sentinel errors for the service layer to translate.
package store

import (
	"context"

	"balangay/internal/review/models"
	id "balangay/pkg/domain"
)

// Store is the status record store. One record per resident, created with
// the first submission and deleted only by the admin cascade.
type Store interface {
	// Create inserts a new status record. Returns sentinel.ErrConflict when
	// the resident already has one.
	Create(ctx context.Context, status *models.ProfileStatus) error
	// Get returns the record or sentinel.ErrNotFound.
	Get(ctx context.Context, residentID id.ResidentID) (*models.ProfileStatus, error)
	// Update overwrites the record (status, reason, and timestamp together).
	// Returns sentinel.ErrNotFound when no record exists. Last write wins:
	// there is no concurrency token on status rows.
	Update(ctx context.Context, status *models.ProfileStatus) error
	// Delete removes the record; missing records are not an error so the
	// admin cascade stays idempotent.
	Delete(ctx context.Context, residentID id.ResidentID) error
	// ListAll returns every status record keyed by resident.
	ListAll(ctx context.Context) (map[id.ResidentID]*models.ProfileStatus, error)
}
