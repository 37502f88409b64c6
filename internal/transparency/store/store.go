// Package store persists the officials rosters and the footer configuration.
package store

import (
	"context"

	"balangay/internal/transparency/models"
	id "balangay/pkg/domain"
)

// Officials is the roster persistence contract. Get and Update return
// sentinel.ErrNotFound for unknown IDs; Delete is idempotent.
type Officials interface {
	Create(ctx context.Context, official *models.OfficialRecord) error
	Get(ctx context.Context, officialID id.OfficialID) (*models.OfficialRecord, error)
	Update(ctx context.Context, official *models.OfficialRecord) error
	Delete(ctx context.Context, officialID id.OfficialID) error
	ListByType(ctx context.Context, officialType models.OfficialType) ([]*models.OfficialRecord, error)
}

// Footer is the singleton settings row contract. Get returns
// sentinel.ErrNotFound until the first Put.
type Footer interface {
	Get(ctx context.Context) (*models.FooterConfig, error)
	Put(ctx context.Context, config *models.FooterConfig) error
}
