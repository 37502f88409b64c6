package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	profilemetrics "balangay/internal/profile/metrics"
	"balangay/internal/profile/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
	txcontext "balangay/pkg/platform/tx"
)

// Postgres persists profiles in the residents table.
//
// Schema:
//
//	CREATE TABLE residents (
//	    resident_id UUID PRIMARY KEY,
//	    household   JSONB NOT NULL,
//	    spouse      JSONB,
//	    composition JSONB,
//	    census      JSONB,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	db    *sql.DB
	codec codec
}

// NewPostgres constructs the production profile store.
func NewPostgres(db *sql.DB, logger *slog.Logger, metrics *profilemetrics.Metrics) *Postgres {
	return &Postgres{db: db, codec: newCodec(logger, metrics)}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) Upsert(ctx context.Context, profile *models.ResidentProfile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	query := `
		INSERT INTO residents (resident_id, household, spouse, composition, census, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (resident_id) DO UPDATE SET
			household = EXCLUDED.household,
			spouse = EXCLUDED.spouse,
			composition = EXCLUDED.composition,
			census = EXCLUDED.census,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(raw.ResidentID), raw.Household, raw.Spouse, raw.Composition, raw.Census,
		raw.CreatedAt, raw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert resident profile: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, residentID id.ResidentID) (*models.ResidentProfile, error) {
	query := `
		SELECT household, spouse, composition, census, created_at, updated_at
		FROM residents
		WHERE resident_id = $1
	`
	raw := Raw{ResidentID: residentID}
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(residentID)).
		Scan(&raw.Household, &raw.Spouse, &raw.Composition, &raw.Census, &raw.CreatedAt, &raw.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("select resident profile: %w", err)
	}
	return s.codec.decode(raw), nil
}

func (s *Postgres) Delete(ctx context.Context, residentID id.ResidentID) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM residents WHERE resident_id = $1`, uuid.UUID(residentID))
	if err != nil {
		return fmt.Errorf("delete resident profile: %w", err)
	}
	return nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.ResidentProfile, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT resident_id, household, spouse, composition, census, created_at, updated_at
		FROM residents
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list resident profiles: %w", err)
	}
	defer rows.Close()

	var out []*models.ResidentProfile
	for rows.Next() {
		var (
			rid uuid.UUID
			raw Raw
		)
		if err := rows.Scan(&rid, &raw.Household, &raw.Spouse, &raw.Composition, &raw.Census,
			&raw.CreatedAt, &raw.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resident profile: %w", err)
		}
		raw.ResidentID = id.ResidentID(rid)
		out = append(out, s.codec.decode(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resident profiles: %w", err)
	}
	return out, nil
}
