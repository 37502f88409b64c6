package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"balangay/internal/review/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
	txcontext "balangay/pkg/platform/tx"
)

// Postgres persists status records in the resident_profile_status table.
//
// Schema:
//
//	CREATE TABLE resident_profile_status (
//	    resident_id      UUID PRIMARY KEY REFERENCES residents(resident_id) ON DELETE CASCADE,
//	    status           INT NOT NULL,
//	    rejection_reason TEXT,
//	    updated_at       TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs the production status store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
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

func (s *Postgres) Create(ctx context.Context, status *models.ProfileStatus) error {
	query := `
		INSERT INTO resident_profile_status (resident_id, status, rejection_reason, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(status.ResidentID), int(status.Status), status.RejectionReason, status.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert profile status: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, residentID id.ResidentID) (*models.ProfileStatus, error) {
	query := `
		SELECT status, rejection_reason, updated_at
		FROM resident_profile_status
		WHERE resident_id = $1
	`
	status := &models.ProfileStatus{ResidentID: residentID}
	var statusInt int
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(residentID)).
		Scan(&statusInt, &status.RejectionReason, &status.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("select profile status: %w", err)
	}
	status.Status = models.Status(statusInt)
	return status, nil
}

func (s *Postgres) Update(ctx context.Context, status *models.ProfileStatus) error {
	query := `
		UPDATE resident_profile_status
		SET status = $2, rejection_reason = $3, updated_at = $4
		WHERE resident_id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(status.ResidentID), int(status.Status), status.RejectionReason, status.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile status: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, residentID id.ResidentID) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM resident_profile_status WHERE resident_id = $1`, uuid.UUID(residentID))
	if err != nil {
		return fmt.Errorf("delete profile status: %w", err)
	}
	return nil
}

func (s *Postgres) ListAll(ctx context.Context) (map[id.ResidentID]*models.ProfileStatus, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT resident_id, status, rejection_reason, updated_at
		FROM resident_profile_status
	`)
	if err != nil {
		return nil, fmt.Errorf("list profile statuses: %w", err)
	}
	defer rows.Close()

	out := make(map[id.ResidentID]*models.ProfileStatus)
	for rows.Next() {
		var (
			rid       uuid.UUID
			statusInt int
			status    models.ProfileStatus
		)
		if err := rows.Scan(&rid, &statusInt, &status.RejectionReason, &status.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile status: %w", err)
		}
		status.ResidentID = id.ResidentID(rid)
		status.Status = models.Status(statusInt)
		out[status.ResidentID] = &status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile statuses: %w", err)
	}
	return out, nil
}
