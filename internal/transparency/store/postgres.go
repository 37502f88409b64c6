package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"balangay/internal/transparency/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
	txcontext "balangay/pkg/platform/tx"
)

// PostgresOfficials persists rosters in a table per type, mirroring the
// source system's barangay_officials and sk_officials tables.
//
// Schema (identical for both tables):
//
//	CREATE TABLE barangay_officials (
//	    id            UUID PRIMARY KEY,
//	    first_name    TEXT NOT NULL,
//	    middle_name   TEXT NOT NULL DEFAULT '',
//	    last_name     TEXT NOT NULL,
//	    suffix        TEXT NOT NULL DEFAULT '',
//	    position      TEXT NOT NULL,
//	    term_start    INT NOT NULL,
//	    term_end      INT NOT NULL DEFAULT 0,
//	    current       BOOLEAN NOT NULL,
//	    portrait_path TEXT NOT NULL DEFAULT '',
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type PostgresOfficials struct {
	db *sql.DB
}

// NewPostgresOfficials constructs the production roster store.
func NewPostgresOfficials(db *sql.DB) *PostgresOfficials {
	return &PostgresOfficials{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresOfficials) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func tableFor(officialType models.OfficialType) string {
	if officialType == models.TypeSK {
		return "sk_officials"
	}
	return "barangay_officials"
}

func (s *PostgresOfficials) Create(ctx context.Context, official *models.OfficialRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, first_name, middle_name, last_name, suffix, position,
			term_start, term_end, current, portrait_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, tableFor(official.Type))
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(official.ID), official.FirstName, official.MiddleName, official.LastName,
		official.Suffix, official.Position, official.TermStart, official.TermEnd,
		official.Current, official.PortraitPath, official.CreatedAt, official.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert official: %w", err)
	}
	return nil
}

func (s *PostgresOfficials) Get(ctx context.Context, officialID id.OfficialID) (*models.OfficialRecord, error) {
	// the ID does not encode the roster, so both tables are checked
	for _, officialType := range []models.OfficialType{models.TypeBarangay, models.TypeSK} {
		official, err := s.getFrom(ctx, officialType, officialID)
		if err == nil {
			return official, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *PostgresOfficials) getFrom(ctx context.Context, officialType models.OfficialType, officialID id.OfficialID) (*models.OfficialRecord, error) {
	query := fmt.Sprintf(`
		SELECT first_name, middle_name, last_name, suffix, position,
			term_start, term_end, current, portrait_path, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, tableFor(officialType))
	official := &models.OfficialRecord{ID: officialID, Type: officialType}
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(officialID)).Scan(
		&official.FirstName, &official.MiddleName, &official.LastName, &official.Suffix,
		&official.Position, &official.TermStart, &official.TermEnd, &official.Current,
		&official.PortraitPath, &official.CreatedAt, &official.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("select official: %w", err)
	}
	return official, nil
}

func (s *PostgresOfficials) Update(ctx context.Context, official *models.OfficialRecord) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET first_name = $2, middle_name = $3, last_name = $4, suffix = $5,
			position = $6, term_start = $7, term_end = $8, current = $9,
			portrait_path = $10, updated_at = $11
		WHERE id = $1
	`, tableFor(official.Type))
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(official.ID), official.FirstName, official.MiddleName, official.LastName,
		official.Suffix, official.Position, official.TermStart, official.TermEnd,
		official.Current, official.PortraitPath, official.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update official: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update official: rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresOfficials) Delete(ctx context.Context, officialID id.OfficialID) error {
	for _, officialType := range []models.OfficialType{models.TypeBarangay, models.TypeSK} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableFor(officialType))
		if _, err := s.execer(ctx).ExecContext(ctx, query, uuid.UUID(officialID)); err != nil {
			return fmt.Errorf("delete official: %w", err)
		}
	}
	return nil
}

func (s *PostgresOfficials) ListByType(ctx context.Context, officialType models.OfficialType) ([]*models.OfficialRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, middle_name, last_name, suffix, position,
			term_start, term_end, current, portrait_path, created_at, updated_at
		FROM %s
	`, tableFor(officialType))
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	defer rows.Close()

	var out []*models.OfficialRecord
	for rows.Next() {
		var oid uuid.UUID
		official := &models.OfficialRecord{Type: officialType}
		if err := rows.Scan(&oid, &official.FirstName, &official.MiddleName, &official.LastName,
			&official.Suffix, &official.Position, &official.TermStart, &official.TermEnd,
			&official.Current, &official.PortraitPath, &official.CreatedAt, &official.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan official: %w", err)
		}
		official.ID = id.OfficialID(oid)
		out = append(out, official)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate officials: %w", err)
	}
	return out, nil
}

// PostgresFooter persists the singleton footer_config row.
//
// Schema:
//
//	CREATE TABLE footer_config (
//	    id             INT PRIMARY KEY CHECK (id = 1),
//	    barangay_name  TEXT NOT NULL,
//	    address        TEXT NOT NULL DEFAULT '',
//	    contact_number TEXT NOT NULL DEFAULT '',
//	    contact_email  TEXT NOT NULL DEFAULT '',
//	    office_hours   TEXT NOT NULL DEFAULT '',
//	    facebook_url   TEXT NOT NULL DEFAULT '',
//	    updated_at     TIMESTAMPTZ NOT NULL
//	);
type PostgresFooter struct {
	db *sql.DB
}

// NewPostgresFooter constructs the production footer store.
func NewPostgresFooter(db *sql.DB) *PostgresFooter {
	return &PostgresFooter{db: db}
}

func (s *PostgresFooter) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresFooter) Get(ctx context.Context) (*models.FooterConfig, error) {
	config := &models.FooterConfig{}
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT barangay_name, address, contact_number, contact_email, office_hours, facebook_url, updated_at
		FROM footer_config
		WHERE id = 1
	`).Scan(&config.BarangayName, &config.Address, &config.ContactNumber,
		&config.ContactEmail, &config.OfficeHours, &config.FacebookURL, &config.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("select footer config: %w", err)
	}
	return config, nil
}

func (s *PostgresFooter) Put(ctx context.Context, config *models.FooterConfig) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO footer_config (id, barangay_name, address, contact_number, contact_email, office_hours, facebook_url, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			barangay_name = EXCLUDED.barangay_name,
			address = EXCLUDED.address,
			contact_number = EXCLUDED.contact_number,
			contact_email = EXCLUDED.contact_email,
			office_hours = EXCLUDED.office_hours,
			facebook_url = EXCLUDED.facebook_url,
			updated_at = EXCLUDED.updated_at
	`, config.BarangayName, config.Address, config.ContactNumber,
		config.ContactEmail, config.OfficeHours, config.FacebookURL, config.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert footer config: %w", err)
	}
	return nil
}
