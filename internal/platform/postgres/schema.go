package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate applies the schema idempotently. The service owns its tables, so
// running the DDL at boot keeps deployments to a single binary.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS residents (
		resident_id UUID PRIMARY KEY,
		household   JSONB NOT NULL,
		spouse      JSONB,
		composition JSONB,
		census      JSONB,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS resident_profile_status (
		resident_id      UUID PRIMARY KEY REFERENCES residents(resident_id) ON DELETE CASCADE,
		status           INT NOT NULL,
		rejection_reason TEXT,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS barangay_officials (
		id            UUID PRIMARY KEY,
		first_name    TEXT NOT NULL,
		middle_name   TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL,
		suffix        TEXT NOT NULL DEFAULT '',
		position      TEXT NOT NULL,
		term_start    INT NOT NULL,
		term_end      INT NOT NULL DEFAULT 0,
		current       BOOLEAN NOT NULL,
		portrait_path TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sk_officials (
		id            UUID PRIMARY KEY,
		first_name    TEXT NOT NULL,
		middle_name   TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL,
		suffix        TEXT NOT NULL DEFAULT '',
		position      TEXT NOT NULL,
		term_start    INT NOT NULL,
		term_end      INT NOT NULL DEFAULT 0,
		current       BOOLEAN NOT NULL,
		portrait_path TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS footer_config (
		id             INT PRIMARY KEY CHECK (id = 1),
		barangay_name  TEXT NOT NULL,
		address        TEXT NOT NULL DEFAULT '',
		contact_number TEXT NOT NULL DEFAULT '',
		contact_email  TEXT NOT NULL DEFAULT '',
		office_hours   TEXT NOT NULL DEFAULT '',
		facebook_url   TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_outbox (
		id           UUID PRIMARY KEY,
		category     TEXT NOT NULL,
		event_type   TEXT NOT NULL,
		payload      JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		published_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS audit_outbox_unpublished
		ON audit_outbox (created_at) WHERE published_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS psgc_regions (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS psgc_provinces (
		code        TEXT PRIMARY KEY,
		region_code TEXT NOT NULL,
		name        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS psgc_cities (
		code          TEXT PRIMARY KEY,
		province_code TEXT NOT NULL,
		name          TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS psgc_barangays (
		code      TEXT PRIMARY KEY,
		city_code TEXT NOT NULL,
		name      TEXT NOT NULL
	)`,
}
