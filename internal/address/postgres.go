package address

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres serves the cascade from the psgc_* reference tables.
//
// Schema:
//
//	CREATE TABLE psgc_regions   (code TEXT PRIMARY KEY, name TEXT NOT NULL);
//	CREATE TABLE psgc_provinces (code TEXT PRIMARY KEY, region_code TEXT NOT NULL, name TEXT NOT NULL);
//	CREATE TABLE psgc_cities    (code TEXT PRIMARY KEY, province_code TEXT NOT NULL, name TEXT NOT NULL);
//	CREATE TABLE psgc_barangays (code TEXT PRIMARY KEY, city_code TEXT NOT NULL, name TEXT NOT NULL);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs the production address store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Regions(ctx context.Context) ([]Region, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, name FROM psgc_regions ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var out []Region
	for rows.Next() {
		var r Region
		if err := rows.Scan(&r.Code, &r.Name); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Postgres) Provinces(ctx context.Context, regionCode string) ([]Province, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, region_code, name FROM psgc_provinces WHERE region_code = $1 ORDER BY name`, regionCode)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	defer rows.Close()

	var out []Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.Code, &p.RegionCode, &p.Name); err != nil {
			return nil, fmt.Errorf("scan province: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Postgres) Cities(ctx context.Context, provinceCode string) ([]City, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, province_code, name FROM psgc_cities WHERE province_code = $1 ORDER BY name`, provinceCode)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var out []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.Code, &c.ProvinceCode, &c.Name); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) Barangays(ctx context.Context, cityCode string) ([]Barangay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, city_code, name FROM psgc_barangays WHERE city_code = $1 ORDER BY name`, cityCode)
	if err != nil {
		return nil, fmt.Errorf("list barangays: %w", err)
	}
	defer rows.Close()

	var out []Barangay
	for rows.Next() {
		var b Barangay
		if err := rows.Scan(&b.Code, &b.CityCode, &b.Name); err != nil {
			return nil, fmt.Errorf("scan barangay: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
