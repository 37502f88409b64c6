// Package address serves the PSGC-coded region/province/city/barangay
// cascade that backs the profile form's address dropdowns. The data is
// read-only reference data.
package address

import "context"

// Region is a top-level PSGC region.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Province belongs to a region.
type Province struct {
	Code       string `json:"code"`
	RegionCode string `json:"region_code"`
	Name       string `json:"name"`
}

// City is a city or municipality within a province. Highly urbanized cities
// carry their region's code as ProvinceCode in the source data; the cascade
// treats them uniformly.
type City struct {
	Code         string `json:"code"`
	ProvinceCode string `json:"province_code"`
	Name         string `json:"name"`
}

// Barangay belongs to a city or municipality.
type Barangay struct {
	Code     string `json:"code"`
	CityCode string `json:"city_code"`
	Name     string `json:"name"`
}

// Store serves cascade lookups. Each level filters by its parent code; an
// unknown parent returns an empty list, not an error.
type Store interface {
	Regions(ctx context.Context) ([]Region, error)
	Provinces(ctx context.Context, regionCode string) ([]Province, error)
	Cities(ctx context.Context, provinceCode string) ([]City, error)
	Barangays(ctx context.Context, cityCode string) ([]Barangay, error)
}
