package address

import (
	"context"
	"sort"
)

// Memory serves the cascade from seeded slices. Useful for tests and for
// deployments that ship the PSGC tables as static data.
type Memory struct {
	regions   []Region
	provinces []Province
	cities    []City
	barangays []Barangay
}

// NewMemory constructs a memory store from seed data.
func NewMemory(regions []Region, provinces []Province, cities []City, barangays []Barangay) *Memory {
	return &Memory{regions: regions, provinces: provinces, cities: cities, barangays: barangays}
}

func (m *Memory) Regions(_ context.Context) ([]Region, error) {
	out := append([]Region{}, m.regions...)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *Memory) Provinces(_ context.Context, regionCode string) ([]Province, error) {
	var out []Province
	for _, p := range m.provinces {
		if p.RegionCode == regionCode {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Cities(_ context.Context, provinceCode string) ([]City, error) {
	var out []City
	for _, c := range m.cities {
		if c.ProvinceCode == provinceCode {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Barangays(_ context.Context, cityCode string) ([]Barangay, error) {
	var out []Barangay
	for _, b := range m.barangays {
		if b.CityCode == cityCode {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
