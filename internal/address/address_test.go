package address

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() *Memory {
	return NewMemory(
		[]Region{
			{Code: "130000000", Name: "NCR"},
			{Code: "040000000", Name: "CALABARZON"},
		},
		[]Province{
			{Code: "043400000", RegionCode: "040000000", Name: "Laguna"},
			{Code: "042100000", RegionCode: "040000000", Name: "Cavite"},
		},
		[]City{
			{Code: "043404000", ProvinceCode: "043400000", Name: "Calamba"},
			{Code: "043405000", ProvinceCode: "043400000", Name: "Bay"},
		},
		[]Barangay{
			{Code: "043404001", CityCode: "043404000", Name: "Barangay Uno"},
			{Code: "043404002", CityCode: "043404000", Name: "Barangay Dos"},
		},
	)
}

func TestCascadeLookups(t *testing.T) {
	ctx := context.Background()
	store := seededStore()

	regions, err := store.Regions(ctx)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "CALABARZON", regions[0].Name) // sorted by code

	provinces, err := store.Provinces(ctx, "040000000")
	require.NoError(t, err)
	require.Len(t, provinces, 2)
	assert.Equal(t, "Cavite", provinces[0].Name) // sorted by name

	cities, err := store.Cities(ctx, "043400000")
	require.NoError(t, err)
	require.Len(t, cities, 2)

	barangays, err := store.Barangays(ctx, "043404000")
	require.NoError(t, err)
	require.Len(t, barangays, 2)
}

func TestUnknownParentYieldsEmptyList(t *testing.T) {
	store := seededStore()

	provinces, err := store.Provinces(context.Background(), "999999999")
	require.NoError(t, err)
	assert.Empty(t, provinces)
}

func TestCascadeHandlers(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(seededStore()).Register(r)

	t.Run("regions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/addresses/regions", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var regions []Region
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regions))
		assert.Len(t, regions, 2)
	})

	t.Run("provinces require region param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/addresses/provinces", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("barangays by city", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/addresses/barangays?city=043404000", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var barangays []Barangay
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &barangays))
		assert.Len(t, barangays, 2)
	})
}
