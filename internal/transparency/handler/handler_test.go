package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balangay/internal/transparency/models"
	"balangay/internal/transparency/service"
	"balangay/internal/transparency/store"
)

func newTransparencyRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := service.NewService(store.NewInMemoryOfficials(), store.NewInMemoryFooter(),
		service.WithLogger(logger))
	handler := New(svc, logger)

	r := chi.NewRouter()
	handler.RegisterPublic(r)
	r.Route("/admin", func(admin chi.Router) {
		handler.RegisterAdmin(admin)
	})
	return r
}

func createOfficial(t *testing.T, router http.Handler, req OfficialRequest) models.OfficialRecord {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/admin/officials", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.OfficialRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestOfficialLifecycleViaHandlers(t *testing.T) {
	router := newTransparencyRouter(t)

	created := createOfficial(t, router, OfficialRequest{
		FirstName: "Pedro",
		LastName:  "Santos",
		Position:  models.PositionPunongBarangay,
		Type:      models.TypeBarangay,
		TermStart: 2023,
		TermEnd:   2026,
		Current:   true,
	})
	require.False(t, created.ID.IsNil())

	listReq := httptest.NewRequest(http.MethodGet, "/officials?type=barangay", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var roster RosterResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &roster))
	require.Len(t, roster.Officials, 1)
	assert.Equal(t, "Santos", roster.Officials[0].LastName)

	delReq := httptest.NewRequest(http.MethodDelete, "/admin/officials/"+created.ID.String(), nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	require.Equal(t, http.StatusNoContent, delRec.Code)
}

func TestAdminListOfficials(t *testing.T) {
	router := newTransparencyRouter(t)

	createOfficial(t, router, OfficialRequest{
		FirstName: "Liza",
		LastName:  "Reyes",
		Position:  models.PositionSKChairperson,
		Type:      models.TypeSK,
		TermStart: 2023,
		Current:   true,
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/officials?type=sk", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var officials []models.OfficialRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &officials))
	require.Len(t, officials, 1)
	assert.Equal(t, "Reyes", officials[0].LastName)
}

func TestRosterRejectsUnknownType(t *testing.T) {
	router := newTransparencyRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/officials?type=municipal", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOfficialValidation(t *testing.T) {
	router := newTransparencyRouter(t)

	body, err := json.Marshal(OfficialRequest{FirstName: "Pedro", Type: models.TypeBarangay})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/officials", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFooterRoundTripViaHandlers(t *testing.T) {
	router := newTransparencyRouter(t)

	body, err := json.Marshal(FooterRequest{
		BarangayName: "Barangay San Isidro",
		ContactEmail: "office@sanisidro.gov.ph",
	})
	require.NoError(t, err)

	putReq := httptest.NewRequest(http.MethodPut, "/admin/footer", bytes.NewReader(body))
	putRec := httptest.NewRecorder()
	router.ServeHTTP(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/footer", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var config models.FooterConfig
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &config))
	assert.Equal(t, "Barangay San Isidro", config.BarangayName)
}

func TestGetFooterBeforeFirstSave(t *testing.T) {
	router := newTransparencyRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/footer", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
