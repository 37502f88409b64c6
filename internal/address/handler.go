package address

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/platform/httputil"
)

// Handler serves the public address cascade endpoints.
type Handler struct {
	store Store
}

// NewHandler constructs an address handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the cascade endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/addresses/regions", h.HandleRegions)
	r.Get("/addresses/provinces", h.HandleProvinces)
	r.Get("/addresses/cities", h.HandleCities)
	r.Get("/addresses/barangays", h.HandleBarangays)
}

func (h *Handler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.store.Regions(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "address lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, regions)
}

func (h *Handler) HandleProvinces(w http.ResponseWriter, r *http.Request) {
	regionCode := r.URL.Query().Get("region")
	if regionCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "region query parameter is required"))
		return
	}
	provinces, err := h.store.Provinces(r.Context(), regionCode)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "address lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, provinces)
}

func (h *Handler) HandleCities(w http.ResponseWriter, r *http.Request) {
	provinceCode := r.URL.Query().Get("province")
	if provinceCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "province query parameter is required"))
		return
	}
	cities, err := h.store.Cities(r.Context(), provinceCode)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "address lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cities)
}

func (h *Handler) HandleBarangays(w http.ResponseWriter, r *http.Request) {
	cityCode := r.URL.Query().Get("city")
	if cityCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "city query parameter is required"))
		return
	}
	barangays, err := h.store.Barangays(r.Context(), cityCode)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "address lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, barangays)
}
