// Package handler exposes the public transparency pages and their admin CRUD.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"balangay/internal/transparency/models"
	"balangay/internal/transparency/service"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/platform/httputil"
	"balangay/pkg/requestcontext"
)

// Handler wires transparency endpoints to the transparency service.
type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

// New constructs a transparency handler.
func New(service *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated transparency pages.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/officials", h.HandleRoster)
	r.Get("/footer", h.HandleGetFooter)
}

// RegisterAdmin mounts the content management endpoints.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/officials", h.HandleAdminListOfficials)
	r.Post("/officials", h.HandleCreateOfficial)
	r.Put("/officials/{officialID}", h.HandleUpdateOfficial)
	r.Delete("/officials/{officialID}", h.HandleDeleteOfficial)
	r.Put("/footer", h.HandleUpdateFooter)
}

// HandleRoster handles GET /officials?type=barangay|sk.
func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	officialType := models.OfficialType(r.URL.Query().Get("type"))
	if officialType == "" {
		officialType = models.TypeBarangay
	}

	roster, err := h.service.PublicRoster(ctx, officialType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RosterResponse{Officials: roster})
}

// HandleAdminListOfficials handles GET /admin/officials?type=barangay|sk.
// Unlike the public roster it returns raw records without signed URLs.
func (h *Handler) HandleAdminListOfficials(w http.ResponseWriter, r *http.Request) {
	officialType := models.OfficialType(r.URL.Query().Get("type"))
	if officialType == "" {
		officialType = models.TypeBarangay
	}

	officials, err := h.service.ListOfficials(r.Context(), officialType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, officials)
}

// HandleCreateOfficial handles POST /admin/officials.
func (h *Handler) HandleCreateOfficial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[OfficialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.CreateOfficial(ctx, req.ToModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "official created",
		"request_id", requestID,
		"official_id", created.ID.String(),
		"actor", requestcontext.AdminActor(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdateOfficial handles PUT /admin/officials/{officialID}.
func (h *Handler) HandleUpdateOfficial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	officialID, err := officialIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[OfficialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.UpdateOfficial(ctx, officialID, req.ToModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleDeleteOfficial handles DELETE /admin/officials/{officialID}.
func (h *Handler) HandleDeleteOfficial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	officialID, err := officialIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteOfficial(ctx, officialID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetFooter handles GET /footer.
func (h *Handler) HandleGetFooter(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.GetFooter(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, config)
}

// HandleUpdateFooter handles PUT /admin/footer.
func (h *Handler) HandleUpdateFooter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FooterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	saved, err := h.service.UpdateFooter(ctx, req.ToModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func officialIDFromPath(r *http.Request) (id.OfficialID, error) {
	officialID, err := id.ParseOfficialID(chi.URLParam(r, "officialID"))
	if err != nil {
		return id.OfficialID{}, dErrors.New(dErrors.CodeInvalidInput, "official id must be a valid UUID")
	}
	return officialID, nil
}
