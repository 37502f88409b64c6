// Package handler exposes the resident profile submission endpoints and the
// admin resident listing.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"balangay/internal/profile/models"
	"balangay/internal/profile/service"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/platform/httputil"
	"balangay/pkg/requestcontext"
)

// Service defines the profile operations the handler depends on.
type Service interface {
	Submit(ctx context.Context, residentID id.ResidentID, profile *models.ResidentProfile) (*service.SubmitResult, error)
	GetOwn(ctx context.Context, residentID id.ResidentID) (*service.ResidentRecord, error)
	Get(ctx context.Context, residentID id.ResidentID) (*service.ResidentRecord, error)
	ListAll(ctx context.Context) ([]*service.ResidentRecord, error)
	Delete(ctx context.Context, residentID id.ResidentID) error
}

// Handler wires profile endpoints to the profile service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a profile handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterResident mounts the authenticated resident surface.
func (h *Handler) RegisterResident(r chi.Router) {
	r.Post("/profile", h.HandleSubmit)
	r.Get("/profile", h.HandleGetOwn)
}

// RegisterAdmin mounts the admin resident listing and deletion.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/residents", h.HandleList)
	r.Get("/residents/{residentID}", h.HandleGet)
	r.Delete("/residents/{residentID}", h.HandleDelete)
}

// HandleSubmit handles POST /profile: validate and upsert the caller's own
// household profile.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	residentID, ok := h.authenticatedResident(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Submit(ctx, residentID, req.ToModel())
	if err != nil {
		h.logger.WarnContext(ctx, "profile submission rejected",
			"request_id", requestID,
			"resident_id", residentID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile submitted",
		"request_id", requestID,
		"resident_id", residentID.String(),
		"status", result.Status.Status.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromSubmitResult(result))
}

// HandleGetOwn handles GET /profile for the authenticated resident.
func (h *Handler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID, ok := h.authenticatedResident(w, ctx)
	if !ok {
		return
	}

	record, err := h.service.GetOwn(ctx, residentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleList handles GET /admin/residents.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.ListAll(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]ResidentResponse, 0, len(records))
	for _, record := range records {
		out = append(out, FromRecord(record))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Residents: out})
}

// HandleGet handles GET /admin/residents/{residentID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID, err := residentIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Get(ctx, residentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleDelete handles DELETE /admin/residents/{residentID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID, err := residentIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, residentID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "resident deleted",
		"request_id", requestcontext.RequestID(ctx),
		"resident_id", residentID.String(),
		"actor", requestcontext.AdminActor(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) authenticatedResident(w http.ResponseWriter, ctx context.Context) (id.ResidentID, bool) {
	residentID := requestcontext.ResidentID(ctx)
	if residentID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.ResidentID{}, false
	}
	return residentID, true
}

func residentIDFromPath(r *http.Request) (id.ResidentID, error) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		return id.ResidentID{}, dErrors.New(dErrors.CodeInvalidInput, "resident id must be a valid UUID")
	}
	return residentID, nil
}
