// Package handler exposes the admin review endpoints and the resident-facing
// status lookup.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"balangay/internal/review/models"
	"balangay/internal/review/service"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/platform/httputil"
	"balangay/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/review-mocks.go -package=mocks Service

// Service defines the review operations the handler depends on.
type Service interface {
	Approve(ctx context.Context, residentID id.ResidentID) (*service.Outcome, error)
	Reject(ctx context.Context, residentID id.ResidentID, reason string) (*service.Outcome, error)
	RequestUpdate(ctx context.Context, residentID id.ResidentID, reason string) (*service.Outcome, error)
	AcceptUpdate(ctx context.Context, residentID id.ResidentID) (*service.Outcome, error)
	DeclineUpdate(ctx context.Context, residentID id.ResidentID, reason string) (*service.Outcome, error)
	Get(ctx context.Context, residentID id.ResidentID) (*models.ProfileStatus, error)
}

// Handler wires review endpoints to the review service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a review handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the admin review actions. The router passed in must
// already enforce the admin token.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/residents/{residentID}/approve", h.HandleApprove)
	r.Post("/residents/{residentID}/reject", h.HandleReject)
	r.Post("/residents/{residentID}/request-update", h.HandleRequestUpdate)
	r.Post("/residents/{residentID}/accept-update", h.HandleAcceptUpdate)
	r.Post("/residents/{residentID}/decline-update", h.HandleDeclineUpdate)
	r.Get("/residents/{residentID}/status", h.HandleGetStatus)
}

// RegisterResident mounts the authenticated resident's own status lookup.
func (h *Handler) RegisterResident(r chi.Router) {
	r.Get("/profile/status", h.HandleOwnStatus)
}

// HandleApprove handles POST /admin/residents/{residentID}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.actionWithoutReason(w, r, "approve", h.service.Approve)
}

// HandleReject handles POST /admin/residents/{residentID}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.actionWithReason(w, r, "reject", h.service.Reject)
}

// HandleRequestUpdate handles POST /admin/residents/{residentID}/request-update.
func (h *Handler) HandleRequestUpdate(w http.ResponseWriter, r *http.Request) {
	h.actionWithReason(w, r, "request update", h.service.RequestUpdate)
}

// HandleAcceptUpdate handles POST /admin/residents/{residentID}/accept-update.
func (h *Handler) HandleAcceptUpdate(w http.ResponseWriter, r *http.Request) {
	h.actionWithoutReason(w, r, "accept update", h.service.AcceptUpdate)
}

// HandleDeclineUpdate handles POST /admin/residents/{residentID}/decline-update.
func (h *Handler) HandleDeclineUpdate(w http.ResponseWriter, r *http.Request) {
	h.actionWithReason(w, r, "decline update", h.service.DeclineUpdate)
}

// HandleGetStatus handles GET /admin/residents/{residentID}/status.
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID, err := residentIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	status, err := h.service.Get(ctx, residentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatus(status))
}

// HandleOwnStatus handles GET /profile/status for the authenticated resident.
func (h *Handler) HandleOwnStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID := requestcontext.ResidentID(ctx)
	if residentID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	status, err := h.service.Get(ctx, residentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatus(status))
}

func (h *Handler) actionWithoutReason(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	call func(context.Context, id.ResidentID) (*service.Outcome, error),
) {
	ctx := r.Context()

	residentID, err := residentIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := call(ctx, residentID)
	if err != nil {
		h.logAndWrite(w, ctx, action, residentID, err)
		return
	}
	h.writeOutcome(w, ctx, action, residentID, outcome)
}

func (h *Handler) actionWithReason(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	call func(context.Context, id.ResidentID, string) (*service.Outcome, error),
) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	residentID, err := residentIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ReasonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := call(ctx, residentID, req.Reason)
	if err != nil {
		h.logAndWrite(w, ctx, action, residentID, err)
		return
	}
	h.writeOutcome(w, ctx, action, residentID, outcome)
}

func (h *Handler) writeOutcome(w http.ResponseWriter, ctx context.Context, action string, residentID id.ResidentID, outcome *service.Outcome) {
	h.logger.InfoContext(ctx, "review action applied",
		"request_id", requestcontext.RequestID(ctx),
		"action", action,
		"resident_id", residentID.String(),
		"status", outcome.Status.Status.String(),
		"notification_warning", outcome.Warning != "",
	)
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}

func (h *Handler) logAndWrite(w http.ResponseWriter, ctx context.Context, action string, residentID id.ResidentID, err error) {
	h.logger.WarnContext(ctx, "review action failed",
		"request_id", requestcontext.RequestID(ctx),
		"action", action,
		"resident_id", residentID.String(),
		"error", err,
	)
	httputil.WriteError(w, err)
}

func residentIDFromPath(r *http.Request) (id.ResidentID, error) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		return id.ResidentID{}, dErrors.New(dErrors.CodeInvalidInput, "resident id must be a valid UUID")
	}
	return residentID, nil
}
