package storage

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/platform/httputil"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/requestcontext"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 10 << 20

// Handler exposes upload and signed-URL download endpoints.
type Handler struct {
	blobs  BlobStore
	signer *Signer
	logger *slog.Logger
}

// NewHandler constructs a storage handler.
func NewHandler(blobs BlobStore, signer *Signer, logger *slog.Logger) *Handler {
	return &Handler{blobs: blobs, signer: signer, logger: logger}
}

// RegisterUpload mounts the authenticated upload endpoint.
func (h *Handler) RegisterUpload(r chi.Router) {
	r.Post("/files/{namespace}", h.HandleUpload)
}

// RegisterDownload mounts the signed-URL download endpoint. The token is the
// only credential: the route itself is public.
func (h *Handler) RegisterDownload(r chi.Router) {
	r.Get("/files", h.HandleDownload)
}

// UploadResponse returns the opaque path the client links into its record.
// The upload must complete before any record references the path.
type UploadResponse struct {
	Path string `json:"path"`
}

// HandleUpload handles POST /files/{namespace}: store the multipart "file"
// part and return its opaque path.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	namespace := chi.URLParam(r, "namespace")
	if !KnownNamespace(namespace) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unknown upload namespace %q", namespace))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	path, err := h.blobs.Put(ctx, namespace, file)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "blob store failure"))
		return
	}

	h.logger.InfoContext(ctx, "file uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"namespace", namespace,
		"path", path,
	)
	httputil.WriteJSON(w, http.StatusCreated, UploadResponse{Path: path})
}

// HandleDownload handles GET /files?token=: verify the signed URL and stream
// the blob.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "signed URL token is required"))
		return
	}

	path, err := h.signer.Verify(token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	blob, err := h.blobs.Get(ctx, path)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "file not found"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "blob store failure"))
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(blob))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}
