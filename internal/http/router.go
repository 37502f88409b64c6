// Package httpapi composes the HTTP surface: public transparency routes,
// resident self-service routes behind JWT auth, and the admin review and
// roster management routes behind the shared admin token.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"balangay/internal/address"
	"balangay/internal/feed"
	"balangay/internal/platform/metrics"
	"balangay/internal/platform/middleware"
	profilehandler "balangay/internal/profile/handler"
	reviewhandler "balangay/internal/review/handler"
	"balangay/internal/storage"
	transparencyhandler "balangay/internal/transparency/handler"
)

const requestTimeout = 30 * time.Second

// Deps carries everything the router mounts. Optional fields may be nil and
// their routes are skipped.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	Profile      *profilehandler.Handler
	Review       *reviewhandler.Handler
	Transparency *transparencyhandler.Handler
	Storage      *storage.Handler
	Addresses    *address.Handler
	Stream       *feed.SSEHandler

	JWTValidator middleware.JWTValidator
	// AdminTokenHash is the bcrypt hash the admin gate verifies against.
	AdminTokenHash string

	// HealthChecks run on /healthz; any failure yields 503.
	HealthChecks map[string]func(context.Context) error
}

// NewRouter assembles the full middleware chain and mounts every route group.
// The SSE stream stays outside the timeout middleware because it holds the
// response open indefinitely.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Tracing)
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(deps.HealthChecks))

	// Public portal surface. No auth; read-only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		deps.Transparency.RegisterPublic(r)
		deps.Addresses.Register(r)
		deps.Storage.RegisterDownload(r)
	})

	// Resident self-service routes behind bearer auth.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		r.Use(middleware.Timeout(requestTimeout))

		// Uploads are multipart, so they stay off the JSON content-type gate.
		deps.Storage.RegisterUpload(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.ContentTypeJSON)
			deps.Profile.RegisterResident(r)
			deps.Review.RegisterResident(r)
		})
	})

	// Admin surface behind the shared token.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(deps.AdminTokenHash, deps.Logger))

		if deps.Stream != nil {
			r.Method(http.MethodGet, "/residents/stream", deps.Stream)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Use(middleware.ContentTypeJSON)
			deps.Profile.RegisterAdmin(r)
			deps.Review.RegisterAdmin(r)
			deps.Transparency.RegisterAdmin(r)
		})
	})

	return r
}

func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		for name, check := range checks {
			if err := check(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unhealthy","failed":"` + name + `"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
