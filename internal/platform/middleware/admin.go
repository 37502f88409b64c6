package middleware

import (
	"log/slog"
	"net/http"

	"balangay/internal/platform/secrets"
	"balangay/pkg/requestcontext"
)

// RequireAdminToken gates the admin surface behind the shared X-Admin-Token
// header, verified against a bcrypt hash so config never holds the plaintext.
// The acting admin's display name, when sent in X-Admin-Actor, is recorded in
// context for audit events.
func RequireAdminToken(expectedTokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			if token == "" || secrets.Verify(token, expectedTokenHash) != nil {
				logger.WarnContext(r.Context(), "admin token mismatch",
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			actor := r.Header.Get("X-Admin-Actor")
			if actor == "" {
				actor = "admin"
			}
			ctx := requestcontext.WithAdminActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
