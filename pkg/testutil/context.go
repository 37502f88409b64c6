package testutil

import (
	"net/http"
	"time"

	id "balangay/pkg/domain"
	"balangay/pkg/requestcontext"
)

// WithResident injects a resident ID into the request context, simulating
// what the auth middleware does for an authenticated resident.
func WithResident(req *http.Request, residentID id.ResidentID) *http.Request {
	ctx := requestcontext.WithResidentID(req.Context(), residentID)
	return req.WithContext(ctx)
}

// WithAdminActor injects the acting admin's name, simulating the admin token
// middleware.
func WithAdminActor(req *http.Request, actor string) *http.Request {
	ctx := requestcontext.WithAdminActor(req.Context(), actor)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock so stored timestamps are
// deterministic in tests.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), at)
	return req.WithContext(ctx)
}
