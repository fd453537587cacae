package testutil

import (
	"net/http"
	"time"

	id "daybound/pkg/domain"
	"daybound/pkg/requestcontext"
)

// WithTenant adds a tenant ID to the request context, simulating what
// the session middleware does for authenticated requests.
func WithTenant(req *http.Request, tenantID id.TenantID) *http.Request {
	return req.WithContext(requestcontext.WithTenantID(req.Context(), tenantID))
}

// WithUser adds a user ID to the request context.
func WithUser(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithSession adds both tenant and user IDs to the request context.
// This is the typical state for an authenticated request.
func WithSession(req *http.Request, tenantID id.TenantID, userID id.UserID) *http.Request {
	ctx := requestcontext.WithTenantID(req.Context(), tenantID)
	ctx = requestcontext.WithUserID(ctx, userID)
	return req.WithContext(ctx)
}

// WithFrozenTime pins the request-scoped clock so time-dependent
// assertions stay deterministic.
func WithFrozenTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
