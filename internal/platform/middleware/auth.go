package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
	"daybound/pkg/platform/httputil"
	"daybound/pkg/requestcontext"
)

// SessionClaims represents the claims we expect from the session validator.
type SessionClaims struct {
	TenantID id.TenantID
	UserID   id.UserID
}

// SessionValidator defines the interface for validating session tokens.
type SessionValidator interface {
	ValidateToken(token string) (*SessionClaims, error)
}

// RequireSession authenticates Bearer session tokens and injects the
// tenant and user IDs into the request context. Handlers downstream read
// the tenant from context only; the tenant is never taken from request
// input, so one clinic cannot query under another clinic's timezone.
func RequireSession(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid session token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "session token rejected",
					"request_id", GetRequestID(r.Context()),
					"error", err.Error(),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid session token"))
				return
			}

			ctx := requestcontext.WithTenantID(r.Context(), claims.TenantID)
			ctx = requestcontext.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminToken protects the platform-console routes with a shared
// admin token. An empty configured token disables the admin surface
// entirely rather than leaving it open.
func RequireAdminToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Token")
			if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				logger.WarnContext(r.Context(), "admin token rejected",
					"request_id", GetRequestID(r.Context()),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
