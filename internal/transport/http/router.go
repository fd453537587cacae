// Package httptransport composes the service's HTTP surface: the
// session-guarded filter API, the admin tenant API, and the
// operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	filterhandler "daybound/internal/filter/handler"
	"daybound/internal/platform/metrics"
	"daybound/internal/platform/middleware"
	tenanthandler "daybound/internal/tenant/handler"
	"daybound/pkg/platform/httputil"
	"daybound/pkg/platform/middleware/metadata"
	"daybound/pkg/platform/middleware/requesttime"
)

// HealthCheck probes one backing dependency for the readiness endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies carries everything the router needs; main builds it once.
type Dependencies struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Sessions       middleware.SessionValidator
	AdminToken     string
	TenantHandler  *tenanthandler.Handler
	FilterHandler  *filterhandler.Handler
	RequestTimeout time.Duration
	HealthChecks   []HealthCheck
}

// NewRouter wires middleware and mounts all endpoint groups.
func NewRouter(deps Dependencies) http.Handler {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", healthHandler(deps.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Clinic-facing API, session required.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireSession(deps.Sessions, deps.Logger))
		deps.FilterHandler.Register(r)
	})

	// Operator API, admin token required.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAdminToken(deps.AdminToken, deps.Logger))
		deps.TenantHandler.Register(r)
	})

	return r
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		detail := make(map[string]string, len(checks)+1)
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				detail[c.Name] = err.Error()
				continue
			}
			detail[c.Name] = "ok"
		}
		detail["status"] = "ok"
		if status != http.StatusOK {
			detail["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, detail)
	}
}
