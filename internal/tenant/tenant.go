package tenant

import (
	"log/slog"

	"daybound/internal/tenant/handler"
	"daybound/internal/tenant/service"
)

// Service exposes tenant configuration orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the tenant service.
type Handler = handler.Handler

// NewService constructs the tenant service with required dependencies.
func NewService(tenants service.TenantStore, opts ...service.Option) *Service {
	return service.New(tenants, opts...)
}

// NewHandler constructs an HTTP handler for admin-facing tenant routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
