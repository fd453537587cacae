package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"daybound/internal/tenant/models"
	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
	"daybound/pkg/platform/httputil"
	"daybound/pkg/requestcontext"
)

// Service defines the tenant operations the admin API exposes.
type Service interface {
	CreateTenant(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error)
	GetTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	UpdateTimezone(ctx context.Context, tenantID id.TenantID, req *models.UpdateTimezoneRequest) (*models.Tenant, error)
	DeactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	ReactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	CreateAPIKey(ctx context.Context, tenantID id.TenantID, req *models.CreateAPIKeyRequest) (*models.APIKey, string, error)
	ListAPIKeys(ctx context.Context, tenantID id.TenantID) ([]*models.APIKey, error)
}

// Handler wires tenant administration endpoints to the tenant service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a tenant admin handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts tenant admin endpoints on the router. The caller is
// expected to guard the router with the admin token middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/tenants", h.HandleCreateTenant)
	r.Get("/admin/tenants/{id}", h.HandleGetTenant)
	r.Put("/admin/tenants/{id}/timezone", h.HandleUpdateTimezone)
	r.Post("/admin/tenants/{id}/deactivate", h.HandleDeactivate)
	r.Post("/admin/tenants/{id}/reactivate", h.HandleReactivate)
	r.Post("/admin/tenants/{id}/api-keys", h.HandleCreateAPIKey)
	r.Get("/admin/tenants/{id}/api-keys", h.HandleListAPIKeys)
}

// HandleCreateTenant handles POST /admin/tenants requests.
func (h *Handler) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateTenantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant, err := h.service.CreateTenant(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "tenant creation failed",
			"request_id", requestID,
			"name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant created",
		"request_id", requestID,
		"tenant_id", tenant.ID,
		"timezone", tenant.Timezone,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromTenant(tenant))
}

// HandleGetTenant handles GET /admin/tenants/{id} requests.
func (h *Handler) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, ok := h.tenantIDFromPath(w, r)
	if !ok {
		return
	}

	tenant, err := h.service.GetTenant(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTenant(tenant))
}

// HandleUpdateTimezone handles PUT /admin/tenants/{id}/timezone requests.
func (h *Handler) HandleUpdateTimezone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	tenantID, ok := h.tenantIDFromPath(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateTimezoneRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant, err := h.service.UpdateTimezone(ctx, tenantID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "timezone update failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"timezone", req.Timezone,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant timezone updated",
		"request_id", requestID,
		"tenant_id", tenantID,
		"timezone", tenant.Timezone,
	)
	httputil.WriteJSON(w, http.StatusOK, FromTenant(tenant))
}

// HandleDeactivate handles POST /admin/tenants/{id}/deactivate requests.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "tenant deactivated", h.service.DeactivateTenant)
}

// HandleReactivate handles POST /admin/tenants/{id}/reactivate requests.
func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "tenant reactivated", h.service.ReactivateTenant)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, msg string, op func(context.Context, id.TenantID) (*models.Tenant, error)) {
	ctx := r.Context()
	tenantID, ok := h.tenantIDFromPath(w, r)
	if !ok {
		return
	}

	tenant, err := op(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", tenantID,
	)
	httputil.WriteJSON(w, http.StatusOK, FromTenant(tenant))
}

// HandleCreateAPIKey handles POST /admin/tenants/{id}/api-keys requests.
func (h *Handler) HandleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	tenantID, ok := h.tenantIDFromPath(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.CreateAPIKeyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	key, secret, err := h.service.CreateAPIKey(ctx, tenantID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "api key created",
		"request_id", requestID,
		"tenant_id", tenantID,
		"key_id", key.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromAPIKeyWithSecret(key, secret))
}

// HandleListAPIKeys handles GET /admin/tenants/{id}/api-keys requests.
func (h *Handler) HandleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, ok := h.tenantIDFromPath(w, r)
	if !ok {
		return
	}

	keys, err := h.service.ListAPIKeys(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAPIKeys(keys))
}

func (h *Handler) tenantIDFromPath(w http.ResponseWriter, r *http.Request) (id.TenantID, bool) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return id.TenantID{}, false
	}
	return tenantID, true
}
