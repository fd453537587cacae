package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"daybound/internal/audit"
	"daybound/internal/platform/middleware"
	"daybound/internal/tenant/metrics"
	"daybound/internal/tenant/models"
	"daybound/internal/tenant/secrets"
	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
	"daybound/pkg/platform/sentinel"
	"daybound/pkg/requestcontext"
)

type TenantStore interface {
	CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	FindByName(ctx context.Context, name string) (*models.Tenant, error)
	Execute(ctx context.Context, tenantID id.TenantID, validate func(*models.Tenant) error, apply func(*models.Tenant)) (*models.Tenant, error)
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	APIKeysByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.APIKey, error)
}

// TimezoneInvalidator evicts a tenant's cached timezone after a
// configuration change so filter resolution sees it promptly.
type TimezoneInvalidator interface {
	Invalidate(ctx context.Context, tenantID id.TenantID)
}

type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event)
}

// Service orchestrates tenant configuration and API key management.
type Service struct {
	tenants        TenantStore
	invalidator    TimezoneInvalidator
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTimezoneInvalidator(inv TimezoneInvalidator) Option {
	return func(s *Service) {
		s.invalidator = inv
	}
}

// New constructs a Service.
func New(tenants TenantStore, opts ...Option) *Service {
	s := &Service{tenants: tenants}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateTenant(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Use constructor which validates invariants
	t, err := models.NewTenant(id.NewTenantID(), req.Name, req.Timezone, requestcontext.Now(ctx))
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.tenants.CreateIfNameAvailable(ctx, t); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "tenant name must be unique")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tenant")
	}

	s.logAudit(ctx, audit.Event{
		TenantID: t.ID.String(),
		Action:   audit.ActionTenantCreated,
		Resource: "tenant/" + t.ID.String(),
		Detail:   t.Timezone,
	})
	if s.metrics != nil {
		s.metrics.IncrementTenantsCreated()
	}
	return t, nil
}

func (s *Service) GetTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant")
	}
	return t, nil
}

// UpdateTimezone changes the tenant's operational timezone and evicts
// the cached value so subsequent date-range resolutions use it.
func (s *Service) UpdateTimezone(ctx context.Context, tenantID id.TenantID, req *models.UpdateTimezoneRequest) (*models.Tenant, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	t, err := s.tenants.Execute(ctx, tenantID,
		func(t *models.Tenant) error {
			if !t.IsActive() {
				return dErrors.New(dErrors.CodeInvariantViolation, "tenant is inactive")
			}
			return nil
		},
		func(t *models.Tenant) {
			t.ApplyTimezone(req.Timezone, now)
		},
	)
	if err != nil {
		return nil, s.translateExecuteErr(err, "failed to update timezone")
	}

	s.invalidate(ctx, tenantID)
	s.logAudit(ctx, audit.Event{
		TenantID: tenantID.String(),
		Action:   audit.ActionTimezoneChanged,
		Resource: "tenant/" + tenantID.String(),
		Detail:   req.Timezone,
	})
	if s.metrics != nil {
		s.metrics.IncrementTimezoneUpdates()
	}
	return t, nil
}

func (s *Service) DeactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	now := requestcontext.Now(ctx)
	t, err := s.tenants.Execute(ctx, tenantID,
		func(t *models.Tenant) error { return t.CanDeactivate() },
		func(t *models.Tenant) { t.ApplyDeactivation(now) },
	)
	if err != nil {
		return nil, s.translateExecuteErr(err, "failed to deactivate tenant")
	}

	s.invalidate(ctx, tenantID)
	s.logAudit(ctx, audit.Event{
		TenantID: tenantID.String(),
		Action:   audit.ActionTenantDeactivated,
		Resource: "tenant/" + tenantID.String(),
	})
	return t, nil
}

func (s *Service) ReactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	now := requestcontext.Now(ctx)
	t, err := s.tenants.Execute(ctx, tenantID,
		func(t *models.Tenant) error { return t.CanReactivate() },
		func(t *models.Tenant) { t.ApplyReactivation(now) },
	)
	if err != nil {
		return nil, s.translateExecuteErr(err, "failed to reactivate tenant")
	}

	s.invalidate(ctx, tenantID)
	s.logAudit(ctx, audit.Event{
		TenantID: tenantID.String(),
		Action:   audit.ActionTenantReactivated,
		Resource: "tenant/" + tenantID.String(),
	})
	return t, nil
}

// CreateAPIKey mints an integration credential for a tenant. Returns
// the key record and the cleartext secret, which is only available at
// creation time.
func (s *Service) CreateAPIKey(ctx context.Context, tenantID id.TenantID, req *models.CreateAPIKeyRequest) (*models.APIKey, string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	secret, err := secrets.Generate()
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate api key")
	}
	hash, err := secrets.Hash(secret)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash api key")
	}

	key := &models.APIKey{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Label:      req.Label,
		SecretHash: hash,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.tenants.CreateAPIKey(ctx, key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "", dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create api key")
	}

	s.logAudit(ctx, audit.Event{
		TenantID: tenantID.String(),
		Action:   audit.ActionAPIKeyCreated,
		Resource: "tenant/" + tenantID.String() + "/api-keys/" + key.ID.String(),
		Detail:   key.Label,
	})
	return key, secret, nil
}

func (s *Service) ListAPIKeys(ctx context.Context, tenantID id.TenantID) ([]*models.APIKey, error) {
	keys, err := s.tenants.APIKeysByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list api keys")
	}
	return keys, nil
}

func (s *Service) translateExecuteErr(err error, internalMsg string) error {
	var de *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
		return dErrors.New(dErrors.CodeConflict, dErrors.MessageOf(err))
	case errors.As(err, &de):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}

func (s *Service) invalidate(ctx context.Context, tenantID id.TenantID) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, tenantID)
	}
}

func (s *Service) logAudit(ctx context.Context, e audit.Event) {
	attributes := []any{
		"event", e.Action,
		"tenant_id", e.TenantID,
		"log_type", "audit",
	}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, e.Action, attributes...)
	}
	if s.auditPublisher != nil {
		s.auditPublisher.Emit(ctx, e)
	}
}
