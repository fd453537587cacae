// Package store provides tenant persistence: an in-memory implementation
// for tests and dependency-free development, and a PostgreSQL
// implementation for production.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"daybound/internal/tenant/models"
	id "daybound/pkg/domain"
	"daybound/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store. Name uniqueness is
// case-insensitive, matching the Postgres unique index on lower(name).
type InMemory struct {
	mu        sync.RWMutex
	tenants   map[id.TenantID]*models.Tenant
	nameIndex map[string]id.TenantID
	apiKeys   map[uuid.UUID]*models.APIKey
}

func NewInMemory() *InMemory {
	return &InMemory{
		tenants:   make(map[id.TenantID]*models.Tenant),
		nameIndex: make(map[string]id.TenantID),
		apiKeys:   make(map[uuid.UUID]*models.APIKey),
	}
}

// CreateIfNameAvailable inserts the tenant unless the name is taken.
func (s *InMemory) CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(tenant.Name)
	if _, exists := s.nameIndex[key]; exists {
		return sentinel.ErrConflict
	}
	cp := *tenant
	s.tenants[tenant.ID] = &cp
	s.nameIndex[key] = tenant.ID
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *tenant
	return &cp, nil
}

func (s *InMemory) FindByName(ctx context.Context, name string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID, ok := s.nameIndex[strings.ToLower(name)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.tenants[tenantID]
	return &cp, nil
}

// Execute atomically validates and mutates a tenant under the store lock,
// so status/timezone updates cannot interleave.
func (s *InMemory) Execute(ctx context.Context, tenantID id.TenantID, validate func(*models.Tenant) error, apply func(*models.Tenant)) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(tenant); err != nil {
		return nil, err
	}
	apply(tenant)
	cp := *tenant
	return &cp, nil
}

// TimezoneByID returns the timezone setting of an active tenant. Inactive
// tenants yield ErrInvalidState so suspended clinics cannot keep querying.
func (s *InMemory) TimezoneByID(ctx context.Context, tenantID id.TenantID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if !tenant.IsActive() {
		return "", sentinel.ErrInvalidState
	}
	return tenant.Timezone, nil
}

// CreateAPIKey appends an integration key record.
func (s *InMemory) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[key.TenantID]; !exists {
		return sentinel.ErrNotFound
	}
	cp := *key
	s.apiKeys[key.ID] = &cp
	return nil
}

// APIKeysByTenant lists a tenant's integration keys.
func (s *InMemory) APIKeysByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []*models.APIKey
	for _, key := range s.apiKeys {
		if key.TenantID == tenantID {
			cp := *key
			keys = append(keys, &cp)
		}
	}
	return keys, nil
}
