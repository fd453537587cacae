package handler

import (
	"time"

	"github.com/google/uuid"

	"daybound/internal/tenant/models"
	id "daybound/pkg/domain"
)

// TenantResponse is the admin API representation of a tenant.
type TenantResponse struct {
	TenantID  id.TenantID         `json:"tenant_id"`
	Name      string              `json:"name"`
	Timezone  string              `json:"timezone"`
	Status    models.TenantStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func FromTenant(t *models.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:  t.ID,
		Name:      t.Name,
		Timezone:  t.Timezone,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// APIKeyResponse is the admin API representation of an integration key.
// The secret hash never leaves the service.
type APIKeyResponse struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedAPIKeyResponse carries the cleartext secret exactly once, in
// the creation response.
type CreatedAPIKeyResponse struct {
	APIKeyResponse
	Secret string `json:"secret"`
}

func FromAPIKey(k *models.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:        k.ID,
		Label:     k.Label,
		CreatedAt: k.CreatedAt,
	}
}

func FromAPIKeyWithSecret(k *models.APIKey, secret string) CreatedAPIKeyResponse {
	return CreatedAPIKeyResponse{
		APIKeyResponse: FromAPIKey(k),
		Secret:         secret,
	}
}

func FromAPIKeys(keys []*models.APIKey) []APIKeyResponse {
	out := make([]APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, FromAPIKey(k))
	}
	return out
}
