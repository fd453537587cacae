package models

import (
	"time"

	"github.com/google/uuid"

	id "daybound/pkg/domain"
)

// APIKey is a per-tenant integration credential for server-to-server
// callers of the filter API. Only the bcrypt hash is stored; the
// cleartext exists once, in the creation response.
type APIKey struct {
	ID         uuid.UUID   `json:"id"`
	TenantID   id.TenantID `json:"tenant_id"`
	Label      string      `json:"label"`
	SecretHash string      `json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
}
