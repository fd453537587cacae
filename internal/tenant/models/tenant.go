package models

import (
	"time"

	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
)

// Tenant is the aggregate root for a clinic organization.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - Timezone is an IANA identifier the platform's timezone database
//     recognizes at write time
//   - Status is either active or inactive; transitions active ↔ inactive only
//   - CreatedAt is immutable after construction
//
// The timezone is the tenant's operational setting: every date-range
// filter for this tenant's clinical records is interpreted in this zone.
// It is stored as the identifier string, never as a numeric offset, so
// DST rule changes flow in through the timezone database rather than
// stale stored offsets.
type Tenant struct {
	ID        id.TenantID  `json:"id"`
	Name      string       `json:"name"`
	Timezone  string       `json:"timezone"`
	Status    TenantStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// CanDeactivate checks if the tenant can transition to inactive status.
func (t *Tenant) CanDeactivate() error {
	if !t.Status.CanTransitionTo(TenantStatusInactive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already inactive")
	}
	return nil
}

// ApplyDeactivation transitions the tenant to inactive status. Call
// CanDeactivate first to validate the transition.
func (t *Tenant) ApplyDeactivation(now time.Time) {
	t.Status = TenantStatusInactive
	t.UpdatedAt = now
}

// CanReactivate checks if the tenant can transition to active status.
func (t *Tenant) CanReactivate() error {
	if !t.Status.CanTransitionTo(TenantStatusActive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already active")
	}
	return nil
}

// ApplyReactivation transitions the tenant to active status. Call
// CanReactivate first to validate the transition.
func (t *Tenant) ApplyReactivation(now time.Time) {
	t.Status = TenantStatusActive
	t.UpdatedAt = now
}

// ApplyTimezone updates the tenant's operational timezone. Call
// ValidateTimezone first; the model stores whatever it is given.
func (t *Tenant) ApplyTimezone(tz string, now time.Time) {
	t.Timezone = tz
	t.UpdatedAt = now
}

// NewTenant constructs a Tenant, validating invariants.
func NewTenant(tenantID id.TenantID, name, tz string, now time.Time) (*Tenant, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name must be 128 characters or less")
	}
	if err := ValidateTimezone(tz); err != nil {
		return nil, err
	}
	return &Tenant{
		ID:        tenantID,
		Name:      name,
		Timezone:  tz,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
