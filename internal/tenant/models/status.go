package models

// TenantStatus is the lifecycle state of a tenant.
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// CanTransitionTo reports whether the status transition is allowed.
// Only active ↔ inactive moves exist; a no-op transition is rejected so
// admins see "already inactive" instead of silent success.
func (s TenantStatus) CanTransitionTo(target TenantStatus) bool {
	switch s {
	case TenantStatusActive:
		return target == TenantStatusInactive
	case TenantStatusInactive:
		return target == TenantStatusActive
	default:
		return false
	}
}

// Valid reports whether the status is one of the known states.
func (s TenantStatus) Valid() bool {
	return s == TenantStatusActive || s == TenantStatusInactive
}
