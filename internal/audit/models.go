package audit

import "time"

// Event is emitted from domain logic to capture key actions. Clinical
// record queries and tenant configuration changes are both
// audit-relevant in a healthcare product. Keep it transport-agnostic so
// sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// Audit actions.
const (
	ActionDateRangeResolved = "filter.date_range_resolved"
	ActionTenantCreated     = "tenant.created"
	ActionTimezoneChanged   = "tenant.timezone_changed"
	ActionTenantDeactivated = "tenant.deactivated"
	ActionTenantReactivated = "tenant.reactivated"
	ActionAPIKeyCreated     = "tenant.api_key_created"
)
