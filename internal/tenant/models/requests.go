package models

import (
	"strings"

	dErrors "daybound/pkg/domain-errors"
)

// CreateTenantRequest is the admin payload for onboarding a clinic.
type CreateTenantRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// Normalize trims surrounding whitespace from user-entered fields.
func (r *CreateTenantRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Timezone = strings.TrimSpace(r.Timezone)
}

func (r *CreateTenantRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return ValidateTimezone(r.Timezone)
}

// UpdateTimezoneRequest changes a tenant's operational timezone.
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone"`
}

func (r *UpdateTimezoneRequest) Normalize() {
	r.Timezone = strings.TrimSpace(r.Timezone)
}

func (r *UpdateTimezoneRequest) Validate() error {
	return ValidateTimezone(r.Timezone)
}

// CreateAPIKeyRequest mints a new integration key for a tenant.
type CreateAPIKeyRequest struct {
	Label string `json:"label"`
}

func (r *CreateAPIKeyRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
}

func (r *CreateAPIKeyRequest) Validate() error {
	if r.Label == "" {
		return dErrors.New(dErrors.CodeValidation, "label is required")
	}
	if len(r.Label) > 64 {
		return dErrors.New(dErrors.CodeValidation, "label must be 64 characters or less")
	}
	return nil
}
