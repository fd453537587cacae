package models

import (
	"time"

	dErrors "daybound/pkg/domain-errors"
)

// ValidateTimezone checks that tz is a non-empty identifier the
// platform's timezone database recognizes. Validation happens at write
// time so the filter path never discovers a bad identifier mid-query.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return dErrors.New(dErrors.CodeValidation, "timezone is required")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return dErrors.Newf(dErrors.CodeValidation, "unknown timezone %q", tz)
	}
	return nil
}
