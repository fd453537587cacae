package domain

import (
	"testing"

	"github.com/google/uuid"
)

// FuzzParseTenantID checks that parsing never panics and that accepted
// inputs survive a String round trip.
func FuzzParseTenantID(f *testing.F) {
	f.Add(uuid.New().String())
	f.Add("")
	f.Add("not-a-uuid")
	f.Add("00000000-0000-0000-0000-000000000000")

	f.Fuzz(func(t *testing.T, s string) {
		parsed, err := ParseTenantID(s)
		if err != nil {
			return
		}
		if _, err := ParseTenantID(parsed.String()); err != nil {
			t.Fatalf("canonical form %q failed to re-parse: %v", parsed.String(), err)
		}
	})
}
