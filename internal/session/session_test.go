package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
)

func TestIssueAndValidate(t *testing.T) {
	mgr := NewManager("test-signing-key")
	tenantID := id.NewTenantID()
	userID := id.NewUserID()

	token, err := mgr.Issue(tenantID, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, userID, claims.UserID)
}

func TestValidateRejections(t *testing.T) {
	mgr := NewManager("test-signing-key")

	t.Run("expired token", func(t *testing.T) {
		token, err := mgr.Issue(id.NewTenantID(), id.NewUserID(), -time.Minute)
		require.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewManager("a-different-key")
		token, err := other.Issue(id.NewTenantID(), id.NewUserID(), time.Hour)
		require.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := mgr.ValidateToken("not-a-jwt")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
