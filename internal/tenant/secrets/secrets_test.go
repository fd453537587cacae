package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "daybound/pkg/domain-errors"
)

func TestGenerateHashVerify(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	other, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, key, other, "keys must be unique")

	hash, err := Hash(key)
	require.NoError(t, err)
	assert.NotEqual(t, key, hash)

	require.NoError(t, Verify(key, hash))

	err = Verify(other, hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashRejectsEmptyKey(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
