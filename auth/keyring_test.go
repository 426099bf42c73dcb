package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestAPIKey(t *testing.T) {
	keyring.MockInit()

	_, err := GetAPIKey()
	assert.ErrorIs(t, err, ErrNoAPIKey)

	require.NoError(t, SetAPIKey("secret"))
	key, err := GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "secret", key)

	require.NoError(t, SetAPIKey("rotated"))
	key, err = GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "rotated", key)

	require.NoError(t, DeleteAPIKey())
	_, err = GetAPIKey()
	assert.ErrorIs(t, err, ErrNoAPIKey)

	assert.NoError(t, DeleteAPIKey())
}

func TestSetAPIKeyEmpty(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, SetAPIKey(""))
}
