package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestNewKeyring_PrefersEnvironment(t *testing.T) {
	t.Setenv(EnvKey, "s3cret")

	kr := NewKeyring()
	key, err := kr.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)
	assert.Error(t, kr.SetKey("other"))
	assert.ErrorIs(t, kr.SetKey(""), ErrEmptyPassword)
}

func TestSystemKeyring_RoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "")

	kr := NewKeyring()
	require.True(t, kr.IsAvailable())

	_, err := kr.GetKey()
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	require.NoError(t, kr.SetKey("pass phrase"))
	key, err := kr.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "pass phrase", key)

	require.NoError(t, kr.DeleteKey())
	require.NoError(t, kr.DeleteKey())
	_, err = kr.GetKey()
	assert.Error(t, err)
}
