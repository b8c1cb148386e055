package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Identidad-api/pkg/password"
)

func TestPassword_HashYVerify(t *testing.T) {
	hash, err := password.Hash("super-secreta-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "super-secreta-123", hash, "el hash nunca debe ser el texto plano")

	assert.True(t, password.Verify("super-secreta-123", hash))
	assert.False(t, password.Verify("otra-contraseña", hash))
}

func TestPassword_HashesDistintosPorSalt(t *testing.T) {
	h1, err := password.Hash("misma-contraseña")
	require.NoError(t, err)
	h2, err := password.Hash("misma-contraseña")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "dos hashes de la misma contraseña deben diferir por el salt")
	assert.True(t, password.Verify("misma-contraseña", h1))
	assert.True(t, password.Verify("misma-contraseña", h2))
}

func TestPassword_VerifyHashInvalido(t *testing.T) {
	assert.False(t, password.Verify("lo-que-sea", "no-es-un-hash-bcrypt"))
}
