package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Empresa-api/internal/infrastructure/security"
)

func TestBcryptHasher_HashYVerify(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secreto123")
	require.NoError(t, err)

	assert.NotEqual(t, "secreto123", hash)
	assert.True(t, h.Verify("secreto123", hash))
	assert.False(t, h.Verify("otro", hash))
}

func TestBcryptHasher_SalAleatoria(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("igual")
	require.NoError(t, err)
	b, err := h.Hash("igual")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "dos hashes del mismo texto deben diferir")
	assert.True(t, h.Verify("igual", a))
	assert.True(t, h.Verify("igual", b))
}

func TestBcryptHasher_HashInvalido(t *testing.T) {
	h := security.NewBcryptHasher(0)
	assert.False(t, h.Verify("x", "no-es-bcrypt"))
}
