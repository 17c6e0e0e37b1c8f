package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Empresa-api/internal/application/ports"
)

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// DefaultCost costo usado por el servidor.
const DefaultCost = bcrypt.DefaultCost

// BcryptHasher implementa ports.PasswordHasher con bcrypt (sal aleatoria embebida en el hash).
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. cost fuera de rango -> bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash devuelve el hash bcrypt de plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify informa si plain corresponde al hash.
func (h *BcryptHasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
