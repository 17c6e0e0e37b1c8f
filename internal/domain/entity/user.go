package entity

import "time"

// Usuario cuenta de acceso. Password guarda siempre el hash, nunca el texto plano.
// ResetToken y ResetTokenExpiry están ambos presentes o ambos ausentes.
type Usuario struct {
	ID               int64
	Username         string
	Password         string
	Activo           bool
	Roles            Roles
	ResetToken       *string
	ResetTokenExpiry *time.Time
}

// SetResetToken asigna un token de restablecimiento, reemplazando cualquier token previo.
func (u *Usuario) SetResetToken(token string, expiry time.Time) {
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
}

// ClearResetToken consume el token: limpia ambos campos.
func (u *Usuario) ClearResetToken() {
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
}

// ResetTokenExpired informa si el token venció en now. El instante exacto de expiración sigue siendo válido.
func (u *Usuario) ResetTokenExpired(now time.Time) bool {
	if u.ResetTokenExpiry == nil {
		return true
	}
	return now.After(*u.ResetTokenExpiry)
}

// Scopes devuelve los ámbitos de autorización (ROLE_<rol>) del usuario.
func (u *Usuario) Scopes() []string {
	return u.Roles.Scopes()
}
