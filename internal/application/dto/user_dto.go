package dto

import "time"

// RegisterRequest entrada para registro. Sin roles se asigna USER.
type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Roles    []string `json:"roles"`
}

// UsuarioResponse salida de un usuario (sin password ni token).
type UsuarioResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Activo   bool     `json:"activo"`
	Roles    []string `json:"roles"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y usuario autenticado.
type LoginResponse struct {
	Token  string          `json:"token"`
	Scopes []string        `json:"scopes"`
	User   UsuarioResponse `json:"usuario"`
}

// ForgotPasswordRequest solicitud de token de restablecimiento.
type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required"`
}

// ForgotPasswordResponse token emitido. No hay transporte de correo: se entrega al solicitante.
type ForgotPasswordResponse struct {
	Token    string    `json:"token"`
	ExpiraEn time.Time `json:"expiraEn"`
	ResetURL string    `json:"resetUrl"`
}

// ResetPasswordRequest token recibido y nueva contraseña confirmada.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Confirm  string `json:"confirm" validate:"required"`
}

func (r *ResetPasswordRequest) checkFields(errs map[string]string) {
	if r.Confirm != "" && r.Password != r.Confirm {
		errs["confirm"] = "las contraseñas no coinciden"
	}
}

// RolesRequest asignación de roles por un administrador.
type RolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}
