package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/auth"
	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// AuthHandler maneja registro, login y restablecimiento de contraseña.
type AuthHandler struct {
	responder
	auth     *auth.AuthUseCase
	usuarios *usecase.UsuarioUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(authUC *auth.AuthUseCase, usuarios *usecase.UsuarioUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{responder: newResponder(log), auth: authUC, usuarios: usuarios}
}

// SessionResponse identidad de la sesión actual.
type SessionResponse struct {
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Scopes   []string `json:"scopes"`
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Sin roles se asigna USER. La cuenta queda activa.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, roles"
// @Success      201   {object}  dto.APIResponse{data=dto.UsuarioResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.usuarios.Register(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Usuario registrado exitosamente"))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      401   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		// no se distingue usuario inexistente de contraseña incorrecta
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.FailCode("UNAUTHORIZED", "credenciales inválidas"))
		}
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Inicio de sesión exitoso"))
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Emite un token de un solo uso. No hay envío de correo: el token se devuelve en la respuesta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "username"
// @Success      200   {object}  dto.APIResponse{data=dto.ForgotPasswordResponse}
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	if err := dto.Validate(&in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.usuarios.GenerateResetToken(c.UserContext(), in.Username)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Token de restablecimiento generado"))
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, password, confirm"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	if err := h.usuarios.ResetPassword(c.UserContext(), in); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(nil, "Contraseña actualizada exitosamente"))
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=SessionResponse}
// @Failure      401  {object}  dto.APIResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return unauthenticated(c)
	}
	return c.JSON(dto.OK(SessionResponse{
		UserID:   s.UserID,
		Username: s.Username,
		Roles:    s.Roles,
		Scopes:   GetScopes(c),
	}, "Sesión activa"))
}
