package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// responder traduce errores de dominio a respuestas JSON. Los errores no clasificados se
// registran y se devuelven con un mensaje genérico.
type responder struct {
	log *logger.Logger
}

func newResponder(log *logger.Logger) responder {
	if log == nil {
		log = logger.Nop()
	}
	return responder{log: log}
}

// httpError estado y código de respuesta para err.
func httpError(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION"
	case domain.IsNotFound(err):
		return fiber.StatusNotFound, "NOT_FOUND"
	case domain.IsConflict(err):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrExpiredToken):
		return fiber.StatusBadRequest, "EXPIRED_TOKEN"
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusBadRequest, "INVALID_TOKEN"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrAccountDisabled):
		return fiber.StatusForbidden, "ACCOUNT_DISABLED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func (r responder) fail(c *fiber.Ctx, err error) error {
	status, code := httpError(err)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(status).JSON(dto.FailValidation(verr.Fields))
	}
	if status == fiber.StatusInternalServerError {
		r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error inesperado")
		return c.Status(status).JSON(dto.FailCode(code, "error interno del servidor"))
	}
	return c.Status(status).JSON(dto.FailCode(code, err.Error()))
}

func (r responder) badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.FailCode(code, msg))
}

func (r responder) invalidBody(c *fiber.Ctx) error {
	return r.badRequest(c, "INVALID_BODY", "cuerpo inválido")
}
