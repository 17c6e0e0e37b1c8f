package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// RequestLogger registra cada petición con su estado, latencia y usuario autenticado.
// Debe montarse después de SessionMiddleware para conocer el usuario.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		user := GetUsername(c)
		if user == "" {
			user = "anonymous"
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user", user).
			Msg("request")
		return err
	}
}
