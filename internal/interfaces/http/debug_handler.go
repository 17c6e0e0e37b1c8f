package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// DebugHandler diagnóstico del almacén de proyectos (solo ROLE_ADMIN).
type DebugHandler struct {
	responder
	proyectos *usecase.ProyectoUseCase
}

// NewDebugHandler construye el handler.
func NewDebugHandler(proyectos *usecase.ProyectoUseCase, log *logger.Logger) *DebugHandler {
	return &DebugHandler{responder: newResponder(log), proyectos: proyectos}
}

// Ping godoc
// @Summary  Ping de diagnóstico
// @Tags     debug
// @Security Bearer
// @Produce  json
// @Success  200  {object}  dto.APIResponse
// @Router   /debug/ping [get]
func (h *DebugHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(dto.OK(fiber.Map{
		"pong":    true,
		"usuario": GetUsername(c),
		"hora":    time.Now().UTC(),
	}, "pong"))
}

// CountProyectos godoc
// @Summary  Número de proyectos almacenados
// @Tags     debug
// @Security Bearer
// @Produce  json
// @Success  200  {object}  dto.APIResponse
// @Router   /debug/proyectos/count [get]
func (h *DebugHandler) CountProyectos(c *fiber.Ctx) error {
	n, err := h.proyectos.Count(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"count": n}, "Conteo de proyectos"))
}

// GetProyecto godoc
// @Summary  Documento de un proyecto
// @Tags     debug
// @Security Bearer
// @Produce  json
// @Param    id   path  string  true  "ID del proyecto"
// @Success  200  {object}  dto.APIResponse{data=dto.ProyectoResponse}
// @Failure  404  {object}  dto.APIResponse
// @Router   /debug/proyectos/{id} [get]
func (h *DebugHandler) GetProyecto(c *fiber.Ctx) error {
	out, err := h.proyectos.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Proyecto encontrado"))
}

// DeleteProyecto godoc
// @Summary  Eliminar un proyecto
// @Tags     debug
// @Security Bearer
// @Produce  json
// @Param    id   path  string  true  "ID del proyecto"
// @Success  200  {object}  dto.APIResponse
// @Failure  404  {object}  dto.APIResponse
// @Router   /debug/proyectos/{id} [delete]
func (h *DebugHandler) DeleteProyecto(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.proyectos.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	h.log.Warn().Str("proyecto_id", id).Str("usuario", GetUsername(c)).Msg("proyecto eliminado desde debug")
	return c.JSON(dto.OK(fiber.Map{"id": id}, "Proyecto eliminado"))
}
