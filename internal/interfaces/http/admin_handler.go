package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// AdminHandler administración de cuentas de usuario (ROLE_ADMIN).
type AdminHandler struct {
	responder
	uc *usecase.UsuarioUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.UsuarioUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{responder: newResponder(log), uc: uc}
}

// ListUsuarios godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.UsuarioResponse}
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/admin/usuarios [get]
func (h *AdminHandler) ListUsuarios(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Usuarios obtenidos"))
}

// AssignRoles godoc
// @Summary      Asignar roles
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del usuario"
// @Param        body  body  dto.RolesRequest  true  "Roles (ADMIN, USER)"
// @Success      200   {object}  dto.APIResponse{data=dto.UsuarioResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/admin/usuarios/{id}/roles [patch]
func (h *AdminHandler) AssignRoles(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.RolesRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.AssignRoles(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Roles actualizados"))
}

// ToggleEstado godoc
// @Summary      Habilitar o deshabilitar usuario
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.APIResponse{data=dto.UsuarioResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/admin/usuarios/{id}/toggle-estado [post]
func (h *AdminHandler) ToggleEstado(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.ToggleActivo(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Estado actualizado"))
}

// DeleteUsuario godoc
// @Summary      Eliminar usuario
// @Description  La cuenta "admin" no se puede eliminar.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/admin/usuarios/{id} [delete]
func (h *AdminHandler) DeleteUsuario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(nil, "Usuario eliminado"))
}
