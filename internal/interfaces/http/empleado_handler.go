package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// EmpleadoHandler maneja las peticiones HTTP para Empleado (protegido).
type EmpleadoHandler struct {
	responder
	uc *usecase.EmpleadoUseCase
}

// NewEmpleadoHandler construye el handler.
func NewEmpleadoHandler(uc *usecase.EmpleadoUseCase, log *logger.Logger) *EmpleadoHandler {
	return &EmpleadoHandler{responder: newResponder(log), uc: uc}
}

// List godoc
// @Summary      Listar empleados
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.EmpleadoResponse}
// @Router       /api/empleados [get]
func (h *EmpleadoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Empleados obtenidos"))
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.APIResponse{data=dto.EmpleadoResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/empleados/{id} [get]
func (h *EmpleadoHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Empleado encontrado"))
}

// Create godoc
// @Summary      Crear empleado
// @Tags         empleados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmpleadoRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.APIResponse{data=dto.EmpleadoResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/empleados [post]
func (h *EmpleadoHandler) Create(c *fiber.Ctx) error {
	var in dto.EmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Empleado creado exitosamente"))
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         empleados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del empleado"
// @Param        body  body  dto.EmpleadoRequest  true  "Datos del empleado"
// @Success      200   {object}  dto.APIResponse{data=dto.EmpleadoResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/empleados/{id} [put]
func (h *EmpleadoHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.EmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Empleado actualizado exitosamente"))
}

// Delete godoc
// @Summary      Eliminar empleado
// @Description  Devuelve el empleado eliminado. Los proyectos que lo referencian no se modifican.
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.APIResponse{data=dto.EmpleadoResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/empleados/{id} [delete]
func (h *EmpleadoHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Empleado eliminado exitosamente"))
}

// Search godoc
// @Summary      Buscar empleados por nombre o cargo
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Param        termino  query  string  true  "Texto a buscar (sin distinguir mayúsculas)"
// @Success      200  {object}  dto.APIResponse{data=[]dto.EmpleadoResponse}
// @Router       /api/empleados/buscar [get]
func (h *EmpleadoHandler) Search(c *fiber.Ctx) error {
	termino := c.Query("termino")
	if termino == "" {
		return h.badRequest(c, "VALIDATION", "termino es requerido")
	}
	out, err := h.uc.Search(c.UserContext(), termino)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Búsqueda completada"))
}

// ByCargo godoc
// @Summary      Empleados por cargo
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Param        cargo  path  string  true  "Cargo (coincidencia parcial)"
// @Success      200  {object}  dto.APIResponse{data=[]dto.EmpleadoResponse}
// @Router       /api/empleados/cargo/{cargo} [get]
func (h *EmpleadoHandler) ByCargo(c *fiber.Ctx) error {
	out, err := h.uc.SearchByCargo(c.UserContext(), c.Params("cargo"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Empleados obtenidos"))
}

// EmailExists godoc
// @Summary      Verificar si un email está registrado
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Param        email  path  string  true  "Email"
// @Success      200  {object}  dto.APIResponse{data=dto.EmailExisteResponse}
// @Router       /api/empleados/email/{email}/existe [get]
func (h *EmpleadoHandler) EmailExists(c *fiber.Ctx) error {
	email := c.Params("email")
	exists, err := h.uc.ExistsByEmail(c.UserContext(), email)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(dto.EmailExisteResponse{Email: email, Existe: exists}, "Verificación completada"))
}

// UpdateSalario godoc
// @Summary      Actualizar salario
// @Tags         empleados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del empleado"
// @Param        body  body  dto.SalarioRequest  true  "Nuevo salario (>= 0)"
// @Success      200   {object}  dto.APIResponse{data=dto.EmpleadoResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/empleados/{id}/salario [patch]
func (h *EmpleadoHandler) UpdateSalario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.SalarioRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.UpdateSalario(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Salario actualizado exitosamente"))
}
