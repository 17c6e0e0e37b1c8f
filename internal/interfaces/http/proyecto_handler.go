package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// ProyectoHandler maneja las peticiones HTTP para Proyecto y sus tareas (protegido).
type ProyectoHandler struct {
	responder
	uc *usecase.ProyectoUseCase
}

// NewProyectoHandler construye el handler.
func NewProyectoHandler(uc *usecase.ProyectoUseCase, log *logger.Logger) *ProyectoHandler {
	return &ProyectoHandler{responder: newResponder(log), uc: uc}
}

// List godoc
// @Summary      Listar proyectos
// @Description  Filtros opcionales: estado (sin distinguir mayúsculas) y empleadoId (responsable o miembro del equipo).
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Param        estado      query  string  false  "Estado del proyecto"
// @Param        empleadoId  query  int     false  "ID de empleado"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProyectoResponse}
// @Router       /api/proyectos [get]
func (h *ProyectoHandler) List(c *fiber.Ctx) error {
	empleadoID, ok := queryID(c, "empleadoId")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "empleadoId inválido")
	}
	out, err := h.uc.List(c.UserContext(), dto.ProyectoFilter{Estado: c.Query("estado"), EmpleadoID: empleadoID})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Proyectos obtenidos"))
}

// GetByID godoc
// @Summary      Obtener proyecto por ID
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProyectoResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id} [get]
func (h *ProyectoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Proyecto encontrado"))
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         proyectos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProyectoRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.APIResponse{data=dto.ProyectoResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/proyectos [post]
func (h *ProyectoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProyectoRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Proyecto creado exitosamente"))
}

// Update godoc
// @Summary      Actualizar proyecto
// @Description  Conserva las tareas y la fecha de creación existentes.
// @Tags         proyectos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del proyecto"
// @Param        body  body  dto.ProyectoRequest  true  "Datos del proyecto"
// @Success      200   {object}  dto.APIResponse{data=dto.ProyectoResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/proyectos/{id} [put]
func (h *ProyectoHandler) Update(c *fiber.Ctx) error {
	var in dto.ProyectoRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Proyecto actualizado exitosamente"))
}

// Delete godoc
// @Summary      Eliminar proyecto
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id} [delete]
func (h *ProyectoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(nil, "Proyecto eliminado exitosamente"))
}

// Search godoc
// @Summary      Buscar proyectos por nombre
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Param        nombre  query  string  true  "Texto a buscar"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProyectoResponse}
// @Router       /api/proyectos/buscar [get]
func (h *ProyectoHandler) Search(c *fiber.Ctx) error {
	nombre := c.Query("nombre")
	if nombre == "" {
		return h.badRequest(c, "VALIDATION", "nombre es requerido")
	}
	out, err := h.uc.SearchByNombre(c.UserContext(), nombre)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Búsqueda completada"))
}

// ByEmpleado godoc
// @Summary      Proyectos de un empleado
// @Description  Une los proyectos donde es responsable y aquellos donde figura en el equipo, sin duplicados.
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Param        empleadoId  path  int  true  "ID del empleado"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProyectoResponse}
// @Router       /api/proyectos/empleado/{empleadoId} [get]
func (h *ProyectoHandler) ByEmpleado(c *fiber.Ctx) error {
	id, ok := paramID(c, "empleadoId")
	if !ok {
		return h.badRequest(c, "INVALID_ID", "empleadoId inválido")
	}
	out, err := h.uc.FindByEmpleado(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKList(out, len(out), "Proyectos obtenidos"))
}

// CambiarEstado godoc
// @Summary      Cambiar estado del proyecto
// @Tags         proyectos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del proyecto"
// @Param        body  body  dto.EstadoRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.APIResponse{data=dto.ProyectoResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/estado [patch]
func (h *ProyectoHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.EstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.CambiarEstado(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Estado actualizado"))
}

// AddTask godoc
// @Summary      Agregar tarea
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del proyecto"
// @Param        body  body  dto.TareaRequest  true  "Tarea"
// @Success      201   {object}  dto.APIResponse{data=dto.TareaMutationResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/tareas [post]
func (h *ProyectoHandler) AddTask(c *fiber.Ctx) error {
	var in dto.TareaRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.uc.AddTask(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return h.fail(c, domain.ErrProyectoNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Tarea agregada exitosamente"))
}

// ListTareas godoc
// @Summary      Tareas del proyecto
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.APIResponse{data=dto.TareasResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/tareas [get]
func (h *ProyectoHandler) ListTareas(c *fiber.Ctx) error {
	out, err := h.uc.ListTareas(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Tareas obtenidas"))
}

// CompletarTarea godoc
// @Summary      Completar tarea
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del proyecto"
// @Param        tareaId  path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.APIResponse{data=dto.TareaMutationResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/tareas/{tareaId}/completar [patch]
func (h *ProyectoHandler) CompletarTarea(c *fiber.Ctx) error {
	out, err := h.uc.CompletarTarea(c.UserContext(), c.Params("id"), c.Params("tareaId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Tarea completada"))
}

// ToggleTarea godoc
// @Summary      Alternar estado de la tarea
// @Description  tareaId es el id de la tarea o su posición (base 0).
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del proyecto"
// @Param        tareaId  path  string  true  "ID o posición de la tarea"
// @Success      200  {object}  dto.APIResponse{data=dto.TareaMutationResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/tareas/{tareaId}/toggle [patch]
func (h *ProyectoHandler) ToggleTarea(c *fiber.Ctx) error {
	out, err := h.uc.ToggleTarea(c.UserContext(), c.Params("id"), c.Params("tareaId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Tarea actualizada"))
}

// EliminarTarea godoc
// @Summary      Eliminar tarea
// @Description  tareaId es el id de la tarea o su posición (base 0).
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del proyecto"
// @Param        tareaId  path  string  true  "ID o posición de la tarea"
// @Success      200  {object}  dto.APIResponse{data=dto.TareaMutationResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/tareas/{tareaId} [delete]
func (h *ProyectoHandler) EliminarTarea(c *fiber.Ctx) error {
	out, err := h.uc.EliminarTarea(c.UserContext(), c.Params("id"), c.Params("tareaId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Tarea eliminada"))
}

// Estadisticas godoc
// @Summary      Estadísticas de proyectos
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.EstadisticasResponse}
// @Router       /api/proyectos/estadisticas [get]
func (h *ProyectoHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OK(out, "Estadísticas obtenidas"))
}

// Report godoc
// @Summary      Reporte PDF del proyecto
// @Tags         proyectos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/proyectos/{id}/reporte.pdf [get]
func (h *ProyectoHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.ReportPDF(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="proyecto-`+id+`.pdf"`)
	return c.Send(pdf)
}
