package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/auth"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UsuarioUC  *usecase.UsuarioUseCase
	EmpleadoUC *usecase.EmpleadoUseCase
	ProyectoUC *usecase.ProyectoUseCase
	Pages      PageConfig
	Log        *logger.Logger
}

// Router registra los middlewares globales, la API JSON y las páginas.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use(SessionMiddleware(deps.AuthUC, deps.Pages.CookieName))
	app.Use(RequestLogger(log))
	app.Use(AccessControl())

	app.Use("/static", StaticHandler())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC()})
	})

	api := app.Group("/api")

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UsuarioUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", authHandler.Me)

	// Empleados
	empleadoHandler := NewEmpleadoHandler(deps.EmpleadoUC, log)
	empleados := api.Group("/empleados")
	empleados.Get("/", empleadoHandler.List)
	empleados.Post("/", empleadoHandler.Create)
	empleados.Get("/buscar", empleadoHandler.Search)
	empleados.Get("/email/:email/existe", empleadoHandler.EmailExists)
	empleados.Get("/cargo/:cargo", empleadoHandler.ByCargo)
	empleados.Get("/:id", empleadoHandler.GetByID)
	empleados.Put("/:id", empleadoHandler.Update)
	empleados.Delete("/:id", empleadoHandler.Delete)
	empleados.Patch("/:id/salario", empleadoHandler.UpdateSalario)

	// Proyectos y tareas
	proyectoHandler := NewProyectoHandler(deps.ProyectoUC, log)
	proyectos := api.Group("/proyectos")
	proyectos.Get("/", proyectoHandler.List)
	proyectos.Post("/", proyectoHandler.Create)
	proyectos.Get("/buscar", proyectoHandler.Search)
	proyectos.Get("/estadisticas", proyectoHandler.Estadisticas)
	proyectos.Get("/empleado/:empleadoId", proyectoHandler.ByEmpleado)
	proyectos.Get("/:id/reporte.pdf", proyectoHandler.Report)
	proyectos.Get("/:id", proyectoHandler.GetByID)
	proyectos.Put("/:id", proyectoHandler.Update)
	proyectos.Delete("/:id", proyectoHandler.Delete)
	proyectos.Patch("/:id/estado", proyectoHandler.CambiarEstado)
	proyectos.Post("/:id/tareas", proyectoHandler.AddTask)
	proyectos.Get("/:id/tareas", proyectoHandler.ListTareas)
	proyectos.Patch("/:id/tareas/:tareaId/completar", proyectoHandler.CompletarTarea)
	proyectos.Patch("/:id/tareas/:tareaId/toggle", proyectoHandler.ToggleTarea)
	proyectos.Delete("/:id/tareas/:tareaId", proyectoHandler.EliminarTarea)

	// Administración (ROLE_ADMIN vía AccessControl)
	adminHandler := NewAdminHandler(deps.UsuarioUC, log)
	adminAPI := api.Group("/admin/usuarios")
	adminAPI.Get("/", adminHandler.ListUsuarios)
	adminAPI.Patch("/:id/roles", adminHandler.AssignRoles)
	adminAPI.Post("/:id/toggle-estado", adminHandler.ToggleEstado)
	adminAPI.Delete("/:id", adminHandler.DeleteUsuario)

	// Debug (ROLE_ADMIN)
	debugHandler := NewDebugHandler(deps.ProyectoUC, log)
	debug := app.Group("/debug")
	debug.Get("/ping", debugHandler.Ping)
	debug.Get("/proyectos/count", debugHandler.CountProyectos)
	debug.Get("/proyectos/:id", debugHandler.GetProyecto)
	debug.Delete("/proyectos/:id", debugHandler.DeleteProyecto)

	// Páginas
	pages := NewPageHandler(deps.Pages, deps.AuthUC, deps.UsuarioUC, deps.EmpleadoUC, deps.ProyectoUC, log)
	app.Get(LoginPath, pages.LoginForm)
	app.Post(LoginPath, pages.Login)
	app.Post("/logout", pages.Logout)
	app.Get("/registro", pages.RegistroForm)
	app.Post("/registro", pages.Registro)
	app.Get("/olvidaste-contrasena", pages.OlvidasteForm)
	app.Post("/olvidaste-contrasena", pages.Olvidaste)
	app.Get("/reset-password", pages.ResetForm)
	app.Post("/reset-password", pages.Reset)
	app.Get(AccessDeniedPath, pages.AccesoDenegado)
	app.Get("/", pages.Home)

	app.Get("/empleados", pages.Empleados)
	app.Post("/empleados", pages.CrearEmpleado)
	app.Post("/empleados/:id/eliminar", pages.EliminarEmpleado)

	app.Get("/proyectos", pages.Proyectos)
	app.Post("/proyectos", pages.CrearProyecto)
	app.Get("/proyectos/:id", pages.DetalleProyecto)
	app.Post("/proyectos/:id/eliminar", pages.EliminarProyecto)
	app.Post("/proyectos/:id/estado", pages.CambiarEstado)
	app.Post("/proyectos/:id/tareas", pages.AgregarTarea)
	app.Post("/proyectos/:id/tareas/:ref/toggle", pages.ToggleTarea)
	app.Post("/proyectos/:id/tareas/:ref/eliminar", pages.EliminarTarea)

	app.Get("/admin", pages.Admin)
	app.Get("/admin/usuarios", pages.AdminUsuarios)
	app.Post("/admin/usuarios/:id/toggle-estado", pages.ToggleUsuario)
	app.Post("/admin/usuarios/:id/eliminar", pages.EliminarUsuario)
}
