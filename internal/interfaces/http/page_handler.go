package http

import (
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Empresa-api/internal/application/auth"
	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// PageConfig parámetros de la cookie de sesión de las páginas.
type PageConfig struct {
	CookieName string
	CookieTTL  time.Duration
	Secure     bool
}

// PageHandler páginas renderizadas en servidor sobre los mismos casos de uso que la API.
type PageHandler struct {
	log       *logger.Logger
	cfg       PageConfig
	auth      *auth.AuthUseCase
	usuarios  *usecase.UsuarioUseCase
	empleados *usecase.EmpleadoUseCase
	proyectos *usecase.ProyectoUseCase
}

// NewPageHandler construye el handler de páginas.
func NewPageHandler(cfg PageConfig, authUC *auth.AuthUseCase, usuarios *usecase.UsuarioUseCase,
	empleados *usecase.EmpleadoUseCase, proyectos *usecase.ProyectoUseCase, log *logger.Logger) *PageHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{log: log, cfg: cfg, auth: authUC, usuarios: usuarios, empleados: empleados, proyectos: proyectos}
}

// flashMessages mensajes de ?msg= tras una redirección.
var flashMessages = map[string]string{
	"logout":            "Sesión cerrada correctamente.",
	"registrado":        "Registro exitoso. Ya puede iniciar sesión.",
	"password":          "Contraseña actualizada. Inicie sesión con la nueva contraseña.",
	"empleado-creado":   "Empleado creado.",
	"empleado-borrado":  "Empleado eliminado.",
	"proyecto-creado":   "Proyecto creado.",
	"proyecto-borrado":  "Proyecto eliminado.",
	"tarea-agregada":    "Tarea agregada.",
	"tarea-actualizada": "Tarea actualizada.",
	"tarea-eliminada":   "Tarea eliminada.",
	"estado":            "Estado del proyecto actualizado.",
	"usuario-estado":    "Estado del usuario actualizado.",
	"usuario-borrado":   "Usuario eliminado.",
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Usuario"] = GetUsername(c)
	data["EsAdmin"] = IsAdmin(c)
	if msg, ok := flashMessages[c.Query("msg")]; ok {
		data["Msg"] = msg
	}
	if _, ok := data["Error"]; !ok && c.Query("error") != "" {
		data["Error"] = c.Query("error")
	}
	return c.Status(status).Render(name, data, PageLayout)
}

// redirectMsg redirige con un mensaje flash.
func redirectMsg(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path+"?msg="+url.QueryEscape(msg), fiber.StatusSeeOther)
}

// redirectError redirige mostrando el error en la página de destino.
func (h *PageHandler) redirectError(c *fiber.Ctx, path string, err error) error {
	status, _ := httpError(err)
	if status == fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("error inesperado en página")
		return c.Redirect(path+"?error="+url.QueryEscape("error interno del servidor"), fiber.StatusSeeOther)
	}
	return c.Redirect(path+"?error="+url.QueryEscape(errorText(err)), fiber.StatusSeeOther)
}

// pageError página de error para GET.
func (h *PageHandler) pageError(c *fiber.Ctx, err error) error {
	status, _ := httpError(err)
	msg := errorText(err)
	if status == fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("error inesperado en página")
		msg = "error interno del servidor"
	}
	return h.render(c, status, "error", fiber.Map{"Titulo": "Error", "Estado": status, "Error": msg})
}

func errorText(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		parts := make([]string, 0, len(verr.Fields))
		for _, f := range sortedKeys(verr.Fields) {
			parts = append(parts, f+" "+verr.Fields[f])
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// safeNext acepta solo rutas locales como destino tras el login.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// ---- autenticación ----

func (h *PageHandler) LoginForm(c *fiber.Ctx) error {
	if GetSession(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return h.render(c, fiber.StatusOK, "login", fiber.Map{"Titulo": "Iniciar sesión", "Next": c.Query("next")})
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	in := dto.LoginRequest{Username: c.FormValue("username"), Password: c.FormValue("password")}
	next := c.FormValue("next")
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		msg := "Usuario o contraseña incorrectos."
		status := fiber.StatusUnauthorized
		switch {
		case errors.Is(err, domain.ErrAccountDisabled):
			msg, status = "La cuenta está deshabilitada.", fiber.StatusForbidden
		case errors.Is(err, domain.ErrInvalidInput):
			msg, status = "Ingrese usuario y contraseña.", fiber.StatusBadRequest
		case !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrUnauthorized):
			h.log.Error().Err(err).Msg("error en login")
			msg, status = "error interno del servidor", fiber.StatusInternalServerError
		}
		return h.render(c, status, "login", fiber.Map{"Titulo": "Iniciar sesión", "Next": next, "Username": in.Username, "Error": msg})
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.CookieTTL),
		HTTPOnly: true,
		Secure:   h.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	h.log.Info().Str("usuario", out.User.Username).Msg("inicio de sesión")
	return c.Redirect(safeNext(next), fiber.StatusSeeOther)
}

func (h *PageHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return redirectMsg(c, LoginPath, "logout")
}

func (h *PageHandler) RegistroForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "registro", fiber.Map{"Titulo": "Registro"})
}

// Registro crea una cuenta USER. Los roles no se aceptan desde el formulario público.
func (h *PageHandler) Registro(c *fiber.Ctx) error {
	in := dto.RegisterRequest{Username: c.FormValue("username"), Password: c.FormValue("password")}
	if c.FormValue("confirm") != in.Password {
		return h.render(c, fiber.StatusBadRequest, "registro", fiber.Map{"Titulo": "Registro", "Username": in.Username, "Error": "Las contraseñas no coinciden."})
	}
	if _, err := h.usuarios.Register(c.UserContext(), in); err != nil {
		status, _ := httpError(err)
		if status == fiber.StatusInternalServerError {
			return h.pageError(c, err)
		}
		return h.render(c, status, "registro", fiber.Map{"Titulo": "Registro", "Username": in.Username, "Error": errorText(err)})
	}
	return redirectMsg(c, LoginPath, "registrado")
}

func (h *PageHandler) OlvidasteForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "olvidaste", fiber.Map{"Titulo": "Recuperar contraseña"})
}

// Olvidaste emite el token y muestra el enlace de restablecimiento (no hay envío de correo).
func (h *PageHandler) Olvidaste(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	if username == "" {
		return h.render(c, fiber.StatusBadRequest, "olvidaste", fiber.Map{"Titulo": "Recuperar contraseña", "Error": "Ingrese su nombre de usuario."})
	}
	out, err := h.usuarios.GenerateResetToken(c.UserContext(), username)
	if err != nil {
		if domain.IsNotFound(err) {
			return h.render(c, fiber.StatusNotFound, "olvidaste", fiber.Map{"Titulo": "Recuperar contraseña", "Error": "No existe un usuario con ese nombre."})
		}
		return h.pageError(c, err)
	}
	return h.render(c, fiber.StatusOK, "olvidaste", fiber.Map{"Titulo": "Recuperar contraseña", "Reset": out})
}

func (h *PageHandler) ResetForm(c *fiber.Ctx) error {
	token := c.Query("token")
	data := fiber.Map{"Titulo": "Restablecer contraseña", "Token": token}
	if err := h.usuarios.CheckResetToken(c.UserContext(), token); err != nil {
		status, _ := httpError(err)
		if status == fiber.StatusInternalServerError {
			return h.pageError(c, err)
		}
		data["Error"] = resetTokenText(err)
		data["TokenInvalido"] = true
		return h.render(c, status, "reset", data)
	}
	return h.render(c, fiber.StatusOK, "reset", data)
}

func (h *PageHandler) Reset(c *fiber.Ctx) error {
	in := dto.ResetPasswordRequest{
		Token:    c.FormValue("token"),
		Password: c.FormValue("password"),
		Confirm:  c.FormValue("confirm"),
	}
	if err := h.usuarios.ResetPassword(c.UserContext(), in); err != nil {
		status, _ := httpError(err)
		if status == fiber.StatusInternalServerError {
			return h.pageError(c, err)
		}
		data := fiber.Map{"Titulo": "Restablecer contraseña", "Token": in.Token, "Error": resetTokenText(err)}
		if !errors.As(err, new(*domain.ValidationError)) {
			data["TokenInvalido"] = true
		}
		return h.render(c, status, "reset", data)
	}
	return redirectMsg(c, LoginPath, "password")
}

func resetTokenText(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "El enlace de restablecimiento ha expirado. Solicite uno nuevo."
	case errors.Is(err, domain.ErrInvalidToken):
		return "El enlace de restablecimiento no es válido."
	default:
		return errorText(err)
	}
}

func (h *PageHandler) AccesoDenegado(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusForbidden, "acceso-denegado", fiber.Map{"Titulo": "Acceso denegado"})
}

// ---- inicio ----

func (h *PageHandler) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	nEmp, err := h.empleados.Count(ctx)
	if err != nil {
		return h.pageError(c, err)
	}
	stats, err := h.proyectos.Estadisticas(ctx)
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, fiber.StatusOK, "home", fiber.Map{"Titulo": "Inicio", "TotalEmpleados": nEmp, "Stats": stats})
}

// ---- empleados ----

func (h *PageHandler) Empleados(c *fiber.Ctx) error {
	termino := strings.TrimSpace(c.Query("termino"))
	var (
		list []*dto.EmpleadoResponse
		err  error
	)
	if termino != "" {
		list, err = h.empleados.Search(c.UserContext(), termino)
	} else {
		list, err = h.empleados.List(c.UserContext())
	}
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, fiber.StatusOK, "empleados", fiber.Map{"Titulo": "Empleados", "Empleados": list, "Termino": termino})
}

func (h *PageHandler) CrearEmpleado(c *fiber.Ctx) error {
	in := dto.EmpleadoRequest{
		Nombre:   c.FormValue("nombre"),
		Apellido: c.FormValue("apellido"),
		Cargo:    c.FormValue("cargo"),
		Email:    c.FormValue("email"),
	}
	if raw := strings.TrimSpace(c.FormValue("salario")); raw != "" {
		s, err := decimal.NewFromString(raw)
		if err != nil {
			return h.redirectError(c, "/empleados", domain.NewValidationError("salario", "no es un número válido"))
		}
		in.Salario = &s
	}
	if _, err := h.empleados.Create(c.UserContext(), in); err != nil {
		return h.redirectError(c, "/empleados", err)
	}
	return redirectMsg(c, "/empleados", "empleado-creado")
}

func (h *PageHandler) EliminarEmpleado(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.redirectError(c, "/empleados", domain.ErrEmpleadoNotFound)
	}
	if _, err := h.empleados.Delete(c.UserContext(), id); err != nil {
		return h.redirectError(c, "/empleados", err)
	}
	return redirectMsg(c, "/empleados", "empleado-borrado")
}

// ---- proyectos ----

func (h *PageHandler) Proyectos(c *fiber.Ctx) error {
	estado := c.Query("estado")
	list, err := h.proyectos.List(c.UserContext(), dto.ProyectoFilter{Estado: estado})
	if err != nil {
		return h.pageError(c, err)
	}
	empleados, err := h.empleados.List(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, fiber.StatusOK, "proyectos", fiber.Map{
		"Titulo":    "Proyectos",
		"Proyectos": list,
		"Empleados": empleados,
		"Estado":    estado,
		"Estados":   []string{"Pendiente", "En progreso", "Completado", "Cancelado"},
	})
}

func (h *PageHandler) CrearProyecto(c *fiber.Ctx) error {
	in := dto.ProyectoRequest{
		Nombre:      c.FormValue("nombre"),
		Descripcion: c.FormValue("descripcion"),
	}
	if id, ok := formID(c.FormValue("empleadoId")); ok {
		in.EmpleadoID = &id
	}
	if raw := strings.TrimSpace(c.FormValue("fechaEstimadaFin")); raw != "" {
		if f, err := dto.ParseFecha(raw); err == nil {
			in.FechaEstimadaFin = &f.Time
		}
	}
	out, err := h.proyectos.Create(c.UserContext(), in)
	if err != nil {
		return h.redirectError(c, "/proyectos", err)
	}
	return redirectMsg(c, "/proyectos/"+out.ID, "proyecto-creado")
}

func (h *PageHandler) DetalleProyecto(c *fiber.Ctx) error {
	p, err := h.proyectos.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.pageError(c, err)
	}
	var responsable *dto.EmpleadoResponse
	if p.EmpleadoID != nil {
		// una referencia colgante no impide mostrar el proyecto
		if e, err := h.empleados.GetByID(c.UserContext(), *p.EmpleadoID); err == nil {
			responsable = e
		}
	}
	return h.render(c, fiber.StatusOK, "proyecto", fiber.Map{
		"Titulo":      p.Nombre,
		"Proyecto":    p,
		"Responsable": responsable,
		"Estados":     []string{"Pendiente", "En progreso", "Completado", "Cancelado"},
	})
}

func (h *PageHandler) AgregarTarea(c *fiber.Ctx) error {
	id := c.Params("id")
	back := "/proyectos/" + id
	in := dto.TareaRequest{Titulo: c.FormValue("titulo"), Descripcion: c.FormValue("descripcion")}
	if f, err := dto.ParseFecha(c.FormValue("fechaVencimiento")); err == nil {
		in.FechaVencimiento = f
	}
	out, err := h.proyectos.AddTask(c.UserContext(), id, in)
	if err != nil {
		return h.redirectError(c, back, err)
	}
	if out == nil {
		return h.pageError(c, domain.ErrProyectoNotFound)
	}
	return redirectMsg(c, back, "tarea-agregada")
}

// ToggleTarea recibe la posición de la tarea en la lista mostrada.
func (h *PageHandler) ToggleTarea(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.proyectos.ToggleTarea(c.UserContext(), id, c.Params("ref")); err != nil {
		return h.redirectError(c, "/proyectos/"+id, err)
	}
	return redirectMsg(c, "/proyectos/"+id, "tarea-actualizada")
}

func (h *PageHandler) EliminarTarea(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.proyectos.EliminarTarea(c.UserContext(), id, c.Params("ref")); err != nil {
		return h.redirectError(c, "/proyectos/"+id, err)
	}
	return redirectMsg(c, "/proyectos/"+id, "tarea-eliminada")
}

func (h *PageHandler) CambiarEstado(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.proyectos.CambiarEstado(c.UserContext(), id, dto.EstadoRequest{Estado: c.FormValue("estado")}); err != nil {
		return h.redirectError(c, "/proyectos/"+id, err)
	}
	return redirectMsg(c, "/proyectos/"+id, "estado")
}

func (h *PageHandler) EliminarProyecto(c *fiber.Ctx) error {
	if err := h.proyectos.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.redirectError(c, "/proyectos", err)
	}
	return redirectMsg(c, "/proyectos", "proyecto-borrado")
}

// ---- administración ----

func (h *PageHandler) Admin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	usuarios, err := h.usuarios.List(ctx)
	if err != nil {
		return h.pageError(c, err)
	}
	nEmp, err := h.empleados.Count(ctx)
	if err != nil {
		return h.pageError(c, err)
	}
	nProy, err := h.proyectos.Count(ctx)
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, fiber.StatusOK, "admin", fiber.Map{
		"Titulo":         "Administración",
		"TotalUsuarios":  len(usuarios),
		"TotalEmpleados": nEmp,
		"TotalProyectos": nProy,
	})
}

func (h *PageHandler) AdminUsuarios(c *fiber.Ctx) error {
	usuarios, err := h.usuarios.List(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, fiber.StatusOK, "admin-usuarios", fiber.Map{
		"Titulo":    "Usuarios",
		"Usuarios":  usuarios,
		"AdminName": usecase.AdminUsername,
	})
}

func (h *PageHandler) ToggleUsuario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.redirectError(c, "/admin/usuarios", domain.ErrUserNotFound)
	}
	if _, err := h.usuarios.ToggleActivo(c.UserContext(), id); err != nil {
		return h.redirectError(c, "/admin/usuarios", err)
	}
	return redirectMsg(c, "/admin/usuarios", "usuario-estado")
}

func (h *PageHandler) EliminarUsuario(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return h.redirectError(c, "/admin/usuarios", domain.ErrUserNotFound)
	}
	if err := h.usuarios.Delete(c.UserContext(), id); err != nil {
		return h.redirectError(c, "/admin/usuarios", err)
	}
	return redirectMsg(c, "/admin/usuarios", "usuario-borrado")
}
