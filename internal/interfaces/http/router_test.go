package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empresa-api/internal/application/auth"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/memory"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/security"
	apphttp "github.com/jhoicas/Empresa-api/internal/interfaces/http"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

type envelope struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Total   *int              `json:"total"`
}

type testEnv struct {
	t        *testing.T
	app      *fiber.App
	adminTok string
	userTok  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()
	hasher := security.NewBcryptHasher(4)
	users := memory.NewUsuarioRepository()
	empleados := memory.NewEmpleadoRepository()
	proyectos := memory.NewProyectoRepository()

	require.NoError(t, usecase.NewBootstrap(users, hasher, log).
		Run(context.Background(), usecase.DefaultAccounts("admin123", "user123")))

	authUC := auth.NewAuthUseCase(users, hasher, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	empleadoUC := usecase.NewEmpleadoUseCase(empleados)
	app := fiber.New(fiber.Config{Views: apphttp.NewViewEngine(), CaseSensitive: true})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UsuarioUC:  usecase.NewUsuarioUseCase(users, hasher, time.Hour),
		EmpleadoUC: empleadoUC,
		ProyectoUC: usecase.NewProyectoUseCase(proyectos, empleados, pdf.NewMarotoPDFGenerator("", "test")),
		Pages:      apphttp.PageConfig{CookieName: testCookieName, CookieTTL: time.Hour},
		Log:        log,
	})

	env := &testEnv{t: t, app: app}
	env.adminTok = env.login("admin", "admin123")
	env.userTok = env.login("user", "user123")
	return env
}

func (e *testEnv) login(username, password string) string {
	e.t.Helper()
	resp, body := e.call(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(e.t, http.StatusOK, resp.StatusCode, body.Message)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(e.t, json.Unmarshal(body.Data, &out))
	return out.Token
}

// call envía una petición JSON y decodifica el sobre de respuesta.
func (e *testEnv) call(method, path, token string, payload interface{}) (*http.Response, envelope) {
	e.t.Helper()
	var rd io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(e.t, err)
		rd = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(e.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

// form envía un formulario como lo hace el navegador.
func (e *testEnv) form(path string, values url.Values, cookie string) *http.Response {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func (e *testEnv) page(path, cookie string) (*http.Response, string) {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, string(b)
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación y restablecimiento de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthAPI_LoginCredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.call(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Code)

	resp, body = env.call(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "nadie", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "usuario inexistente no se distingue")
	assert.Equal(t, "credenciales inválidas", body.Message)
}

func TestAuthAPI_RegistroDuplicado(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.call(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "ana", "password": "secreto1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var u struct {
		Roles  []string `json:"roles"`
		Activo bool     `json:"activo"`
	}
	decode(t, body.Data, &u)
	assert.Equal(t, []string{"USER"}, u.Roles)
	assert.True(t, u.Activo)

	resp, body = env.call(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "ana", "password": "otro123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body.Code)
}

func TestAuthAPI_FlujoRestablecimiento(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.call(http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"username": "user"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fp struct {
		Token    string `json:"token"`
		ResetURL string `json:"resetUrl"`
	}
	decode(t, body.Data, &fp)
	require.NotEmpty(t, fp.Token)
	assert.Contains(t, fp.ResetURL, "/reset-password?token=")

	resp, body = env.call(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": fp.Token, "password": "nueva123", "confirm": "otra123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Errors, "confirm")

	resp, _ = env.call(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": fp.Token, "password": "nueva123", "confirm": "nueva123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.call(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": fp.Token, "password": "tercera1", "confirm": "tercera1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "el token es de un solo uso")
	assert.Equal(t, "INVALID_TOKEN", body.Code)

	assert.NotEmpty(t, env.login("user", "nueva123"))
	resp, _ = env.call(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "user", "password": "user123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthAPI_OlvidoUsuarioInexistente(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.call(http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"username": "nadie"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestAuthAPI_Me(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.call(http.MethodGet, "/api/auth/me", env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var s apphttp.SessionResponse
	decode(t, body.Data, &s)
	assert.Equal(t, "admin", s.Username)
	assert.ElementsMatch(t, []string{"ROLE_ADMIN", "ROLE_USER"}, s.Scopes)

	resp, _ = env.call(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpleadosAPI_CRUD(t *testing.T) {
	env := newTestEnv(t)
	tok := env.userTok

	resp, body := env.call(http.MethodPost, "/api/empleados", tok, map[string]interface{}{
		"nombre": "Ana", "apellido": "Pérez", "cargo": "Desarrolladora", "email": "ana@empresa.com", "salario": 3500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body.Message)
	var emp struct {
		ID      int64  `json:"id"`
		Salario string `json:"salario"`
	}
	decode(t, body.Data, &emp)
	assert.Equal(t, "3500", emp.Salario)

	resp, body = env.call(http.MethodPost, "/api/empleados", tok, map[string]interface{}{
		"nombre": "Otra", "apellido": "P", "cargo": "QA", "email": "ANA@empresa.com", "salario": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "email único sin distinguir mayúsculas")

	resp, body = env.call(http.MethodPost, "/api/empleados", tok, map[string]interface{}{"nombre": "Sin datos"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "salario")

	resp, body = env.call(http.MethodGet, "/api/empleados/buscar?termino=desarroll", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.Total)
	assert.Equal(t, 1, *body.Total)

	resp, body = env.call(http.MethodGet, "/api/empleados/email/ana@empresa.com/existe", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ex struct {
		Existe bool `json:"existe"`
	}
	decode(t, body.Data, &ex)
	assert.True(t, ex.Existe)

	resp, _ = env.call(http.MethodPatch, "/api/empleados/1/salario", tok, map[string]interface{}{"salario": -5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.call(http.MethodPatch, "/api/empleados/1/salario", tok, map[string]interface{}{"salario": "4000.50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, body.Data, &emp)
	assert.Equal(t, "4000.5", emp.Salario)

	resp, _ = env.call(http.MethodDelete, "/api/empleados/1", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = env.call(http.MethodGet, "/api/empleados/1", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)

	resp, body = env.call(http.MethodGet, "/api/empleados/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", body.Code)
}

func TestEmpleadosAPI_SinSesion(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.call(http.MethodGet, "/api/empleados", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyectos y tareas
// ──────────────────────────────────────────────────────────────────────────────

type proyectoOut struct {
	ID                   string `json:"id"`
	Estado               string `json:"estado"`
	PorcentajeCompletado int    `json:"porcentajeCompletado"`
	Tareas               []struct {
		ID         string `json:"id"`
		Completada bool   `json:"completada"`
	} `json:"tareas"`
}

func TestProyectosAPI_TareasYEstado(t *testing.T) {
	env := newTestEnv(t)
	tok := env.userTok

	resp, _ := env.call(http.MethodPost, "/api/empleados", tok, map[string]interface{}{
		"nombre": "Ana", "apellido": "P", "cargo": "Dev", "email": "ana@x.com", "salario": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.call(http.MethodPost, "/api/proyectos", tok, map[string]interface{}{"nombre": "P", "descripcion": "D", "empleadoId": 99})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "empleadoId debe existir")
	assert.Contains(t, body.Errors, "empleadoId")

	resp, body = env.call(http.MethodPost, "/api/proyectos", tok, map[string]interface{}{"nombre": "Portal", "descripcion": "Web", "empleadoId": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body.Message)
	var p proyectoOut
	decode(t, body.Data, &p)
	assert.Equal(t, "Pendiente", p.Estado)
	assert.Empty(t, p.Tareas)

	base := "/api/proyectos/" + p.ID
	resp, _ = env.call(http.MethodPost, base+"/tareas", tok, map[string]string{"titulo": "T1", "fechaVencimiento": "2026-10-20"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = env.call(http.MethodPost, base+"/tareas", tok, map[string]string{"titulo": "T2", "fechaVencimiento": "2026-10-21"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = env.call(http.MethodPost, base+"/tareas", tok, map[string]string{"titulo": "Sin fecha"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Errors, "fechaVencimiento")

	resp, body = env.call(http.MethodPost, "/api/proyectos/000000000000000000000000/tareas", tok, map[string]string{"titulo": "T", "fechaVencimiento": "2026-10-20"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// posición 0 como referencia heredada
	resp, body = env.call(http.MethodPatch, base+"/tareas/0/toggle", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mut struct {
		PorcentajeProgreso int `json:"porcentajeProgreso"`
	}
	decode(t, body.Data, &mut)
	assert.Equal(t, 50, mut.PorcentajeProgreso)

	resp, _ = env.call(http.MethodPatch, base+"/tareas/1/completar", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "completar solo acepta id")

	resp, body = env.call(http.MethodGet, base+"/tareas", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tareas struct {
		Total       int `json:"total"`
		Completadas int `json:"completadas"`
	}
	decode(t, body.Data, &tareas)
	assert.Equal(t, 2, tareas.Total)
	assert.Equal(t, 1, tareas.Completadas)

	resp, body = env.call(http.MethodPatch, base+"/estado", tok, map[string]string{"estado": "en progreso"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, body.Data, &p)
	assert.Equal(t, "En progreso", p.Estado)

	resp, _ = env.call(http.MethodPatch, base+"/estado", tok, map[string]string{"estado": "Archivado"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.call(http.MethodGet, "/api/proyectos/empleado/1", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.Total)
	assert.Equal(t, 1, *body.Total)

	resp, body = env.call(http.MethodGet, "/api/proyectos?estado=EN%20PROGRESO", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, *body.Total)

	resp, _ = env.call(http.MethodGet, base+"/reporte.pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp, _ = env.call(http.MethodDelete, base, tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.call(http.MethodGet, base, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración y debug
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminAPI(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.call(http.MethodGet, "/api/admin/usuarios", env.userTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.call(http.MethodGet, "/api/admin/usuarios", env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, *body.Total)

	var list []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decode(t, body.Data, &list)
	ids := map[string]int64{}
	for _, u := range list {
		ids[u.Username] = u.ID
	}

	resp, body = env.call(http.MethodDelete, "/api/admin/usuarios/"+itoa(ids["admin"]), env.adminTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "la cuenta admin no se elimina")
	assert.Equal(t, "FORBIDDEN", body.Code)

	resp, _ = env.call(http.MethodPatch, "/api/admin/usuarios/"+itoa(ids["user"])+"/roles", env.adminTok, map[string][]string{"roles": {"SUPERUSER"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "los roles son un conjunto cerrado")

	resp, _ = env.call(http.MethodPost, "/api/admin/usuarios/"+itoa(ids["user"])+"/toggle-estado", env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.call(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "user", "password": "user123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_DISABLED", body.Code)
}

func (e *testEnv) usuarioIDs() map[string]int64 {
	e.t.Helper()
	resp, body := e.call(http.MethodGet, "/api/admin/usuarios", e.adminTok, nil)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decode(e.t, body.Data, &list)
	ids := map[string]int64{}
	for _, u := range list {
		ids[u.Username] = u.ID
	}
	return ids
}

func (e *testEnv) rolesDe(token string) []string {
	e.t.Helper()
	resp, body := e.call(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	var s apphttp.SessionResponse
	decode(e.t, body.Data, &s)
	return s.Roles
}

func TestAdminAPI_RutasEnMayusculas(t *testing.T) {
	env := newTestEnv(t)
	userID := itoa(env.usuarioIDs()["user"])

	resp, _ := env.call(http.MethodGet, "/API/ADMIN/usuarios", env.userTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.call(http.MethodPatch, "/Api/Admin/usuarios/"+userID+"/roles", env.userTok, map[string][]string{"roles": {"ADMIN", "USER"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.call(http.MethodDelete, "/API/ADMIN/usuarios/"+userID, env.userTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.call(http.MethodGet, "/Debug/ping", env.userTok, nil)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.call(http.MethodDelete, "/DEBUG/proyectos/abc", env.userTok, nil)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"USER"}, env.rolesDe(env.userTok))
	assert.Len(t, env.usuarioIDs(), 2)
}

func TestSesion_SigueLaCuenta(t *testing.T) {
	env := newTestEnv(t)
	userID := itoa(env.usuarioIDs()["user"])

	resp, _ := env.call(http.MethodPatch, "/api/admin/usuarios/"+userID+"/roles", env.adminTok, map[string][]string{"roles": {"ADMIN", "USER"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"ADMIN", "USER"}, env.rolesDe(env.userTok), "el token vigente ve los roles nuevos")

	resp, _ = env.call(http.MethodPost, "/api/admin/usuarios/"+userID+"/toggle-estado", env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.call(http.MethodGet, "/api/empleados", env.userTok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "cuenta deshabilitada pierde la sesión")

	resp, _ = env.call(http.MethodPost, "/api/admin/usuarios/"+userID+"/toggle-estado", env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.call(http.MethodGet, "/api/empleados", env.userTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.call(http.MethodDelete, "/api/admin/usuarios/"+userID, env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.call(http.MethodGet, "/api/empleados", env.userTok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "cuenta eliminada pierde la sesión")
}

func TestDebugAPI(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.call(http.MethodGet, "/debug/ping", env.adminTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.call(http.MethodGet, "/debug/proyectos/count", env.adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var n struct {
		Count int64 `json:"count"`
	}
	decode(t, body.Data, &n)
	assert.Zero(t, n.Count)

	resp, _ = env.call(http.MethodGet, "/debug/proyectos/inexistente", env.adminTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Páginas
// ──────────────────────────────────────────────────────────────────────────────

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c.Value
		}
	}
	return ""
}

func TestPages_LoginYNavegacion(t *testing.T) {
	env := newTestEnv(t)

	resp, html := env.page("/login", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Iniciar sesión")

	resp, _ = env.page("/empleados", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fempleados", resp.Header.Get("Location"))

	resp = env.form("/login", url.Values{"username": {"user"}, "password": {"mala"}}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, sessionCookie(t, resp))

	resp = env.form("/login", url.Values{"username": {"user"}, "password": {"user123"}, "next": {"/empleados"}}, "")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/empleados", resp.Header.Get("Location"))
	cookie := sessionCookie(t, resp)
	require.NotEmpty(t, cookie)

	resp, html = env.page("/", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Bienvenido, user")

	resp, _ = env.page("/admin", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, apphttp.AccessDeniedPath, resp.Header.Get("Location"))
}

func TestPages_LoginNextExterno(t *testing.T) {
	env := newTestEnv(t)
	resp := env.form("/login", url.Values{"username": {"user"}, "password": {"user123"}, "next": {"//evil.example"}}, "")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestPages_ProyectoTareasPorPosicion(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.userTok

	resp := env.form("/proyectos", url.Values{"nombre": {"Portal"}, "descripcion": {"Web"}}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/proyectos/"), loc)
	detalle := strings.SplitN(loc, "?", 2)[0]

	resp = env.form(detalle+"/tareas", url.Values{"titulo": {"T1"}, "fechaVencimiento": {"2026-10-20"}}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "msg=tarea-agregada")

	resp = env.form(detalle+"/tareas/0/toggle", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "msg=tarea-actualizada")

	resp = env.form(detalle+"/tareas/5/eliminar", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error=")

	resp, html := env.page(detalle, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "T1")
	assert.Contains(t, html, "100%")
}

func TestPages_ResetTokenInvalido(t *testing.T) {
	env := newTestEnv(t)
	resp, html := env.page("/reset-password?token=no-existe", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, html, "no es válido")
}

func TestPages_AdminUsuarios(t *testing.T) {
	env := newTestEnv(t)
	resp, html := env.page("/admin/usuarios", env.adminTok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "admin")
	assert.Contains(t, html, "user")

	resp = env.form("/admin/usuarios/1/eliminar", url.Values{}, env.adminTok)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error=")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.page("/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
