package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Empresa-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Empresa-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testIssuer     = "empresa-api-test"
	testExpMin     = 60
	testCookieName = "EMPRESA_SESSION"
)

// jwtParser valida tokens con el secreto de test, sin consultar cuentas.
type jwtParser struct{}

func (jwtParser) ParseSession(_ context.Context, token string) (*pkgjwt.Session, error) {
	return pkgjwt.Parse(testJWTSecret, token)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedScopes ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(apphttp.SessionMiddleware(jwtParser{}, testCookieName))
	handler := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":   true,
			"role": apphttp.GetRole(c),
		})
	}
	app.Get("/api/protected", apphttp.RequireRole(allowedScopes...), handler)
	app.Get("/panel", apphttp.RequireRole(allowedScopes...), handler)
	return app
}

func tokenFor(t *testing.T, username string, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Session{UserID: 1, Username: username, Roles: roles}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenFor(t, "admin", "ADMIN", "USER"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"], "ADMIN es el rol principal aunque no sea el primero")
}

func TestRequireRole_UnoDeVariosAmbitos(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN", "ROLE_USER")
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenFor(t, "user", "USER"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UserBloqueadoEnRutaAdmin_API(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenFor(t, "user", "USER"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_UserBloqueadoEnRutaAdmin_Pagina(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/panel", "Bearer "+tokenFor(t, "user", "USER"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, apphttp.AccessDeniedPath, resp.Header.Get("Location"))
}

func TestRequireRole_TokenSinRoles_Retorna401(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenFor(t, "legacy"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/api/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/api/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_TokenOtroSecreto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", pkgjwt.Session{UserID: 1, Username: "admin", Roles: []string{"ADMIN"}}, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp("ROLE_ADMIN")
	resp := doRequest(t, app, "/api/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_PaginaSinSesion_RedirigeALogin(t *testing.T) {
	app := buildTestApp("ROLE_USER")
	resp := doRequest(t, app, "/panel", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fpanel", resp.Header.Get("Location"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware: cookie y extracción de la sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_CookieDeSesion(t *testing.T) {
	app := buildTestApp("ROLE_USER")
	req := httptest.NewRequest(http.MethodGet, "/panel", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: tokenFor(t, "user", "USER")})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionMiddleware_ExtraeSesion(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(jwtParser{}, testCookieName))
	app.Get("/yo", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"username": apphttp.GetUsername(c),
			"scopes":   apphttp.GetScopes(c),
			"admin":    apphttp.IsAdmin(c),
		})
	})

	resp := doRequest(t, app, "/yo", "Bearer "+tokenFor(t, "admin", "USER", "ADMIN"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Username string   `json:"username"`
		Scopes   []string `json:"scopes"`
		Admin    bool     `json:"admin"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin", body.Username)
	assert.ElementsMatch(t, []string{"ROLE_USER", "ROLE_ADMIN"}, body.Scopes)
	assert.True(t, body.Admin)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la política de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestIsPublicPath(t *testing.T) {
	cases := map[string]bool{
		"/login":                    true,
		"/registro":                 true,
		"/olvidaste-contrasena":     true,
		"/reset-password":           true,
		"/api/auth/login":           true,
		"/api/auth/forgot-password": true,
		"/static/app.css":           true,
		"/docs/index.html":          true,
		"/health":                   true,
		"/":                         false,
		"/empleados":                false,
		"/api/empleados":            false,
		"/api/auth/me":              false,
		"/admin":                    false,
	}
	for path, want := range cases {
		assert.Equal(t, want, apphttp.IsPublicPath(path), path)
	}
}

func TestIsAdminPath(t *testing.T) {
	assert.True(t, apphttp.IsAdminPath("/admin"))
	assert.True(t, apphttp.IsAdminPath("/admin/usuarios"))
	assert.True(t, apphttp.IsAdminPath("/api/admin/usuarios/3/roles"))
	assert.True(t, apphttp.IsAdminPath("/debug/ping"))
	assert.False(t, apphttp.IsAdminPath("/administrar"))
	assert.False(t, apphttp.IsAdminPath("/api/empleados"))
}

func TestAccessControl(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(jwtParser{}, testCookieName))
	app.Use(apphttp.AccessControl())
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/api/auth/login", ok)
	app.Get("/api/empleados", ok)
	app.Get("/api/admin/usuarios", ok)
	app.Get("/debug/ping", ok)

	userTok := "Bearer " + tokenFor(t, "user", "USER")
	adminTok := "Bearer " + tokenFor(t, "admin", "ADMIN", "USER")

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"pública sin sesión", "/api/auth/login", "", http.StatusOK},
		{"protegida sin sesión", "/api/empleados", "", http.StatusUnauthorized},
		{"protegida con USER", "/api/empleados", userTok, http.StatusOK},
		{"admin con USER", "/api/admin/usuarios", userTok, http.StatusForbidden},
		{"admin con ADMIN", "/api/admin/usuarios", adminTok, http.StatusOK},
		{"debug con USER", "/debug/ping", userTok, http.StatusSeeOther},
		{"debug con ADMIN", "/debug/ping", adminTok, http.StatusOK},
		{"admin en mayúsculas con USER", "/API/ADMIN/usuarios", userTok, http.StatusForbidden},
		{"admin mixto con USER", "/Api/Admin/usuarios", userTok, http.StatusForbidden},
		{"debug mixto con USER", "/Debug/ping", userTok, http.StatusSeeOther},
		{"admin en mayúsculas con ADMIN", "/API/ADMIN/usuarios", adminTok, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.path, tt.auth)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
