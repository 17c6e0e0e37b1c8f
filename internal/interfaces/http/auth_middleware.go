package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/pkg/jwt"
)

// LocalSession key de Fiber Locals para la identidad de sesión.
const LocalSession = "session"

// Rutas de las páginas de autenticación.
const (
	LoginPath        = "/login"
	AccessDeniedPath = "/acceso-denegado"
)

// SessionParser valida un token de sesión contra la cuenta vigente. Lo implementa *auth.AuthUseCase.
type SessionParser interface {
	ParseSession(ctx context.Context, token string) (*jwt.Session, error)
}

// publicPaths rutas que no requieren autenticación.
var publicPaths = map[string]bool{
	LoginPath:                   true,
	"/registro":                 true,
	"/olvidaste-contrasena":     true,
	"/reset-password":           true,
	"/health":                   true,
	"/api/auth/login":           true,
	"/api/auth/register":        true,
	"/api/auth/forgot-password": true,
	"/api/auth/reset-password":  true,
}

var publicPrefixes = []string{"/static/", "/docs"}

// adminPrefixes rutas que requieren ROLE_ADMIN.
var adminPrefixes = []string{"/admin", "/api/admin", "/debug"}

// IsPublicPath informa si path está en la lista de acceso libre.
func IsPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// IsAdminPath informa si path requiere el ámbito ROLE_ADMIN.
func IsAdminPath(path string) bool {
	for _, p := range adminPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	path = strings.ToLower(path)
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// SessionMiddleware extrae la sesión del header Bearer (API) o de la cookie (páginas) y la
// guarda en Locals. No rechaza: las decisiones de acceso las toman RequireAuth y RequireRole.
func SessionMiddleware(parser SessionParser, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" && cookieName != "" {
			token = c.Cookies(cookieName)
		}
		if token != "" {
			if s, err := parser.ParseSession(c.UserContext(), token); err == nil {
				c.Locals(LocalSession, s)
			}
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AccessControl aplica la política global: rutas públicas libres, prefijos de administración
// con ROLE_ADMIN y el resto con cualquier sesión válida.
// La ruta se compara en minúsculas: el enrutador de Fiber no distingue mayúsculas por defecto.
func AccessControl() fiber.Handler {
	requireAuth := RequireAuth()
	requireAdmin := RequireRole(entity.RoleAdmin.Scope())
	return func(c *fiber.Ctx) error {
		path := strings.ToLower(c.Path())
		switch {
		case IsPublicPath(path):
			return c.Next()
		case IsAdminPath(path):
			return requireAdmin(c)
		default:
			return requireAuth(c)
		}
	}
}

// RequireAuth exige una sesión. Sin sesión: 401 en la API, redirección a /login en páginas.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			return unauthenticated(c)
		}
		return c.Next()
	}
}

// RequireRole exige que la sesión tenga al menos uno de los ámbitos indicados (ROLE_ADMIN, ...).
// Una sesión sin roles se trata como no autenticada; con roles pero sin el requerido, 403.
func RequireRole(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return unauthenticated(c)
		}
		if len(s.Roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.FailCode("MISSING_ROLE", "la sesión no contiene roles"))
		}
		have := GetScopes(c)
		for _, want := range scopes {
			for _, h := range have {
				if h == want {
					return c.Next()
				}
			}
		}
		if isAPIPath(c.Path()) {
			return c.Status(fiber.StatusForbidden).JSON(dto.FailCode("FORBIDDEN", "no tiene permisos para este recurso"))
		}
		return c.Redirect(AccessDeniedPath, fiber.StatusSeeOther)
	}
}

func unauthenticated(c *fiber.Ctx) error {
	if isAPIPath(c.Path()) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.FailCode("UNAUTHORIZED", "autenticación requerida"))
	}
	return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
}

// GetSession devuelve la sesión del contexto o nil.
func GetSession(c *fiber.Ctx) *jwt.Session {
	s, _ := c.Locals(LocalSession).(*jwt.Session)
	return s
}

// GetUsername devuelve el usuario autenticado, "" si no hay sesión.
func GetUsername(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.Username
	}
	return ""
}

// GetScopes ámbitos de autorización (ROLE_<rol>) de la sesión.
func GetScopes(c *fiber.Ctx) []string {
	s := GetSession(c)
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		out = append(out, entity.ScopePrefix+r)
	}
	return out
}

// GetRole rol principal de la sesión: ADMIN si lo tiene, si no el primero.
func GetRole(c *fiber.Ctx) string {
	s := GetSession(c)
	if s == nil || len(s.Roles) == 0 {
		return ""
	}
	for _, r := range s.Roles {
		if r == string(entity.RoleAdmin) {
			return r
		}
	}
	return s.Roles[0]
}

// IsAdmin informa si la sesión tiene ROLE_ADMIN.
func IsAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == string(entity.RoleAdmin)
}
