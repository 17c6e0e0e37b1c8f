package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
)

//go:embed views static
var assets embed.FS

// PageLayout plantilla base de todas las páginas.
const PageLayout = "layouts/main"

// NewViewEngine motor de plantillas HTML sobre las vistas embebidas en el binario.
func NewViewEngine() *html.Engine {
	views, err := fs.Sub(assets, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(nethttp.FS(views), ".html")
	engine.AddFunc("estadoClase", estadoClase)
	return engine
}

// StaticHandler sirve /static/* desde los recursos embebidos.
func StaticHandler() fiber.Handler {
	return filesystem.New(filesystem.Config{
		Root:       nethttp.FS(assets),
		PathPrefix: "static",
		MaxAge:     3600,
	})
}

func estadoClase(estado string) string {
	switch estado {
	case "Completado":
		return "badge-ok"
	case "En progreso":
		return "badge-run"
	case "Cancelado":
		return "badge-off"
	default:
		return "badge-wait"
	}
}
