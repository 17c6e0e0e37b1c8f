// @title        Empresa API
// @version      1.0
// @description  API de empleados, proyectos con tareas y usuarios con restablecimiento de contraseña.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Empresa-api/docs"
	"github.com/jhoicas/Empresa-api/internal/application/auth"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/memory"
	infmongo "github.com/jhoicas/Empresa-api/internal/infrastructure/mongo"
	infrapdf "github.com/jhoicas/Empresa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/Empresa-api/internal/interfaces/http"
	"github.com/jhoicas/Empresa-api/pkg/config"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores repositorios según STORAGE_DRIVER y la función que cierra sus conexiones.
type stores struct {
	empleados repository.EmpleadoRepository
	proyectos repository.ProyectoRepository
	usuarios  repository.UsuarioRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	hasher := security.NewBcryptHasher(security.DefaultCost)
	if err := usecase.NewBootstrap(st.usuarios, hasher, log.Component("bootstrap")).
		Run(ctx, usecase.DefaultAccounts(cfg.Seed.AdminPassword, cfg.Seed.UserPassword)); err != nil {
		log.Fatal().Err(err).Msg("crear cuentas iniciales")
	}

	resetTTL := time.Duration(cfg.Session.ResetTokenTTLMinutes) * time.Minute
	authUC := auth.NewAuthUseCase(st.usuarios, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	usuarioUC := usecase.NewUsuarioUseCase(st.usuarios, hasher, resetTTL)
	empleadoUC := usecase.NewEmpleadoUseCase(st.empleados)

	// PDF: reporte de avance del proyecto
	pdfGenerator := infrapdf.NewMarotoPDFGenerator("", cfg.App.Name)
	proyectoUC := usecase.NewProyectoUseCase(st.proyectos, st.empleados, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		Views:         httpRouter.NewViewEngine(),
		CaseSensitive: true,
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 10,
		IdleTimeout:   time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Empresa API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UsuarioUC:  usuarioUC,
		EmpleadoUC: empleadoUC,
		ProyectoUC: proyectoUC,
		Pages: httpRouter.PageConfig{
			CookieName: cfg.Session.CookieName,
			CookieTTL:  time.Duration(cfg.JWT.Expiration) * time.Minute,
			Secure:     cfg.App.Env == "production",
		},
		Log: log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores PostgreSQL para empleados y usuarios, MongoDB para proyectos; o todo en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &stores{
			empleados: memory.NewEmpleadoRepository(),
			proyectos: memory.NewProyectoRepository(),
			usuarios:  memory.NewUsuarioRepository(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Strs("migraciones", applied).Msg("esquema PostgreSQL al día")

	client, coll, err := infmongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := infmongo.EnsureIndexes(ctx, coll); err != nil {
		log.Warn().Err(err).Msg("crear índices de proyectos")
	}

	return &stores{
		empleados: postgres.NewEmpleadoRepository(pool),
		proyectos: infmongo.NewProyectoRepository(coll),
		usuarios:  postgres.NewUsuarioRepository(pool),
		close: func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("cerrar conexión mongo")
			}
			pool.Close()
		},
	}, nil
}
