// seed aplica el esquema de PostgreSQL y crea las cuentas iniciales sin levantar el servidor.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*, SEED_ADMIN_PASSWORD, SEED_USER_PASSWORD).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/security"
	"github.com/jhoicas/Empresa-api/pkg/config"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	for _, name := range applied {
		log.Info().Str("script", name).Msg("migración aplicada")
	}

	users := postgres.NewUsuarioRepository(pool)
	hasher := security.NewBcryptHasher(security.DefaultCost)
	accounts := usecase.DefaultAccounts(cfg.Seed.AdminPassword, cfg.Seed.UserPassword)
	if err := usecase.NewBootstrap(users, hasher, log.Component("seed")).Run(ctx, accounts); err != nil {
		log.Fatal().Err(err).Msg("crear cuentas iniciales")
	}
	log.Info().Int("cuentas", len(accounts)).Msg("seed completado")
}
