package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Empresa-api/internal/application/ports"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

// SeedAccount cuenta por defecto creada en el arranque si no existe.
type SeedAccount struct {
	Username string
	Password string
	Roles    entity.Roles
}

// DefaultAccounts admin (ADMIN, USER) y user (USER).
func DefaultAccounts(adminPassword, userPassword string) []SeedAccount {
	return []SeedAccount{
		{Username: AdminUsername, Password: adminPassword, Roles: entity.NewRoles(entity.RoleAdmin, entity.RoleUser)},
		{Username: "user", Password: userPassword, Roles: entity.NewRoles(entity.RoleUser)},
	}
}

// Bootstrap inicialización única del proceso, antes de aceptar tráfico. Idempotente.
type Bootstrap struct {
	users  repository.UsuarioRepository
	hasher ports.PasswordHasher
	log    *logger.Logger
}

// NewBootstrap construye el inicializador.
func NewBootstrap(users repository.UsuarioRepository, hasher ports.PasswordHasher, log *logger.Logger) *Bootstrap {
	if log == nil {
		log = logger.Nop()
	}
	return &Bootstrap{users: users, hasher: hasher, log: log.Component("bootstrap")}
}

// Run crea las cuentas que falten. Las existentes no se modifican.
func (b *Bootstrap) Run(ctx context.Context, accounts []SeedAccount) error {
	for _, a := range accounts {
		exists, err := b.users.ExistsByUsername(ctx, a.Username)
		if err != nil {
			return fmt.Errorf("bootstrap %s: %w", a.Username, err)
		}
		if exists {
			b.log.Debug().Str("username", a.Username).Msg("cuenta ya existe")
			continue
		}
		hash, err := b.hasher.Hash(a.Password)
		if err != nil {
			return fmt.Errorf("bootstrap %s: hash: %w", a.Username, err)
		}
		u := &entity.Usuario{Username: a.Username, Password: hash, Activo: true, Roles: a.Roles}
		if err := b.users.Create(ctx, u); err != nil {
			return fmt.Errorf("bootstrap %s: %w", a.Username, err)
		}
		b.log.Info().Str("username", a.Username).Strs("roles", a.Roles.Strings()).Msg("cuenta creada")
	}
	return nil
}
