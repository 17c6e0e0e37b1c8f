package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/memory"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/security"
	"github.com/jhoicas/Empresa-api/pkg/logger"
)

func TestBootstrap_Idempotente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUsuarioRepository()
	b := usecase.NewBootstrap(repo, security.NewBcryptHasher(4), logger.Nop())
	accounts := usecase.DefaultAccounts("admin123", "user123")

	require.NoError(t, b.Run(ctx, accounts))
	admin, _ := repo.GetByUsername(ctx, "admin")
	require.NotNil(t, admin)
	hash := admin.Password

	require.NoError(t, b.Run(ctx, accounts))
	list, _ := repo.List(ctx)
	assert.Len(t, list, 2)

	admin, _ = repo.GetByUsername(ctx, "admin")
	assert.Equal(t, hash, admin.Password)
	assert.True(t, admin.Roles.Has(entity.RoleAdmin))
	assert.True(t, admin.Roles.Has(entity.RoleUser))

	user, _ := repo.GetByUsername(ctx, "user")
	assert.Equal(t, entity.Roles{entity.RoleUser}, user.Roles)
}
