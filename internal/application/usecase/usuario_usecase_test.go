package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/memory"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/security"
)

// clock reloj manual para los tests de expiración.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newUsuarioUC(t *testing.T) (*usecase.UsuarioUseCase, *memory.UsuarioRepo, *clock) {
	t.Helper()
	repo := memory.NewUsuarioRepository()
	clk := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc := usecase.NewUsuarioUseCase(repo, security.NewBcryptHasher(4), time.Hour).WithClock(clk.Now)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "ana", Password: "secreto1"})
	require.NoError(t, err)
	return uc, repo, clk
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_RolPorDefectoUSER(t *testing.T) {
	_, repo, _ := newUsuarioUC(t)

	u, err := repo.GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.True(t, u.Activo)
	assert.Equal(t, entity.Roles{entity.RoleUser}, u.Roles)
	assert.NotEqual(t, "secreto1", u.Password)
}

func TestRegister_UsernameDuplicadoNoAlteraHash(t *testing.T) {
	uc, repo, _ := newUsuarioUC(t)
	ctx := context.Background()
	before, _ := repo.GetByUsername(ctx, "ana")

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Password: "otraClave"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
	assert.True(t, domain.IsConflict(err))

	after, _ := repo.GetByUsername(ctx, "ana")
	assert.Equal(t, before.Password, after.Password)
}

func TestRegister_RolDesconocido(t *testing.T) {
	uc, _, _ := newUsuarioUC(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "luis", Password: "secreto1", Roles: []string{"root"}})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "roles")
}

// ── Reset token ──────────────────────────────────────────────────────────────

func TestGenerateResetToken_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newUsuarioUC(t)
	_, err := uc.GenerateResetToken(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGenerateResetToken_ReemplazaTokenPrevio(t *testing.T) {
	uc, _, _ := newUsuarioUC(t)
	ctx := context.Background()

	first, err := uc.GenerateResetToken(ctx, "ana")
	require.NoError(t, err)
	second, err := uc.GenerateResetToken(ctx, "ana")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	assert.ErrorIs(t, uc.CheckResetToken(ctx, first.Token), domain.ErrInvalidToken)
	assert.NoError(t, uc.CheckResetToken(ctx, second.Token))
}

func TestResetPassword_UnSoloUso(t *testing.T) {
	uc, repo, _ := newUsuarioUC(t)
	ctx := context.Background()
	tok, err := uc.GenerateResetToken(ctx, "ana")
	require.NoError(t, err)

	req := dto.ResetPasswordRequest{Token: tok.Token, Password: "nueva123", Confirm: "nueva123"}
	require.NoError(t, uc.ResetPassword(ctx, req))
	assert.ErrorIs(t, uc.ResetPassword(ctx, req), domain.ErrInvalidToken)

	u, _ := repo.GetByUsername(ctx, "ana")
	assert.Nil(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiry)
	assert.True(t, security.NewBcryptHasher(4).Verify("nueva123", u.Password))
}

func TestResetPassword_VigenciaDeUnaHora(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{"T+59min válido", 59 * time.Minute, nil},
		{"exactamente en la expiración sigue válido", time.Hour, nil},
		{"T+61min vencido", 61 * time.Minute, domain.ErrExpiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, clk := newUsuarioUC(t)
			ctx := context.Background()
			tok, err := uc.GenerateResetToken(ctx, "ana")
			require.NoError(t, err)

			clk.Advance(tt.elapsed)
			err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tok.Token, Password: "nueva123", Confirm: "nueva123"})
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestResetPassword_TokenDesconocido(t *testing.T) {
	uc, _, _ := newUsuarioUC(t)
	err := uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "x", Password: "nueva123", Confirm: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

// ── Administración ───────────────────────────────────────────────────────────

func TestDelete_AdminProtegido(t *testing.T) {
	uc, repo, _ := newUsuarioUC(t)
	ctx := context.Background()
	admin, err := uc.Register(ctx, dto.RegisterRequest{Username: usecase.AdminUsername, Password: "admin123", Roles: []string{"ADMIN"}})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, admin.ID), domain.ErrForbidden)

	ana, _ := repo.GetByUsername(ctx, "ana")
	assert.NoError(t, uc.Delete(ctx, ana.ID))
	assert.ErrorIs(t, uc.Delete(ctx, ana.ID), domain.ErrUserNotFound)
}

func TestToggleActivoYAssignRoles(t *testing.T) {
	uc, repo, _ := newUsuarioUC(t)
	ctx := context.Background()
	ana, _ := repo.GetByUsername(ctx, "ana")

	res, err := uc.ToggleActivo(ctx, ana.ID)
	require.NoError(t, err)
	assert.False(t, res.Activo)

	res, err = uc.AssignRoles(ctx, ana.ID, dto.RolesRequest{Roles: []string{"user", "admin", "USER"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN", "USER"}, res.Roles)
}

// lecturaConGancho ejecuta despues una sola vez, justo después de leer la cuenta por username.
type lecturaConGancho struct {
	*memory.UsuarioRepo
	despues func()
}

func (r *lecturaConGancho) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	u, err := r.UsuarioRepo.GetByUsername(ctx, username)
	if fn := r.despues; fn != nil {
		r.despues = nil
		fn()
	}
	return u, err
}

func TestGenerateResetToken_NoRevierteResetConcurrente(t *testing.T) {
	ctx := context.Background()
	hasher := security.NewBcryptHasher(4)
	repo := &lecturaConGancho{UsuarioRepo: memory.NewUsuarioRepository()}
	uc := usecase.NewUsuarioUseCase(repo, hasher, time.Hour)
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto1"})
	require.NoError(t, err)

	primero, err := uc.GenerateResetToken(ctx, "ana")
	require.NoError(t, err)

	repo.despues = func() {
		require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{
			Token: primero.Token, Password: "nuevaClave", Confirm: "nuevaClave",
		}))
	}
	segundo, err := uc.GenerateResetToken(ctx, "ana")
	require.NoError(t, err)

	u, err := repo.UsuarioRepo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("nuevaClave", u.Password), "el reset completado se conserva")
	assert.False(t, hasher.Verify("secreto1", u.Password))
	require.NotNil(t, u.ResetToken)
	assert.Equal(t, segundo.Token, *u.ResetToken)
}

func TestToggleYRoles_NoPisanPassword(t *testing.T) {
	uc, repo, _ := newUsuarioUC(t)
	ctx := context.Background()
	u, _ := repo.GetByUsername(ctx, "ana")
	hash := u.Password

	res, err := uc.ToggleActivo(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, res.Activo)

	res, err = uc.AssignRoles(ctx, u.ID, dto.RolesRequest{Roles: []string{"ADMIN", "USER"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN", "USER"}, res.Roles)

	got, _ := repo.GetByUsername(ctx, "ana")
	assert.False(t, got.Activo)
	assert.Equal(t, entity.NewRoles(entity.RoleAdmin, entity.RoleUser), got.Roles)
	assert.Equal(t, hash, got.Password)

	_, err = uc.ToggleActivo(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
