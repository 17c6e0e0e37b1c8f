package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/ports"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

// AdminUsername cuenta sembrada al arrancar; no se puede eliminar.
const AdminUsername = "admin"

// DefaultResetTokenTTL vigencia del token de restablecimiento.
const DefaultResetTokenTTL = time.Hour

// UsuarioUseCase registro, administración de cuentas y ciclo de vida del token de restablecimiento.
type UsuarioUseCase struct {
	repo     repository.UsuarioRepository
	hasher   ports.PasswordHasher
	resetTTL time.Duration
	now      func() time.Time
	newToken func() string
}

// NewUsuarioUseCase construye el caso de uso. resetTTL <= 0 usa DefaultResetTokenTTL.
func NewUsuarioUseCase(repo repository.UsuarioRepository, hasher ports.PasswordHasher, resetTTL time.Duration) *UsuarioUseCase {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	return &UsuarioUseCase{
		repo:     repo,
		hasher:   hasher,
		resetTTL: resetTTL,
		now:      time.Now,
		newToken: func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UsuarioUseCase) WithClock(now func() time.Time) *UsuarioUseCase {
	uc.now = now
	return uc
}

// Register crea la cuenta. Si el username existe devuelve ErrUsernameAlreadyExists sin tocar la cuenta existente.
func (uc *UsuarioUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	roles, err := entity.ParseRoles(in.Roles)
	if err != nil {
		return nil, domain.NewValidationError("roles", err.Error())
	}
	if len(roles) == 0 {
		roles = entity.NewRoles(entity.RoleUser)
	}
	exists, err := uc.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.Usuario{
		Username: in.Username,
		Password: hash,
		Activo:   true,
		Roles:    roles,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// GenerateResetToken emite un token nuevo válido por resetTTL. Reemplaza cualquier token previo.
func (uc *UsuarioUseCase) GenerateResetToken(ctx context.Context, username string) (*dto.ForgotPasswordResponse, error) {
	u, err := uc.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	token := uc.newToken()
	expiry := uc.now().Add(uc.resetTTL)
	if err := uc.repo.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return nil, err
	}
	return &dto.ForgotPasswordResponse{
		Token:    token,
		ExpiraEn: expiry,
		ResetURL: "/reset-password?token=" + url.QueryEscape(token),
	}, nil
}

// CheckResetToken informa si el token existe y sigue vigente, sin consumirlo.
func (uc *UsuarioUseCase) CheckResetToken(ctx context.Context, token string) error {
	_, err := uc.lookupResetToken(ctx, token)
	return err
}

// ResetPassword consume el token y guarda la nueva contraseña. El token es de un solo uso:
// si otro llamador lo consume primero, este recibe ErrInvalidToken.
func (uc *UsuarioUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := dto.Validate(&in); err != nil {
		return err
	}
	if _, err := uc.lookupResetToken(ctx, in.Token); err != nil {
		return err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return err
	}
	ok, err := uc.repo.ConsumeResetToken(ctx, in.Token, hash, uc.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidToken
	}
	return nil
}

func (uc *UsuarioUseCase) lookupResetToken(ctx context.Context, token string) (*entity.Usuario, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	u, err := uc.repo.GetByResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidToken
	}
	if u.ResetTokenExpired(uc.now()) {
		return nil, domain.ErrExpiredToken
	}
	return u, nil
}

// List todas las cuentas ordenadas por id.
func (uc *UsuarioUseCase) List(ctx context.Context) ([]*dto.UsuarioResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUsuarioResponse(u))
	}
	return out, nil
}

// ToggleActivo habilita o deshabilita la cuenta.
func (uc *UsuarioUseCase) ToggleActivo(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Activo = !u.Activo
	if err := uc.repo.SetActivo(ctx, id, u.Activo); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// AssignRoles reemplaza el conjunto de roles.
func (uc *UsuarioUseCase) AssignRoles(ctx context.Context, id int64, in dto.RolesRequest) (*dto.UsuarioResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	roles, err := entity.ParseRoles(in.Roles)
	if err != nil {
		return nil, domain.NewValidationError("roles", err.Error())
	}
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	if err := uc.repo.SetRoles(ctx, id, roles); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// Delete elimina la cuenta. La cuenta admin está protegida (ErrForbidden).
func (uc *UsuarioUseCase) Delete(ctx context.Context, id int64) error {
	u, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if u.Username == AdminUsername {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UsuarioUseCase) get(ctx context.Context, id int64) (*entity.Usuario, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:       u.ID,
		Username: u.Username,
		Activo:   u.Activo,
		Roles:    u.Roles.Strings(),
	}
}
