package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/ports"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
	"github.com/jhoicas/Empresa-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y carga de la identidad de sesión.
type AuthUseCase struct {
	userRepo repository.UsuarioRepository
	hasher   ports.PasswordHasher
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, hasher ports.PasswordHasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, jwtCfg: jwtCfg}
}

// LoadByUsername carga la cuenta; ErrUserNotFound si no existe.
func (uc *AuthUseCase) LoadByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	u, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Login verifica credenciales y emite el token de sesión con los roles del usuario.
// Credenciales incorrectas -> ErrUnauthorized; cuenta deshabilitada -> ErrAccountDisabled.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	user, err := uc.LoadByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if !uc.hasher.Verify(in.Password, user.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrAccountDisabled
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Session{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles.Strings(),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		Scopes: user.Scopes(),
		User: dto.UsuarioResponse{
			ID:       user.ID,
			Username: user.Username,
			Activo:   user.Activo,
			Roles:    user.Roles.Strings(),
		},
	}, nil
}

// ParseSession valida el token y recarga la cuenta: una cuenta eliminada o deshabilitada
// pierde la sesión aunque el token no haya vencido. Los roles se toman de la cuenta actual.
func (uc *AuthUseCase) ParseSession(ctx context.Context, token string) (*jwt.Session, error) {
	s, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrAccountDisabled
	}
	s.Username = user.Username
	s.Roles = user.Roles.Strings()
	return s, nil
}
