package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Los métodos de lectura devuelven (nil, nil) si el usuario no existe.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	// SetResetToken, SetActivo y SetRoles escriben solo sus columnas: no pisan una
	// contraseña cambiada en paralelo por ConsumeResetToken. ErrUserNotFound si no existe.
	SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error
	SetActivo(ctx context.Context, id int64, activo bool) error
	SetRoles(ctx context.Context, id int64, roles entity.Roles) error
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*entity.Usuario, error)
	GetByResetToken(ctx context.Context, token string) (*entity.Usuario, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*entity.Usuario, error)
	Delete(ctx context.Context, id int64) error
	// ConsumeResetToken reemplaza el hash y limpia el token en una sola escritura,
	// solo si el token sigue asignado y no ha vencido en now. Devuelve false si otro
	// llamador lo consumió antes o el token ya no es válido.
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error)
}
