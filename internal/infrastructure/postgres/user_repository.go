package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// Los roles se agregan en la misma consulta para evitar una ida extra por usuario.
const usuarioSelect = `
	SELECT u.id, u.username, u.password, u.activo, u.reset_token, u.reset_token_expiry,
	       COALESCE(array_agg(r.rol ORDER BY r.rol) FILTER (WHERE r.rol IS NOT NULL), '{}')
	FROM usuarios u
	LEFT JOIN usuario_roles r ON r.usuario_id = u.id`

const usuarioGroupBy = ` GROUP BY u.id`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
// El usuario y su conjunto de roles se escriben en una sola transacción.
type UsuarioRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Create persiste un nuevo usuario con sus roles.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	return r.tx.Run(ctx, func(q Querier) error {
		query := `
			INSERT INTO usuarios (username, password, activo, reset_token, reset_token_expiry)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		err := q.QueryRow(ctx, query, u.Username, u.Password, u.Activo, u.ResetToken, u.ResetTokenExpiry).Scan(&u.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameAlreadyExists
			}
			return fmt.Errorf("insert usuario: %w", err)
		}
		return insertRoles(ctx, q, u.ID, u.Roles)
	})
}

// SetResetToken asigna token y vencimiento sin tocar la contraseña.
func (r *UsuarioRepo) SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	return r.execOne(ctx, "set reset token",
		`UPDATE usuarios SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`, id, token, expiry)
}

func (r *UsuarioRepo) SetActivo(ctx context.Context, id int64, activo bool) error {
	return r.execOne(ctx, "set activo", `UPDATE usuarios SET activo = $2 WHERE id = $1`, id, activo)
}

// SetRoles reemplaza el conjunto de roles en una transacción.
func (r *UsuarioRepo) SetRoles(ctx context.Context, id int64, roles entity.Roles) error {
	return r.tx.Run(ctx, func(q Querier) error {
		var locked int64
		if err := q.QueryRow(ctx, `SELECT id FROM usuarios WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("lock usuario: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM usuario_roles WHERE usuario_id = $1`, id); err != nil {
			return fmt.Errorf("delete roles: %w", err)
		}
		return insertRoles(ctx, q, id, roles)
	})
}

func (r *UsuarioRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func insertRoles(ctx context.Context, q Querier, id int64, roles entity.Roles) error {
	for _, rol := range roles {
		if _, err := q.Exec(ctx, `INSERT INTO usuario_roles (usuario_id, rol) VALUES ($1, $2)`, id, string(rol)); err != nil {
			return fmt.Errorf("insert rol %s: %w", rol, err)
		}
	}
	return nil
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	return r.getOne(ctx, usuarioSelect+` WHERE u.id = $1`+usuarioGroupBy, id)
}

func (r *UsuarioRepo) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	return r.getOne(ctx, usuarioSelect+` WHERE u.username = $1`+usuarioGroupBy, username)
}

func (r *UsuarioRepo) GetByResetToken(ctx context.Context, token string) (*entity.Usuario, error) {
	return r.getOne(ctx, usuarioSelect+` WHERE u.reset_token = $1`+usuarioGroupBy, token)
}

func (r *UsuarioRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM usuarios WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists usuario: %w", err)
	}
	return exists, nil
}

func (r *UsuarioRepo) List(ctx context.Context) ([]*entity.Usuario, error) {
	rows, err := r.pool.Query(ctx, usuarioSelect+usuarioGroupBy+` ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsuarioRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken compara y limpia en un único UPDATE: solo una llamada concurrente afecta la fila.
func (r *UsuarioRepo) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	query := `
		UPDATE usuarios
		SET password = $2, reset_token = NULL, reset_token_expiry = NULL
		WHERE reset_token = $1 AND reset_token_expiry >= $3`
	tag, err := r.pool.Exec(ctx, query, token, passwordHash, now)
	if err != nil {
		return false, fmt.Errorf("consume reset token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UsuarioRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Usuario, error) {
	u, err := scanUsuario(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var (
		u     entity.Usuario
		roles []string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Activo, &u.ResetToken, &u.ResetTokenExpiry, &roles); err != nil {
		return nil, err
	}
	parsed, err := entity.ParseRoles(roles)
	if err != nil {
		return nil, err
	}
	u.Roles = parsed
	return &u, nil
}
