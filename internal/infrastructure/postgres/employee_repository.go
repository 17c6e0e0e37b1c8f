package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

var _ repository.EmpleadoRepository = (*EmpleadoRepo)(nil)

const empleadoColumns = `id, nombre, apellido, cargo, email, salario`

// EmpleadoRepo implementación del puerto EmpleadoRepository sobre PostgreSQL.
type EmpleadoRepo struct {
	db Querier
}

// NewEmpleadoRepository construye el adaptador. db puede ser el pool o una transacción.
func NewEmpleadoRepository(db Querier) *EmpleadoRepo {
	return &EmpleadoRepo{db: db}
}

// Create persiste un nuevo empleado y asigna el id generado.
func (r *EmpleadoRepo) Create(ctx context.Context, e *entity.Empleado) error {
	query := `
		INSERT INTO empleados (nombre, apellido, cargo, email, salario)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, e.Nombre, e.Apellido, e.Cargo, e.Email, e.Salario).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert empleado: %w", err)
	}
	return nil
}

// Update reemplaza todos los campos del empleado.
func (r *EmpleadoRepo) Update(ctx context.Context, e *entity.Empleado) error {
	query := `
		UPDATE empleados SET nombre = $2, apellido = $3, cargo = $4, email = $5, salario = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, e.ID, e.Nombre, e.Apellido, e.Cargo, e.Email, e.Salario)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update empleado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmpleadoNotFound
	}
	return nil
}

// GetByID obtiene un empleado por id; (nil, nil) si no existe.
func (r *EmpleadoRepo) GetByID(ctx context.Context, id int64) (*entity.Empleado, error) {
	return r.getOne(ctx, `SELECT `+empleadoColumns+` FROM empleados WHERE id = $1`, id)
}

// GetByEmail compara sin distinguir mayúsculas, igual que el índice único.
func (r *EmpleadoRepo) GetByEmail(ctx context.Context, email string) (*entity.Empleado, error) {
	return r.getOne(ctx, `SELECT `+empleadoColumns+` FROM empleados WHERE lower(email) = lower($1)`, email)
}

func (r *EmpleadoRepo) List(ctx context.Context) ([]*entity.Empleado, error) {
	return r.list(ctx, `SELECT `+empleadoColumns+` FROM empleados ORDER BY id`)
}

func (r *EmpleadoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM empleados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete empleado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmpleadoNotFound
	}
	return nil
}

func (r *EmpleadoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM empleados`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count empleados: %w", err)
	}
	return n, nil
}

func (r *EmpleadoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM empleados WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists empleado by email: %w", err)
	}
	return exists, nil
}

// SearchByNombreOrCargo una sola consulta con ILIKE sobre ambas columnas.
func (r *EmpleadoRepo) SearchByNombreOrCargo(ctx context.Context, termino string) ([]*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados
		WHERE nombre ILIKE $1 OR cargo ILIKE $1
		ORDER BY id`
	return r.list(ctx, query, likePattern(termino))
}

func (r *EmpleadoRepo) SearchByCargo(ctx context.Context, cargo string) ([]*entity.Empleado, error) {
	return r.list(ctx, `SELECT `+empleadoColumns+` FROM empleados WHERE cargo ILIKE $1 ORDER BY id`, likePattern(cargo))
}

func (r *EmpleadoRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Empleado, error) {
	var e entity.Empleado
	err := r.db.QueryRow(ctx, query, args...).Scan(&e.ID, &e.Nombre, &e.Apellido, &e.Cargo, &e.Email, &e.Salario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empleado: %w", err)
	}
	return &e, nil
}

func (r *EmpleadoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Empleado, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list empleados: %w", err)
	}
	defer rows.Close()

	var out []*entity.Empleado
	for rows.Next() {
		var e entity.Empleado
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Apellido, &e.Cargo, &e.Email, &e.Salario); err != nil {
			return nil, fmt.Errorf("scan empleado: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
