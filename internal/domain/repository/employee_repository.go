package repository

import (
	"context"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
)

// EmpleadoRepository define el puerto de persistencia para Empleado (almacén relacional).
// GetByID devuelve (nil, nil) si no existe. La restricción única sobre email es la última barrera.
type EmpleadoRepository interface {
	Create(ctx context.Context, e *entity.Empleado) error
	Update(ctx context.Context, e *entity.Empleado) error
	GetByID(ctx context.Context, id int64) (*entity.Empleado, error)
	GetByEmail(ctx context.Context, email string) (*entity.Empleado, error)
	List(ctx context.Context) ([]*entity.Empleado, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// SearchByNombreOrCargo coincidencia parcial sin distinguir mayúsculas en nombre O cargo (una sola consulta).
	SearchByNombreOrCargo(ctx context.Context, termino string) ([]*entity.Empleado, error)
	SearchByCargo(ctx context.Context, cargo string) ([]*entity.Empleado, error)
}
