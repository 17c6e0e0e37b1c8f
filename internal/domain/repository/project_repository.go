package repository

import (
	"context"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
)

// ProyectoRepository define el puerto del almacén de documentos para Proyecto (con tareas embebidas).
type ProyectoRepository interface {
	// Save inserta si ID está vacío (el almacén genera el identificador y lo asigna en p.ID);
	// en otro caso reemplaza el documento completo (upsert). Una escritura = un documento.
	Save(ctx context.Context, p *entity.Proyecto) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Proyecto, error)
	List(ctx context.Context) ([]*entity.Proyecto, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	SearchByNombre(ctx context.Context, nombre string) ([]*entity.Proyecto, error)
	// FindByEmpleadoID proyectos cuyo campo directo empleadoId es igual a id.
	FindByEmpleadoID(ctx context.Context, empleadoID int64) ([]*entity.Proyecto, error)
	// FindByEmpleadosID proyectos cuyo arreglo empleados contiene un empleado con ese id.
	FindByEmpleadosID(ctx context.Context, empleadoID int64) ([]*entity.Proyecto, error)
}
