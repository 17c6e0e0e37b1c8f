package ports

import (
	"context"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
)

// ProyectoReportGenerator genera el informe imprimible de un proyecto.
// empleado es el responsable directo, nil si la referencia está colgada o ausente.
type ProyectoReportGenerator interface {
	GenerateProyectoPDF(ctx context.Context, p *entity.Proyecto, empleado *entity.Empleado) ([]byte, error)
}
