package dto

import "time"

// ProyectoRequest entrada para crear o actualizar un proyecto.
// ID vacío equivale a ausente: el almacén genera uno nuevo.
type ProyectoRequest struct {
	ID               string             `json:"id"`
	Nombre           string             `json:"nombre" validate:"required,max=200"`
	Descripcion      string             `json:"descripcion" validate:"required"`
	EmpleadoID       *int64             `json:"empleadoId"`
	FechaEstimadaFin *time.Time         `json:"fechaEstimadaFin"`
	Estado           string             `json:"estado" validate:"omitempty,oneof='Pendiente' 'En progreso' 'Completado' 'Cancelado'"`
	Empleados        []EmpleadoResponse `json:"empleados" validate:"-"`
}

// EstadoRequest entrada de PATCH /api/proyectos/:id/estado.
type EstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// TareaRequest entrada para agregar una tarea.
type TareaRequest struct {
	ID               string `json:"id"`
	Titulo           string `json:"titulo" validate:"required,max=200"`
	Descripcion      string `json:"descripcion"`
	FechaVencimiento Fecha  `json:"fechaVencimiento" validate:"-"`
}

func (r *TareaRequest) checkFields(errs map[string]string) {
	if r.FechaVencimiento.IsZero() {
		errs["fechaVencimiento"] = "es obligatorio"
	}
}

// TareaResponse salida de una tarea.
type TareaResponse struct {
	ID               string `json:"id"`
	Titulo           string `json:"titulo"`
	Descripcion      string `json:"descripcion,omitempty"`
	FechaVencimiento Fecha  `json:"fechaVencimiento"`
	Completada       bool   `json:"completada"`
}

// ProyectoResponse salida de un proyecto con su progreso calculado.
type ProyectoResponse struct {
	ID                   string             `json:"id"`
	Nombre               string             `json:"nombre"`
	Descripcion          string             `json:"descripcion"`
	EmpleadoID           *int64             `json:"empleadoId"`
	Tareas               []TareaResponse    `json:"tareas"`
	FechaCreacion        time.Time          `json:"fechaCreacion"`
	FechaEstimadaFin     *time.Time         `json:"fechaEstimadaFin,omitempty"`
	Estado               string             `json:"estado"`
	Empleados            []EmpleadoResponse `json:"empleados"`
	TareasCompletadas    int                `json:"tareasCompletadas"`
	PorcentajeCompletado int                `json:"porcentajeCompletado"`
}

// TareasResponse tareas de un proyecto con su resumen de avance.
type TareasResponse struct {
	Tareas             []TareaResponse `json:"tareas"`
	Total              int             `json:"total"`
	Completadas        int             `json:"completadas"`
	PorcentajeProgreso int             `json:"porcentajeProgreso"`
}

// TareaMutationResponse resultado de agregar, completar o eliminar una tarea.
type TareaMutationResponse struct {
	Proyecto           *ProyectoResponse `json:"proyecto"`
	Tarea              TareaResponse     `json:"tarea"`
	PorcentajeProgreso int               `json:"porcentajeProgreso"`
}

// EstadisticasResponse resumen global de proyectos y tareas.
type EstadisticasResponse struct {
	TotalProyectos    int `json:"totalProyectos"`
	Pendientes        int `json:"pendientes"`
	EnProgreso        int `json:"enProgreso"`
	Completados       int `json:"completados"`
	Cancelados        int `json:"cancelados"`
	TotalTareas       int `json:"totalTareas"`
	TareasCompletadas int `json:"tareasCompletadas"`
	ProgresoGeneral   int `json:"progresoGeneral"`
}

// ProyectoFilter filtros opcionales de GET /api/proyectos.
type ProyectoFilter struct {
	Estado     string
	EmpleadoID *int64
}
