package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
)

// proyectoDocument forma persistida de un proyecto: tareas y empleados embebidos.
type proyectoDocument struct {
	ID               docID              `bson:"_id"`
	Nombre           string             `bson:"nombre"`
	Descripcion      string             `bson:"descripcion"`
	EmpleadoID       *int64             `bson:"empleadoId,omitempty"`
	Tareas           []tareaDocument    `bson:"tareas"`
	FechaCreacion    time.Time          `bson:"fechaCreacion"`
	FechaEstimadaFin *time.Time         `bson:"fechaEstimadaFin,omitempty"`
	Estado           string             `bson:"estado"`
	Empleados        []empleadoSnapshot `bson:"empleados"`
}

type tareaDocument struct {
	ID               docID     `bson:"_id"`
	Titulo           string    `bson:"titulo"`
	Descripcion      string    `bson:"descripcion,omitempty"`
	FechaVencimiento time.Time `bson:"fechaVencimiento"`
	Completada       bool      `bson:"completada"`
}

// empleadoSnapshot copia desnormalizada; no se sincroniza con la tabla de empleados.
type empleadoSnapshot struct {
	ID       int64                `bson:"_id"`
	Nombre   string               `bson:"nombre"`
	Apellido string               `bson:"apellido"`
	Cargo    string               `bson:"cargo"`
	Email    string               `bson:"email"`
	Salario  primitive.Decimal128 `bson:"salario"`
}

func toDocument(p *entity.Proyecto) proyectoDocument {
	d := proyectoDocument{
		ID:               docID(p.ID),
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		EmpleadoID:       p.EmpleadoID,
		Tareas:           make([]tareaDocument, 0, len(p.Tareas)),
		FechaCreacion:    p.FechaCreacion,
		FechaEstimadaFin: p.FechaEstimadaFin,
		Estado:           string(p.Estado),
		Empleados:        make([]empleadoSnapshot, 0, len(p.Empleados)),
	}
	for _, t := range p.Tareas {
		d.Tareas = append(d.Tareas, tareaDocument{
			ID:               docID(t.ID),
			Titulo:           t.Titulo,
			Descripcion:      t.Descripcion,
			FechaVencimiento: t.FechaVencimiento,
			Completada:       t.Completada,
		})
	}
	for _, e := range p.Empleados {
		salario, err := primitive.ParseDecimal128(e.Salario.String())
		if err != nil {
			salario = primitive.NewDecimal128(0, 0)
		}
		d.Empleados = append(d.Empleados, empleadoSnapshot{
			ID:       e.ID,
			Nombre:   e.Nombre,
			Apellido: e.Apellido,
			Cargo:    e.Cargo,
			Email:    e.Email,
			Salario:  salario,
		})
	}
	return d
}

func (d proyectoDocument) toEntity() *entity.Proyecto {
	p := &entity.Proyecto{
		ID:               string(d.ID),
		Nombre:           d.Nombre,
		Descripcion:      d.Descripcion,
		EmpleadoID:       d.EmpleadoID,
		Tareas:           make([]entity.Tarea, 0, len(d.Tareas)),
		FechaCreacion:    d.FechaCreacion,
		FechaEstimadaFin: d.FechaEstimadaFin,
		Estado:           entity.EstadoProyecto(d.Estado),
		Empleados:        make([]entity.Empleado, 0, len(d.Empleados)),
	}
	for _, t := range d.Tareas {
		p.Tareas = append(p.Tareas, entity.Tarea{
			ID:               string(t.ID),
			Titulo:           t.Titulo,
			Descripcion:      t.Descripcion,
			FechaVencimiento: t.FechaVencimiento,
			Completada:       t.Completada,
		})
	}
	for _, e := range d.Empleados {
		salario, err := decimal.NewFromString(e.Salario.String())
		if err != nil {
			salario = decimal.Zero
		}
		p.Empleados = append(p.Empleados, entity.Empleado{
			ID:       e.ID,
			Nombre:   e.Nombre,
			Apellido: e.Apellido,
			Cargo:    e.Cargo,
			Email:    e.Email,
			Salario:  salario,
		})
	}
	return p
}
