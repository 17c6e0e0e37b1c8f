package entity

import (
	"strconv"
	"strings"
	"time"
)

// EstadoProyecto estado del ciclo de vida de un proyecto.
type EstadoProyecto string

const (
	EstadoPendiente  EstadoProyecto = "Pendiente"
	EstadoEnProgreso EstadoProyecto = "En progreso"
	EstadoCompletado EstadoProyecto = "Completado"
	EstadoCancelado  EstadoProyecto = "Cancelado"
)

// EstadosProyecto estados permitidos, en orden de presentación.
var EstadosProyecto = []EstadoProyecto{EstadoPendiente, EstadoEnProgreso, EstadoCompletado, EstadoCancelado}

// Valid informa si el estado pertenece al conjunto permitido.
func (e EstadoProyecto) Valid() bool {
	for _, x := range EstadosProyecto {
		if e == x {
			return true
		}
	}
	return false
}

// Proyecto documento con tareas embebidas.
// EmpleadoID es la referencia directa heredada; Empleados es la copia desnormalizada más reciente.
// Ninguna de las dos se mantiene sincronizada con la tabla de empleados.
type Proyecto struct {
	ID               string
	Nombre           string
	Descripcion      string
	EmpleadoID       *int64
	Tareas           []Tarea
	FechaCreacion    time.Time
	FechaEstimadaFin *time.Time
	Estado           EstadoProyecto
	Empleados        []Empleado
}

// NewProyecto aplica los valores por defecto: fecha de creación now y estado Pendiente.
func NewProyecto(nombre, descripcion string, empleadoID *int64, now time.Time) *Proyecto {
	return &Proyecto{
		Nombre:        nombre,
		Descripcion:   descripcion,
		EmpleadoID:    empleadoID,
		Tareas:        []Tarea{},
		FechaCreacion: now,
		Estado:        EstadoPendiente,
		Empleados:     []Empleado{},
	}
}

// ApplyDefaults completa los campos que el documento no trae.
func (p *Proyecto) ApplyDefaults(now time.Time) {
	if p.FechaCreacion.IsZero() {
		p.FechaCreacion = now
	}
	if p.Estado == "" {
		p.Estado = EstadoPendiente
	}
	if p.Tareas == nil {
		p.Tareas = []Tarea{}
	}
	if p.Empleados == nil {
		p.Empleados = []Empleado{}
	}
}

// AgregarTarea añade al final; el orden de inserción nunca se altera.
func (p *Proyecto) AgregarTarea(t Tarea) {
	p.Tareas = append(p.Tareas, t)
}

// TareasCompletadas cantidad de tareas completadas.
func (p *Proyecto) TareasCompletadas() int {
	n := 0
	for _, t := range p.Tareas {
		if t.Completada {
			n++
		}
	}
	return n
}

// PorcentajeProgreso floor(100 * completadas / total); 0 sin tareas.
func (p *Proyecto) PorcentajeProgreso() int {
	return Porcentaje(p.TareasCompletadas(), len(p.Tareas))
}

// Porcentaje floor(100 * parte / total), 0 si total es 0.
func Porcentaje(parte, total int) int {
	if total <= 0 {
		return 0
	}
	return parte * 100 / total
}

// IndexOfTarea posición de la tarea con ese id, -1 si no existe.
func (p *Proyecto) IndexOfTarea(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range p.Tareas {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ResolveTarea ubica una tarea por id y, si no hay coincidencia, interpreta ref como
// índice posicional dentro de los límites actuales. Este segundo camino solo existe
// para clientes antiguos que direccionan tareas por posición.
func (p *Proyecto) ResolveTarea(ref string) int {
	if i := p.IndexOfTarea(ref); i >= 0 {
		return i
	}
	idx, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || idx < 0 || idx >= len(p.Tareas) {
		return -1
	}
	return idx
}

// RemoveTareaAt elimina la tarea en i preservando el orden del resto.
func (p *Proyecto) RemoveTareaAt(i int) Tarea {
	t := p.Tareas[i]
	p.Tareas = append(p.Tareas[:i:i], p.Tareas[i+1:]...)
	return t
}

// HasEmpleado informa si el empleado está referenciado por cualquiera de las dos vías.
func (p *Proyecto) HasEmpleado(id int64) bool {
	if p.EmpleadoID != nil && *p.EmpleadoID == id {
		return true
	}
	for _, e := range p.Empleados {
		if e.ID == id {
			return true
		}
	}
	return false
}
