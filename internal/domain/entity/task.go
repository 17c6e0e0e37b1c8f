package entity

import "time"

// Tarea pertenece exclusivamente a su Proyecto; no se persiste por separado.
type Tarea struct {
	ID               string
	Titulo           string
	Descripcion      string
	FechaVencimiento time.Time // solo fecha
	Completada       bool
}
