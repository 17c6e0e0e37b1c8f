package entity

import "github.com/shopspring/decimal"

// Empleado registro relacional. Email es único; Salario no negativo.
type Empleado struct {
	ID       int64
	Nombre   string
	Apellido string
	Cargo    string
	Email    string
	Salario  decimal.Decimal
}

// NombreCompleto nombre y apellido.
func (e *Empleado) NombreCompleto() string {
	if e.Apellido == "" {
		return e.Nombre
	}
	return e.Nombre + " " + e.Apellido
}
