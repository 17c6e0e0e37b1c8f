package dto

import "github.com/shopspring/decimal"

// EmpleadoRequest entrada para crear o actualizar un empleado.
type EmpleadoRequest struct {
	Nombre   string           `json:"nombre" validate:"required,max=100"`
	Apellido string           `json:"apellido" validate:"required,max=100"`
	Cargo    string           `json:"cargo" validate:"required,max=100"`
	Email    string           `json:"email" validate:"required,email"`
	Salario  *decimal.Decimal `json:"salario" validate:"-"`
}

func (r *EmpleadoRequest) checkFields(errs map[string]string) {
	checkSalario(r.Salario, errs)
}

// SalarioRequest entrada de PATCH /api/empleados/:id/salario.
type SalarioRequest struct {
	Salario *decimal.Decimal `json:"salario" validate:"-"`
}

func (r *SalarioRequest) checkFields(errs map[string]string) {
	checkSalario(r.Salario, errs)
}

func checkSalario(s *decimal.Decimal, errs map[string]string) {
	switch {
	case s == nil:
		errs["salario"] = "es obligatorio"
	case s.IsNegative():
		errs["salario"] = "debe ser mayor o igual a 0"
	}
}

// EmpleadoResponse salida de un empleado.
type EmpleadoResponse struct {
	ID       int64           `json:"id"`
	Nombre   string          `json:"nombre"`
	Apellido string          `json:"apellido"`
	Cargo    string          `json:"cargo"`
	Email    string          `json:"email"`
	Salario  decimal.Decimal `json:"salario"`
}

// EmailExisteResponse resultado de GET /api/empleados/email/:email/existe.
type EmailExisteResponse struct {
	Email  string `json:"email"`
	Existe bool   `json:"existe"`
}
