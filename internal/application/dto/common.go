package dto

import (
	"fmt"
	"strings"
	"time"
)

// APIResponse sobre uniforme de la API JSON.
// Code identifica el tipo de error para los clientes (NOT_FOUND, CONFLICT, ...).
type APIResponse struct {
	Success bool              `json:"success"`
	Code    string            `json:"code,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Total   *int              `json:"total,omitempty"`
}

// OK respuesta exitosa con datos.
func OK(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// OKList respuesta exitosa de un listado con total.
func OKList(data interface{}, total int, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message, Total: &total}
}

// Fail respuesta de error.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}

// FailCode respuesta de error con código.
func FailCode(code, message string) APIResponse {
	return APIResponse{Success: false, Code: code, Message: message}
}

// FailValidation respuesta 400 con errores por campo.
func FailValidation(errs map[string]string) APIResponse {
	return APIResponse{Success: false, Code: "VALIDATION", Message: "Errores de validación", Errors: errs}
}

// DateLayout formato de fechas sin hora (vencimiento de tareas).
const DateLayout = "2006-01-02"

// Fecha fecha sin hora serializada como "2006-01-02".
type Fecha struct {
	time.Time
}

// NewFecha trunca t a la fecha (UTC).
func NewFecha(t time.Time) Fecha {
	y, m, d := t.Date()
	return Fecha{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseFecha interpreta "2006-01-02".
func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Fecha{}, err
	}
	return Fecha{Time: t}, nil
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + f.Format(DateLayout) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// también se acepta fecha-hora RFC3339
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("fecha inválida %q: use %s", s, DateLayout)
		}
	}
	*f = NewFecha(t)
	return nil
}
