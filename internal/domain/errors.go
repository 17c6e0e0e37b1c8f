package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrEmpleadoNotFound      = errors.New("empleado no encontrado")
	ErrProyectoNotFound      = errors.New("proyecto no encontrado")
	ErrTareaNotFound         = errors.New("tarea no encontrada")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está en uso")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrAccountDisabled       = errors.New("la cuenta está deshabilitada")
)

// IsNotFound agrupa los sentinelas de entidad ausente.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmpleadoNotFound) ||
		errors.Is(err, ErrProyectoNotFound) ||
		errors.Is(err, ErrTareaNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict agrupa las violaciones de unicidad.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrUsernameAlreadyExists)
}

// ValidationError error de validación con mensaje por campo.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye el error para un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "errores de validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
