package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/domain"
)

func TestValidate_EmpleadoCamposObligatorios(t *testing.T) {
	err := dto.Validate(&dto.EmpleadoRequest{Email: "no-es-email"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "es obligatorio", verr.Fields["nombre"])
	assert.Equal(t, "es obligatorio", verr.Fields["apellido"])
	assert.Equal(t, "es obligatorio", verr.Fields["cargo"])
	assert.Equal(t, "el formato del email no es válido", verr.Fields["email"])
	assert.Equal(t, "es obligatorio", verr.Fields["salario"])
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidate_SalarioNegativo(t *testing.T) {
	s := decimal.NewFromInt(-1)
	err := dto.Validate(&dto.EmpleadoRequest{Nombre: "Ana", Apellido: "P", Cargo: "Dev", Email: "ana@x.com", Salario: &s})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 1)
	assert.Contains(t, verr.Fields, "salario")
}

func TestValidate_EmpleadoValido(t *testing.T) {
	s := decimal.NewFromInt(1000)
	assert.NoError(t, dto.Validate(&dto.EmpleadoRequest{Nombre: "Ana", Apellido: "P", Cargo: "Dev", Email: "ana@x.com", Salario: &s}))
}

func TestValidate_TareaSinFecha(t *testing.T) {
	err := dto.Validate(&dto.TareaRequest{Titulo: "T1"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"fechaVencimiento": "es obligatorio"}, verr.Fields)
}

func TestValidate_ResetConfirmDistinto(t *testing.T) {
	err := dto.Validate(&dto.ResetPasswordRequest{Token: "t", Password: "secreto1", Confirm: "secreto2"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "confirm")
}

func TestFecha_JSON(t *testing.T) {
	var f dto.Fecha
	require.NoError(t, f.UnmarshalJSON([]byte(`"2026-10-20"`)))
	assert.Equal(t, 2026, f.Year())

	b, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-20"`, string(b))

	assert.Error(t, f.UnmarshalJSON([]byte(`"20/10/2026"`)))
}
