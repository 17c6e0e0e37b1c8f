package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/usecase"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/infrastructure/memory"
)

func empleadoReq(nombre, cargo, email string, salario int64) dto.EmpleadoRequest {
	s := decimal.NewFromInt(salario)
	return dto.EmpleadoRequest{Nombre: nombre, Apellido: "Pérez", Cargo: cargo, Email: email, Salario: &s}
}

func TestEmpleado_ExistsByEmailTrasCrearYEliminar(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmpleadoUseCase(memory.NewEmpleadoRepository())

	e, err := uc.Create(ctx, empleadoReq("Ana", "Dev", "ana@x.com", 1000))
	require.NoError(t, err)
	assert.NotZero(t, e.ID)

	ok, err := uc.ExistsByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := uc.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", deleted.Nombre)

	ok, _ = uc.ExistsByEmail(ctx, "ana@x.com")
	assert.False(t, ok)
}

func TestEmpleado_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmpleadoUseCase(memory.NewEmpleadoRepository())
	_, err := uc.Create(ctx, empleadoReq("Ana", "Dev", "ana@x.com", 1000))
	require.NoError(t, err)

	_, err = uc.Create(ctx, empleadoReq("Otra", "QA", "ana@x.com", 500))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestEmpleado_UpdateConservaPropioEmail(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmpleadoUseCase(memory.NewEmpleadoRepository())
	ana, _ := uc.Create(ctx, empleadoReq("Ana", "Dev", "ana@x.com", 1000))
	_, _ = uc.Create(ctx, empleadoReq("Luis", "QA", "luis@x.com", 900))

	upd, err := uc.Update(ctx, ana.ID, empleadoReq("Ana María", "Lead", "ana@x.com", 1500))
	require.NoError(t, err)
	assert.Equal(t, "Ana María", upd.Nombre)

	_, err = uc.Update(ctx, ana.ID, empleadoReq("Ana", "Lead", "luis@x.com", 1500))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Update(ctx, 999, empleadoReq("X", "Y", "z@x.com", 1))
	assert.ErrorIs(t, err, domain.ErrEmpleadoNotFound)
}

func TestEmpleado_Validacion(t *testing.T) {
	uc := usecase.NewEmpleadoUseCase(memory.NewEmpleadoRepository())
	_, err := uc.Create(context.Background(), dto.EmpleadoRequest{Nombre: "  ", Email: "mal"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "nombre")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "salario")
}

func TestEmpleado_SalarioYBusqueda(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmpleadoUseCase(memory.NewEmpleadoRepository())
	ana, _ := uc.Create(ctx, empleadoReq("Ana", "Developer", "ana@x.com", 1000))
	_, _ = uc.Create(ctx, empleadoReq("Luis", "Contador", "luis@x.com", 900))

	nuevo := decimal.RequireFromString("1234.50")
	res, err := uc.UpdateSalario(ctx, ana.ID, dto.SalarioRequest{Salario: &nuevo})
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(res.Salario))

	negativo := decimal.NewFromInt(-5)
	_, err = uc.UpdateSalario(ctx, ana.ID, dto.SalarioRequest{Salario: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	found, err := uc.Search(ctx, "dev")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ana", found[0].Nombre)

	found, _ = uc.SearchByCargo(ctx, "CONTA")
	require.Len(t, found, 1)
	assert.Equal(t, "Luis", found[0].Nombre)

	n, _ := uc.Count(ctx)
	assert.Equal(t, int64(2), n)
}
