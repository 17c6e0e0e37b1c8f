package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

// EmpleadoUseCase aplica reglas de negocio para empleados.
// La unicidad del email se verifica aquí; la restricción de la DB es la última barrera.
type EmpleadoUseCase struct {
	repo repository.EmpleadoRepository
}

// NewEmpleadoUseCase construye el caso de uso con el puerto de persistencia.
func NewEmpleadoUseCase(repo repository.EmpleadoRepository) *EmpleadoUseCase {
	return &EmpleadoUseCase{repo: repo}
}

// List devuelve todos los empleados ordenados por id.
func (uc *EmpleadoUseCase) List(ctx context.Context) ([]*dto.EmpleadoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toEmpleadoResponses(list), nil
}

// GetByID devuelve ErrEmpleadoNotFound si no existe.
func (uc *EmpleadoUseCase) GetByID(ctx context.Context, id int64) (*dto.EmpleadoResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmpleadoResponse(e), nil
}

// Create valida, verifica que el email no esté registrado y persiste.
func (uc *EmpleadoUseCase) Create(ctx context.Context, in dto.EmpleadoRequest) (*dto.EmpleadoResponse, error) {
	normalizeEmpleado(&in)
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	e := &entity.Empleado{
		Nombre:   in.Nombre,
		Apellido: in.Apellido,
		Cargo:    in.Cargo,
		Email:    in.Email,
		Salario:  *in.Salario,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmpleadoResponse(e), nil
}

// Update reemplaza los datos del empleado. El email puede repetirse solo consigo mismo.
func (uc *EmpleadoUseCase) Update(ctx context.Context, id int64, in dto.EmpleadoRequest) (*dto.EmpleadoResponse, error) {
	normalizeEmpleado(&in)
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	other, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrEmailAlreadyExists
	}
	e.Nombre = in.Nombre
	e.Apellido = in.Apellido
	e.Cargo = in.Cargo
	e.Email = in.Email
	e.Salario = *in.Salario
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmpleadoResponse(e), nil
}

// UpdateSalario actualiza solo el salario (no negativo).
func (uc *EmpleadoUseCase) UpdateSalario(ctx context.Context, id int64, in dto.SalarioRequest) (*dto.EmpleadoResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Salario = *in.Salario
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmpleadoResponse(e), nil
}

// Delete elimina y devuelve el empleado eliminado. Los proyectos que lo referencian no se tocan.
func (uc *EmpleadoUseCase) Delete(ctx context.Context, id int64) (*dto.EmpleadoResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return toEmpleadoResponse(e), nil
}

// Search coincidencia parcial sin distinguir mayúsculas en nombre o cargo.
func (uc *EmpleadoUseCase) Search(ctx context.Context, termino string) ([]*dto.EmpleadoResponse, error) {
	list, err := uc.repo.SearchByNombreOrCargo(ctx, strings.TrimSpace(termino))
	if err != nil {
		return nil, err
	}
	return toEmpleadoResponses(list), nil
}

// SearchByCargo coincidencia parcial sin distinguir mayúsculas en cargo.
func (uc *EmpleadoUseCase) SearchByCargo(ctx context.Context, cargo string) ([]*dto.EmpleadoResponse, error) {
	list, err := uc.repo.SearchByCargo(ctx, strings.TrimSpace(cargo))
	if err != nil {
		return nil, err
	}
	return toEmpleadoResponses(list), nil
}

func (uc *EmpleadoUseCase) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return uc.repo.ExistsByEmail(ctx, strings.TrimSpace(email))
}

func (uc *EmpleadoUseCase) Count(ctx context.Context) (int64, error) {
	return uc.repo.Count(ctx)
}

func (uc *EmpleadoUseCase) get(ctx context.Context, id int64) (*entity.Empleado, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmpleadoNotFound
	}
	return e, nil
}

func normalizeEmpleado(in *dto.EmpleadoRequest) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Cargo = strings.TrimSpace(in.Cargo)
	in.Email = strings.TrimSpace(in.Email)
}

func toEmpleadoResponse(e *entity.Empleado) *dto.EmpleadoResponse {
	if e == nil {
		return nil
	}
	return &dto.EmpleadoResponse{
		ID:       e.ID,
		Nombre:   e.Nombre,
		Apellido: e.Apellido,
		Cargo:    e.Cargo,
		Email:    e.Email,
		Salario:  e.Salario,
	}
}

func toEmpleadoResponses(list []*entity.Empleado) []*dto.EmpleadoResponse {
	out := make([]*dto.EmpleadoResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmpleadoResponse(e))
	}
	return out
}
