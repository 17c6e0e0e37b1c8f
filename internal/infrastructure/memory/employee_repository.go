package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

var _ repository.EmpleadoRepository = (*EmpleadoRepo)(nil)

// EmpleadoRepo almacén relacional en memoria para desarrollo y pruebas (una sola instancia).
type EmpleadoRepo struct {
	mu     sync.RWMutex
	data   map[int64]entity.Empleado
	nextID int64
}

// NewEmpleadoRepository construye el repositorio vacío.
func NewEmpleadoRepository() *EmpleadoRepo {
	return &EmpleadoRepo{data: make(map[int64]entity.Empleado), nextID: 1}
}

func (r *EmpleadoRepo) emailTaken(email string, except int64) bool {
	for id, e := range r.data {
		if id != except && equalFold(e.Email, email) {
			return true
		}
	}
	return false
}

func (r *EmpleadoRepo) Create(_ context.Context, e *entity.Empleado) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(e.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	e.ID = r.nextID
	r.nextID++
	r.data[e.ID] = *e
	return nil
}

func (r *EmpleadoRepo) Update(_ context.Context, e *entity.Empleado) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.ID]; !ok {
		return domain.ErrEmpleadoNotFound
	}
	if r.emailTaken(e.Email, e.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.data[e.ID] = *e
	return nil
}

func (r *EmpleadoRepo) GetByID(_ context.Context, id int64) (*entity.Empleado, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *EmpleadoRepo) GetByEmail(_ context.Context, email string) (*entity.Empleado, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.data {
		if equalFold(e.Email, email) {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (r *EmpleadoRepo) List(_ context.Context) ([]*entity.Empleado, error) {
	return r.filter(func(entity.Empleado) bool { return true }), nil
}

func (r *EmpleadoRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrEmpleadoNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *EmpleadoRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.data)), nil
}

func (r *EmpleadoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	e, err := r.GetByEmail(ctx, email)
	return e != nil, err
}

func (r *EmpleadoRepo) SearchByNombreOrCargo(_ context.Context, termino string) ([]*entity.Empleado, error) {
	return r.filter(func(e entity.Empleado) bool {
		return containsFold(e.Nombre, termino) || containsFold(e.Cargo, termino)
	}), nil
}

func (r *EmpleadoRepo) SearchByCargo(_ context.Context, cargo string) ([]*entity.Empleado, error) {
	return r.filter(func(e entity.Empleado) bool { return containsFold(e.Cargo, cargo) }), nil
}

// filter devuelve copias ordenadas por id, como el ORDER BY id del adaptador PostgreSQL.
func (r *EmpleadoRepo) filter(keep func(entity.Empleado) bool) []*entity.Empleado {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Empleado, 0, len(r.data))
	for _, e := range r.data {
		if keep(e) {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
