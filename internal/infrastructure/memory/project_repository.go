package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

var _ repository.ProyectoRepository = (*ProyectoRepo)(nil)

// ProyectoRepo almacén de documentos en memoria. Cada Save reemplaza el documento completo,
// y las lecturas devuelven copias profundas para que ningún llamador comparta tareas o empleados.
type ProyectoRepo struct {
	mu    sync.RWMutex
	docs  map[string]*entity.Proyecto
	order []string
}

// NewProyectoRepository construye el repositorio vacío.
func NewProyectoRepository() *ProyectoRepo {
	return &ProyectoRepo{docs: make(map[string]*entity.Proyecto)}
}

func (r *ProyectoRepo) Save(_ context.Context, p *entity.Proyecto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if _, ok := r.docs[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.docs[p.ID] = cloneProyecto(p)
	return nil
}

func (r *ProyectoRepo) GetByID(_ context.Context, id string) (*entity.Proyecto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return cloneProyecto(p), nil
}

func (r *ProyectoRepo) List(_ context.Context) ([]*entity.Proyecto, error) {
	return r.filter(func(*entity.Proyecto) bool { return true }), nil
}

func (r *ProyectoRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	for i, x := range r.order {
		if x == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *ProyectoRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

func (r *ProyectoRepo) SearchByNombre(_ context.Context, nombre string) ([]*entity.Proyecto, error) {
	return r.filter(func(p *entity.Proyecto) bool { return containsFold(p.Nombre, nombre) }), nil
}

func (r *ProyectoRepo) FindByEmpleadoID(_ context.Context, empleadoID int64) ([]*entity.Proyecto, error) {
	return r.filter(func(p *entity.Proyecto) bool {
		return p.EmpleadoID != nil && *p.EmpleadoID == empleadoID
	}), nil
}

func (r *ProyectoRepo) FindByEmpleadosID(_ context.Context, empleadoID int64) ([]*entity.Proyecto, error) {
	return r.filter(func(p *entity.Proyecto) bool {
		for _, e := range p.Empleados {
			if e.ID == empleadoID {
				return true
			}
		}
		return false
	}), nil
}

// filter recorre en orden de inserción (orden natural de la colección).
func (r *ProyectoRepo) filter(keep func(*entity.Proyecto) bool) []*entity.Proyecto {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Proyecto, 0, len(r.order))
	for _, id := range r.order {
		if p := r.docs[id]; keep(p) {
			out = append(out, cloneProyecto(p))
		}
	}
	return out
}

func cloneProyecto(p *entity.Proyecto) *entity.Proyecto {
	c := *p
	if p.EmpleadoID != nil {
		id := *p.EmpleadoID
		c.EmpleadoID = &id
	}
	if p.FechaEstimadaFin != nil {
		f := *p.FechaEstimadaFin
		c.FechaEstimadaFin = &f
	}
	c.Tareas = append([]entity.Tarea{}, p.Tareas...)
	c.Empleados = append([]entity.Empleado{}, p.Empleados...)
	return &c
}
