package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo cuentas en memoria. ConsumeResetToken se ejecuta bajo el mismo candado que
// las escrituras, de modo que dos consumos concurrentes del mismo token no pueden ganar ambos.
type UsuarioRepo struct {
	mu     sync.RWMutex
	data   map[int64]*entity.Usuario
	nextID int64
}

// NewUsuarioRepository construye el repositorio vacío.
func NewUsuarioRepository() *UsuarioRepo {
	return &UsuarioRepo{data: make(map[int64]*entity.Usuario), nextID: 1}
}

func (r *UsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.data {
		if x.Username == u.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.data[u.ID] = cloneUsuario(u)
	return nil
}

func (r *UsuarioRepo) SetResetToken(_ context.Context, id int64, token string, expiry time.Time) error {
	return r.modify(id, func(u *entity.Usuario) { u.SetResetToken(token, expiry) })
}

func (r *UsuarioRepo) SetActivo(_ context.Context, id int64, activo bool) error {
	return r.modify(id, func(u *entity.Usuario) { u.Activo = activo })
}

func (r *UsuarioRepo) SetRoles(_ context.Context, id int64, roles entity.Roles) error {
	return r.modify(id, func(u *entity.Usuario) { u.Roles = append(entity.Roles{}, roles...) })
}

func (r *UsuarioRepo) modify(id int64, fn func(*entity.Usuario)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (r *UsuarioRepo) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	return r.find(func(u *entity.Usuario) bool { return u.ID == id }), nil
}

func (r *UsuarioRepo) GetByUsername(_ context.Context, username string) (*entity.Usuario, error) {
	return r.find(func(u *entity.Usuario) bool { return u.Username == username }), nil
}

func (r *UsuarioRepo) GetByResetToken(_ context.Context, token string) (*entity.Usuario, error) {
	if token == "" {
		return nil, nil
	}
	return r.find(func(u *entity.Usuario) bool {
		return u.ResetToken != nil && *u.ResetToken == token
	}), nil
}

func (r *UsuarioRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r *UsuarioRepo) List(_ context.Context) ([]*entity.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Usuario, 0, len(r.data))
	for _, u := range r.data {
		out = append(out, cloneUsuario(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UsuarioRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *UsuarioRepo) ConsumeResetToken(_ context.Context, token, passwordHash string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.data {
		if u.ResetToken == nil || *u.ResetToken != token {
			continue
		}
		if u.ResetTokenExpired(now) {
			return false, nil
		}
		u.Password = passwordHash
		u.ClearResetToken()
		return true, nil
	}
	return false, nil
}

func (r *UsuarioRepo) find(match func(*entity.Usuario) bool) *entity.Usuario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.data {
		if match(u) {
			return cloneUsuario(u)
		}
	}
	return nil
}

func cloneUsuario(u *entity.Usuario) *entity.Usuario {
	c := *u
	c.Roles = append(entity.Roles{}, u.Roles...)
	if u.ResetToken != nil {
		t := *u.ResetToken
		c.ResetToken = &t
	}
	if u.ResetTokenExpiry != nil {
		e := *u.ResetTokenExpiry
		c.ResetTokenExpiry = &e
	}
	return &c
}
