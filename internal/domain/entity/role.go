package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Role rol de usuario. Conjunto cerrado.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ScopePrefix prefijo de los ámbitos de autorización derivados de un rol.
const ScopePrefix = "ROLE_"

// ParseRole normaliza y valida un rol ("admin" -> ADMIN).
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido: %q", s)
	}
}

// Scope ámbito de autorización del rol (ADMIN -> ROLE_ADMIN).
func (r Role) Scope() string {
	return ScopePrefix + string(r)
}

// Roles conjunto de roles: sin duplicados, orden irrelevante (se mantiene ordenado).
type Roles []Role

// NewRoles construye el conjunto eliminando duplicados.
func NewRoles(rs ...Role) Roles {
	seen := make(map[Role]struct{}, len(rs))
	out := make(Roles, 0, len(rs))
	for _, r := range rs {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseRoles valida una lista de textos y devuelve el conjunto.
func ParseRoles(ss []string) (Roles, error) {
	rs := make([]Role, 0, len(ss))
	for _, s := range ss {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return NewRoles(rs...), nil
}

// Has informa si el conjunto contiene el rol.
func (rs Roles) Has(r Role) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// Scopes ámbitos de autorización del conjunto.
func (rs Roles) Scopes() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Scope())
	}
	return out
}

// Strings representación textual (persistencia y token).
func (rs Roles) Strings() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}
