package valueobject

import (
	"slices"
	"strings"

	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleClient     Role = "client"
)

func (r Role) IsValid() bool {
	return r == RoleFreelancer || r == RoleClient
}

func NewRole(role string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.IsValid() {
		return "", apperror.Validation("неизвестная роль " + role)
	}
	return r, nil
}

// RoleSet - набор ролей профиля. Роли только добавляются, порядок стабилен.
type RoleSet []Role

func NewRoleSet(roles ...string) (RoleSet, error) {
	var set RoleSet
	for _, raw := range roles {
		r, err := NewRole(raw)
		if err != nil {
			return nil, err
		}
		set = set.With(r)
	}
	return set, nil
}

func (s RoleSet) Has(role Role) bool {
	return slices.Contains(s, role)
}

// With возвращает набор с добавленной ролью. Повторное добавление ничего не меняет.
func (s RoleSet) With(role Role) RoleSet {
	if s.Has(role) {
		return s
	}
	out := make(RoleSet, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, role)
	slices.Sort(out)
	return out
}

func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}
