package entity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// Profile - участник площадки. Может одновременно быть фрилансером и заказчиком.
type Profile struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Roles        valueobject.RoleSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewProfile(email, passwordHash, displayName string, roles valueobject.RoleSet) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("некорректный email")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperror.Validation("display_name обязательно")
	}
	if passwordHash == "" {
		return nil, apperror.Validation("хеш пароля обязателен")
	}

	now := time.Now().UTC()
	return &Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (p *Profile) HasRole(role valueobject.Role) bool {
	return p.Roles.Has(role)
}

// ActivateRole добавляет роль и сообщает, изменился ли набор.
func (p *Profile) ActivateRole(role valueobject.Role) bool {
	if p.Roles.Has(role) {
		return false
	}
	p.Roles = p.Roles.With(role)
	p.UpdatedAt = time.Now().UTC()
	return true
}
