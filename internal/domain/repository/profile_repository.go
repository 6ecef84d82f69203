package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)
	// AddRole идемпотентно добавляет роль. Возвращает ErrProfileNotFound для неизвестного профиля.
	AddRole(ctx context.Context, id uuid.UUID, role valueobject.Role) error
}
