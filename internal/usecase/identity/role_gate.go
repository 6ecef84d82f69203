package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// RoleGate проверяется перед каждой изменяющей операцией. Проверяется только наличие роли,
// понятия "текущей" роли у движка нет.
type RoleGate struct {
	profiles repository.ProfileRepository
}

func NewRoleGate(profiles repository.ProfileRepository) *RoleGate {
	return &RoleGate{profiles: profiles}
}

func (g *RoleGate) HasRole(ctx context.Context, profileID uuid.UUID, role valueobject.Role) (bool, error) {
	profile, err := g.profiles.FindByID(ctx, profileID)
	if err != nil {
		return false, err
	}
	return profile.HasRole(role), nil
}

// Require возвращает ошибку авторизации, если профиля нет или у него нет роли.
func (g *RoleGate) Require(ctx context.Context, profileID uuid.UUID, role valueobject.Role) (*entity.Profile, error) {
	profile, err := g.profiles.FindByID(ctx, profileID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrRoleRequired
		}
		return nil, err
	}
	if !profile.HasRole(role) {
		return nil, apperror.Forbidden("требуется роль " + string(role))
	}
	return profile, nil
}
