package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/sirupsen/logrus"
)

type GetProfileUseCase struct {
	profiles repository.ProfileRepository
}

func NewGetProfileUseCase(profiles repository.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profiles: profiles}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, profileID uuid.UUID) (*entity.Profile, error) {
	return uc.profiles.FindByID(ctx, profileID)
}

// ActivateRoleUseCase добавляет роль профилю. Повторная активация ничего не меняет,
// уже имеющиеся роли никогда не снимаются.
type ActivateRoleUseCase struct {
	profiles repository.ProfileRepository
}

func NewActivateRoleUseCase(profiles repository.ProfileRepository) *ActivateRoleUseCase {
	return &ActivateRoleUseCase{profiles: profiles}
}

func (uc *ActivateRoleUseCase) Execute(ctx context.Context, profileID uuid.UUID, rawRole string) (*entity.Profile, error) {
	role, err := valueobject.NewRole(rawRole)
	if err != nil {
		return nil, err
	}

	if err := uc.profiles.AddRole(ctx, profileID, role); err != nil {
		return nil, err
	}

	profile, err := uc.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"profile_id": profileID,
		"role":       role,
	}).Info("identity: role activated")

	return profile, nil
}
