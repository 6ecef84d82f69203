package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
)

type GetProjectUseCase struct {
	store repository.Store
}

func NewGetProjectUseCase(store repository.Store) *GetProjectUseCase {
	return &GetProjectUseCase{store: store}
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, projectID uuid.UUID) (*entity.Project, error) {
	return uc.store.Repositories().Projects.FindByID(ctx, projectID)
}

type ListProjectsInput struct {
	Status   string
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ListProjectsUseCase struct {
	store repository.Store
}

func NewListProjectsUseCase(store repository.Store) *ListProjectsUseCase {
	return &ListProjectsUseCase{store: store}
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) ([]*entity.Project, error) {
	filter := repository.ProjectFilter{
		ClientID: input.ClientID,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if input.Status != "" {
		status, err := valueobject.NewProjectStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.store.Repositories().Projects.List(ctx, filter)
}
