package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	// FindByIDForShare читает проект с разделяемой блокировкой строки до конца транзакции.
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entity.Project, error)
	// TransitionStatus выполняет условный переход from -> to.
	// Если сохраненный статус не равен from, возвращает ErrStatusConflict.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.ProjectStatus) error
}

type ProjectFilter struct {
	Status   *valueobject.ProjectStatus
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}
