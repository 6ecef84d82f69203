package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase"
	"github.com/sirupsen/logrus"
)

// CancelProjectUseCase закрывает открытый проект без выбора исполнителя.
// Все ожидающие ставки отклоняются в той же транзакции.
type CancelProjectUseCase struct {
	store     repository.Store
	publisher repository.EventPublisher
}

func NewCancelProjectUseCase(store repository.Store, publisher repository.EventPublisher) *CancelProjectUseCase {
	return &CancelProjectUseCase{store: store, publisher: publisher}
}

func (uc *CancelProjectUseCase) Execute(ctx context.Context, projectID, clientID uuid.UUID) (*entity.Project, error) {
	var (
		project  *entity.Project
		rejected []*entity.Bid
	)

	err := uc.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		p, err := repos.Projects.FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(clientID) {
			return apperror.ErrNotProjectOwner
		}

		err = repos.Projects.TransitionStatus(ctx, p.ID, valueobject.ProjectStatusOpen, valueobject.ProjectStatusCancelled)
		if errors.Is(err, apperror.ErrStatusConflict) {
			return apperror.ErrProjectNotOpen
		}
		if err != nil {
			return err
		}

		rejected, err = repos.Bids.RejectPending(ctx, p.ID, nil)
		if err != nil {
			return err
		}

		project, err = repos.Projects.FindByID(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"project_id":    project.ID,
		"rejected_bids": len(rejected),
	}).Info("project: cancelled")

	events := []entity.Event{entity.NewEvent(entity.EventProjectCancelled, clientID).ForProject(project.ID)}
	for _, b := range rejected {
		events = append(events, entity.NewEvent(entity.EventBidRejected, clientID).
			ForProject(project.ID).
			ForBid(b.ID).
			To(b.FreelancerID))
	}
	usecase.Publish(ctx, uc.publisher, events...)

	return project, nil
}
