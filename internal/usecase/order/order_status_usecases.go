package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase"
	"github.com/sirupsen/logrus"
)

// party - кто из участников заказа может выполнить переход.
type party int

const (
	partyClient party = 1 << iota
	partyFreelancer
)

func (p party) allows(order *entity.Order, actorID uuid.UUID) bool {
	return (p&partyClient != 0 && order.ClientID == actorID) ||
		(p&partyFreelancer != 0 && order.FreelancerID == actorID)
}

// transition описывает переход заказа и сопутствующий переход проекта.
type transition struct {
	to      valueobject.OrderStatus
	actors  party
	project *valueobject.ProjectStatus
}

type statusChanger struct {
	store     repository.Store
	publisher repository.EventPublisher
	now       func() time.Time
}

func (s *statusChanger) apply(ctx context.Context, orderID, actorID uuid.UUID, t transition) (*entity.Order, error) {
	var order *entity.Order

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		o, err := repos.Orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.IsParty(actorID) {
			return apperror.ErrNotOrderParty
		}
		if !t.actors.allows(o, actorID) {
			return apperror.ErrForbidden
		}
		if !o.Status.CanTransitionTo(t.to) {
			return apperror.ErrInvalidTransition
		}

		at := s.now()
		if err := repos.Orders.TransitionStatus(ctx, o.ID, o.Status, t.to, at); err != nil {
			if errors.Is(err, apperror.ErrStatusConflict) {
				return apperror.ErrInvalidTransition
			}
			return err
		}

		if t.project != nil {
			err := repos.Projects.TransitionStatus(ctx, o.ProjectID, valueobject.ProjectStatusInProgress, *t.project)
			if errors.Is(err, apperror.ErrStatusConflict) {
				return apperror.ErrInvalidTransition
			}
			if err != nil {
				return err
			}
		}

		order, err = repos.Orders.FindByID(ctx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   order.Status,
		"actor_id": actorID,
	}).Info("order: status changed")

	usecase.Publish(ctx, s.publisher, entity.NewEvent(entity.EventOrderStatusChanged, actorID).
		ForProject(order.ProjectID).
		ForOrder(order.ID).
		To(order.ClientID, order.FreelancerID).
		With("status", string(order.Status)))

	return order, nil
}

func newStatusChanger(store repository.Store, publisher repository.EventPublisher) statusChanger {
	return statusChanger{store: store, publisher: publisher, now: time.Now}
}

// StartOrderUseCase - фрилансер берет заказ в работу.
type StartOrderUseCase struct {
	statusChanger
}

func NewStartOrderUseCase(store repository.Store, publisher repository.EventPublisher) *StartOrderUseCase {
	return &StartOrderUseCase{statusChanger: newStatusChanger(store, publisher)}
}

func (uc *StartOrderUseCase) Execute(ctx context.Context, orderID, freelancerID uuid.UUID) (*entity.Order, error) {
	return uc.apply(ctx, orderID, freelancerID, transition{
		to:     valueobject.OrderStatusInProgress,
		actors: partyFreelancer,
	})
}

// CompleteOrderUseCase - заказчик принимает работу, проект завершается вместе с заказом.
type CompleteOrderUseCase struct {
	statusChanger
}

func NewCompleteOrderUseCase(store repository.Store, publisher repository.EventPublisher) *CompleteOrderUseCase {
	return &CompleteOrderUseCase{statusChanger: newStatusChanger(store, publisher)}
}

func (uc *CompleteOrderUseCase) Execute(ctx context.Context, orderID, clientID uuid.UUID) (*entity.Order, error) {
	completed := valueobject.ProjectStatusCompleted
	return uc.apply(ctx, orderID, clientID, transition{
		to:      valueobject.OrderStatusCompleted,
		actors:  partyClient,
		project: &completed,
	})
}

// CancelOrderUseCase - любая из сторон отменяет незавершенный заказ, проект отменяется вместе с ним.
type CancelOrderUseCase struct {
	statusChanger
}

func NewCancelOrderUseCase(store repository.Store, publisher repository.EventPublisher) *CancelOrderUseCase {
	return &CancelOrderUseCase{statusChanger: newStatusChanger(store, publisher)}
}

func (uc *CancelOrderUseCase) Execute(ctx context.Context, orderID, actorID uuid.UUID) (*entity.Order, error) {
	cancelled := valueobject.ProjectStatusCancelled
	return uc.apply(ctx, orderID, actorID, transition{
		to:      valueobject.OrderStatusCancelled,
		actors:  partyClient | partyFreelancer,
		project: &cancelled,
	})
}
