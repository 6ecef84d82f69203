package acceptance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/metrics"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase"
	"github.com/sirupsen/logrus"
)

// AcceptBidUseCase принимает ставку: проект уходит в работу, конкурирующие ставки отклоняются,
// создается заказ. Все записи выполняются в одной транзакции.
//
// Единственного победителя среди параллельных вызовов определяет условный UPDATE статуса
// проекта open -> in_progress: применить его может только одна транзакция.
type AcceptBidUseCase struct {
	store     repository.Store
	publisher repository.EventPublisher
	now       func() time.Time
}

func NewAcceptBidUseCase(store repository.Store, publisher repository.EventPublisher) *AcceptBidUseCase {
	return &AcceptBidUseCase{store: store, publisher: publisher, now: time.Now}
}

type acceptResult struct {
	project  *entity.Project
	bid      *entity.Bid
	order    *entity.Order
	rejected []*entity.Bid
}

func (uc *AcceptBidUseCase) Execute(ctx context.Context, bidID, clientID uuid.UUID) (*entity.Order, error) {
	started := time.Now()

	var res acceptResult
	err := uc.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		res, err = uc.accept(ctx, repos, bidID, clientID)
		return err
	})

	metrics.ObserveAcceptance(resultLabel(err), started)
	log := logger.L().WithFields(logrus.Fields{
		"bid_id":    bidID,
		"client_id": clientID,
	})
	if err != nil {
		log.WithError(err).Info("acceptance: rejected")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"project_id":    res.project.ID,
		"order_id":      res.order.ID,
		"amount":        res.order.Amount.String(),
		"rejected_bids": len(res.rejected),
	}).Info("acceptance: order created")

	usecase.Publish(ctx, uc.publisher, acceptanceEvents(res, clientID)...)

	return res.order, nil
}

func (uc *AcceptBidUseCase) accept(ctx context.Context, repos repository.Repositories, bidID, clientID uuid.UUID) (acceptResult, error) {
	bid, err := repos.Bids.FindByID(ctx, bidID)
	if err != nil {
		return acceptResult{}, err
	}

	project, err := repos.Projects.FindByID(ctx, bid.ProjectID)
	if err != nil {
		return acceptResult{}, err
	}
	if !project.IsOwnedBy(clientID) {
		return acceptResult{}, apperror.ErrNotProjectOwner
	}
	if !bid.IsPending() {
		return acceptResult{}, apperror.ErrBidNotAcceptable
	}
	if !project.IsOpen() {
		return acceptResult{}, apperror.ErrProjectNotOpen
	}

	err = repos.Projects.TransitionStatus(ctx, project.ID, valueobject.ProjectStatusOpen, valueobject.ProjectStatusInProgress)
	if errors.Is(err, apperror.ErrStatusConflict) {
		return acceptResult{}, apperror.ErrProjectAlreadyAccepted
	}
	if err != nil {
		return acceptResult{}, err
	}
	project.Status = valueobject.ProjectStatusInProgress

	// Ставку могли отозвать между чтением и записью. Ошибка откатывает и смену статуса проекта.
	applied, err := repos.Bids.MarkStatus(ctx, bid.ID, valueobject.BidStatusAccepted)
	if err != nil {
		return acceptResult{}, err
	}
	if !applied {
		return acceptResult{}, apperror.ErrBidNotAcceptable
	}
	bid.Status = valueobject.BidStatusAccepted

	rejected, err := repos.Bids.RejectPending(ctx, project.ID, &bid.ID)
	if err != nil {
		return acceptResult{}, err
	}

	order, err := entity.NewOrderFromBid(project, bid, uc.now())
	if err != nil {
		return acceptResult{}, err
	}
	if err := repos.Orders.Create(ctx, order); err != nil {
		return acceptResult{}, err
	}

	return acceptResult{project: project, bid: bid, order: order, rejected: rejected}, nil
}

func acceptanceEvents(res acceptResult, clientID uuid.UUID) []entity.Event {
	events := []entity.Event{
		entity.NewEvent(entity.EventBidAccepted, clientID).
			ForProject(res.project.ID).
			ForBid(res.bid.ID).
			To(res.bid.FreelancerID),
		entity.NewEvent(entity.EventOrderCreated, clientID).
			ForProject(res.project.ID).
			ForBid(res.bid.ID).
			ForOrder(res.order.ID).
			To(res.order.ClientID, res.order.FreelancerID).
			With("amount", res.order.Amount.String()),
	}
	for _, b := range res.rejected {
		events = append(events, entity.NewEvent(entity.EventBidRejected, clientID).
			ForProject(res.project.ID).
			ForBid(b.ID).
			To(b.FreelancerID))
	}
	return events
}

func resultLabel(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	switch apperror.CodeOf(err) {
	case apperror.ErrCodeConflict:
		return metrics.ResultConflict
	case apperror.ErrCodeForbidden:
		return metrics.ResultForbidden
	case apperror.ErrCodeNotFound:
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
