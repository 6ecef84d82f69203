package bid

import (
	"context"

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

type WithdrawBidUseCase struct {
	store     repository.Store
	publisher repository.EventPublisher
}

func NewWithdrawBidUseCase(store repository.Store, publisher repository.EventPublisher) *WithdrawBidUseCase {
	return &WithdrawBidUseCase{store: store, publisher: publisher}
}

// Execute отзывает ставку одной условной записью pending -> withdrawn.
// Если ставку уже приняли или отклонили, отзыв проигрывает гонку и возвращает конфликт.
func (uc *WithdrawBidUseCase) Execute(ctx context.Context, bidID, freelancerID uuid.UUID) (*entity.Bid, error) {
	repos := uc.store.Repositories()

	bid, err := repos.Bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !bid.IsOwnedBy(freelancerID) {
		return nil, apperror.ErrNotBidOwner
	}

	applied, err := repos.Bids.MarkStatus(ctx, bid.ID, valueobject.BidStatusWithdrawn)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.ErrBidNotPending
	}

	bid, err = repos.Bids.FindByID(ctx, bid.ID)
	if err != nil {
		return nil, err
	}

	metrics.BidsWithdrawn.Inc()
	logger.L().WithFields(logrus.Fields{
		"bid_id":     bid.ID,
		"project_id": bid.ProjectID,
	}).Info("bid: withdrawn")

	event := entity.NewEvent(entity.EventBidWithdrawn, freelancerID).ForProject(bid.ProjectID).ForBid(bid.ID)
	if project, err := repos.Projects.FindByID(ctx, bid.ProjectID); err == nil {
		event = event.To(project.ClientID)
	}
	usecase.Publish(ctx, uc.publisher, event)

	return bid, nil
}
