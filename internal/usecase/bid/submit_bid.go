package bid

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/metrics"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/identity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SubmitBidInput struct {
	ProjectID    uuid.UUID
	FreelancerID uuid.UUID
	Amount       decimal.Decimal
	DeliveryDays int
	ProposalText string
}

type SubmitBidUseCase struct {
	store     repository.Store
	gate      *identity.RoleGate
	publisher repository.EventPublisher
	now       func() time.Time
}

func NewSubmitBidUseCase(store repository.Store, gate *identity.RoleGate, publisher repository.EventPublisher) *SubmitBidUseCase {
	return &SubmitBidUseCase{store: store, gate: gate, publisher: publisher, now: time.Now}
}

// Execute проверяет роль, затем в транзакции: проект открыт, активной ставки нет, поля корректны.
// Строка проекта читается FOR SHARE, поэтому ставка не проскочит в проект, который уже принимается.
func (uc *SubmitBidUseCase) Execute(ctx context.Context, input SubmitBidInput) (*entity.Bid, error) {
	if _, err := uc.gate.Require(ctx, input.FreelancerID, valueobject.RoleFreelancer); err != nil {
		return nil, err
	}

	var (
		bid     *entity.Bid
		project *entity.Project
	)
	err := uc.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		project, err = repos.Projects.FindByIDForShare(ctx, input.ProjectID)
		if err != nil {
			return err
		}
		if project.IsOwnedBy(input.FreelancerID) {
			return apperror.Forbidden("нельзя делать ставку на собственный проект")
		}
		if !project.IsOpen() {
			return apperror.ErrProjectNotAcceptingBids
		}

		if _, err := repos.Bids.FindActive(ctx, project.ID, input.FreelancerID); err == nil {
			return apperror.ErrDuplicateBid
		} else if !apperror.IsNotFound(err) {
			return err
		}

		bid, err = entity.NewBid(project.ID, input.FreelancerID, input.Amount, input.DeliveryDays, input.ProposalText, uc.now())
		if err != nil {
			return err
		}
		return repos.Bids.Create(ctx, bid)
	})
	if err != nil {
		return nil, err
	}

	metrics.BidsSubmitted.Inc()
	logger.L().WithFields(logrus.Fields{
		"bid_id":        bid.ID,
		"project_id":    bid.ProjectID,
		"freelancer_id": bid.FreelancerID,
		"amount":        bid.Amount.String(),
		"within_budget": project.Budget.Contains(bid.Amount),
	}).Info("bid: submitted")

	usecase.Publish(ctx, uc.publisher, entity.NewEvent(entity.EventBidSubmitted, bid.FreelancerID).
		ForProject(bid.ProjectID).
		ForBid(bid.ID).
		To(project.ClientID).
		With("amount", bid.Amount.String()).
		With("within_budget", strconv.FormatBool(project.Budget.Contains(bid.Amount))))

	return bid, nil
}
