package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// Order - обязательство, возникающее при принятии ставки. Сумма копируется из ставки и не меняется.
type Order struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	BidID        uuid.UUID
	ClientID     uuid.UUID
	FreelancerID uuid.UUID
	Amount       valueobject.Money
	Status       valueobject.OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrderFromBid формирует заказ по принятой ставке.
func NewOrderFromBid(project *Project, bid *Bid, now time.Time) (*Order, error) {
	if bid.ProjectID != project.ID {
		return nil, apperror.New(apperror.ErrCodeInternal, "ставка относится к другому проекту")
	}
	return &Order{
		ID:           uuid.New(),
		ProjectID:    project.ID,
		BidID:        bid.ID,
		ClientID:     project.ClientID,
		FreelancerID: bid.FreelancerID,
		Amount:       bid.Amount,
		Status:       valueobject.OrderStatusPending,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

func (o *Order) IsParty(profileID uuid.UUID) bool {
	return o.ClientID == profileID || o.FreelancerID == profileID
}
