package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

const maxProposalLength = 5000

// Bid - предложение фрилансера по проекту. После создания меняется только статус.
type Bid struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	FreelancerID uuid.UUID
	Amount       valueobject.Money
	DeliveryDays int
	ProposalText string
	Status       valueobject.BidStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewBid(projectID, freelancerID uuid.UUID, amount decimal.Decimal, deliveryDays int, proposalText string, now time.Time) (*Bid, error) {
	money, err := valueobject.PositiveMoney(amount, "amount")
	if err != nil {
		return nil, err
	}
	if deliveryDays < 1 {
		return nil, apperror.Validation("delivery_days должно быть не меньше 1")
	}
	proposalText = strings.TrimSpace(proposalText)
	if len(proposalText) > maxProposalLength {
		return nil, apperror.Validation("слишком длинный текст предложения")
	}

	return &Bid{
		ID:           uuid.New(),
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		Amount:       money,
		DeliveryDays: deliveryDays,
		ProposalText: proposalText,
		Status:       valueobject.BidStatusPending,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

func (b *Bid) IsOwnedBy(profileID uuid.UUID) bool {
	return b.FreelancerID == profileID
}

func (b *Bid) IsPending() bool {
	return b.Status == valueobject.BidStatusPending
}

func (b *Bid) IsAccepted() bool {
	return b.Status == valueobject.BidStatusAccepted
}

// SortBids упорядочивает ставки по времени создания, при равенстве по id.
func SortBids(bids []*Bid) {
	slices.SortStableFunc(bids, func(a, b *Bid) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
