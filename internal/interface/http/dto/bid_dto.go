package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type SubmitBidRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	DeliveryDays int             `json:"delivery_days" binding:"gte=1"`
	ProposalText string          `json:"proposal_text" binding:"max=5000"`
}

type BidResponse struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	Amount       string    `json:"amount"`
	DeliveryDays int       `json:"delivery_days"`
	ProposalText string    `json:"proposal_text"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToBidResponse(b *entity.Bid) BidResponse {
	return BidResponse{
		ID:           b.ID,
		ProjectID:    b.ProjectID,
		FreelancerID: b.FreelancerID,
		Amount:       b.Amount.String(),
		DeliveryDays: b.DeliveryDays,
		ProposalText: b.ProposalText,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func ToBidResponses(bids []*entity.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, ToBidResponse(b))
	}
	return out
}
