package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest принимает суммы как числом, так и строкой.
type CreateProjectRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	BudgetMin   decimal.Decimal `json:"budget_min"`
	BudgetMax   decimal.Decimal `json:"budget_max"`
	Deadline    time.Time       `json:"deadline" binding:"required,future"`
}

type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BudgetMin   string    `json:"budget_min"`
	BudgetMax   string    `json:"budget_max"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProjectResponse(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Title:       p.Title,
		Description: p.Description,
		BudgetMin:   p.Budget.Min.String(),
		BudgetMax:   p.Budget.Max.String(),
		Deadline:    p.Deadline,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProjectResponses(projects []*entity.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}

type BidStatsResponse struct {
	Count         int    `json:"count"`
	AverageAmount string `json:"average_amount"`
	MinAmount     string `json:"min_amount"`
	MaxAmount     string `json:"max_amount"`
}

func ToBidStatsResponse(s repository.BidStats) BidStatsResponse {
	return BidStatsResponse{
		Count:         s.Count,
		AverageAmount: s.Average.StringFixed(2),
		MinAmount:     s.Min.StringFixed(2),
		MaxAmount:     s.Max.StringFixed(2),
	}
}
