package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

const maxProjectTitleLength = 200

type Project struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Title       string
	Description string
	Budget      valueobject.Budget
	Deadline    time.Time
	Status      valueobject.ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject создает открытый проект. Дедлайн сравнивается с now, чтобы тесты не зависели от часов.
func NewProject(clientID uuid.UUID, title, description string, budgetMin, budgetMax decimal.Decimal, deadline, now time.Time) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("название обязательно")
	}
	if utf8.RuneCountInString(title) > maxProjectTitleLength {
		return nil, apperror.Validation("слишком длинное название")
	}

	budget, err := valueobject.NewBudget(budgetMin, budgetMax)
	if err != nil {
		return nil, err
	}

	if !deadline.After(now) {
		return nil, apperror.Validation("deadline должен быть в будущем")
	}

	return &Project{
		ID:          uuid.New(),
		ClientID:    clientID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Budget:      budget,
		Deadline:    deadline.UTC(),
		Status:      valueobject.ProjectStatusOpen,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (p *Project) IsOwnedBy(profileID uuid.UUID) bool {
	return p.ClientID == profileID
}

func (p *Project) IsOpen() bool {
	return p.Status == valueobject.ProjectStatusOpen
}
