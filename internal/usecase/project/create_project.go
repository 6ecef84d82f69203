package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/usecase"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/identity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateProjectInput struct {
	ClientID    uuid.UUID
	Title       string
	Description string
	BudgetMin   decimal.Decimal
	BudgetMax   decimal.Decimal
	Deadline    time.Time
}

type CreateProjectUseCase struct {
	store     repository.Store
	gate      *identity.RoleGate
	publisher repository.EventPublisher
	now       func() time.Time
}

func NewCreateProjectUseCase(store repository.Store, gate *identity.RoleGate, publisher repository.EventPublisher) *CreateProjectUseCase {
	return &CreateProjectUseCase{store: store, gate: gate, publisher: publisher, now: time.Now}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*entity.Project, error) {
	if _, err := uc.gate.Require(ctx, input.ClientID, valueobject.RoleClient); err != nil {
		return nil, err
	}

	project, err := entity.NewProject(
		input.ClientID,
		input.Title,
		input.Description,
		input.BudgetMin,
		input.BudgetMax,
		input.Deadline,
		uc.now(),
	)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Repositories().Projects.Create(ctx, project); err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"project_id": project.ID,
		"client_id":  project.ClientID,
		"budget":     project.Budget.String(),
	}).Info("project: created")

	usecase.Publish(ctx, uc.publisher, entity.NewEvent(entity.EventProjectCreated, project.ClientID).
		ForProject(project.ID).
		With("budget_min", project.Budget.Min.String()).
		With("budget_max", project.Budget.Max.String()))

	return project, nil
}
