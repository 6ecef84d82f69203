package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/project"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/usecasetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInput(clientID uuid.UUID, min, max string, deadline time.Time) project.CreateProjectInput {
	return project.CreateProjectInput{
		ClientID:    clientID,
		Title:       "Landing page",
		Description: "Responsive landing page with a contact form",
		BudgetMin:   decimal.RequireFromString(min),
		BudgetMax:   decimal.RequireFromString(max),
		Deadline:    deadline,
	}
}

func TestCreateProjectUseCase_Success(t *testing.T) {
	f := usecasetest.New()
	client := f.Client(t)
	uc := project.NewCreateProjectUseCase(f.Store, f.Gate, f.Events)

	p, err := uc.Execute(context.Background(), createInput(client.ID, "100", "500", time.Now().Add(7*24*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, valueobject.ProjectStatusOpen, p.Status)
	assert.Equal(t, client.ID, p.ClientID)
	assert.Equal(t, "100.00", p.Budget.Min.String())

	stored := f.ReloadProject(t, p.ID)
	assert.Equal(t, p.Title, stored.Title)
	assert.Equal(t, []entity.EventType{entity.EventProjectCreated}, f.Events.Types())
}

func TestCreateProjectUseCase_Validation(t *testing.T) {
	f := usecasetest.New()
	client := f.Client(t)
	uc := project.NewCreateProjectUseCase(f.Store, f.Gate, f.Events)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name  string
		input project.CreateProjectInput
	}{
		{"min above max", createInput(client.ID, "600", "500", future)},
		{"zero budget", createInput(client.ID, "0", "500", future)},
		{"deadline in past", createInput(client.ID, "100", "500", time.Now().Add(-time.Minute))},
		{"empty title", func() project.CreateProjectInput {
			in := createInput(client.ID, "100", "500", future)
			in.Title = "  "
			return in
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.True(t, apperror.IsValidation(err), "got %v", err)
		})
	}
}

func TestCreateProjectUseCase_RequiresClientRole(t *testing.T) {
	f := usecasetest.New()
	uc := project.NewCreateProjectUseCase(f.Store, f.Gate, f.Events)

	_, err := uc.Execute(context.Background(), createInput(f.Freelancer(t).ID, "100", "500", time.Now().Add(time.Hour)))
	assert.True(t, apperror.IsForbidden(err))
	assert.Empty(t, f.Events.Events())
}

func TestCancelProjectUseCase(t *testing.T) {
	f := usecasetest.New()
	client := f.Client(t)
	p := f.Project(t, client.ID, "100", "500")
	b1 := f.Bid(t, p.ID, f.Freelancer(t).ID, "300", 5)
	b2 := f.Bid(t, p.ID, f.Freelancer(t).ID, "250", 4)
	uc := project.NewCancelProjectUseCase(f.Store, f.Events)
	ctx := context.Background()

	_, err := uc.Execute(ctx, p.ID, f.Client(t).ID)
	assert.ErrorIs(t, err, apperror.ErrNotProjectOwner)

	cancelled, err := uc.Execute(ctx, p.ID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ProjectStatusCancelled, cancelled.Status)
	assert.Equal(t, valueobject.BidStatusRejected, f.ReloadBid(t, b1.ID).Status)
	assert.Equal(t, valueobject.BidStatusRejected, f.ReloadBid(t, b2.ID).Status)

	_, err = uc.Execute(ctx, p.ID, client.ID)
	assert.ErrorIs(t, err, apperror.ErrProjectNotOpen)

	assert.Equal(t,
		[]entity.EventType{entity.EventProjectCancelled, entity.EventBidRejected, entity.EventBidRejected},
		f.Events.Types())
}

func TestListProjectsUseCase(t *testing.T) {
	f := usecasetest.New()
	client := f.Client(t)
	open := f.Project(t, client.ID, "100", "500")
	closed := f.Project(t, client.ID, "100", "500")
	require.NoError(t, f.Store.Repositories().Projects.TransitionStatus(context.Background(), closed.ID,
		valueobject.ProjectStatusOpen, valueobject.ProjectStatusCancelled))
	uc := project.NewListProjectsUseCase(f.Store)

	projects, err := uc.Execute(context.Background(), project.ListProjectsInput{Status: "open"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, open.ID, projects[0].ID)

	all, err := uc.Execute(context.Background(), project.ListProjectsInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paged, err := uc.Execute(context.Background(), project.ListProjectsInput{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)

	_, err = uc.Execute(context.Background(), project.ListProjectsInput{Status: "archived"})
	assert.True(t, apperror.IsValidation(err))
}

func TestGetProjectUseCase_NotFound(t *testing.T) {
	f := usecasetest.New()
	_, err := project.NewGetProjectUseCase(f.Store).Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)
}
