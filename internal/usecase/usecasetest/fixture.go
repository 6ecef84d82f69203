// Package usecasetest собирает окружение для тестов сценариев: хранилище в памяти,
// запись событий и генераторы участников, проектов и ставок.
package usecasetest

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/events"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/memory"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/identity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type Fixture struct {
	Store  *memory.Store
	Events *events.Recorder
	Gate   *identity.RoleGate
}

func New() *Fixture {
	store := memory.NewStore()
	return &Fixture{
		Store:  store,
		Events: &events.Recorder{},
		Gate:   identity.NewRoleGate(store.Repositories().Profiles),
	}
}

func (f *Fixture) Profile(t *testing.T, roles ...valueobject.Role) *entity.Profile {
	t.Helper()
	profile, err := entity.NewProfile(UniqueEmail(), "$2a$10$hash", gofakeit.Name(), valueobject.RoleSet(roles))
	require.NoError(t, err)
	require.NoError(t, f.Store.Repositories().Profiles.Create(context.Background(), profile))
	return profile
}

// UniqueEmail - адрес gofakeit с уникальным префиксом, чтобы не ловить ErrEmailTaken.
func UniqueEmail() string {
	return uuid.NewString()[:8] + "." + gofakeit.Email()
}

func (f *Fixture) Client(t *testing.T) *entity.Profile {
	return f.Profile(t, valueobject.RoleClient)
}

func (f *Fixture) Freelancer(t *testing.T) *entity.Profile {
	return f.Profile(t, valueobject.RoleFreelancer)
}

// Project создает открытый проект с бюджетом [min, max] и дедлайном через 7 дней.
func (f *Fixture) Project(t *testing.T, clientID uuid.UUID, min, max string) *entity.Project {
	t.Helper()
	project, err := entity.NewProject(clientID, gofakeit.JobTitle(), gofakeit.Blurb(),
		decimal.RequireFromString(min), decimal.RequireFromString(max),
		time.Now().Add(7*24*time.Hour), time.Now())
	require.NoError(t, err)
	require.NoError(t, f.Store.Repositories().Projects.Create(context.Background(), project))
	return project
}

// Bid кладет pending ставку напрямую в хранилище, минуя проверки сценария.
func (f *Fixture) Bid(t *testing.T, projectID, freelancerID uuid.UUID, amount string, days int) *entity.Bid {
	t.Helper()
	bid, err := entity.NewBid(projectID, freelancerID, decimal.RequireFromString(amount), days, gofakeit.BS()+" "+gofakeit.Blurb(), time.Now())
	require.NoError(t, err)
	require.NoError(t, f.Store.Repositories().Bids.Create(context.Background(), bid))
	return bid
}

func (f *Fixture) ReloadProject(t *testing.T, id uuid.UUID) *entity.Project {
	t.Helper()
	p, err := f.Store.Repositories().Projects.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *Fixture) ReloadBid(t *testing.T, id uuid.UUID) *entity.Bid {
	t.Helper()
	b, err := f.Store.Repositories().Bids.FindByID(context.Background(), id)
	require.NoError(t, err)
	return b
}

func (f *Fixture) Orders(t *testing.T, projectID uuid.UUID) []*entity.Order {
	t.Helper()
	orders, err := f.Store.Repositories().Orders.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	return orders
}
