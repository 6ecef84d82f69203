// Package storetest - общий набор проверок для реализаций repository.Store.
// Один и тот же сценарий гоняется на хранилище в памяти и на PostgreSQL.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// Run прогоняет все проверки. newStore должен возвращать пустое хранилище.
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("profiles", func(t *testing.T) { testProfiles(t, newStore(t)) })
	t.Run("projects", func(t *testing.T) { testProjects(t, newStore(t)) })
	t.Run("bids", func(t *testing.T) { testBids(t, newStore(t)) })
	t.Run("bid stats", func(t *testing.T) { testBidStats(t, newStore(t)) })
	t.Run("orders", func(t *testing.T) { testOrders(t, newStore(t)) })
	t.Run("transaction rollback", func(t *testing.T) { testRollback(t, newStore(t)) })
}

var errAbort = errors.New("abort")

// now усечено до микросекунд: так хранит время PostgreSQL.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func email() string {
	return uuid.NewString()[:8] + "." + gofakeit.Email()
}

func createProfile(t *testing.T, store repository.Store, roles ...valueobject.Role) *entity.Profile {
	t.Helper()
	p, err := entity.NewProfile(email(), "$2a$10$hash", gofakeit.Name(), valueobject.RoleSet(roles))
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Profiles.Create(context.Background(), p))
	return p
}

func createProject(t *testing.T, store repository.Store, clientID uuid.UUID, created time.Time) *entity.Project {
	t.Helper()
	p, err := entity.NewProject(clientID, gofakeit.JobTitle(), gofakeit.Blurb(),
		decimal.NewFromInt(100), decimal.NewFromInt(500), created.Add(7*24*time.Hour), created)
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Projects.Create(context.Background(), p))
	return p
}

func createBid(t *testing.T, store repository.Store, projectID, freelancerID uuid.UUID, amount string, created time.Time) *entity.Bid {
	t.Helper()
	b, err := entity.NewBid(projectID, freelancerID, decimal.RequireFromString(amount), 3, gofakeit.BS(), created)
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Bids.Create(context.Background(), b))
	return b
}

func testProfiles(t *testing.T, store repository.Store) {
	ctx := context.Background()
	profiles := store.Repositories().Profiles

	p := createProfile(t, store, valueobject.RoleFreelancer)

	found, err := profiles.FindByEmail(ctx, p.Email)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	assert.Equal(t, []string{"freelancer"}, found.Roles.Strings())

	dup, err := entity.NewProfile(p.Email, "hash", "Dup", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, profiles.Create(ctx, dup), apperror.ErrEmailTaken)

	require.NoError(t, profiles.AddRole(ctx, p.ID, valueobject.RoleClient))
	require.NoError(t, profiles.AddRole(ctx, p.ID, valueobject.RoleClient))
	found, err = profiles.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"client", "freelancer"}, found.Roles.Strings())

	assert.ErrorIs(t, profiles.AddRole(ctx, uuid.New(), valueobject.RoleClient), apperror.ErrProfileNotFound)
	_, err = profiles.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
}

func testProjects(t *testing.T, store repository.Store) {
	ctx := context.Background()
	projects := store.Repositories().Projects
	client := createProfile(t, store, valueobject.RoleClient)

	base := now()
	older := createProject(t, store, client.ID, base.Add(-2*time.Minute))
	newer := createProject(t, store, client.ID, base.Add(-time.Minute))

	found, err := projects.FindByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.Title, found.Title)
	assert.True(t, found.Budget.Min.Equal(valueobject.MustMoney("100")))
	assert.Equal(t, valueobject.ProjectStatusOpen, found.Status)

	_, err = projects.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)

	require.NoError(t, projects.TransitionStatus(ctx, older.ID, valueobject.ProjectStatusOpen, valueobject.ProjectStatusCancelled))
	err = projects.TransitionStatus(ctx, older.ID, valueobject.ProjectStatusOpen, valueobject.ProjectStatusInProgress)
	assert.ErrorIs(t, err, apperror.ErrStatusConflict)
	err = projects.TransitionStatus(ctx, uuid.New(), valueobject.ProjectStatusOpen, valueobject.ProjectStatusInProgress)
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)

	open := valueobject.ProjectStatusOpen
	list, err := projects.List(ctx, repository.ProjectFilter{Status: &open, ClientID: &client.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)

	list, err = projects.List(ctx, repository.ProjectFilter{ClientID: &client.ID, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, older.ID, list[0].ID, "newest first")
}

func testBids(t *testing.T, store repository.Store) {
	ctx := context.Background()
	bids := store.Repositories().Bids
	client := createProfile(t, store, valueobject.RoleClient)
	f1 := createProfile(t, store, valueobject.RoleFreelancer)
	f2 := createProfile(t, store, valueobject.RoleFreelancer)
	project := createProject(t, store, client.ID, now())

	base := now()
	b1 := createBid(t, store, project.ID, f1.ID, "300", base)
	b2 := createBid(t, store, project.ID, f2.ID, "250", base.Add(time.Millisecond))

	dup, err := entity.NewBid(project.ID, f1.ID, decimal.NewFromInt(200), 2, "", base)
	require.NoError(t, err)
	assert.ErrorIs(t, bids.Create(ctx, dup), apperror.ErrDuplicateBid)

	active, err := bids.FindActive(ctx, project.ID, f1.ID)
	require.NoError(t, err)
	assert.Equal(t, b1.ID, active.ID)

	applied, err := bids.MarkStatus(ctx, b1.ID, valueobject.BidStatusWithdrawn)
	require.NoError(t, err)
	assert.True(t, applied)
	applied, err = bids.MarkStatus(ctx, b1.ID, valueobject.BidStatusAccepted)
	require.NoError(t, err)
	assert.False(t, applied, "withdrawn bid is terminal")

	_, err = bids.FindActive(ctx, project.ID, f1.ID)
	assert.ErrorIs(t, err, apperror.ErrBidNotFound)

	// после отзыва слот освобождается
	b3 := createBid(t, store, project.ID, f1.ID, "280", base.Add(2*time.Millisecond))

	rejected, err := bids.RejectPending(ctx, project.ID, &b2.ID)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, b3.ID, rejected[0].ID)
	assert.Equal(t, valueobject.BidStatusRejected, rejected[0].Status)

	list, err := bids.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{b1.ID, b2.ID, b3.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, valueobject.BidStatusWithdrawn, list[0].Status)
	assert.Equal(t, valueobject.BidStatusPending, list[1].Status)
	assert.True(t, list[1].Amount.Equal(valueobject.MustMoney("250")))

	mine, err := bids.ListByFreelancer(ctx, f1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, b3.ID, mine[0].ID, "newest first")

	_, err = bids.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrBidNotFound)
}

func testBidStats(t *testing.T, store repository.Store) {
	ctx := context.Background()
	client := createProfile(t, store, valueobject.RoleClient)
	project := createProject(t, store, client.ID, now())

	empty, err := store.Repositories().Bids.Stats(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)

	amounts := []string{"100", "200", "250.5"}
	var last *entity.Bid
	for _, amount := range amounts {
		f := createProfile(t, store, valueobject.RoleFreelancer)
		last = createBid(t, store, project.ID, f.ID, amount, now())
	}
	applied, err := store.Repositories().Bids.MarkStatus(ctx, last.ID, valueobject.BidStatusWithdrawn)
	require.NoError(t, err)
	require.True(t, applied)

	stats, err := store.Repositories().Bids.Stats(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, "150.00", stats.Average.StringFixed(2))
	assert.Equal(t, "100.00", stats.Min.StringFixed(2))
	assert.Equal(t, "200.00", stats.Max.StringFixed(2))
}

func testOrders(t *testing.T, store repository.Store) {
	ctx := context.Background()
	orders := store.Repositories().Orders
	client := createProfile(t, store, valueobject.RoleClient)
	freelancer := createProfile(t, store, valueobject.RoleFreelancer)
	project := createProject(t, store, client.ID, now())
	bid := createBid(t, store, project.ID, freelancer.ID, "250", now())

	order, err := entity.NewOrderFromBid(project, bid, now())
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, order))

	second, err := entity.NewOrderFromBid(project, bid, now())
	require.NoError(t, err)
	assert.ErrorIs(t, orders.Create(ctx, second), apperror.ErrProjectAlreadyAccepted)

	require.NoError(t, orders.TransitionStatus(ctx, order.ID, valueobject.OrderStatusPending, valueobject.OrderStatusInProgress, now()))
	err = orders.TransitionStatus(ctx, order.ID, valueobject.OrderStatusPending, valueobject.OrderStatusCancelled, now())
	assert.ErrorIs(t, err, apperror.ErrStatusConflict)

	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.OrderStatusInProgress, found.Status)
	assert.True(t, found.Amount.Equal(bid.Amount))

	list, err := orders.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = orders.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrOrderNotFound)
}

func testRollback(t *testing.T, store repository.Store) {
	ctx := context.Background()
	client := createProfile(t, store, valueobject.RoleClient)
	freelancer := createProfile(t, store, valueobject.RoleFreelancer)
	project := createProject(t, store, client.ID, now())
	bid := createBid(t, store, project.ID, freelancer.ID, "250", now())

	err := store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Projects.TransitionStatus(ctx, project.ID, valueobject.ProjectStatusOpen, valueobject.ProjectStatusInProgress); err != nil {
			return err
		}
		if _, err := repos.Bids.MarkStatus(ctx, bid.ID, valueobject.BidStatusAccepted); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	p, err := store.Repositories().Projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ProjectStatusOpen, p.Status)

	b, err := store.Repositories().Bids.FindByID(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BidStatusPending, b.Status)

	require.NoError(t, store.Ping(ctx))
}
