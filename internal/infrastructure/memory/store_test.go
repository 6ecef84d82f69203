package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/memory"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/storetest"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		return memory.NewStore()
	})
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := memory.NewStore()
	called := false
	err := store.WithinTx(ctx, func(context.Context, repository.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.ErrorIs(t, store.Ping(ctx), context.Canceled)
}

type seeded struct {
	client  *entity.Profile
	project *entity.Project
	bid     *entity.Bid
	order   *entity.Order
}

func seed(t *testing.T, store *memory.Store) seeded {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()
	now := time.Now().UTC()

	roles, err := valueobject.NewRoleSet("client")
	require.NoError(t, err)
	client, err := entity.NewProfile("owner@example.com", "hash", "Owner", roles)
	require.NoError(t, err)
	require.NoError(t, repos.Profiles.Create(ctx, client))

	project, err := entity.NewProject(client.ID, "Logo", "", decimal.NewFromInt(100), decimal.NewFromInt(500), now.Add(time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, repos.Projects.Create(ctx, project))

	bid, err := entity.NewBid(project.ID, uuid.New(), decimal.NewFromInt(250), 3, "", now)
	require.NoError(t, err)
	require.NoError(t, repos.Bids.Create(ctx, bid))

	order, err := entity.NewOrderFromBid(project, bid, now)
	require.NoError(t, err)

	return seeded{client: client, project: project, bid: bid, order: order}
}

// touch меняет каждую таблицу так же, как это делает принятие ставки.
func touch(ctx context.Context, repos repository.Repositories, s seeded) error {
	if _, err := repos.Bids.MarkStatus(ctx, s.bid.ID, valueobject.BidStatusAccepted); err != nil {
		return err
	}
	if err := repos.Projects.TransitionStatus(ctx, s.project.ID, valueobject.ProjectStatusOpen, valueobject.ProjectStatusInProgress); err != nil {
		return err
	}
	if err := repos.Profiles.AddRole(ctx, s.client.ID, valueobject.RoleFreelancer); err != nil {
		return err
	}
	return repos.Orders.Create(ctx, s.order)
}

func assertUntouched(t *testing.T, store *memory.Store, s seeded) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()

	bid, err := repos.Bids.FindByID(ctx, s.bid.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BidStatusPending, bid.Status)

	project, err := repos.Projects.FindByID(ctx, s.project.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ProjectStatusOpen, project.Status)

	profile, err := repos.Profiles.FindByID(ctx, s.client.ID)
	require.NoError(t, err)
	assert.False(t, profile.HasRole(valueobject.RoleFreelancer))

	_, err = repos.Orders.FindByID(ctx, s.order.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	store := memory.NewStore()
	s := seed(t, store)
	boom := errors.New("boom")

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		require.NoError(t, touch(ctx, repos, s))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assertUntouched(t, store, s)
}

func TestStore_WithinTxRollsBackOnPanic(t *testing.T) {
	store := memory.NewStore()
	s := seed(t, store)

	assert.Panics(t, func() {
		_ = store.WithinTx(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
			require.NoError(t, touch(ctx, repos, s))
			panic("boom")
		})
	})
	assertUntouched(t, store, s)

	// блокировка освобождена, следующая транзакция проходит и коммитится
	err := store.WithinTx(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return touch(ctx, repos, s)
	})
	require.NoError(t, err)

	order, err := store.Repositories().Orders.FindByID(context.Background(), s.order.ID)
	require.NoError(t, err)
	assert.Equal(t, "250.00", order.Amount.String())
}

func TestStore_WritesOutsideTxAreNotJournaled(t *testing.T) {
	store := memory.NewStore()
	s := seed(t, store)

	err := store.WithinTx(context.Background(), func(context.Context, repository.Repositories) error {
		return errors.New("abort")
	})
	require.Error(t, err)

	// строки, созданные до транзакции, не задеты ее откатом
	_, err = store.Repositories().Bids.FindByID(context.Background(), s.bid.ID)
	assert.NoError(t, err)
}
