package persistence_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-bidding/internal/db"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/events"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/persistence"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/storetest"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/acceptance"
)

// openTestDB подключается к TEST_DATABASE_URL и накатывает миграции.
// Без переменной интеграционные тесты пропускаются.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.NewPostgres(ctx, dsn, db.PoolConfig{MaxOpenConns: 20})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.MigrateUp(conn))
	return conn
}

func truncate(t *testing.T, conn *sqlx.DB) {
	t.Helper()
	_, err := conn.Exec(`TRUNCATE orders, bids, projects, profiles`)
	require.NoError(t, err)
}

func TestStore(t *testing.T) {
	conn := openTestDB(t)

	storetest.Run(t, func(t *testing.T) repository.Store {
		truncate(t, conn)
		return persistence.NewStore(conn)
	})
}

func TestStore_ImmutableColumns(t *testing.T) {
	conn := openTestDB(t)
	truncate(t, conn)
	store := persistence.NewStore(conn)
	ctx := context.Background()

	client, freelancer := seedProfiles(t, store)
	project, bid := seedProjectWithBid(t, store, client.ID, freelancer.ID, "250")

	_, err := conn.ExecContext(ctx, `UPDATE bids SET amount = 1 WHERE id = $1`, bid.ID)
	assert.Error(t, err, "bid amount is immutable")

	order, err := entity.NewOrderFromBid(project, bid, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Orders.Create(ctx, order))

	_, err = conn.ExecContext(ctx, `UPDATE orders SET amount = 1 WHERE id = $1`, order.ID)
	assert.Error(t, err, "order amount is immutable")
}

func TestStore_SingleAcceptedBidIndex(t *testing.T) {
	conn := openTestDB(t)
	truncate(t, conn)
	store := persistence.NewStore(conn)
	ctx := context.Background()

	client, f1 := seedProfiles(t, store)
	_, f2 := seedProfiles(t, store)
	project, b1 := seedProjectWithBid(t, store, client.ID, f1.ID, "250")
	b2, err := entity.NewBid(project.ID, f2.ID, decimal.NewFromInt(300), 2, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Bids.Create(ctx, b2))

	applied, err := store.Repositories().Bids.MarkStatus(ctx, b1.ID, valueobject.BidStatusAccepted)
	require.NoError(t, err)
	require.True(t, applied)

	_, err = store.Repositories().Bids.MarkStatus(ctx, b2.ID, valueobject.BidStatusAccepted)
	assert.ErrorIs(t, err, apperror.ErrProjectAlreadyAccepted)
}

func TestAcceptBid_ConcurrentOnPostgres(t *testing.T) {
	conn := openTestDB(t)
	truncate(t, conn)
	store := persistence.NewStore(conn)
	ctx := context.Background()

	client, _ := seedProfiles(t, store)
	project, err := entity.NewProject(client.ID, "Concurrent", "", decimal.NewFromInt(100), decimal.NewFromInt(500), time.Now().Add(time.Hour), time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Projects.Create(ctx, project))

	const n = 8
	bidIDs := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		_, f := seedProfiles(t, store)
		b, err := entity.NewBid(project.ID, f.ID, decimal.NewFromInt(int64(100+i)), 3, "", time.Now())
		require.NoError(t, err)
		require.NoError(t, store.Repositories().Bids.Create(ctx, b))
		bidIDs = append(bidIDs, b.ID)
	}

	uc := acceptance.NewAcceptBidUseCase(store, &events.Recorder{})

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		conflict int
	)
	for _, id := range bidIDs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := uc.Execute(ctx, id, client.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case apperror.IsConflict(err):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, n-1, conflict)

	orders, err := store.Repositories().Orders.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	bids, err := store.Repositories().Bids.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	accepted := 0
	for _, b := range bids {
		if b.IsAccepted() {
			accepted++
			assert.True(t, b.Amount.Equal(orders[0].Amount))
		} else {
			assert.Equal(t, valueobject.BidStatusRejected, b.Status)
		}
	}
	assert.Equal(t, 1, accepted)
}

func seedProfiles(t *testing.T, store repository.Store) (client, freelancer *entity.Profile) {
	t.Helper()
	ctx := context.Background()

	client, err := entity.NewProfile(uuid.NewString()+"@client.test", "hash", "Client", valueobject.RoleSet{valueobject.RoleClient})
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Profiles.Create(ctx, client))

	freelancer, err = entity.NewProfile(uuid.NewString()+"@freelancer.test", "hash", "Freelancer", valueobject.RoleSet{valueobject.RoleFreelancer})
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Profiles.Create(ctx, freelancer))
	return client, freelancer
}

func seedProjectWithBid(t *testing.T, store repository.Store, clientID, freelancerID uuid.UUID, amount string) (*entity.Project, *entity.Bid) {
	t.Helper()
	ctx := context.Background()

	project, err := entity.NewProject(clientID, "Project", "", decimal.NewFromInt(100), decimal.NewFromInt(500), time.Now().Add(time.Hour), time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Projects.Create(ctx, project))

	bid, err := entity.NewBid(project.ID, freelancerID, decimal.RequireFromString(amount), 3, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Bids.Create(ctx, bid))
	return project, bid
}
