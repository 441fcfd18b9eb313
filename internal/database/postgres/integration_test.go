package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fortunaworks/spinvault/internal/database"
	"github.com/fortunaworks/spinvault/internal/database/postgres"
	"github.com/fortunaworks/spinvault/internal/domain"
)

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()

	pgC, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(15*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	defer func() {
		if err := pgC.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 10, 30*time.Minute, time.Hour)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, database.Migrate(ctx, pool))

	t.Run("account get missing returns nil", func(t *testing.T) {
		repo := postgres.NewAccountRepository(pool)
		acct, err := repo.GetAccount(ctx, "never-spun")
		require.NoError(t, err)
		assert.Nil(t, acct)
	})

	t.Run("account upsert and get", func(t *testing.T) {
		repo := postgres.NewAccountRepository(pool)

		acct := &domain.QuotaAccount{
			UserID:                "alice",
			LastSpinDay:           20660,
			FreeSpinsUsedToday:    2,
			PremiumSpinsUsedToday: 1,
			UpdatedAt:             time.Now().UTC(),
		}
		require.NoError(t, repo.UpsertAccount(ctx, acct))

		got, err := repo.GetAccount(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(20660), got.LastSpinDay)
		assert.Equal(t, 2, got.FreeSpinsUsedToday)
		assert.Equal(t, 1, got.PremiumSpinsUsedToday)

		acct.FreeSpinsUsedToday = 3
		require.NoError(t, repo.UpsertAccount(ctx, acct))

		got, err = repo.GetAccount(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 3, got.FreeSpinsUsedToday)
	})

	t.Run("pending consume is exactly once", func(t *testing.T) {
		repo := postgres.NewPendingRepository(pool)

		p := &domain.PendingSpin{
			RequestID: "req-100",
			UserID:    "bob",
			Premium:   true,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.CreatePending(ctx, p))

		count, err := repo.CountPending(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))

		// Race ten consumers for the same token; exactly one wins
		var wg sync.WaitGroup
		winners := make(chan *domain.PendingSpin, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := repo.ConsumePending(ctx, "req-100")
				assert.NoError(t, err)
				if got != nil {
					winners <- got
				}
			}()
		}
		wg.Wait()
		close(winners)

		var consumed []*domain.PendingSpin
		for w := range winners {
			consumed = append(consumed, w)
		}
		require.Len(t, consumed, 1)
		assert.Equal(t, "bob", consumed[0].UserID)
		assert.True(t, consumed[0].Premium)

		// Consuming the same token again finds nothing
		got, err := repo.ConsumePending(ctx, "req-100")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("pending stale count", func(t *testing.T) {
		repo := postgres.NewPendingRepository(pool)

		old := &domain.PendingSpin{
			RequestID: "req-old",
			UserID:    "carol",
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		}
		fresh := &domain.PendingSpin{
			RequestID: "req-fresh",
			UserID:    "carol",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.CreatePending(ctx, old))
		require.NoError(t, repo.CreatePending(ctx, fresh))

		stale, err := repo.CountStalePending(ctx, time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), stale)
	})

	t.Run("jackpot lifecycle", func(t *testing.T) {
		repo := postgres.NewJackpotRepository(pool)

		require.NoError(t, repo.InitJackpot(ctx, &domain.JackpotState{
			Pool:           10000,
			ContributionBP: 100,
			SeedAmount:     10000,
			WinningTier:    4,
			UpdatedAt:      time.Now().UTC(),
		}))

		// Re-init must not clobber existing state
		require.NoError(t, repo.InitJackpot(ctx, &domain.JackpotState{
			Pool:           999,
			ContributionBP: 500,
			SeedAmount:     999,
			WinningTier:    0,
			UpdatedAt:      time.Now().UTC(),
		}))

		state, err := repo.GetJackpot(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), state.Pool)
		assert.Equal(t, 100, state.ContributionBP)

		newPool, err := repo.CreditPool(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(10050), newPool)

		previous, err := repo.ResetPool(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10050), previous)

		state, err = repo.GetJackpot(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), state.Pool, "pool should reset to the seed amount")

		require.NoError(t, repo.SetContributionBP(ctx, 250))
		require.NoError(t, repo.SetSeedAmount(ctx, 20000))

		state, err = repo.GetJackpot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 250, state.ContributionBP)
		assert.Equal(t, int64(20000), state.SeedAmount)
	})
}
