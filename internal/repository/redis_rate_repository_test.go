package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	redis "github.com/redis/go-redis/v9"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/repository"
	"github.com/ndewijer/import-cost-engine/internal/testutil"
)

// setupRedis connects to the server named by REDIS_TEST_ADDR and empties the
// selected database. Tests are skipped when no server is configured.
func setupRedis(t *testing.T) *repository.RedisRateRepository {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}

	repo, err := repository.NewRedisRateRepository(repository.RedisConfig{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func TestNewRedisRateRepository(t *testing.T) {
	t.Run("requires an address", func(t *testing.T) {
		if _, err := repository.NewRedisRateRepository(repository.RedisConfig{}); err == nil {
			t.Error("Expected error for empty address")
		}
	})
}

func TestRedisRateRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupRedis(t)

	if _, err := repo.FindSnapshot(ctx, testutil.Today); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
	}

	older := testutil.Today.AddDate(0, 0, -3)
	for _, snap := range []model.RateSnapshot{
		{Date: older, Rates: testutil.DefaultRates()},
		{Date: testutil.Today.AddDate(0, 0, -1), Rates: map[model.Currency]float64{model.USD: 80}},
		{Date: testutil.Today, Rates: map[model.Currency]float64{model.USD: 81}},
	} {
		if err := repo.UpsertSnapshot(ctx, snap); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	// Overwrite today's partial entry with a complete one.
	if err := repo.UpsertSnapshot(ctx, model.RateSnapshot{Date: testutil.Today, Rates: testutil.DefaultRates()}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	today, err := repo.FindSnapshot(ctx, testutil.Today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !today.IsComplete() || today.Rates[model.USD] != 82.5 {
		t.Errorf("Expected complete overwritten snapshot, got %+v", today.Rates)
	}

	stale, err := repo.FindLatestCompleteBefore(ctx, testutil.Today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stale.DateKey() != model.DateKey(older) {
		t.Errorf("Expected %s, got %s", model.DateKey(older), stale.DateKey())
	}
}
