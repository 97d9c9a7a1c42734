package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

const (
	redisSnapshotPrefix = "rates:"
	redisDateIndex      = "rates:dates"

	// redisStaleScan bounds how many earlier dates are inspected when looking
	// for a complete fallback snapshot.
	redisStaleScan = 31
)

// RedisConfig holds the connection settings for RedisRateRepository.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisRateRepository stores each snapshot as a hash keyed by date
// ("rates:2006-01-02") and keeps a sorted set of stored dates for the stale lookup.
type RedisRateRepository struct {
	client *redis.Client
}

// NewRedisRateRepository connects to Redis and verifies the connection.
func NewRedisRateRepository(cfg RedisConfig) (*RedisRateRepository, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisRateRepository{client: client}, nil
}

// Close releases the underlying client.
func (r *RedisRateRepository) Close() error {
	return r.client.Close()
}

// Ping checks the connection.
func (r *RedisRateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func snapshotKey(day time.Time) string {
	return redisSnapshotPrefix + model.DateKey(day)
}

func dayScore(day time.Time) float64 {
	y, m, d := day.Date()
	return float64(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

// FindSnapshot returns the stored fields for the day, complete or not.
func (r *RedisRateRepository) FindSnapshot(ctx context.Context, day time.Time) (*model.RateSnapshot, error) {
	fields, err := r.client.HGetAll(ctx, snapshotKey(day)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", model.DateKey(day), err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrSnapshotNotFound
	}

	snap := &model.RateSnapshot{
		Date:  model.Day(day),
		Rates: make(map[model.Currency]float64, len(fields)),
	}
	for code, raw := range fields {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		snap.Rates[model.Currency(code)] = rate
	}
	return snap, nil
}

// UpsertSnapshot replaces the hash for the snapshot's date and indexes the date.
func (r *RedisRateRepository) UpsertSnapshot(ctx context.Context, snap model.RateSnapshot) error {
	values := make(map[string]any, len(snap.Rates))
	for code, rate := range snap.Rates {
		values[string(code)] = strconv.FormatFloat(rate, 'f', -1, 64)
	}
	if len(values) == 0 {
		return nil
	}

	key := snapshotKey(snap.Date)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, values)
	pipe.ZAdd(ctx, redisDateIndex, redis.Z{Score: dayScore(snap.Date), Member: model.DateKey(snap.Date)})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", model.DateKey(snap.Date), err)
	}
	return nil
}

// FindLatestCompleteBefore walks the date index backwards from the day before day.
func (r *RedisRateRepository) FindLatestCompleteBefore(ctx context.Context, day time.Time) (*model.RateSnapshot, error) {
	dates, err := r.client.ZRevRangeByScore(ctx, redisDateIndex, &redis.ZRangeBy{
		Max:   "(" + strconv.FormatFloat(dayScore(day), 'f', 0, 64),
		Min:   "-inf",
		Count: redisStaleScan,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot index: %w", err)
	}

	for _, dateStr := range dates {
		date, err := ParseDate(dateStr, day.Location())
		if err != nil {
			continue
		}
		snap, err := r.FindSnapshot(ctx, date)
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if snap.IsComplete() {
			return snap, nil
		}
	}
	return nil, apperrors.ErrSnapshotNotFound
}
