package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/logging"
	"github.com/ndewijer/import-cost-engine/internal/metrics"
	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/ratesource"
)

// RateStore is the date-keyed snapshot cache. UpsertSnapshot must replace
// any existing entry for the date.
type RateStore interface {
	FindSnapshot(ctx context.Context, day time.Time) (*model.RateSnapshot, error)
	UpsertSnapshot(ctx context.Context, snap model.RateSnapshot) error
	FindLatestCompleteBefore(ctx context.Context, day time.Time) (*model.RateSnapshot, error)
}

// RateService resolves one complete snapshot per calendar day: cache first,
// fetch and extract on a miss, and an earlier cached day when that fails.
type RateService struct {
	store     RateStore
	source    ratesource.Source
	extractor *ratesource.Extractor
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewRateService creates a new RateService with the provided dependencies.
func NewRateService(
	store RateStore,
	source ratesource.Source,
	extractor *ratesource.Extractor,
	m *metrics.Metrics,
	logger *zap.Logger,
) *RateService {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &RateService{
		store:     store,
		source:    source,
		extractor: extractor,
		metrics:   m,
		logger:    logging.OrNop(logger).Named("rates"),
		now:       time.Now,
	}
}

// WithClock replaces the clock used by Resolve to decide what "today" is.
func (s *RateService) WithClock(now func() time.Time) *RateService {
	s.now = now
	return s
}

// Resolve returns the snapshot for the current local calendar day.
func (s *RateService) Resolve(ctx context.Context) (*model.RateSnapshot, error) {
	return s.ResolveForDate(ctx, s.now())
}

// ResolveForDate returns a complete snapshot for day.
//
// A complete stored snapshot is returned without touching the network.
// Otherwise the source is fetched once and run through the extraction chain;
// a successful result is stored for day, overwriting any partial entry.
// When fetching or extracting fails the resolver falls back, in order, to a
// complete snapshot for day written meanwhile by a concurrent resolution and
// to the most recent complete snapshot of an earlier day (marked Stale).
// Partial snapshots are never returned.
func (s *RateService) ResolveForDate(ctx context.Context, day time.Time) (*model.RateSnapshot, error) {
	day = model.Day(day)
	log := s.logger.With(zap.String("date", model.DateKey(day)))

	cached := s.cached(ctx, day, log)
	if cached.IsComplete() {
		s.metrics.RateResolutionsTotal.WithLabelValues(metrics.OutcomeCacheHit).Inc()
		log.Debug("rate snapshot served from cache")
		return cached, nil
	}

	// Fetch and write run to completion even when the caller goes away.
	detached := context.WithoutCancel(ctx)

	start := time.Now()
	body, err := s.source.FetchDocument(detached)
	s.metrics.SourceFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Warn("rate source fetch failed", zap.Error(err))
		return s.fallback(ctx, day, err, log)
	}

	result, err := s.extractor.Extract(body)
	if err != nil {
		log.Warn("rate document extraction failed", zap.Error(err), zap.Int("bytes", len(body)))
		return s.fallback(ctx, day, err, log)
	}

	snap := model.RateSnapshot{Date: day, Rates: result.Rates}
	if err := s.store.UpsertSnapshot(detached, snap); err != nil {
		// The rates are still valid for this request; the next one refetches.
		log.Error("failed to store rate snapshot", zap.Error(err))
	}

	s.metrics.RateStrategyWinsTotal.WithLabelValues(result.Strategy).Inc()
	s.metrics.RateResolutionsTotal.WithLabelValues(metrics.OutcomeFetched).Inc()
	log.Info("rate snapshot resolved",
		zap.String("strategy", result.Strategy),
		zap.Any("rates", result.Rates),
	)
	return &snap, nil
}

// Snapshot returns the stored snapshot for day without resolving it.
// An incomplete entry is reported as ErrSnapshotNotFound.
func (s *RateService) Snapshot(ctx context.Context, day time.Time) (*model.RateSnapshot, error) {
	snap, err := s.store.FindSnapshot(ctx, model.Day(day))
	if err != nil {
		return nil, err
	}
	if !snap.IsComplete() {
		return nil, fmt.Errorf("%w: stored entry for %s is incomplete", apperrors.ErrSnapshotNotFound, model.DateKey(day))
	}
	return snap, nil
}

// cached reads the stored snapshot for day, treating read errors as a miss.
func (s *RateService) cached(ctx context.Context, day time.Time, log *zap.Logger) *model.RateSnapshot {
	snap, err := s.store.FindSnapshot(ctx, day)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			log.Warn("rate cache read failed", zap.Error(err))
		}
		return nil
	}
	return snap
}

func (s *RateService) fallback(ctx context.Context, day time.Time, cause error, log *zap.Logger) (*model.RateSnapshot, error) {
	if today := s.cached(ctx, day, log); today.IsComplete() {
		s.metrics.RateResolutionsTotal.WithLabelValues(metrics.OutcomeCacheHit).Inc()
		log.Info("using snapshot stored by a concurrent resolution")
		return today, nil
	}

	stale, err := s.store.FindLatestCompleteBefore(ctx, day)
	if err == nil && stale.IsComplete() {
		s.metrics.RateResolutionsTotal.WithLabelValues(metrics.OutcomeStale).Inc()
		log.Warn("serving stale rate snapshot",
			zap.String("snapshot_date", stale.DateKey()),
			zap.Error(cause),
		)
		stale.Stale = true
		return stale, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrSnapshotNotFound) {
		log.Warn("stale snapshot lookup failed", zap.Error(err))
	}

	s.metrics.RateResolutionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
	return nil, fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, cause)
}
