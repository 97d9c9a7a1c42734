// Package scheduler keeps today's rate snapshot warm on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/import-cost-engine/internal/logging"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// runTimeout bounds a single scheduled resolution.
const runTimeout = 2 * time.Minute

// Resolver is the part of the rate service the warm-up drives.
type Resolver interface {
	Resolve(ctx context.Context) (*model.RateSnapshot, error)
}

// Warmup resolves today's rates on a schedule so the first calculation of
// the day is served from the cache.
type Warmup struct {
	cron     *cron.Cron
	resolver Resolver
	logger   *zap.Logger
}

// NewWarmup parses spec (standard five-field cron syntax or a descriptor such
// as "@daily") and registers the warm-up job. The job does not run until Start.
func NewWarmup(spec string, resolver Resolver, logger *zap.Logger) (*Warmup, error) {
	logger = logging.OrNop(logger).Named("warmup")
	cronLogger := cron.PrintfLogger(logging.NewPrintfAdapter(logger))

	w := &Warmup{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		resolver: resolver,
		logger:   logger,
	}

	if _, err := w.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_ = w.RunOnce(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid warm-up schedule %q: %w", spec, err)
	}
	return w, nil
}

// RunOnce resolves today's snapshot once. Failures are logged and returned.
func (w *Warmup) RunOnce(ctx context.Context) error {
	snap, err := w.resolver.Resolve(ctx)
	if err != nil {
		w.logger.Warn("rate warm-up failed", zap.Error(err))
		return err
	}
	w.logger.Info("rate warm-up completed",
		zap.String("date", snap.DateKey()),
		zap.Bool("stale", snap.Stale),
	)
	return nil
}

// Start runs the schedule in the background.
func (w *Warmup) Start() {
	w.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish or ctx to expire.
func (w *Warmup) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
