package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/import-cost-engine/internal/api"
	"github.com/ndewijer/import-cost-engine/internal/config"
	"github.com/ndewijer/import-cost-engine/internal/database"
	"github.com/ndewijer/import-cost-engine/internal/logging"
	"github.com/ndewijer/import-cost-engine/internal/metrics"
	"github.com/ndewijer/import-cost-engine/internal/ratesource"
	"github.com/ndewijer/import-cost-engine/internal/repository"
	"github.com/ndewijer/import-cost-engine/internal/scheduler"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, logging.NewPrintfAdapter(logger.Named("migrate"))); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.Info("connected to database", zap.String("path", cfg.Database.Path))

	rateStore, cache, closeStore := newRateStore(cfg, db, logger)
	defer closeStore()

	appMetrics := metrics.NewMetrics()

	// Create services
	rateService := service.NewRateService(
		rateStore,
		ratesource.NewClient(cfg.RateSource.URL, cfg.RateSource.Timeout),
		newExtractor(cfg.RateSource),
		appMetrics,
		logger,
	)
	deliveryService := service.NewDeliveryService(repository.NewDeliveryRepository(db))
	calculationService := service.NewCalculationService(
		rateService,
		deliveryService,
		service.NewTariffService(logger),
		appMetrics,
		logger,
	)
	systemService := service.NewSystemService(db, cache)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Rates:       rateService,
		Delivery:    deliveryService,
		Calculation: calculationService,
	}, appMetrics, logger, cfg)

	var warmup *scheduler.Warmup
	if cfg.Scheduler.WarmupCron != "" {
		warmup, err = scheduler.NewWarmup(cfg.Scheduler.WarmupCron, rateService, logger)
		if err != nil {
			logger.Fatal("failed to configure rate warm-up", zap.Error(err))
		}
		warmup.Start()
		logger.Info("rate warm-up scheduled", zap.String("schedule", cfg.Scheduler.WarmupCron))
	}

	// Create HTTP server. Calculations may wait on the rate source, which has
	// no timeout of its own by default, so writes get a generous deadline.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if warmup != nil {
		warmup.Stop(ctx)
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited")
}

// newRateStore selects the snapshot cache. cache is nil unless an external
// store needs its own health check.
func newRateStore(cfg *config.Config, db *sql.DB, logger *zap.Logger) (service.RateStore, service.Pinger, func()) {
	if cfg.Storage.RateStore != config.StoreRedis {
		return repository.NewRateRepository(db), nil, func() {}
	}

	store, err := repository.NewRedisRateRepository(repository.RedisConfig{
		Addr:     cfg.Storage.Redis.Addr,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
	})
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("using redis rate store", zap.String("addr", cfg.Storage.Redis.Addr))

	return store, store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}

func newExtractor(cfg config.RateSourceConfig) *ratesource.Extractor {
	if cfg.Format == "json" {
		return ratesource.NewJSONExtractor()
	}
	return ratesource.NewExtractor(ratesource.Layout{
		PrimaryTab: cfg.PrimaryTab,
		LegacyTab:  cfg.LegacyTab,
	})
}
