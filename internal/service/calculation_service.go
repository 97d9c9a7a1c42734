package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/logging"
	"github.com/ndewijer/import-cost-engine/internal/metrics"
	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/validation"
)

// RateResolver produces the snapshot a calculation is priced with.
type RateResolver interface {
	Resolve(ctx context.Context) (*model.RateSnapshot, error)
}

// CalculationService ties rate resolution, delivery configuration and the
// tariff engine together for one inbound request.
type CalculationService struct {
	rates    RateResolver
	delivery *DeliveryService
	tariff   *TariffService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCalculationService creates a new CalculationService with the provided dependencies.
func NewCalculationService(
	rates RateResolver,
	delivery *DeliveryService,
	tariff *TariffService,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CalculationService {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &CalculationService{
		rates:    rates,
		delivery: delivery,
		tariff:   tariff,
		metrics:  m,
		logger:   logging.OrNop(logger).Named("calculation"),
	}
}

// Calculate validates the vehicle, loads today's rates and the delivery
// parameters concurrently, and computes the breakdown.
func (s *CalculationService) Calculate(ctx context.Context, v model.VehicleDescription) (*model.CalculationResult, error) {
	result, err := s.calculate(ctx, v)
	s.metrics.CalculationsTotal.WithLabelValues(calculationStatus(err)).Inc()
	return result, err
}

func (s *CalculationService) calculate(ctx context.Context, v model.VehicleDescription) (*model.CalculationResult, error) {
	// A known but unpriced bracket is rejected whatever else is wrong with
	// the description, and before any network traffic.
	if v.Age.Valid() {
		if err := CheckAgeBracket(v.Age); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateVehicle(v); err != nil {
		return nil, err
	}

	var rates *model.RateSnapshot
	var delivery *model.DeliveryParameters

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rates, err = s.rates.Resolve(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		delivery, err = s.delivery.GetParameters(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("calculation inputs unavailable", zap.Error(err))
		return nil, err
	}

	result, err := s.tariff.Compute(v, rates, *delivery)
	if err != nil {
		return nil, err
	}

	s.logger.Info("calculation completed",
		zap.String("currency", string(v.Currency)),
		zap.Float64("price", v.Price),
		zap.Int("displacement", v.Displacement),
		zap.Int("horsepower", v.Horsepower),
		zap.Float64("total", result.Total),
		zap.Bool("stale_rates", result.RateStale),
	)
	return result, nil
}

func calculationStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrInvalidVehicle), errors.Is(err, apperrors.ErrUnsupportedBracket):
		return "rejected"
	case errors.Is(err, apperrors.ErrRateUnavailable):
		return "rates_unavailable"
	default:
		return "error"
	}
}
