package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/import-cost-engine/internal/metrics"
	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/ratesource"
	"github.com/ndewijer/import-cost-engine/internal/repository"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

// Today is the fixed "current day" test clocks report.
var Today = Date(2026, time.October, 18)

// Clock returns a clock frozen at t, for RateService.WithClock.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewTestRateService wires a RateService over the SQLite store, the given
// source and a fresh metrics registry, with its clock frozen at Today.
func NewTestRateService(t *testing.T, db *sql.DB, source ratesource.Source) *service.RateService {
	t.Helper()
	return NewTestRateServiceWithMetrics(t, db, source, metrics.NewMetrics())
}

// NewTestRateServiceWithMetrics is NewTestRateService recording into m.
func NewTestRateServiceWithMetrics(t *testing.T, db *sql.DB, source ratesource.Source, m *metrics.Metrics) *service.RateService {
	t.Helper()

	return service.NewRateService(
		repository.NewRateRepository(db),
		source,
		ratesource.NewExtractor(ratesource.DefaultLayout()),
		m,
		nil,
	).WithClock(Clock(Today))
}

func NewTestDeliveryService(t *testing.T, db *sql.DB) *service.DeliveryService {
	t.Helper()

	return service.NewDeliveryService(repository.NewDeliveryRepository(db))
}

func NewTestCalculationService(t *testing.T, db *sql.DB, source ratesource.Source) *service.CalculationService {
	t.Helper()
	return NewTestCalculationServiceWithMetrics(t, db, source, metrics.NewMetrics())
}

// NewTestCalculationServiceWithMetrics builds the calculation service and
// its rate service on one shared metrics instance, the way the server does.
func NewTestCalculationServiceWithMetrics(t *testing.T, db *sql.DB, source ratesource.Source, m *metrics.Metrics) *service.CalculationService {
	t.Helper()

	return service.NewCalculationService(
		NewTestRateServiceWithMetrics(t, db, source, m),
		NewTestDeliveryService(t, db),
		service.NewTariffService(nil),
		m,
		nil,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, nil)
}

// CreateSnapshot stores rates for day directly, bypassing the resolver.
// Passing a subset of currencies leaves a partial snapshot behind.
func CreateSnapshot(t *testing.T, db *sql.DB, day time.Time, rates map[model.Currency]float64) model.RateSnapshot {
	t.Helper()

	snap := model.RateSnapshot{Date: model.Day(day), Rates: rates}
	if err := repository.NewRateRepository(db).UpsertSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("Failed to create rate snapshot: %v", err)
	}
	return snap
}

// VehicleBuilder provides a fluent interface for vehicle descriptions.
//
// Example usage:
//
//	v := testutil.NewVehicle().WithDisplacement(2500).WithHorsepower(200).Build()
type VehicleBuilder struct {
	v model.VehicleDescription
}

// NewVehicle returns a builder for a 3-5 year old, 1000cc, 140hp combustion
// vehicle priced at 300000 CNY.
func NewVehicle() *VehicleBuilder {
	return &VehicleBuilder{v: model.VehicleDescription{
		Price:        300000,
		Currency:     model.CNY,
		Age:          model.AgeThreeTo5,
		Engine:       model.EngineCombustion,
		Displacement: 1000,
		Horsepower:   140,
	}}
}

func (b *VehicleBuilder) WithPrice(price float64, currency model.Currency) *VehicleBuilder {
	b.v.Price = price
	b.v.Currency = currency
	return b
}

func (b *VehicleBuilder) WithAge(age model.AgeBracket) *VehicleBuilder {
	b.v.Age = age
	return b
}

func (b *VehicleBuilder) WithEngine(engine model.EngineType) *VehicleBuilder {
	b.v.Engine = engine
	return b
}

func (b *VehicleBuilder) WithDisplacement(cc int) *VehicleBuilder {
	b.v.Displacement = cc
	return b
}

func (b *VehicleBuilder) WithHorsepower(hp int) *VehicleBuilder {
	b.v.Horsepower = hp
	return b
}

// Build returns the described vehicle.
func (b *VehicleBuilder) Build() model.VehicleDescription {
	return b.v
}
