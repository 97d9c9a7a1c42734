package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/import-cost-engine/internal/api/handlers"
	custommiddleware "github.com/ndewijer/import-cost-engine/internal/api/middleware"
	"github.com/ndewijer/import-cost-engine/internal/config"
	"github.com/ndewijer/import-cost-engine/internal/logging"
	"github.com/ndewijer/import-cost-engine/internal/metrics"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

// Services bundles what the HTTP layer delegates to.
type Services struct {
	System      *service.SystemService
	Rates       *service.RateService
	Delivery    *service.DeliveryService
	Calculation *service.CalculationService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, m *metrics.Metrics, logger *zap.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logging.OrNop(logger).Named("http")))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Method(http.MethodGet, "/metrics", m.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.Metrics(m))

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/rates", func(r chi.Router) {
			rateHandler := handlers.NewRateHandler(svc.Rates)
			r.Get("/", rateHandler.Today)
			r.With(custommiddleware.ValidateDateMiddleware).Get("/{date}", rateHandler.ByDate)
		})

		r.Route("/delivery", func(r chi.Router) {
			deliveryHandler := handlers.NewDeliveryHandler(svc.Delivery)
			r.Get("/", deliveryHandler.Get)
			r.Put("/", deliveryHandler.Update)
		})

		r.Route("/calculations", func(r chi.Router) {
			calculationHandler := handlers.NewCalculationHandler(svc.Calculation)
			r.Post("/", calculationHandler.Create)
		})
	})

	return r
}
