package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/import-cost-engine/internal/api/middleware"
	"github.com/ndewijer/import-cost-engine/internal/api/request"
	"github.com/ndewijer/import-cost-engine/internal/api/response"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

// RateHandler exposes the day's conversion rates.
type RateHandler struct {
	rateService *service.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService *service.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

// Today resolves the current day's snapshot, fetching it when it is not cached.
//
// Endpoint: GET /api/rates
// Response: 200 OK with model.RateSnapshot
// Error: 503 Service Unavailable if no fresh or cached rates exist
func (h *RateHandler) Today(w http.ResponseWriter, r *http.Request) {
	snap, err := h.rateService.Resolve(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to resolve exchange rates")
		return
	}
	response.RespondJSON(w, http.StatusOK, snap)
}

// ByDate returns what is stored for a date without fetching.
//
// Endpoint: GET /api/rates/{date}
// Response: 200 OK with model.RateSnapshot
// Error: 400 Bad Request for a malformed date, 404 Not Found if nothing is stored
func (h *RateHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	day, ok := middleware.DateFromContext(r.Context())
	if !ok {
		var err error
		day, err = request.ParseDateParam(chi.URLParam(r, "date"), time.Local)
		if err != nil {
			respondServiceError(w, err, "invalid date")
			return
		}
	}

	snap, err := h.rateService.Snapshot(r.Context(), day)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve exchange rates")
		return
	}
	response.RespondJSON(w, http.StatusOK, snap)
}
