package handlers

import (
	"net/http"

	"github.com/ndewijer/import-cost-engine/internal/api/request"
	"github.com/ndewijer/import-cost-engine/internal/api/response"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

// CalculationHandler prices vehicle imports.
type CalculationHandler struct {
	calculationService *service.CalculationService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(calculationService *service.CalculationService) *CalculationHandler {
	return &CalculationHandler{
		calculationService: calculationService,
	}
}

// Create computes the import cost breakdown for one vehicle.
//
// Endpoint: POST /api/calculations
// Request: request.CalculationRequest
// Response: 200 OK with model.CalculationResult
// Error: 400 Bad Request for invalid vehicles or unpriced age brackets,
// 503 Service Unavailable when no exchange rates can be obtained
func (h *CalculationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CalculationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.calculationService.Calculate(r.Context(), req.Vehicle())
	if err != nil {
		respondServiceError(w, err, "failed to calculate import cost")
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}
