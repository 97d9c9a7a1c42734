package handlers

import (
	"net/http"

	"github.com/ndewijer/import-cost-engine/internal/api/request"
	"github.com/ndewijer/import-cost-engine/internal/api/response"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

// DeliveryHandler reads and updates the delivery cost parameters.
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
	}
}

// Get returns the current parameters, creating the defaults on first use.
//
// Endpoint: GET /api/delivery
// Response: 200 OK with model.DeliveryParameters
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	params, err := h.deliveryService.GetParameters(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to retrieve delivery parameters")
		return
	}
	response.RespondJSON(w, http.StatusOK, params)
}

// Update merges the supplied fields into the current parameters.
//
// Endpoint: PUT /api/delivery
// Request: request.UpdateDeliveryRequest
// Response: 200 OK with model.DeliveryParameters
// Error: 400 Bad Request for a malformed body or invalid amounts
func (h *DeliveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateDeliveryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	current, err := h.deliveryService.GetParameters(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to retrieve delivery parameters")
		return
	}

	params, err := h.deliveryService.UpdateParameters(r.Context(), req.Apply(*current))
	if err != nil {
		respondServiceError(w, err, "failed to update delivery parameters")
		return
	}
	response.RespondJSON(w, http.StatusOK, params)
}
