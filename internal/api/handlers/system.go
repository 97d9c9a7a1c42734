package handlers

import (
	"net/http"

	"github.com/ndewijer/import-cost-engine/internal/api/response"
	"github.com/ndewijer/import-cost-engine/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	Cache         string `json:"cache,omitempty"`
	SchemaVersion int64  `json:"schemaVersion,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Health checks the database and, when configured, the Redis rate cache.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable if a backing store is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		resp := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	if version, err := h.systemService.SchemaVersion(); err == nil {
		resp.SchemaVersion = version
	}

	if h.systemService.HasCache() {
		if err := h.systemService.CheckCache(r.Context()); err != nil {
			resp.Status = "unhealthy"
			resp.Cache = "disconnected"
			resp.Error = err.Error()
			response.RespondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Cache = "connected"
	}

	response.RespondJSON(w, http.StatusOK, resp)
}
