package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/import-cost-engine/internal/api/response"
	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/validation"
)

// maxBodySize bounds inbound JSON bodies.
const maxBodySize = 1 << 20

// parseJSON decodes a single JSON object from the request body, rejecting
// unknown fields and trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decoding request body: %w", err)
	}
	if dec.More() {
		return v, errors.New("request body must contain a single JSON object")
	}
	return v, nil
}

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidVehicle),
		errors.Is(err, apperrors.ErrInvalidDeliveryConfig),
		errors.Is(err, apperrors.ErrUnsupportedBracket),
		errors.Is(err, apperrors.ErrUnknownCurrency),
		errors.Is(err, apperrors.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrSnapshotNotFound),
		errors.Is(err, apperrors.ErrDeliveryConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrRateUnavailable),
		errors.Is(err, apperrors.ErrSourceUnreachable),
		errors.Is(err, apperrors.ErrParseFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with the status statusFor picks. Validation
// failures carry their per-field messages as details.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	status := statusFor(err)

	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, status, "validation failed", verr.Fields)
		return
	}

	if status == http.StatusServiceUnavailable {
		message = apperrors.ErrRateUnavailable.Error()
	}
	response.RespondError(w, status, message, err.Error())
}
