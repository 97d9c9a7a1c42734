// Package middleware provides HTTP middleware for request validation, logging and metrics.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/import-cost-engine/internal/api/request"
	"github.com/ndewijer/import-cost-engine/internal/api/response"
)

type dateKey struct{}

// ValidateDateMiddleware parses the {date} URL parameter in the server's
// local time zone and stores the day in the request context.
// Returns 400 Bad Request if the date is missing or malformed.
//
// Example usage in router:
//
//	r.With(middleware.ValidateDateMiddleware).Get("/{date}", handler.ByDate)
func ValidateDateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "date")
		if raw == "" {
			response.RespondError(w, http.StatusBadRequest, "date is required", "")
			return
		}

		day, err := request.ParseDateParam(raw, time.Local)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid date format", err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), dateKey{}, day)))
	})
}

// DateFromContext returns the day stored by ValidateDateMiddleware.
func DateFromContext(ctx context.Context) (time.Time, bool) {
	day, ok := ctx.Value(dateKey{}).(time.Time)
	return day, ok
}
