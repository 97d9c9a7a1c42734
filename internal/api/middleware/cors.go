package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORS allows browser clients from allowedOrigins to read rates, edit
// the delivery configuration and request calculations.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		// Clients correlate failures with server logs through the request id.
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
