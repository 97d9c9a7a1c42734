package ratesource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/ratesource"
)

func TestClient_FetchDocument(t *testing.T) {
	t.Run("returns the body of a 2xx response", func(t *testing.T) {
		var userAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>rates</html>"))
		}))
		defer server.Close()

		body, err := ratesource.NewClient(server.URL, 0).FetchDocument(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if string(body) != "<html>rates</html>" {
			t.Errorf("Unexpected body %q", body)
		}
		if userAgent == "" {
			t.Error("Expected a User-Agent header")
		}
	})

	t.Run("non-2xx status is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := ratesource.NewClient(server.URL, 0).FetchDocument(context.Background())
		if !errors.Is(err, apperrors.ErrSourceUnreachable) {
			t.Errorf("Expected ErrSourceUnreachable, got %v", err)
		}
	})

	t.Run("transport failure is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := ratesource.NewClient(url, time.Second).FetchDocument(context.Background())
		if !errors.Is(err, apperrors.ErrSourceUnreachable) {
			t.Errorf("Expected ErrSourceUnreachable, got %v", err)
		}
	})

	t.Run("honours the caller's context", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := ratesource.NewClient(server.URL, 0).FetchDocument(ctx)
		if !errors.Is(err, apperrors.ErrSourceUnreachable) {
			t.Errorf("Expected ErrSourceUnreachable, got %v", err)
		}
	})
}
