package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/import-cost-engine/internal/config"
	"github.com/ndewijer/import-cost-engine/internal/metrics"
	"github.com/ndewijer/import-cost-engine/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testutil.SetupTestDB(t)
	source := testutil.NewMockRateSource()
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}

	m := metrics.NewMetrics()

	router := NewRouter(Services{
		System:      testutil.NewTestSystemService(t, db),
		Rates:       testutil.NewTestRateServiceWithMetrics(t, db, source, m),
		Delivery:    testutil.NewTestDeliveryService(t, db),
		Calculation: testutil.NewTestCalculationServiceWithMetrics(t, db, source, m),
	}, m, nil, cfg)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestNewRouter(t *testing.T) {
	server := newTestServer(t)

	routes := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/system/health", "", http.StatusOK},
		{http.MethodGet, "/api/rates", "", http.StatusOK},
		{http.MethodGet, "/api/rates/2026-10-18", "", http.StatusOK},
		{http.MethodGet, "/api/rates/2020-01-01", "", http.StatusNotFound},
		{http.MethodGet, "/api/rates/not-a-date", "", http.StatusBadRequest},
		{http.MethodGet, "/api/delivery", "", http.StatusOK},
		{http.MethodPut, "/api/delivery", `{"freight": 350}`, http.StatusOK},
		{http.MethodPost, "/api/calculations", `{"price": 30000, "currency": "CNY", "age": "3to5", "displacement": 1000, "horsepower": 140}`, http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			var body io.Reader
			if rt.body != "" {
				body = strings.NewReader(rt.body)
			}
			req, err := http.NewRequest(rt.method, server.URL+rt.path, body)
			if err != nil {
				t.Fatalf("Failed to build request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != rt.want {
				data, _ := io.ReadAll(resp.Body)
				t.Errorf("Expected %d, got %d: %s", rt.want, resp.StatusCode, data)
			}
		})
	}

	t.Run("metrics endpoint exposes request counters", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)
		for _, name := range []string{"http_requests_total", "rate_resolutions_total", "calculations_total"} {
			if !strings.Contains(string(data), name) {
				t.Errorf("Expected %s in metrics output", name)
			}
		}
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/calculations", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Expected allowed origin header, got %q", got)
		}
	})
}
