package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/testutil"
)

func TestCalculationHandler_Create(t *testing.T) {
	setupHandler := func(t *testing.T, source *testutil.MockRateSource) *CalculationHandler {
		t.Helper()
		return NewCalculationHandler(testutil.NewTestCalculationService(t, testutil.SetupTestDB(t), source))
	}

	post := func(handler *CalculationHandler, body string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/api/calculations", body)
		w := httptest.NewRecorder()
		handler.Create(w, req)
		return w
	}

	t.Run("returns the breakdown", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateSource())

		w := post(handler, `{"price": 30000, "currency": "cny", "age": "3to5", "displacement": 1000, "horsepower": 140}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result model.CalculationResult
		if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if result.DutyForeign != 1500 {
			t.Errorf("Expected duty 1500 EUR, got %v", result.DutyForeign)
		}
		if result.RecyclingFee != 5200 {
			t.Errorf("Expected recycling fee 5200, got %v", result.RecyclingFee)
		}
		if result.Total <= 0 {
			t.Errorf("Expected a positive total, got %v", result.Total)
		}
	})

	t.Run("returns 400 for an unpriced age bracket", func(t *testing.T) {
		source := testutil.NewMockRateSource()
		handler := setupHandler(t, source)

		w := post(handler, `{"price": 30000, "currency": "CNY", "age": "under3", "displacement": 1000, "horsepower": 140}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if source.FetchCount() != 0 {
			t.Errorf("Expected no fetch, got %d", source.FetchCount())
		}
	})

	t.Run("returns 400 with field details for an invalid vehicle", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateSource())

		w := post(handler, `{"price": 0, "currency": "RUB", "age": "3to5", "displacement": 1000, "horsepower": 140}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error != "validation failed" {
			t.Errorf("Expected 'validation failed', got %q", resp.Error)
		}
		if _, ok := resp.Details["currency"]; !ok {
			t.Errorf("Expected currency detail, got %v", resp.Details)
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateSource())

		w := post(handler, `{"price": `)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 503 when rates are unavailable", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateSource().WithBody([]byte("garbage")))

		w := post(handler, `{"price": 30000, "currency": "CNY", "age": "3to5", "displacement": 1000, "horsepower": 140}`)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}
