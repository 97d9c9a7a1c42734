package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/import-cost-engine/internal/api/response"
	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/testutil"
)

func TestRateHandler_Today(t *testing.T) {
	t.Run("returns the resolved snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewRateHandler(testutil.NewTestRateService(t, db, testutil.NewMockRateSource()))

		req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
		w := httptest.NewRecorder()

		handler.Today(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var snap model.RateSnapshot
		if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !snap.IsComplete() {
			t.Errorf("Expected complete snapshot, got %+v", snap.Rates)
		}
		if math.Abs(snap.Rates[model.JPY]-0.532) > 1e-9 {
			t.Errorf("Expected per-unit JPY 0.532, got %v", snap.Rates[model.JPY])
		}
	})

	t.Run("returns 503 when no rates can be obtained", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockRateSource().
			WithError(fmt.Errorf("%w: status 502", apperrors.ErrSourceUnreachable))
		handler := NewRateHandler(testutil.NewTestRateService(t, db, source))

		req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
		w := httptest.NewRecorder()

		handler.Today(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error != apperrors.ErrRateUnavailable.Error() {
			t.Errorf("Expected %q, got %q", apperrors.ErrRateUnavailable.Error(), resp.Error)
		}
	})
}

func TestRateHandler_ByDate(t *testing.T) {
	t.Run("returns a stored snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockRateSource()
		handler := NewRateHandler(testutil.NewTestRateService(t, db, source))
		day := testutil.Today.AddDate(0, 0, -1)
		testutil.CreateSnapshot(t, db, day, testutil.DefaultRates())

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/rates/"+model.DateKey(day),
			map[string]string{"date": model.DateKey(day)})
		w := httptest.NewRecorder()

		handler.ByDate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if source.FetchCount() != 0 {
			t.Errorf("Expected no fetch, got %d", source.FetchCount())
		}
	})

	t.Run("returns 404 for a date without rates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewRateHandler(testutil.NewTestRateService(t, db, testutil.NewMockRateSource()))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/rates/2020-01-01",
			map[string]string{"date": "2020-01-01"})
		w := httptest.NewRecorder()

		handler.ByDate(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for a partial entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewRateHandler(testutil.NewTestRateService(t, db, testutil.NewMockRateSource()))
		testutil.CreateSnapshot(t, db, testutil.Date(2020, time.January, 2), map[model.Currency]float64{model.USD: 70})

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/rates/2020-01-02",
			map[string]string{"date": "2020-01-02"})
		w := httptest.NewRecorder()

		handler.ByDate(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewRateHandler(testutil.NewTestRateService(t, db, testutil.NewMockRateSource()))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/rates/last-tuesday",
			map[string]string{"date": "last-tuesday"})
		w := httptest.NewRecorder()

		handler.ByDate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
