package request

import (
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

func TestParseDateParam(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		got, err := ParseDateParam("2026-10-18", time.UTC)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if want := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("timestamp is truncated to its day in the location", func(t *testing.T) {
		loc := time.FixedZone("UTC+10", 10*60*60)
		got, err := ParseDateParam("2026-10-17T20:00:00Z", loc)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if model.DateKey(got) != "2026-10-18" {
			t.Errorf("Expected 2026-10-18, got %s", model.DateKey(got))
		}
		if got.Hour() != 0 {
			t.Errorf("Expected midnight, got %v", got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, raw := range []string{"", "yesterday", "18.10.2026", "2026-13-01"} {
			if _, err := ParseDateParam(raw, time.UTC); !errors.Is(err, apperrors.ErrInvalidDate) {
				t.Errorf("%q: expected ErrInvalidDate, got %v", raw, err)
			}
		}
	})
}

func TestCalculationRequest_Vehicle(t *testing.T) {
	t.Run("normalizes codes", func(t *testing.T) {
		v := CalculationRequest{
			Price:        300000,
			Currency:     " cny",
			Age:          "3TO5",
			Engine:       "Electric",
			Displacement: 1000,
			Horsepower:   140,
		}.Vehicle()

		if v.Currency != model.CNY {
			t.Errorf("Expected CNY, got %q", v.Currency)
		}
		if v.Age != model.AgeThreeTo5 {
			t.Errorf("Expected 3to5, got %q", v.Age)
		}
		if v.Engine != model.EngineElectric {
			t.Errorf("Expected electric, got %q", v.Engine)
		}
	})

	t.Run("missing engine defaults to combustion", func(t *testing.T) {
		v := CalculationRequest{Currency: "USD", Age: "3to5"}.Vehicle()
		if v.Engine != model.EngineCombustion {
			t.Errorf("Expected combustion, got %q", v.Engine)
		}
	})
}

func TestUpdateDeliveryRequest_Apply(t *testing.T) {
	freight := 450.0
	feeMax := 120000.0
	current := model.DefaultDeliveryParameters()

	got := UpdateDeliveryRequest{Freight: &freight, ServiceFeeMax: &feeMax}.Apply(current)

	if got.Freight != 450 {
		t.Errorf("Expected freight 450, got %v", got.Freight)
	}
	if got.ServiceFeeMax != 120000 {
		t.Errorf("Expected service fee max 120000, got %v", got.ServiceFeeMax)
	}
	if got.OriginExpense != current.OriginExpense || got.ProcessingFeeMin != current.ProcessingFeeMin {
		t.Errorf("Expected untouched fields to keep their values, got %+v", got)
	}
}
