package model

import (
	"math"
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	for _, c := range SupportedCurrencies {
		if !c.IsSupported() {
			t.Errorf("Expected %s to be supported", c)
		}
	}
	for _, c := range []Currency{ReferenceCurrency, "GBP", ""} {
		if c.IsSupported() {
			t.Errorf("Expected %q to be unsupported", c)
		}
	}

	if JPY.Nominal() != 100 {
		t.Errorf("Expected JPY nominal 100, got %v", JPY.Nominal())
	}
	if USD.Nominal() != 1 {
		t.Errorf("Expected USD nominal 1, got %v", USD.Nominal())
	}
}

func TestRateSnapshot(t *testing.T) {
	complete := func() *RateSnapshot {
		return &RateSnapshot{
			Date:  time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC),
			Rates: map[Currency]float64{USD: 82.5, EUR: 90, JPY: 0.532, CNY: 11.4},
		}
	}

	t.Run("complete", func(t *testing.T) {
		s := complete()
		if !s.IsComplete() {
			t.Error("Expected snapshot to be complete")
		}
		if s.DateKey() != "2026-10-18" {
			t.Errorf("Unexpected date key %s", s.DateKey())
		}
		if r, ok := s.Rate(JPY); !ok || r != 0.532 {
			t.Errorf("Expected JPY 0.532, got %v (%v)", r, ok)
		}
	})

	t.Run("missing currency", func(t *testing.T) {
		s := complete()
		delete(s.Rates, CNY)
		if s.IsComplete() {
			t.Error("Expected snapshot to be partial")
		}
		if _, ok := s.Rate(CNY); ok {
			t.Error("Expected missing rate")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			s := complete()
			s.Rates[EUR] = bad
			if s.IsComplete() {
				t.Errorf("Expected %v to make the snapshot partial", bad)
			}
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		var s *RateSnapshot
		if s.IsComplete() {
			t.Error("Expected nil snapshot to be partial")
		}
		if _, ok := s.Rate(USD); ok {
			t.Error("Expected no rate from nil snapshot")
		}
	})
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	got := Day(time.Date(2026, time.October, 18, 23, 59, 0, 0, loc))
	if !got.Equal(time.Date(2026, time.October, 18, 0, 0, 0, 0, loc)) {
		t.Errorf("Unexpected day %v", got)
	}
	if DateKey(got) != "2026-10-18" {
		t.Errorf("Unexpected key %s", DateKey(got))
	}
}
