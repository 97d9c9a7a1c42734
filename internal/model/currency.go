package model

import (
	"math"
	"time"
)

// Currency is an ISO 4217 code for one of the currencies a declared price,
// a duty tariff or a delivery expense may be expressed in.
type Currency string

// Supported currencies. Every rate snapshot carries exactly these four codes.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	CNY Currency = "CNY"
)

// ReferenceCurrency is the currency all totals are reported in.
const ReferenceCurrency Currency = "RUB"

// SupportedCurrencies lists the codes in a stable order.
var SupportedCurrencies = []Currency{USD, EUR, JPY, CNY}

// IsSupported reports whether the code is one of the four snapshot currencies.
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// Nominal is the number of units the rate source quotes a price for.
// JPY is published per 100 yen, everything else per single unit.
func (c Currency) Nominal() float64 {
	if c == JPY {
		return 100
	}
	return 1
}

// RateSnapshot is one calendar day's set of conversion factors into the
// reference currency. Rates holds per-unit factors: amount * Rates[code]
// gives the amount in RUB.
type RateSnapshot struct {
	Date  time.Time            `json:"date"`
	Rates map[Currency]float64 `json:"rates"`

	// Stale is set when the snapshot was served from an earlier day because
	// today's resolution failed.
	Stale bool `json:"stale,omitempty"`
}

// DateKey returns the YYYY-MM-DD key the snapshot is stored under.
func (s RateSnapshot) DateKey() string {
	return DateKey(s.Date)
}

// IsComplete reports whether every supported currency has a finite,
// positive rate.
func (s *RateSnapshot) IsComplete() bool {
	if s == nil || s.Rates == nil {
		return false
	}
	for _, c := range SupportedCurrencies {
		if !ValidRate(s.Rates[c]) {
			return false
		}
	}
	return true
}

// Rate returns the per-unit factor for a code.
func (s *RateSnapshot) Rate(c Currency) (float64, bool) {
	if s == nil {
		return 0, false
	}
	r, ok := s.Rates[c]
	if !ok || !ValidRate(r) {
		return 0, false
	}
	return r, true
}

// ValidRate reports whether r can be used as a conversion factor.
func ValidRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// DateKey formats t as a day-granularity key in t's own location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
