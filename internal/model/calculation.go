package model

import "time"

// CalculationResult is the full cost breakdown for one vehicle.
// All amounts are in the reference currency unless the field name says otherwise.
type CalculationResult struct {
	Total          float64 `json:"total"`
	ConvertedPrice float64 `json:"convertedPrice"`

	// Duty is quoted in EUR by the tariff and converted for the total.
	DutyRate    float64 `json:"dutyRate"`
	DutyForeign float64 `json:"dutyEur"`
	Duty        float64 `json:"duty"`

	CustomsFee float64 `json:"customsFee"`

	RecyclingFee float64 `json:"recyclingFee"`
	// RecyclingFeeProvisional marks a fee computed with the default
	// coefficient because no policy exists for the horsepower/displacement
	// combination.
	RecyclingFeeProvisional bool `json:"recyclingFeeProvisional"`

	Delivery DeliveryRange `json:"delivery"`

	RateDate  time.Time `json:"rateDate"`
	RateStale bool      `json:"rateStale,omitempty"`
}

// DeliveryRange is the minimum/maximum delivery cost and its components.
type DeliveryRange struct {
	OriginExpense    float64 `json:"originExpense"`
	Freight          float64 `json:"freight"`
	ProcessingFeeMin float64 `json:"processingFeeMin"`
	ProcessingFeeMax float64 `json:"processingFeeMax"`
	ServiceFeeMin    float64 `json:"serviceFeeMin"`
	ServiceFeeMax    float64 `json:"serviceFeeMax"`
	TotalMin         float64 `json:"totalMin"`
	TotalMax         float64 `json:"totalMax"`
	Midpoint         float64 `json:"midpoint"`
}
