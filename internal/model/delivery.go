package model

import "time"

// DeliveryParameters is the singleton delivery cost configuration.
// OriginExpense is in JPY and Freight in USD; the fee bounds are already in RUB.
type DeliveryParameters struct {
	ID               string    `json:"id,omitempty"`
	OriginExpense    float64   `json:"originExpense"`
	Freight          float64   `json:"freight"`
	ProcessingFeeMin float64   `json:"processingFeeMin"`
	ProcessingFeeMax float64   `json:"processingFeeMax"`
	ServiceFeeMin    float64   `json:"serviceFeeMin"`
	ServiceFeeMax    float64   `json:"serviceFeeMax"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

// Currencies the non-reference delivery expenses are quoted in.
const (
	OriginExpenseCurrency = JPY
	FreightCurrency       = USD
)

// DefaultDeliveryParameters returns the values a fresh installation starts with.
func DefaultDeliveryParameters() DeliveryParameters {
	return DeliveryParameters{
		OriginExpense:    241000,
		Freight:          300,
		ProcessingFeeMin: 60000,
		ProcessingFeeMax: 100000,
		ServiceFeeMin:    50000,
		ServiceFeeMax:    100000,
	}
}
