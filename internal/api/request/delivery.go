package request

import "github.com/ndewijer/import-cost-engine/internal/model"

// UpdateDeliveryRequest is the body of PUT /api/delivery. Omitted fields keep
// their current value.
type UpdateDeliveryRequest struct {
	OriginExpense    *float64 `json:"originExpense"`
	Freight          *float64 `json:"freight"`
	ProcessingFeeMin *float64 `json:"processingFeeMin"`
	ProcessingFeeMax *float64 `json:"processingFeeMax"`
	ServiceFeeMin    *float64 `json:"serviceFeeMin"`
	ServiceFeeMax    *float64 `json:"serviceFeeMax"`
}

// Apply returns current with the supplied fields overwritten.
func (r UpdateDeliveryRequest) Apply(current model.DeliveryParameters) model.DeliveryParameters {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&current.OriginExpense, r.OriginExpense)
	set(&current.Freight, r.Freight)
	set(&current.ProcessingFeeMin, r.ProcessingFeeMin)
	set(&current.ProcessingFeeMax, r.ProcessingFeeMax)
	set(&current.ServiceFeeMin, r.ServiceFeeMin)
	set(&current.ServiceFeeMax, r.ServiceFeeMax)
	return current
}
