package validation

import (
	"math"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// ValidateDeliveryParameters checks that every amount is a non-negative
// finite number and that each min does not exceed its max.
func ValidateDeliveryParameters(p model.DeliveryParameters) error {
	errors := make(map[string]string)

	amounts := map[string]float64{
		"originExpense":    p.OriginExpense,
		"freight":          p.Freight,
		"processingFeeMin": p.ProcessingFeeMin,
		"processingFeeMax": p.ProcessingFeeMax,
		"serviceFeeMin":    p.ServiceFeeMin,
		"serviceFeeMax":    p.ServiceFeeMax,
	}
	for field, v := range amounts {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errors[field] = "must be a non-negative number"
		}
	}

	if _, bad := errors["processingFeeMax"]; !bad && p.ProcessingFeeMin > p.ProcessingFeeMax {
		errors["processingFeeMax"] = "must not be below processingFeeMin"
	}
	if _, bad := errors["serviceFeeMax"]; !bad && p.ServiceFeeMin > p.ServiceFeeMax {
		errors["serviceFeeMax"] = "must not be below serviceFeeMin"
	}

	return newError(apperrors.ErrInvalidDeliveryConfig, errors)
}
