package service

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/logging"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// DutyCurrency is the currency the per-cm³ duty coefficients are set in.
const DutyCurrency = model.EUR

// SupportedAgeBracket is the only age bracket with a full tariff policy.
const SupportedAgeBracket = model.AgeThreeTo5

// TariffService turns a vehicle description and a day's rates into a cost
// breakdown. It holds no state; every method is a pure function of its inputs.
type TariffService struct {
	logger *zap.Logger
}

// NewTariffService creates a new TariffService.
func NewTariffService(logger *zap.Logger) *TariffService {
	return &TariffService{logger: logging.OrNop(logger).Named("tariff")}
}

// Compute produces the full breakdown. Errors from conversion or the age
// bracket check are returned as they are.
func (s *TariffService) Compute(v model.VehicleDescription, rates *model.RateSnapshot, delivery model.DeliveryParameters) (*model.CalculationResult, error) {
	if err := CheckAgeBracket(v.Age); err != nil {
		return nil, err
	}

	price, err := Convert(v.Price, v.Currency, rates)
	if err != nil {
		return nil, fmt.Errorf("converting declared price: %w", err)
	}

	dutyRate := DutyRate(v.Displacement)
	dutyForeign := dutyRate * float64(v.Displacement)
	duty, err := Convert(dutyForeign, DutyCurrency, rates)
	if err != nil {
		return nil, fmt.Errorf("converting duty: %w", err)
	}

	customsFee := CustomsFee(price)

	recyclingFee, provisional := RecyclingFee(v.Horsepower, v.Displacement)
	if provisional {
		s.logger.Warn("recycling fee bracket has no policy, default coefficient applied",
			zap.Int("horsepower", v.Horsepower),
			zap.Int("displacement", v.Displacement),
			zap.Float64("recycling_fee", recyclingFee),
		)
	}

	deliveryRange, err := DeliveryCost(delivery, rates)
	if err != nil {
		return nil, fmt.Errorf("converting delivery: %w", err)
	}

	return &model.CalculationResult{
		Total:                   price + duty + customsFee + recyclingFee + deliveryRange.Midpoint,
		ConvertedPrice:          price,
		DutyRate:                dutyRate,
		DutyForeign:             dutyForeign,
		Duty:                    duty,
		CustomsFee:              customsFee,
		RecyclingFee:            recyclingFee,
		RecyclingFeeProvisional: provisional,
		Delivery:                deliveryRange,
		RateDate:                rates.Date,
		RateStale:               rates.Stale,
	}, nil
}

// CheckAgeBracket rejects every bracket other than the supported one.
func CheckAgeBracket(age model.AgeBracket) error {
	if age != SupportedAgeBracket {
		return fmt.Errorf("%w: %q (only %q is priced)", apperrors.ErrUnsupportedBracket, age, SupportedAgeBracket)
	}
	return nil
}

// Convert returns amount expressed in the reference currency.
func Convert(amount float64, code model.Currency, rates *model.RateSnapshot) (float64, error) {
	rate, ok := rates.Rate(code)
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
	}
	return amount * rate, nil
}

// ConvertToForeign is the inverse of Convert.
func ConvertToForeign(amount float64, code model.Currency, rates *model.RateSnapshot) (float64, error) {
	rate, ok := rates.Rate(code)
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
	}
	return amount / rate, nil
}

// DutyRate returns the EUR-per-cm³ coefficient for an engine displacement.
func DutyRate(displacement int) float64 {
	for _, b := range dutyBrackets {
		if displacement <= b.maxDisplacement {
			return b.perCC
		}
	}
	return dutyPerCCAbove3000
}

// CustomsFee returns the fixed processing fee for a declared value in RUB.
func CustomsFee(value float64) float64 {
	for _, b := range customsFeeBrackets {
		if value <= b.maxValue {
			return b.fee
		}
	}
	return customsFeeTop
}

// RecyclingFee returns the recycling fee rounded to whole roubles.
// provisional is true when no policy covers the combination and the default
// coefficient was used.
func RecyclingFee(horsepower, displacement int) (fee float64, provisional bool) {
	young := representativeAge <= recyclingYoungAgeLimitYears

	switch {
	case horsepower <= recyclingLowPowerLimitHP:
		if young {
			fee = recyclingLowPowerYoung
		} else {
			fee = recyclingLowPowerOld
		}
	case displacement <= recyclingDisplacementLimitCC:
		if young {
			fee = recyclingBase * recyclingCoefficientYoung
		} else {
			fee = recyclingBase * recyclingCoefficientOld
		}
	default:
		fee = recyclingBase * recyclingCoefficientDefault
		provisional = true
	}

	return math.Round(fee), provisional
}

// DeliveryCost converts the delivery parameters into a RUB range. The
// midpoint is the raw average of the two totals.
func DeliveryCost(p model.DeliveryParameters, rates *model.RateSnapshot) (model.DeliveryRange, error) {
	origin, err := Convert(p.OriginExpense, model.OriginExpenseCurrency, rates)
	if err != nil {
		return model.DeliveryRange{}, err
	}
	freight, err := Convert(p.Freight, model.FreightCurrency, rates)
	if err != nil {
		return model.DeliveryRange{}, err
	}

	totalMin := origin + freight + p.ProcessingFeeMin + p.ServiceFeeMin
	totalMax := origin + freight + p.ProcessingFeeMax + p.ServiceFeeMax

	return model.DeliveryRange{
		OriginExpense:    origin,
		Freight:          freight,
		ProcessingFeeMin: p.ProcessingFeeMin,
		ProcessingFeeMax: p.ProcessingFeeMax,
		ServiceFeeMin:    p.ServiceFeeMin,
		ServiceFeeMax:    p.ServiceFeeMax,
		TotalMin:         totalMin,
		TotalMax:         totalMax,
		Midpoint:         (totalMin + totalMax) / 2,
	}, nil
}
