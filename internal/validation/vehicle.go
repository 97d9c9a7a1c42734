// Package validation checks inbound descriptions before they reach the services.
package validation

import (
	"math"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// ValidateVehicle checks the shape of a vehicle description. The age
// bracket only has to be a known one here; whether it is priced is the
// tariff engine's decision.
func ValidateVehicle(v model.VehicleDescription) error {
	errors := make(map[string]string)

	if !(v.Price > 0) || math.IsInf(v.Price, 0) {
		errors["price"] = "price must be a positive number"
	}
	if !v.Currency.IsSupported() {
		errors["currency"] = "currency must be one of USD, EUR, JPY, CNY"
	}
	if !v.Age.Valid() {
		errors["age"] = "age must be one of under3, 3to5, over5"
	}
	if !v.Engine.Valid() {
		errors["engine"] = "engine must be combustion or electric"
	}
	if v.Displacement <= 0 {
		errors["displacement"] = "displacement must be a positive number of cm³"
	}
	if v.Horsepower <= 0 {
		errors["horsepower"] = "horsepower must be positive"
	}

	return newError(apperrors.ErrInvalidVehicle, errors)
}
