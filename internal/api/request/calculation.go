package request

import (
	"strings"

	"github.com/ndewijer/import-cost-engine/internal/model"
)

// CalculationRequest is the body of POST /api/calculations.
type CalculationRequest struct {
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Age          string  `json:"age"`
	Engine       string  `json:"engine"`
	Displacement int     `json:"displacement"`
	Horsepower   int     `json:"horsepower"`
}

// Vehicle normalizes the request into a vehicle description. Codes are
// case-insensitive and a missing engine type means combustion.
func (r CalculationRequest) Vehicle() model.VehicleDescription {
	engine := model.EngineType(strings.ToLower(strings.TrimSpace(r.Engine)))
	if engine == "" {
		engine = model.EngineCombustion
	}
	return model.VehicleDescription{
		Price:        r.Price,
		Currency:     model.Currency(strings.ToUpper(strings.TrimSpace(r.Currency))),
		Age:          model.AgeBracket(strings.ToLower(strings.TrimSpace(r.Age))),
		Engine:       engine,
		Displacement: r.Displacement,
		Horsepower:   r.Horsepower,
	}
}
