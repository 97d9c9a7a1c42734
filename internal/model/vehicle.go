package model

// AgeBracket is the ordinal vehicle-age category used by customs tariffs.
type AgeBracket string

const (
	AgeUnder3   AgeBracket = "under3"
	AgeThreeTo5 AgeBracket = "3to5"
	AgeOver5    AgeBracket = "over5"
)

// Valid reports whether the bracket is one of the three known categories.
func (a AgeBracket) Valid() bool {
	switch a {
	case AgeUnder3, AgeThreeTo5, AgeOver5:
		return true
	}
	return false
}

// EngineType distinguishes combustion engines from electric and hybrid drives.
type EngineType string

const (
	EngineCombustion EngineType = "combustion"
	EngineElectric   EngineType = "electric"
)

// Valid reports whether the engine type is known.
func (e EngineType) Valid() bool {
	return e == EngineCombustion || e == EngineElectric
}

// VehicleDescription holds everything a calculation needs to know about the car.
type VehicleDescription struct {
	Price        float64    `json:"price"`
	Currency     Currency   `json:"currency"`
	Age          AgeBracket `json:"age"`
	Engine       EngineType `json:"engine"`
	Displacement int        `json:"displacement"` // cm³
	Horsepower   int        `json:"horsepower"`
}
