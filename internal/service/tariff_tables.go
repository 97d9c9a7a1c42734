package service

// Policy tables for the 3-5 year age bracket. Boundaries are inclusive upper
// limits: a value exactly on a boundary belongs to that boundary's bracket.

type dutyBracket struct {
	maxDisplacement int     // cm³, inclusive
	perCC           float64 // EUR per cm³
}

var dutyBrackets = []dutyBracket{
	{maxDisplacement: 1000, perCC: 1.5},
	{maxDisplacement: 1500, perCC: 1.7},
	{maxDisplacement: 1800, perCC: 2.5},
	{maxDisplacement: 2300, perCC: 2.7},
	{maxDisplacement: 3000, perCC: 3.0},
}

// dutyPerCCAbove3000 applies to every engine larger than the last bracket.
const dutyPerCCAbove3000 = 3.6

type customsFeeBracket struct {
	maxValue float64 // RUB, inclusive
	fee      float64 // RUB
}

var customsFeeBrackets = []customsFeeBracket{
	{maxValue: 200_000, fee: 1067},
	{maxValue: 450_000, fee: 2134},
	{maxValue: 1_200_000, fee: 4269},
	{maxValue: 2_700_000, fee: 11746},
	{maxValue: 5_000_000, fee: 23491},
	{maxValue: 10_000_000, fee: 46982},
}

// customsFeeTop applies above the last bracket.
const customsFeeTop = 93965

// Recycling fee policy. Every amount is a multiple of the base rate.
const (
	recyclingBase = 20000.0 // RUB

	// representativeAge stands in for the whole 3-5 year bracket.
	representativeAge = 4

	recyclingLowPowerLimitHP     = 160
	recyclingDisplacementLimitCC = 2000
	recyclingYoungAgeLimitYears  = 3

	// Up to 160 hp: base × 0.17 for cars up to 3 years, base × 0.26 above.
	recyclingLowPowerYoung = recyclingBase * 0.17 // 3400
	recyclingLowPowerOld   = recyclingBase * 0.26 // 5200

	// Above 160 hp and up to 2000 cm³.
	recyclingCoefficientYoung = 37.5
	recyclingCoefficientOld   = 62.2

	// recyclingCoefficientDefault prices combinations without a policy
	// (above 160 hp and above 2000 cm³). Results using it are flagged provisional.
	recyclingCoefficientDefault = recyclingCoefficientOld
)
