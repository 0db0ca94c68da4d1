// Package calc implements the brewing metric calculators: gravity and
// strength, bitterness, color and carbonation, plus an aggregate snapshot
// that composes them.
//
// Every function is total. Insufficient input degrades to a neutral value
// (OG 1.000, IBU 0, EBC 0) and unresolved reference ids contribute nothing.
package calc

// Gravity model constants.
const (
	// MashEfficiency is the assumed fraction of the theoretical extract
	// recovered from mashed grain.
	MashEfficiency = 0.72

	// AdjunctEfficiency applies to soluble adjunct sugars, which need no mash.
	AdjunctEfficiency = 1.0

	// DefaultAttenuation is used when no yeast is selected, in percent.
	DefaultAttenuation = 75.0

	// ABVFactor converts the OG-FG drop to percent alcohol by volume.
	ABVFactor = 131.25

	// NeutralGravity is the specific gravity of water.
	NeutralGravity = 1.0
)

// Plato cubic coefficients: °P = PlatoA + PlatoB·OG + PlatoC·OG² + PlatoD·OG³.
const (
	PlatoA = -616.868
	PlatoB = 1111.14
	PlatoC = -630.272
	PlatoD = 135.997
)

// Tinseth utilization constants.
const (
	// TinsethBignessBase and TinsethBignessScale form the gravity factor
	// 1.65 × 0.000125^(OG−1).
	TinsethBignessScale = 1.65
	TinsethBignessBase  = 0.000125

	// TinsethTimeRate is the exponential rate of alpha acid isomerization per
	// minute of boil.
	TinsethTimeRate = 0.04

	// TinsethTimeDivisor caps the boil time factor asymptote.
	TinsethTimeDivisor = 4.15
)

// Morey color model constants.
const (
	// LovibondOffset and LovibondDivisor invert EBC to °Lovibond:
	// L = (EBC + 1.2) / 2.026.
	LovibondOffset  = 1.2
	LovibondDivisor = 2.026

	// MoreyScale and MoreyExponent fit SRM = 1.4922 × MCU^0.6859.
	MoreyScale    = 1.4922
	MoreyExponent = 0.6859

	// SRMToEBC converts SRM to EBC.
	SRMToEBC = 1.97
)

// Carbonation constants.
const (
	// KegCO2Volumes is the assumed force carbonation target. Kegged beer is
	// carbonated from a gas cylinder so no recipe parameter influences it.
	KegCO2Volumes = 2.5

	// PrimingGramsPerVolume is the priming sugar dose, in g/L, that yields one
	// volume of CO2.
	PrimingGramsPerVolume = 4.0

	// ResidualCO2Volumes is the CO2 still dissolved when fermentation ends.
	ResidualCO2Volumes = 0.85
)
