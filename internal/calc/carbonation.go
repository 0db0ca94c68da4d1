package calc

import (
	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/units"
)

// CO2Volumes returns the expected carbonation level. Kegged beer is assumed
// force carbonated to KegCO2Volumes. Bottled beer carries the residual CO2 of
// fermentation plus one volume per PrimingGramsPerVolume g/L of priming
// sugar, rounded to one decimal.
func CO2Volumes(mode brew.ConditioningMode, sugarPerLiter float64) float64 {
	if mode == brew.ModeKeg {
		return KegCO2Volumes
	}
	return units.Round1(sugarPerLiter/PrimingGramsPerVolume + ResidualCO2Volumes)
}

// TotalPrimingSugar returns the whole grams of sugar needed to prime volumeL
// liters at sugarPerLiter g/L.
func TotalPrimingSugar(sugarPerLiter, volumeL float64) float64 {
	return units.RoundInt(sugarPerLiter * volumeL)
}
