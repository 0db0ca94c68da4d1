package calc

import (
	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/units"
)

// OG computes the original gravity with the points-per-pound-per-gallon
// method. Each resolvable malt row contributes
//
//	mass_lb × (potential−1)×1000 × MashEfficiency
//
// and each adjunct whose gravity contribution exceeds 1.0 contributes the same
// quantity at full efficiency. Adjuncts at or below 1.0 dilute rather than add
// sugar and are skipped. The result is 1 + points/(gallons×1000) rounded to
// three decimals; a non-positive volume yields 1.000.
func OG(malts []brew.MaltAddition, adjuncts []brew.AdjunctAddition, t *brew.Tables, volumeL float64) float64 {
	if volumeL <= 0 {
		return NeutralGravity
	}

	volumeGal := units.LitersToGal(volumeL)
	var points float64

	for _, add := range malts {
		malt, ok := t.Malt(add.MaltID)
		if !ok || add.Amount <= 0 {
			continue
		}
		points += units.KgToPounds(add.Amount) * gravityPoints(malt.PotentialGravity) * MashEfficiency
	}

	for _, add := range adjuncts {
		adj, ok := t.Adjunct(add.AdjunctID)
		if !ok || add.Amount <= 0 || adj.GravityContribution <= NeutralGravity {
			continue
		}
		points += units.KgToPounds(add.Amount) * gravityPoints(adj.GravityContribution) * AdjunctEfficiency
	}

	return units.Round3(1 + points/(volumeGal*1000))
}

// Plato converts a specific gravity to degrees Plato, rounded to one decimal.
func Plato(og float64) float64 {
	p := PlatoA + PlatoB*og + PlatoC*og*og + PlatoD*og*og*og
	return units.Round1(p)
}

// FG computes the final gravity left after the yeast ferments attenuation
// percent of the gravity points, rounded to three decimals.
func FG(og, attenuation float64) float64 {
	remaining := gravityPoints(og) * (1 - attenuation/100)
	return units.Round3(1 + remaining/1000)
}

// ABV computes percent alcohol by volume from the gravity drop, rounded to
// one decimal.
func ABV(og, fg float64) float64 {
	return units.Round1((og - fg) * ABVFactor)
}

// Attenuation returns the apparent attenuation of y, or DefaultAttenuation
// when no yeast is selected.
func Attenuation(y *brew.Yeast) float64 {
	if y == nil {
		return DefaultAttenuation
	}
	return y.Attenuation
}

func gravityPoints(sg float64) float64 {
	return (sg - 1) * 1000
}
