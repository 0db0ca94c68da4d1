package calc

import (
	"math"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/units"
)

// TinsethUtilization returns the fraction of alpha acids isomerized after
// boilMinutes in wort of gravity og. It falls as gravity rises and approaches
// an asymptote as boil time grows.
func TinsethUtilization(og, boilMinutes float64) float64 {
	bigness := TinsethBignessScale * math.Pow(TinsethBignessBase, og-1)
	boilTime := (1 - math.Exp(-TinsethTimeRate*boilMinutes)) / TinsethTimeDivisor
	return bigness * boilTime
}

// AdditionIBU returns the unrounded bitterness contributed by one addition
// of grams of a hop with alphaAcid percent, boiled for timing minutes.
func AdditionIBU(alphaAcid, grams, timing, og, volumeL float64) float64 {
	if volumeL <= 0 || grams <= 0 {
		return 0
	}
	return (alphaAcid / 100) * TinsethUtilization(og, timing) * grams * 1000 / volumeL
}

// IBU sums the Tinseth bitterness of every resolvable hop addition and
// rounds to one decimal. A non-positive volume yields 0.
func IBU(hops []brew.HopAddition, t *brew.Tables, og, volumeL float64) float64 {
	if volumeL <= 0 {
		return 0
	}

	var total float64
	for _, add := range hops {
		hop, ok := t.Hop(add.HopID)
		if !ok || add.Amount <= 0 {
			continue
		}
		total += AdditionIBU(hop.AlphaAcid, add.Amount, add.Timing, og, volumeL)
	}

	return units.Round1(total)
}

// Bitterness labels, ordered from mildest.
const (
	BitternessVerySoft   = "very soft"
	BitternessSoft       = "soft"
	BitternessModerate   = "moderate"
	BitternessPronounced = "pronounced"
	BitternessStrong     = "strong"
	BitternessVeryStrong = "very strong"
)

// BitternessLabel buckets an IBU value into a descriptive label.
func BitternessLabel(ibu float64) string {
	switch {
	case ibu < 15:
		return BitternessVerySoft
	case ibu < 25:
		return BitternessSoft
	case ibu < 35:
		return BitternessModerate
	case ibu < 50:
		return BitternessPronounced
	case ibu < 70:
		return BitternessStrong
	default:
		return BitternessVeryStrong
	}
}
