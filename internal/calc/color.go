package calc

import (
	"fmt"
	"math"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/units"
)

// EBC computes beer color with the Morey equation. Each resolvable malt's EBC
// rating is converted to Lovibond and weighted by mass into malt color units
// per gallon, then SRM = 1.4922 × MCU^0.6859 and EBC = SRM × 1.97, rounded to
// one decimal. A non-positive volume or an empty grain bill yields 0.
func EBC(malts []brew.MaltAddition, t *brew.Tables, volumeL float64) float64 {
	if volumeL <= 0 {
		return 0
	}

	volumeGal := units.LitersToGal(volumeL)
	var mcu float64

	for _, add := range malts {
		malt, ok := t.Malt(add.MaltID)
		if !ok || add.Amount <= 0 {
			continue
		}
		lovibond := (malt.ColorEBC + LovibondOffset) / LovibondDivisor
		mcu += lovibond * units.KgToPounds(add.Amount) / volumeGal
	}

	if mcu <= 0 {
		return 0
	}

	srm := MoreyScale * math.Pow(mcu, MoreyExponent)
	return units.Round1(srm * SRMToEBC)
}

// Color labels, ordered from palest.
const (
	ColorVeryPale  = "very pale"
	ColorBlonde    = "blonde"
	ColorGolden    = "golden"
	ColorAmber     = "amber"
	ColorCopper    = "copper"
	ColorBrown     = "brown"
	ColorDarkBrown = "dark brown"
	ColorBlack     = "black"
)

// ColorLabel buckets an EBC value into a descriptive label. Each threshold
// is exclusive: 8.0 is already "blonde".
func ColorLabel(ebc float64) string {
	switch {
	case ebc < 8:
		return ColorVeryPale
	case ebc < 15:
		return ColorBlonde
	case ebc < 25:
		return ColorGolden
	case ebc < 35:
		return ColorAmber
	case ebc < 50:
		return ColorCopper
	case ebc < 70:
		return ColorBrown
	case ebc < 100:
		return ColorDarkBrown
	default:
		return ColorBlack
	}
}

// RGB is a display swatch.
type RGB struct {
	R, G, B uint8
}

// Hex formats the swatch as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// swatch is one step of the color table: any EBC at or below MaxEBC maps to
// Color.
type swatch struct {
	MaxEBC float64
	Color  RGB
}

// swatches is ordered by MaxEBC. Values beyond the last step use darkest.
var swatches = []swatch{ //nolint:gochecknoglobals // immutable lookup table
	{4, RGB{0xFF, 0xE6, 0x99}},
	{8, RGB{0xFF, 0xD7, 0x3B}},
	{12, RGB{0xEC, 0xBE, 0x22}},
	{16, RGB{0xBF, 0x92, 0x29}},
	{20, RGB{0xBF, 0x81, 0x29}},
	{25, RGB{0xBF, 0x6B, 0x29}},
	{33, RGB{0xA5, 0x57, 0x29}},
	{40, RGB{0x8D, 0x48, 0x29}},
	{50, RGB{0x75, 0x40, 0x29}},
	{60, RGB{0x5E, 0x35, 0x29}},
	{80, RGB{0x47, 0x2A, 0x29}},
	{100, RGB{0x36, 0x1F, 0x29}},
}

var darkest = RGB{0x1A, 0x0F, 0x0A} //nolint:gochecknoglobals // immutable swatch

// ColorSwatch maps an EBC value to a discrete display color. It is a step
// function, not an interpolation: neighbouring values share a swatch.
func ColorSwatch(ebc float64) RGB {
	for _, s := range swatches {
		if ebc <= s.MaxEBC {
			return s.Color
		}
	}
	return darkest
}
