// Package units holds the conversion factors and rounding helpers shared by
// every brewing calculator.
package units

import "math"

// Conversion factors used by the gravity and color models, which are expressed
// in US customary units.
const (
	// KgToLb converts kilograms to pounds.
	KgToLb = 2.20462

	// LitersToGallons converts liters to US gallons.
	LitersToGallons = 0.264172

	// GramsPerKg converts kilograms to grams.
	GramsPerKg = 1000.0
)

// Round rounds x to the given number of decimal places, resolving halves
// toward positive infinity. Results therefore match a browser that computes
// Math.round(x*10^places)/10^places, which differs from math.Round for
// negative halves.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}

// Round1 rounds x to one decimal place.
func Round1(x float64) float64 { return Round(x, 1) }

// Round3 rounds x to three decimal places.
func Round3(x float64) float64 { return Round(x, 3) }

// RoundInt rounds x to the nearest integer, halves up.
func RoundInt(x float64) float64 { return math.Floor(x + 0.5) }

// KgToPounds converts a mass in kilograms to pounds.
func KgToPounds(kg float64) float64 { return kg * KgToLb }

// LitersToGal converts a volume in liters to US gallons.
func LitersToGal(l float64) float64 { return l * LitersToGallons }
