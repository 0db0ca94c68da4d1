package calc

import "github.com/guerrinflorian/ConcepteurBiere/internal/brew"

// Metric names used in style comparisons.
const (
	MetricOG  = "og"
	MetricABV = "abv"
	MetricIBU = "ibu"
	MetricEBC = "ebc"
)

// RangeCheck compares one metric against a style's inclusive range.
type RangeCheck struct {
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Decimals int     `json:"decimals"`
	InRange  bool    `json:"inRange"`
}

// CompareStyle checks OG, ABV, IBU and EBC against the ranges of style, in
// that order.
func CompareStyle(style brew.BeerStyle, v Values) []RangeCheck {
	checks := []RangeCheck{
		{Metric: MetricOG, Value: v.OG, Min: style.OGMin, Max: style.OGMax, Decimals: 3},
		{Metric: MetricABV, Value: v.ABV, Min: style.ABVMin, Max: style.ABVMax, Decimals: 1},
		{Metric: MetricIBU, Value: v.IBU, Min: style.IBUMin, Max: style.IBUMax, Decimals: 0},
		{Metric: MetricEBC, Value: v.EBC, Min: style.EBCMin, Max: style.EBCMax, Decimals: 0},
	}
	for i := range checks {
		checks[i].InRange = checks[i].Value >= checks[i].Min && checks[i].Value <= checks[i].Max
	}
	return checks
}

// CompareRecipeStyle resolves the recipe's style and compares v against it.
// An empty or unknown style id yields nil.
func CompareRecipeStyle(r *brew.Recipe, t *brew.Tables, v Values) []RangeCheck {
	style, ok := t.Style(r.Params.StyleID)
	if !ok {
		return nil
	}
	return CompareStyle(style, v)
}
