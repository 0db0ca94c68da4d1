package calc

import (
	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

// Input bundles everything the aggregate calculator reads. Yeast may be nil.
type Input struct {
	Malts         []brew.MaltAddition
	Hops          []brew.HopAddition
	Adjuncts      []brew.AdjunctAddition
	Yeast         *brew.Yeast
	Tables        *brew.Tables
	VolumeL       float64
	SugarPerLiter float64
	Mode          brew.ConditioningMode
}

// Values is an immutable snapshot of every derived brewing metric.
type Values struct {
	OG         float64 `json:"og"`
	OGPlato    float64 `json:"ogPlato"`
	FG         float64 `json:"fg"`
	ABV        float64 `json:"abv"`
	IBU        float64 `json:"ibu"`
	EBC        float64 `json:"ebc"`
	ColorLabel string  `json:"colorLabel"`
	CO2Volumes float64 `json:"co2Volumes"`
	TotalSugar float64 `json:"totalSugar"`
}

// Calculate composes the individual calculators in a fixed order. The same
// input always yields the same snapshot; nothing is cached.
func Calculate(in Input) Values {
	og := OG(in.Malts, in.Adjuncts, in.Tables, in.VolumeL)
	fg := FG(og, Attenuation(in.Yeast))
	ebc := EBC(in.Malts, in.Tables, in.VolumeL)

	return Values{
		OG:         og,
		OGPlato:    Plato(og),
		FG:         fg,
		ABV:        ABV(og, fg),
		IBU:        IBU(in.Hops, in.Tables, og, in.VolumeL),
		EBC:        ebc,
		ColorLabel: ColorLabel(ebc),
		CO2Volumes: CO2Volumes(in.Mode, in.SugarPerLiter),
		TotalSugar: TotalPrimingSugar(in.SugarPerLiter, in.VolumeL),
	}
}

// InputFromRecipe builds the calculator input for a recipe, resolving its
// yeast against t.
func InputFromRecipe(r *brew.Recipe, t *brew.Tables) Input {
	in := Input{
		Malts:         r.Malts,
		Hops:          r.Hops,
		Adjuncts:      r.Adjuncts,
		Tables:        t,
		VolumeL:       r.Params.Volume,
		SugarPerLiter: r.Conditioning.SugarPerLiter,
		Mode:          r.Conditioning.Mode,
	}
	if y, ok := t.Yeast(r.YeastID); ok {
		in.Yeast = &y
	}
	return in
}

// ForRecipe is Calculate over a recipe.
func ForRecipe(r *brew.Recipe, t *brew.Tables) Values {
	return Calculate(InputFromRecipe(r, t))
}
