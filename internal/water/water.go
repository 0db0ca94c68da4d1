// Package water plans brewing water volumes with a forward mass balance:
// grain bill and process parameters in, mash, sparge, pre-boil and total
// volumes out, with each loss category reported separately.
package water

import (
	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/units"
)

// Params are the planner's documented estimates. They are homebrew rules of
// thumb, not physical constants, and every field may be overridden.
type Params struct {
	// GrainAbsorptionLPerKg is the water retained by spent grain.
	GrainAbsorptionLPerKg float64 `json:"grain_absorption_l_per_kg" yaml:"grain_absorption_l_per_kg"`
	// MashRatioLPerKg is the mash thickness.
	MashRatioLPerKg float64 `json:"mash_ratio_l_per_kg" yaml:"mash_ratio_l_per_kg"`
	// TrubLossL is the wort left behind with hop and protein debris.
	TrubLossL float64 `json:"trub_loss_l" yaml:"trub_loss_l"`
	// FixedLossesL covers dead space and transfer losses.
	FixedLossesL float64 `json:"fixed_losses_l" yaml:"fixed_losses_l"`
	// BoilOffLPerHour is used when the recipe has no boil-off override.
	BoilOffLPerHour float64 `json:"boil_off_l_per_hour" yaml:"boil_off_l_per_hour"`
}

// Default estimates.
const (
	DefaultGrainAbsorptionLPerKg = 0.8
	DefaultMashRatioLPerKg       = 2.7
	DefaultTrubLossL             = 0.5
	DefaultFixedLossesL          = 1.0
)

// DefaultParams returns the beginner estimates.
func DefaultParams() Params {
	return Params{
		GrainAbsorptionLPerKg: DefaultGrainAbsorptionLPerKg,
		MashRatioLPerKg:       DefaultMashRatioLPerKg,
		TrubLossL:             DefaultTrubLossL,
		FixedLossesL:          DefaultFixedLossesL,
		BoilOffLPerHour:       brew.DefaultBoilOffLPerHour,
	}
}

// Plan is the derived water snapshot. Mash and sparge water are zero for kit
// and extract brews. All volumes are liters rounded to one decimal.
type Plan struct {
	Method           brew.Method `json:"method"`
	MashWaterL       float64     `json:"mashWaterL"`
	SpargeWaterL     float64     `json:"spargeWaterL"`
	TotalWaterL      float64     `json:"totalWaterL"`
	PreBoilVolumeL   float64     `json:"preBoilVolumeL"`
	PostBoilVolumeL  float64     `json:"postBoilVolumeL"`
	GrainAbsorptionL float64     `json:"grainAbsorptionL"`
	BoilOffL         float64     `json:"boilOffL"`
	TrubLossL        float64     `json:"trubLossL"`
	FixedLossesL     float64     `json:"fixedLossesL"`
	LossesL          float64     `json:"lossesL"`
}

// Calculate plans water for r with the default estimates.
func Calculate(r *brew.Recipe) Plan {
	return CalculateWith(r, DefaultParams())
}

// CalculateWith plans water for r. The boil-off rate comes from the recipe's
// process override when positive, otherwise from p.
func CalculateWith(r *brew.Recipe, p Params) Plan {
	rate := r.Process.BoilOffRateLPerHour
	if rate <= 0 {
		rate = p.BoilOffLPerHour
	}
	boilOffL := rate * (r.BoilMinutes() / 60)
	volumeL := r.Params.Volume

	if !r.Params.Method.IsAllGrain() {
		return extractPlan(r.Params.Method, volumeL, boilOffL, p)
	}
	return allGrainPlan(volumeL, r.TotalGrainKg(), boilOffL, p)
}

func extractPlan(method brew.Method, volumeL, boilOffL float64, p Params) Plan {
	preBoil := volumeL + boilOffL + p.TrubLossL

	return Plan{
		Method:          method,
		TotalWaterL:     units.Round1(preBoil + p.FixedLossesL),
		PreBoilVolumeL:  units.Round1(preBoil),
		PostBoilVolumeL: units.Round1(volumeL),
		BoilOffL:        units.Round1(boilOffL),
		TrubLossL:       units.Round1(p.TrubLossL),
		FixedLossesL:    units.Round1(p.FixedLossesL),
		LossesL:         units.Round1(p.FixedLossesL + p.TrubLossL + boilOffL),
	}
}

func allGrainPlan(volumeL, grainKg, boilOffL float64, p Params) Plan {
	absorption := grainKg * p.GrainAbsorptionLPerKg
	preBoil := volumeL + boilOffL + p.TrubLossL
	mash := grainKg * p.MashRatioLPerKg
	sparge := max(0, preBoil-mash+absorption)

	mashL := units.Round1(mash)
	spargeL := units.Round1(sparge)

	return Plan{
		Method:       brew.MethodAllGrain,
		MashWaterL:   mashL,
		SpargeWaterL: spargeL,
		// Summing the rounded parts keeps total == mash + sparge exact.
		TotalWaterL:      units.Round1(mashL + spargeL),
		PreBoilVolumeL:   units.Round1(preBoil),
		PostBoilVolumeL:  units.Round1(volumeL),
		GrainAbsorptionL: units.Round1(absorption),
		BoilOffL:         units.Round1(boilOffL),
		TrubLossL:        units.Round1(p.TrubLossL),
		FixedLossesL:     units.Round1(p.FixedLossesL),
		LossesL:          units.Round1(absorption + p.FixedLossesL + p.TrubLossL + boilOffL),
	}
}
