package water

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

func allGrainRecipe(grainKg, volumeL float64) brew.Recipe {
	r := brew.Default()
	r.Params.Volume = volumeL
	r.Malts = []brew.MaltAddition{{MaltID: "pale", Amount: grainKg}}
	return r
}

func TestCalculateAllGrain(t *testing.T) {
	r := allGrainRecipe(5, 20)

	got := Calculate(&r)

	assert.Equal(t, Plan{
		Method:           brew.MethodAllGrain,
		MashWaterL:       13.5,
		SpargeWaterL:     13.0,
		TotalWaterL:      26.5,
		PreBoilVolumeL:   22.5,
		PostBoilVolumeL:  20,
		GrainAbsorptionL: 4.0,
		BoilOffL:         2.0,
		TrubLossL:        0.5,
		FixedLossesL:     1.0,
		LossesL:          7.5,
	}, got)
}

func TestCalculateExtract(t *testing.T) {
	for _, method := range []brew.Method{brew.MethodExtract, brew.MethodKit} {
		t.Run(string(method), func(t *testing.T) {
			r := brew.Default()
			r.Params.Method = method
			r.Malts = []brew.MaltAddition{{MaltID: "pale", Amount: 5}}

			got := Calculate(&r)

			assert.InDelta(t, 0.0, got.MashWaterL, 1e-9)
			assert.InDelta(t, 0.0, got.SpargeWaterL, 1e-9)
			assert.InDelta(t, 0.0, got.GrainAbsorptionL, 1e-9)
			assert.InDelta(t, 22.5, got.PreBoilVolumeL, 1e-9)
			assert.InDelta(t, 23.5, got.TotalWaterL, 1e-9)
			assert.InDelta(t, 3.5, got.LossesL, 1e-9)
			assert.InDelta(t, 20.0, got.PostBoilVolumeL, 1e-9)
		})
	}
}

func TestBoilOffResolution(t *testing.T) {
	tests := []struct {
		name     string
		boilMin  float64
		process  float64
		rate     float64
		params   Params
		wantBoil float64
	}{
		{"default hour at 2 L/h", 60, 60, 2, DefaultParams(), 2.0},
		{"90 minute boil", 90, 60, 2, DefaultParams(), 3.0},
		{"process boil time fallback", 0, 30, 4, DefaultParams(), 2.0},
		{"rate fallback to params", 60, 60, 0, Params{BoilOffLPerHour: 3.5}, 3.5},
		{"both durations missing uses an hour", 0, 0, 2, DefaultParams(), 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := allGrainRecipe(5, 20)
			r.Mashing.BoilDuration = tt.boilMin
			r.Process.BoilTimeMin = tt.process
			r.Process.BoilOffRateLPerHour = tt.rate
			assert.InDelta(t, tt.wantBoil, CalculateWith(&r, tt.params).BoilOffL, 1e-9)
		})
	}
}

func TestSpargeNeverNegative(t *testing.T) {
	r := allGrainRecipe(20, 10)
	got := Calculate(&r)

	assert.InDelta(t, 0.0, got.SpargeWaterL, 1e-9)
	assert.InDelta(t, 54.0, got.MashWaterL, 1e-9)
	assert.InDelta(t, got.MashWaterL, got.TotalWaterL, 1e-9)
}

func TestOverriddenParams(t *testing.T) {
	r := allGrainRecipe(5, 20)
	p := DefaultParams()
	p.GrainAbsorptionLPerKg = 1.0
	p.MashRatioLPerKg = 3.0
	p.TrubLossL = 1.0
	p.FixedLossesL = 2.0

	got := CalculateWith(&r, p)

	assert.InDelta(t, 15.0, got.MashWaterL, 1e-9)
	assert.InDelta(t, 23.0, got.PreBoilVolumeL, 1e-9)
	assert.InDelta(t, 13.0, got.SpargeWaterL, 1e-9)
	assert.InDelta(t, 10.0, got.LossesL, 1e-9)
}

func TestPlaceholderGrainIgnored(t *testing.T) {
	r := allGrainRecipe(5, 20)
	r.Malts = append(r.Malts, brew.MaltAddition{MaltID: "", Amount: 10}, brew.MaltAddition{MaltID: "x", Amount: -2})

	assert.InDelta(t, 13.5, Calculate(&r).MashWaterL, 1e-9)
}

func TestMassBalanceProperties(t *testing.T) {
	for _, grain := range []float64{0, 0.7, 2.3, 4.45, 5, 6.66, 9.1} {
		for _, volume := range []float64{5, 10.5, 19, 20, 23.3, 40} {
			r := allGrainRecipe(grain, volume)
			p := Calculate(&r)

			assert.InDelta(t, p.MashWaterL+p.SpargeWaterL, p.TotalWaterL, 1e-9,
				"total must equal mash+sparge for grain=%v volume=%v", grain, volume)
			assert.InDelta(t, p.GrainAbsorptionL+p.FixedLossesL+p.TrubLossL+p.BoilOffL, p.LossesL, 0.15,
				"losses must sum the categories for grain=%v volume=%v", grain, volume)
			assert.InDelta(t, p.PostBoilVolumeL+p.BoilOffL+p.TrubLossL, p.PreBoilVolumeL, 0.15,
				"pre-boil must cover post-boil plus boil-off and trub for grain=%v volume=%v", grain, volume)
		}
	}
}

func TestZeroRecipeIsTotal(t *testing.T) {
	r := brew.Recipe{}
	p := Calculate(&r)
	assert.InDelta(t, 2.5, p.PreBoilVolumeL, 1e-9)
	assert.InDelta(t, 3.5, p.TotalWaterL, 1e-9)
}
