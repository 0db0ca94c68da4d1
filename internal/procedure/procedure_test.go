package procedure

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

func testTables() *brew.Tables {
	return &brew.Tables{
		Malts: []brew.Malt{{ID: "pale", Name: "Pale Ale", Type: brew.MaltBase, ColorEBC: 6, PotentialGravity: 1.037}},
		Hops: []brew.Hop{
			{ID: "cascade", Name: "Cascade", AlphaAcid: 5.5},
			{ID: "saaz", Name: "Saaz", AlphaAcid: 3.5},
		},
		Yeasts: []brew.Yeast{
			{ID: "us05", Name: "US-05", Type: brew.YeastAle, Attenuation: 78, TempMin: 15, TempMax: 22, TempIdeal: 18},
			{ID: "w3470", Name: "W-34/70", Type: brew.YeastLager, Attenuation: 82, TempMin: 9, TempMax: 15, TempIdeal: 12},
		},
		Equipment: []brew.Equipment{
			{ID: "chiller", Name: "Immersion chiller", Category: brew.CategoryCooling},
			{ID: "hydrometer", Name: "Hydrometer", Category: brew.CategoryMeasurement},
		},
		Adjuncts: []brew.Adjunct{{ID: "honey", Name: "Honey", GravityContribution: 1.035}},
	}
}

func allGrainRecipe() brew.Recipe {
	r := brew.Default()
	r.Malts = []brew.MaltAddition{{MaltID: "pale", Amount: 5}}
	r.Hops = []brew.HopAddition{{HopID: "cascade", Amount: 20, Timing: 60}}
	r.YeastID = "us05"
	return r
}

func generate(r *brew.Recipe) []Step {
	return Generate(NewContext(r, testTables(), water.DefaultParams()))
}

func stepIDs(steps []Step) []StepID {
	ids := make([]StepID, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ID)
	}
	return ids
}

func find(t *testing.T, steps []Step, id StepID) Step {
	t.Helper()
	for _, s := range steps {
		if s.ID == id {
			return s
		}
	}
	require.FailNow(t, "step not found", "%s", id)
	return Step{}
}

func detailText(s Step) string {
	var b strings.Builder
	for _, l := range s.Details {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestGenerateAllGrainOrder(t *testing.T) {
	r := allGrainRecipe()
	steps := generate(&r)

	assert.Equal(t, []StepID{
		StepPreparation, StepHeatWater, StepMash, StepSparge, StepBoil, StepCooling,
		StepTransfer, StepPitchYeast, StepFermentation, StepConditioning, StepMaturation,
	}, stepIDs(steps))
}

func TestGenerateWithoutMash(t *testing.T) {
	for _, m := range []brew.Method{brew.MethodExtract, brew.MethodKit} {
		t.Run(string(m), func(t *testing.T) {
			r := allGrainRecipe()
			r.Params.Method = m
			steps := generate(&r)

			require.Len(t, steps, 9)
			assert.NotContains(t, stepIDs(steps), StepMash)
			assert.NotContains(t, stepIDs(steps), StepSparge)

			heat := find(t, steps, StepHeatWater)
			require.NotNil(t, heat.DurationMin)
			assert.InDelta(t, 15.0, *heat.DurationMin, 1e-9)
			assert.Contains(t, detailText(heat), "70°C")
		})
	}
}

func TestWaterVolumesInNarration(t *testing.T) {
	r := allGrainRecipe()
	steps := generate(&r)

	assert.Contains(t, detailText(find(t, steps, StepPreparation)), "26.5 L of water in total")
	assert.Contains(t, detailText(find(t, steps, StepHeatWater)), "13.5 L of water for the mash")
	assert.Contains(t, detailText(find(t, steps, StepHeatWater)), "Heat it to 68°C")
	assert.Contains(t, detailText(find(t, steps, StepSparge)), "13 L of water at 75-78°C")
	assert.Contains(t, detailText(find(t, steps, StepMash)), "5.0 kg of crushed grain")
}

func TestMashProfileTip(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{63, "dry, stronger"},
		{65, "balance of body"},
		{66.9, "balance of body"},
		{67, "full-bodied"},
	}
	for _, tt := range tests {
		r := allGrainRecipe()
		r.Mashing.MashTemp = tt.temp
		heat := find(t, generate(&r), StepHeatWater)
		assert.Contains(t, strings.Join(heat.Tips, "\n"), tt.want, "temp %v", tt.temp)
	}
}

func TestBoilHopScheduleDescending(t *testing.T) {
	r := allGrainRecipe()
	r.Hops = []brew.HopAddition{
		{HopID: "cascade", Amount: 15, Timing: 10},
		{HopID: "cascade", Amount: 25, Timing: 60},
		{HopID: "saaz", Amount: 30, Timing: 0},
	}
	boil := find(t, generate(&r), StepBoil)

	var headingAt = -1
	var schedule []string
	for i, l := range boil.Details {
		if l.Kind == KindHeading {
			headingAt = i
			continue
		}
		if headingAt >= 0 && strings.Contains(l.Text, ": add ") {
			schedule = append(schedule, l.Text)
		}
	}
	require.GreaterOrEqual(t, headingAt, 1)
	assert.Equal(t, KindSpacer, boil.Details[headingAt-1].Kind)
	require.Len(t, schedule, 3)
	assert.Equal(t, "T-60 min (0 min after the boil starts): add 25 g of Cascade (bitterness)", schedule[0])
	assert.Equal(t, "T-10 min (50 min after the boil starts): add 15 g of Cascade (bitterness + aroma)", schedule[1])
	assert.Equal(t, "Flame-out (heat off): add 30 g of Saaz (maximum aroma, no bitterness)", schedule[2])
}

func TestBoilWithoutHopsHasNoSchedule(t *testing.T) {
	r := allGrainRecipe()
	r.Hops = []brew.HopAddition{{HopID: "", Amount: 0, Timing: 60}}
	boil := find(t, generate(&r), StepBoil)
	for _, l := range boil.Details {
		assert.NotEqual(t, KindHeading, l.Kind)
	}
}

func TestBoilDurationAndAdjuncts(t *testing.T) {
	r := allGrainRecipe()
	r.Mashing.BoilDuration = 90
	r.Adjuncts = []brew.AdjunctAddition{{AdjunctID: "honey", Amount: 0.5}, {AdjunctID: "ghost", Amount: 1}}
	boil := find(t, generate(&r), StepBoil)

	require.NotNil(t, boil.DurationMin)
	assert.InDelta(t, 90.0, *boil.DurationMin, 1e-9)
	text := detailText(boil)
	assert.Contains(t, text, "Honey (0.5 kg)")
	assert.NotContains(t, text, "ghost")
}

func TestHopImpact(t *testing.T) {
	assert.Equal(t, ImpactBitterness, HopImpact(60))
	assert.Equal(t, ImpactBitterness, HopImpact(30))
	assert.Equal(t, ImpactBitterAroma, HopImpact(29))
	assert.Equal(t, ImpactBitterAroma, HopImpact(10))
	assert.Equal(t, ImpactMostlyAroma, HopImpact(5))
	assert.Equal(t, ImpactMaxAromaNoBitter, HopImpact(0))
}

func TestCoolingBranches(t *testing.T) {
	t.Run("chiller", func(t *testing.T) {
		r := allGrainRecipe()
		r.EquipmentInfo.HasChiller = true
		cool := find(t, generate(&r), StepCooling)
		assert.InDelta(t, 20.0, *cool.DurationMin, 1e-9)
		assert.Contains(t, detailText(cool), "18°C")
		assert.Empty(t, cool.Warnings)
	})

	t.Run("chiller from equipment", func(t *testing.T) {
		r := allGrainRecipe()
		r.Profile.SelectedEquipment = []string{"chiller"}
		cool := find(t, generate(&r), StepCooling)
		assert.Equal(t, "Cooling", cool.Title)
	})

	t.Run("ice bath", func(t *testing.T) {
		r := allGrainRecipe()
		cool := find(t, generate(&r), StepCooling)
		assert.InDelta(t, 60.0, *cool.DurationMin, 1e-9)
		assert.Contains(t, detailText(cool), "at least 5 kg of ice")
		assert.NotEmpty(t, cool.Warnings)
	})

	t.Run("small ice bath", func(t *testing.T) {
		r := allGrainRecipe()
		r.Params.Volume = 10
		r.YeastID = ""
		cool := find(t, generate(&r), StepCooling)
		assert.InDelta(t, 40.0, *cool.DurationMin, 1e-9)
		assert.Contains(t, detailText(cool), "Cool down to 20°C")
	})
}

func TestIceAndBottles(t *testing.T) {
	assert.InDelta(t, 5.0, IceKg(20), 1e-9)
	assert.InDelta(t, 3.0, IceKg(10.5), 1e-9)
	assert.InDelta(t, 61.0, BottleCount(20, 0.33), 1e-9)
	assert.InDelta(t, 27.0, BottleCount(20, 0.75), 1e-9)
	assert.Zero(t, BottleCount(20, 0))
}

func TestPitchYeast(t *testing.T) {
	t.Run("ale", func(t *testing.T) {
		r := allGrainRecipe()
		pitch := find(t, generate(&r), StepPitchYeast)
		text := detailText(pitch)
		assert.Contains(t, text, "18°C (acceptable range 15-22°C)")
		assert.Contains(t, text, "Wait 15 minutes")
		assert.Empty(t, pitch.Warnings)
	})

	t.Run("lager without control", func(t *testing.T) {
		r := allGrainRecipe()
		r.YeastID = "w3470"
		pitch := find(t, generate(&r), StepPitchYeast)
		assert.NotContains(t, detailText(pitch), "Wait 15 minutes")
		assert.Len(t, pitch.Warnings, 1)
	})

	t.Run("lager with control", func(t *testing.T) {
		r := allGrainRecipe()
		r.YeastID = "w3470"
		r.EquipmentInfo.HasTempControl = true
		assert.Empty(t, find(t, generate(&r), StepPitchYeast).Warnings)
	})

	t.Run("no yeast", func(t *testing.T) {
		r := allGrainRecipe()
		r.YeastID = ""
		assert.Contains(t, detailText(find(t, generate(&r), StepPitchYeast)), "between 18 and 22°C")
	})
}

func TestFermentation(t *testing.T) {
	t.Run("duration in minutes", func(t *testing.T) {
		r := allGrainRecipe()
		f := find(t, generate(&r), StepFermentation)
		assert.InDelta(t, 14400.0, *f.DurationMin, 1e-9)
	})

	t.Run("hydrometer", func(t *testing.T) {
		r := allGrainRecipe()
		r.EquipmentInfo.HasHydrometer = true
		text := detailText(find(t, generate(&r), StepFermentation))
		assert.Contains(t, text, "48h later")
		assert.NotContains(t, text, "ideally 15 days")
	})

	t.Run("no hydrometer", func(t *testing.T) {
		r := allGrainRecipe()
		assert.Contains(t, detailText(find(t, generate(&r), StepFermentation)), "ideally 15 days")
	})

	t.Run("secondary", func(t *testing.T) {
		r := allGrainRecipe()
		r.Fermentation.Secondary = brew.DefaultSecondary()
		f := find(t, generate(&r), StepFermentation)
		assert.Contains(t, detailText(f), "at 12°C for 14 days")
	})

	t.Run("temperature control drops tips", func(t *testing.T) {
		r := allGrainRecipe()
		r.EquipmentInfo.HasTempControl = true
		assert.Len(t, find(t, generate(&r), StepFermentation).Tips, 1)
	})
}

func TestConditioning(t *testing.T) {
	t.Run("bottles", func(t *testing.T) {
		r := allGrainRecipe()
		steps := generate(&r)
		c := find(t, steps, StepConditioning)
		assert.InDelta(t, 60.0, *c.DurationMin, 1e-9)
		assert.Contains(t, detailText(c), "7 g/L × 20 L = 140 g")
		assert.Contains(t, strings.Join(c.Tips, "\n"), "61 bottles of 33 cL or 27 bottles of 75 cL")
		assert.Contains(t, detailText(find(t, steps, StepMaturation)), "upright")
	})

	t.Run("keg", func(t *testing.T) {
		r := allGrainRecipe()
		r.Conditioning.Mode = brew.ModeKeg
		steps := generate(&r)
		c := find(t, steps, StepConditioning)
		assert.InDelta(t, 30.0, *c.DurationMin, 1e-9)
		assert.Contains(t, detailText(c), "2.0-2.5 bar")
		assert.Empty(t, c.Warnings)
		assert.Contains(t, detailText(find(t, steps, StepMaturation)), "keg cold")
	})
}

func TestPreparationEquipment(t *testing.T) {
	r := allGrainRecipe()
	assert.Contains(t, detailText(find(t, generate(&r), StepPreparation)), "kettle, fermenter")

	r.Profile.SelectedEquipment = []string{"chiller", "hydrometer", "unknown"}
	assert.Contains(t, detailText(find(t, generate(&r), StepPreparation)),
		"Equipment to prepare: Immersion chiller, Hydrometer.")
}

func TestMaturationHasNoDuration(t *testing.T) {
	r := allGrainRecipe()
	steps := generate(&r)
	assert.Nil(t, find(t, steps, StepMaturation).DurationMin)
	// 20+20+60+30+60+60+10+5+14400+60
	assert.InDelta(t, 14725.0, TotalDurationMin(steps), 1e-9)
}

func TestStepJSON(t *testing.T) {
	r := allGrainRecipe()
	steps := generate(&r)
	b, err := json.Marshal(steps[len(steps)-1])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "durationMin")

	b, err = json.Marshal(Heading("Hop addition schedule"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"heading","text":"Hop addition schedule"}`, string(b))

	var l Line
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"spacer"}`), &l))
	assert.Equal(t, Spacer(), l)
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"bogus"}`), &l))
}
