package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/calc"
	"github.com/guerrinflorian/ConcepteurBiere/internal/hygiene"
	"github.com/guerrinflorian/ConcepteurBiere/internal/procedure"
	"github.com/guerrinflorian/ConcepteurBiere/internal/rules"
	"github.com/guerrinflorian/ConcepteurBiere/internal/validate"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

var plain = Options{}

func sampleValues() calc.Values {
	return calc.Values{
		OG: 1.052, OGPlato: 12.9, FG: 1.011, ABV: 5.4, IBU: 32, EBC: 12,
		ColorLabel: "Amber", CO2Volumes: 2.4, TotalSugar: 140,
	}
}

func TestRenderMetricsPlain(t *testing.T) {
	checks := []calc.RangeCheck{
		{Metric: calc.MetricOG, Value: 1.052, Min: 1.038, Max: 1.054, Decimals: 3, InRange: true},
		{Metric: calc.MetricIBU, Value: 32, Min: 15, Max: 28, Decimals: 0, InRange: false},
	}
	out := RenderMetrics("Blonde", sampleValues(), checks, plain)

	assert.Contains(t, out, "Recipe metrics: Blonde")
	assert.Contains(t, out, "1.052 (12.9 °P)")
	assert.Contains(t, out, "5.4 %")
	assert.Contains(t, out, "12 EBC (Amber)")
	assert.Contains(t, out, "140 g")
	assert.Contains(t, out, "Style comparison")
	assert.Contains(t, out, IconOK+" OG")
	assert.Contains(t, out, IconOut+" IBU")
	assert.NotContains(t, out, IconSwatch)
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderMetricsWithoutStyleOrSugar(t *testing.T) {
	v := sampleValues()
	v.TotalSugar = 0
	out := RenderMetrics("", v, nil, plain)

	assert.Contains(t, out, "Recipe metrics\n")
	assert.NotContains(t, out, "Style comparison")
	assert.NotContains(t, out, "Priming sugar")
}

func TestRenderWaterPlanExpertBreakdown(t *testing.T) {
	p := water.Plan{
		Method: brew.MethodAllGrain, MashWaterL: 15, SpargeWaterL: 13.5, TotalWaterL: 28.5,
		PreBoilVolumeL: 24.5, PostBoilVolumeL: 21, GrainAbsorptionL: 4, BoilOffL: 3.5,
		TrubLossL: 1, FixedLossesL: 0.5, LossesL: 9,
	}

	beginner := RenderWaterPlan(p, plain)
	assert.Contains(t, beginner, "Mash water")
	assert.Contains(t, beginner, "28.5 L")
	assert.NotContains(t, beginner, "Losses")

	expert := RenderWaterPlan(p, Options{Expert: true})
	assert.Contains(t, expert, "Losses")
	assert.Contains(t, expert, "Grain absorption")
	assert.Contains(t, expert, "9.0 L")
}

func TestRenderWaterPlanExtractSkipsMash(t *testing.T) {
	out := RenderWaterPlan(water.Plan{Method: brew.MethodExtract, TotalWaterL: 24}, plain)
	assert.NotContains(t, out, "Mash water")
	assert.Contains(t, out, "24.0 L")
}

func TestRenderChecks(t *testing.T) {
	assert.Contains(t, RenderChecks(nil, plain), "No consistency issues found")

	out := RenderChecks([]rules.Check{
		{ID: "boil_too_short", Level: rules.LevelWarn, Title: "Short boil", Message: "Boil at least 60 minutes."},
	}, plain)
	assert.Contains(t, out, IconWarn+" Short boil (boil_too_short)")
	assert.Contains(t, out, "Boil at least 60 minutes.")
}

func TestRenderRisks(t *testing.T) {
	risks := []rules.Risk{
		{
			ID: "kettle_overflow", Level: rules.LevelDanger, Title: "Kettle overflow",
			Message: "Pre-boil volume exceeds the kettle.", WhyItMatters: "Boil-overs are dangerous.",
			HowToFix: []string{"Use a bigger kettle", "Reduce the batch"},
		},
	}
	out := RenderRisks(risks, 2, plain)
	assert.Contains(t, out, IconDanger+" Kettle overflow")
	assert.Contains(t, out, "Why it matters: Boil-overs are dangerous.")
	assert.Contains(t, out, IconBullet+" Reduce the batch")
	assert.Contains(t, out, "2 dismissed risk(s) hidden")

	assert.Contains(t, RenderRisks(nil, 0, plain), "No active risks")
}

func sampleSteps() []procedure.Step {
	boil := 60.0
	chill := 30.0
	return []procedure.Step{
		{
			ID: procedure.StepBoil, Title: "Boil", DurationMin: &boil,
			Details: []procedure.Line{
				procedure.Text("Bring the wort to a rolling boil"),
				procedure.Spacer(),
				procedure.Heading("Hop addition schedule"),
				procedure.Text("T-60 min: Magnum 20 g"),
			},
			Tips:     []string{"Leave the lid off"},
			Warnings: []string{"Watch for boil-overs"},
		},
		{ID: procedure.StepCooling, Title: "Cooling", DurationMin: &chill},
		{ID: procedure.StepTransfer, Title: "Transfer"},
	}
}

func TestRenderStepBeginnerAndExpert(t *testing.T) {
	s := sampleSteps()[0]

	beginner := RenderStep(3, s, plain)
	assert.Contains(t, beginner, "4. Boil (1 h)")
	assert.Contains(t, beginner, IconBullet+" Bring the wort to a rolling boil")
	assert.Contains(t, beginner, "\n\nHop addition schedule\n")
	assert.Contains(t, beginner, IconWarn+" Watch for boil-overs")
	assert.Contains(t, beginner, IconInfo+" Leave the lid off")

	expert := RenderStep(3, s, Options{Expert: true})
	assert.NotContains(t, expert, "Leave the lid off")
	assert.Contains(t, expert, "Watch for boil-overs")
}

func TestRenderProcedureTotal(t *testing.T) {
	out := RenderProcedure(sampleSteps(), plain)
	assert.Contains(t, out, "1. Boil")
	assert.Contains(t, out, "2. Cooling (30 min)")
	assert.Contains(t, out, "3. Transfer\n")
	assert.Contains(t, out, "1 h 30 min")
}

func TestRenderValidation(t *testing.T) {
	results := []validate.Result{
		{Step: validate.StepProfile, Name: "profile", Valid: true},
		{Step: validate.StepMalts, Name: "malts", Valid: false, Errors: []validate.FieldError{
			{Step: validate.StepMalts, Field: "malts", Message: "add at least one malt"},
		}},
	}
	out := RenderValidation(results, plain)
	assert.Contains(t, out, IconOK+" profile")
	assert.Contains(t, out, IconOut+" malts")
	assert.Contains(t, out, "malts: add at least one malt")
}

func TestRenderHygiene(t *testing.T) {
	sections := []hygiene.Section{{
		Stage: "boil", Title: "Boil", Intro: "Everything after the boil must be sanitized.",
		Items: []hygiene.Item{
			{ID: "sanitize_chiller", Label: "Sanitize the chiller", How: "Immerse it 15 minutes before flame-out", Severity: hygiene.SeverityWarn},
			{ID: "clean_kettle", Label: "Clean the kettle", Severity: hygiene.SeverityInfo},
		},
	}}
	checked := map[string]bool{"clean_kettle": true}

	out := RenderHygiene(sections, checked, plain)
	assert.Contains(t, out, "Everything after the boil must be sanitized.")
	assert.Contains(t, out, IconOpen+" Sanitize the chiller (sanitize_chiller)")
	assert.Contains(t, out, IconChecked+" Clean the kettle")
	assert.Contains(t, out, "Immerse it 15 minutes")
	assert.Contains(t, out, "1/2")

	expert := RenderHygiene(sections, checked, Options{Expert: true})
	assert.NotContains(t, expert, "Immerse it")
	assert.NotContains(t, expert, "must be sanitized")
}

func TestStyledOutputCarriesSwatch(t *testing.T) {
	out := RenderMetrics("", sampleValues(), nil, Options{Styled: true})
	assert.Contains(t, out, "EBC (Amber)")
	assert.Contains(t, out, "Recipe metrics")
}
