package procedure

import (
	"strconv"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/calc"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

// StepID identifies a procedure step.
type StepID string

// Step ids in generation order. Mash and sparge only appear for all-grain
// brews.
const (
	StepPreparation  StepID = "preparation"
	StepHeatWater    StepID = "heat_water"
	StepMash         StepID = "mash"
	StepSparge       StepID = "sparge"
	StepBoil         StepID = "boil"
	StepCooling      StepID = "cooling"
	StepTransfer     StepID = "transfer"
	StepPitchYeast   StepID = "pitch_yeast"
	StepFermentation StepID = "fermentation"
	StepConditioning StepID = "conditioning"
	StepMaturation   StepID = "maturation"
)

// Step is one production step. DurationMin is nil when the step has no
// meaningful duration.
type Step struct {
	ID          StepID   `json:"id"`
	Title       string   `json:"title"`
	DurationMin *float64 `json:"durationMin,omitempty"`
	Details     []Line   `json:"details"`
	Tips        []string `json:"tips,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Context is everything the generator reads.
type Context struct {
	Recipe *brew.Recipe
	Tables *brew.Tables
	Yeast  *brew.Yeast
	Caps   brew.Capabilities
	Water  water.Plan
}

// NewContext resolves the yeast, capabilities and water plan for r.
func NewContext(r *brew.Recipe, t *brew.Tables, wp water.Params) Context {
	ctx := Context{
		Recipe: r,
		Tables: t,
		Caps:   brew.ResolveCapabilities(r, t),
		Water:  water.CalculateWith(r, wp),
	}
	if y, ok := t.Yeast(r.YeastID); ok {
		ctx.Yeast = &y
	}
	return ctx
}

// Generate builds the full procedure: eleven steps for all-grain brews and
// nine for kit and extract brews, in a fixed causal order.
func Generate(ctx Context) []Step {
	allGrain := ctx.Recipe.Params.Method.IsAllGrain()

	steps := make([]Step, 0, 11)
	steps = append(steps, preparationStep(ctx), heatWaterStep(ctx, allGrain))
	if allGrain {
		steps = append(steps, mashStep(ctx), spargeStep(ctx))
	}
	steps = append(steps,
		boilStep(ctx),
		coolingStep(ctx),
		transferStep(ctx),
		pitchYeastStep(ctx),
		fermentationStep(ctx),
		conditioningStep(ctx),
		maturationStep(ctx),
	)
	return steps
}

// TotalDurationMin sums the durations of steps that have one.
func TotalDurationMin(steps []Step) float64 {
	var total float64
	for _, s := range steps {
		if s.DurationMin != nil {
			total += *s.DurationMin
		}
	}
	return total
}

func minutes(m float64) *float64 { return &m }

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// pitchTemp is the yeast's ideal temperature, or 20°C without a yeast.
func (c Context) pitchTemp() float64 {
	if c.Yeast != nil {
		return c.Yeast.TempIdeal
	}
	return defaultPitchTempC
}

func (c Context) totalSugar() float64 {
	return calc.TotalPrimingSugar(c.Recipe.Conditioning.SugarPerLiter, c.Recipe.Params.Volume)
}
