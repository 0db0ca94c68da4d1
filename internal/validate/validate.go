// Package validate checks a recipe one wizard step at a time. Validation is
// advisory: the derivation engine accepts any recipe, these results only gate
// progress through the guided flow.
package validate

import (
	"fmt"
	"math"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

// Step is a wizard step index.
type Step int

// Wizard steps in order.
const (
	StepProfile Step = iota
	StepParams
	StepMalts
	StepHops
	StepYeast
	StepWater
	StepMash
	StepFermentation
	StepConditioning
	StepSummary

	// StepCount is the number of wizard steps.
	StepCount = int(StepSummary) + 1
)

var stepNames = [StepCount]string{ //nolint:gochecknoglobals // immutable names
	"profile", "params", "malts", "hops", "yeast",
	"water", "mash", "fermentation", "conditioning", "summary",
}

// Bounds enforced by the wizard.
const (
	MinMashTempC         = 60.0
	MaxMashTempC         = 72.0
	MinFermentationTempC = 4.0
	MaxFermentationTempC = 35.0
	MinSugarPerLiter     = 4.0
	MaxSugarPerLiter     = 10.0
)

func (s Step) String() string {
	if s >= 0 && int(s) < StepCount {
		return stepNames[s]
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// ParseStep resolves a step by name.
func ParseStep(name string) (Step, error) {
	for i, n := range stepNames {
		if n == name {
			return Step(i), nil
		}
	}
	return 0, fmt.Errorf("unknown wizard step %q", name)
}

// FieldError is one validation failure.
type FieldError struct {
	Step    Step   `json:"step"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a single step.
type Result struct {
	Step   Step         `json:"step"`
	Name   string       `json:"name"`
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

type collector struct {
	step Step
	errs []FieldError
}

func (c *collector) add(field, msg string) {
	c.errs = append(c.errs, FieldError{Step: c.step, Field: field, Message: msg})
}

// Validate checks r against the rules of step. Unknown steps are valid.
func Validate(step Step, r *brew.Recipe, t *brew.Tables) Result {
	c := &collector{step: step}

	switch step {
	case StepProfile:
		profile(c, r, t)
	case StepParams:
		if !(r.Params.Volume > 0) {
			c.add("params.volume", "Enter a batch volume in liters. The field is empty or 0.")
		}
	case StepMalts:
		malts(c, r)
	case StepHops:
		hops(c, r)
	case StepYeast:
		if r.YeastID == "" {
			c.add("yeastId", "Select a yeast.")
		}
	case StepMash:
		mash := r.Mashing.MashTemp
		if mash < MinMashTempC || mash > MaxMashTempC || math.IsNaN(mash) {
			c.add("mashing.mashTemp", "Mash temperature must be between 60 and 72°C.")
		}
		if !(r.Mashing.BoilDuration > 0) {
			c.add("mashing.boilDuration", "Enter a boil duration in minutes. The field is empty or 0.")
		}
	case StepFermentation:
		fermentation(c, r)
	case StepConditioning:
		sugar := r.Conditioning.SugarPerLiter
		if r.Conditioning.Mode == brew.ModeBottles &&
			(sugar < MinSugarPerLiter || sugar > MaxSugarPerLiter || math.IsNaN(sugar)) {
			c.add("conditioning.sugarPerLiter", "Priming sugar must be between 4 and 10 g/L.")
		}
	case StepWater, StepSummary:
	}

	return Result{Step: step, Name: step.String(), Valid: len(c.errs) == 0, Errors: c.errs}
}

func profile(c *collector, r *brew.Recipe, t *brew.Tables) {
	var kettle, fermenter bool
	for _, e := range t.SelectedEquipment(r.Profile.SelectedEquipment) {
		switch e.Category {
		case brew.CategoryKettle:
			kettle = true
		case brew.CategoryFermenter:
			fermenter = true
		}
	}
	if !kettle {
		c.add("profile.selectedEquipment", "Select at least one brew kettle.")
	}
	if !fermenter {
		c.add("profile.selectedEquipment", "Select at least one fermenter.")
	}
}

// row is the shape shared by malt and hop rows.
type row struct {
	id     string
	amount float64
}

func checkRows(c *collector, field, noun string, rows []row) {
	if len(rows) == 0 {
		c.add(field, fmt.Sprintf("Add at least one %s.", noun))
		return
	}
	var missingID, missingAmount, anyValid bool
	for _, r := range rows {
		switch {
		case r.id == "":
			missingID = true
		case !(r.amount > 0):
			missingAmount = true
		default:
			anyValid = true
		}
	}
	if missingID {
		c.add(field, fmt.Sprintf("Every %s row must have a %s selected from the list.", noun, noun))
	}
	if missingAmount {
		c.add(field, fmt.Sprintf("Every selected %s must have an amount greater than 0.", noun))
	}
	if !anyValid {
		c.add(field, fmt.Sprintf("Add at least one %s with an amount greater than 0.", noun))
	}
}

func malts(c *collector, r *brew.Recipe) {
	rows := make([]row, 0, len(r.Malts))
	for _, m := range r.Malts {
		rows = append(rows, row{id: m.MaltID, amount: m.Amount})
	}
	checkRows(c, "malts", "malt", rows)
}

func hops(c *collector, r *brew.Recipe) {
	rows := make([]row, 0, len(r.Hops))
	for _, h := range r.Hops {
		rows = append(rows, row{id: h.HopID, amount: h.Amount})
	}
	checkRows(c, "hops", "hop", rows)
}

func fermentation(c *collector, r *brew.Recipe) {
	f := r.Fermentation
	if f.FermentationTemp < MinFermentationTempC || f.FermentationTemp > MaxFermentationTempC ||
		math.IsNaN(f.FermentationTemp) {
		c.add("fermentation.fermentationTemp",
			"Fermentation temperature must be between 4 and 35°C. Check the value entered.")
	}
	if !(f.PrimaryDays > 0) {
		c.add("fermentation.primaryDays", "Enter the primary fermentation length in days. The field is empty or 0.")
	}
	if f.Secondary != nil && !(f.Secondary.Days > 0) {
		c.add("fermentation.secondary.days", "Enter the secondary fermentation length in days.")
	}
}

// All validates every wizard step in order.
func All(r *brew.Recipe, t *brew.Tables) []Result {
	out := make([]Result, StepCount)
	for i := range StepCount {
		out[i] = Validate(Step(i), r, t)
	}
	return out
}

// Accessible reports whether step can be opened: the first step always can,
// any other step only when every earlier step is valid.
func Accessible(step Step, results []Result) bool {
	if step <= 0 {
		return true
	}
	for i := 0; i < int(step) && i < len(results); i++ {
		if !results[i].Valid {
			return false
		}
	}
	return true
}

// FirstInvalid returns the earliest invalid step, or false when all pass.
func FirstInvalid(results []Result) (Step, bool) {
	for _, res := range results {
		if !res.Valid {
			return res.Step, true
		}
	}
	return 0, false
}
