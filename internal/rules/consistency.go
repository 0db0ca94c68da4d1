package rules

import (
	"fmt"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

// Consistency thresholds.
const (
	KettleDangerMargin     = 1.05
	KettleWarnMargin       = 1.15
	ChillerVolumeL         = 15.0
	LowGrainKg             = 2.0
	LowGrainMinVolumeL     = 15.0
	LowGrainTargetPerLiter = 0.2
	// MashVolumePerKg approximates mash volume as water at 2.7 L/kg plus the
	// grain's own 0.7 L/kg.
	MashVolumePerKg     = 3.4
	MashKettleFill      = 0.9
	ShortBoilMinutes    = 45.0
	HighWaterVolumeL    = 50.0
	MinBaseMaltFraction = 0.6
)

// Check is a consistency diagnostic.
type Check struct {
	ID      string `json:"id"`
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ConsistencyRule yields at most one check for a context.
type ConsistencyRule struct {
	ID       string
	Evaluate func(Context) (Check, bool)
}

// ConsistencyRules returns the consistency rules in evaluation order.
func ConsistencyRules() []ConsistencyRule {
	return []ConsistencyRule{
		{ID: "kettle_too_small", Evaluate: kettleTooSmall},
		{ID: "no_chiller_volume", Evaluate: noChillerForVolume},
		{ID: "low_grain", Evaluate: lowGrain},
		{ID: "grain_too_much_for_kettle", Evaluate: grainTooMuchForKettle},
		{ID: "boil_too_short", Evaluate: boilTooShort},
		{ID: "high_water_volume", Evaluate: highWaterVolume},
		{ID: "no_hydrometer", Evaluate: noHydrometer},
		{ID: "low_base_malt_ratio", Evaluate: lowBaseMaltRatio},
	}
}

// RunConsistency evaluates every consistency rule and returns the checks in
// rule order. Results are not sorted by severity.
func RunConsistency(ctx Context) []Check {
	var checks []Check
	for _, rule := range ConsistencyRules() {
		if c, ok := rule.Evaluate(ctx); ok {
			checks = append(checks, c)
		}
	}
	return checks
}

func kettleTooSmall(ctx Context) (Check, bool) {
	capacity := ctx.Caps.KettleCapacityL
	preBoil := ctx.Water.PreBoilVolumeL
	if capacity <= 0 {
		return Check{}, false
	}

	switch {
	case capacity < preBoil*KettleDangerMargin:
		return Check{
			ID:    "kettle_too_small_danger",
			Level: LevelDanger,
			Title: "Kettle too small!",
			Message: fmt.Sprintf("Your kettle (%s L) is dangerously small for %s L of pre-boil wort. It will boil over.",
				num(capacity), num(preBoil)),
		}, true
	case capacity < preBoil*KettleWarnMargin:
		return Check{
			ID:    "kettle_too_small_warn",
			Level: LevelWarn,
			Title: "Very tight kettle headroom",
			Message: fmt.Sprintf("Your kettle (%s L) leaves little headroom for %s L of wort. Watch the boil closely.",
				num(capacity), num(preBoil)),
		}, true
	}
	return Check{}, false
}

func noChillerForVolume(ctx Context) (Check, bool) {
	vol := ctx.Recipe.Params.Volume
	if ctx.Caps.HasChiller || vol < ChillerVolumeL {
		return Check{}, false
	}
	return Check{
		ID:    "no_chiller_volume",
		Level: LevelWarn,
		Title: "No wort chiller for this volume",
		Message: fmt.Sprintf("Cooling %s L without a chiller will be slow. Plan a large ice bath or invest in an immersion coil.",
			num(vol)),
	}, true
}

func lowGrain(ctx Context) (Check, bool) {
	r := ctx.Recipe
	if !r.Params.Method.IsAllGrain() {
		return Check{}, false
	}
	grain := r.TotalGrainKg()
	vol := r.Params.Volume
	if grain <= 0 || grain >= LowGrainKg || vol < LowGrainMinVolumeL {
		return Check{}, false
	}
	return Check{
		ID:    "low_grain",
		Level: LevelWarn,
		Title: "Very little grain for the volume",
		Message: fmt.Sprintf("%.1f kg of grain for %s L: the beer will be very thin. Aim for at least %.1f kg.",
			grain, num(vol), vol*LowGrainTargetPerLiter),
	}, true
}

func grainTooMuchForKettle(ctx Context) (Check, bool) {
	r := ctx.Recipe
	capacity := ctx.Caps.KettleCapacityL
	grain := r.TotalGrainKg()
	if !r.Params.Method.IsAllGrain() || grain <= 0 || capacity <= 0 {
		return Check{}, false
	}
	mashVolume := grain * MashVolumePerKg
	if mashVolume <= capacity*MashKettleFill {
		return Check{}, false
	}
	return Check{
		ID:    "grain_too_much_for_kettle",
		Level: LevelDanger,
		Title: "Too much grain for your kettle",
		Message: fmt.Sprintf("%.1f kg of grain plus mash water is about %.0f L. Your %s L kettle will not hold it.",
			grain, mashVolume, num(capacity)),
	}, true
}

func boilTooShort(ctx Context) (Check, bool) {
	boil := ctx.Recipe.Mashing.BoilDuration
	if boil <= 0 || boil >= ShortBoilMinutes {
		return Check{}, false
	}
	return Check{
		ID:    "boil_too_short",
		Level: LevelWarn,
		Title: "Short boil",
		Message: fmt.Sprintf("A %s min boil may extract too little bitterness and drive off too little DMS. 60 min is recommended.",
			num(boil)),
	}, true
}

func highWaterVolume(ctx Context) (Check, bool) {
	total := ctx.Water.TotalWaterL
	if total <= HighWaterVolumeL {
		return Check{}, false
	}
	return Check{
		ID:    "high_water_volume",
		Level: LevelInfo,
		Title: "Large water volume",
		Message: fmt.Sprintf("%s L of water in total. Make sure you can heat and handle this volume.",
			num(total)),
	}, true
}

func noHydrometer(ctx Context) (Check, bool) {
	if ctx.Caps.HasHydrometer {
		return Check{}, false
	}
	return Check{
		ID:      "no_hydrometer",
		Level:   LevelInfo,
		Title:   "No hydrometer",
		Message: "Without a hydrometer you cannot confirm fermentation has finished. Wait at least 3 weeks before bottling.",
	}, true
}

// lowBaseMaltRatio compares base malt mass to the mass of every malt that
// resolves in the reference tables. Unresolvable rows are ignored.
func lowBaseMaltRatio(ctx Context) (Check, bool) {
	var base, total float64
	for _, add := range ctx.Recipe.ActiveMalts() {
		malt, ok := ctx.Tables.Malt(add.MaltID)
		if !ok {
			continue
		}
		total += add.Amount
		if malt.Type == brew.MaltBase {
			base += add.Amount
		}
	}
	if total <= 0 || base/total >= MinBaseMaltFraction {
		return Check{}, false
	}
	return Check{
		ID:    "low_base_malt_ratio",
		Level: LevelWarn,
		Title: "Low base malt share",
		Message: fmt.Sprintf("Base malt is %.0f%% of the grain bill. Keep it at or above %.0f%% so the mash converts and the beer is not cloying.",
			base/total*100, MinBaseMaltFraction*100),
	}, true
}
