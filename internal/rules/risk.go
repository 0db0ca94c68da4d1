package rules

import (
	"fmt"
	"math"
	"slices"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/units"
)

// Risk thresholds. Each condition has a warn and a danger tier so dismissal
// can target one tier without silencing the other.
const (
	PrimingDangerGPerL      = 9.0
	PrimingWarnGPerL        = 8.0
	FermHotDangerMarginC    = 3.0
	FermHotWarnMarginC      = 1.0
	FermColdDangerMarginC   = 3.0
	NoChillerDangerVolumeL  = 25.0
	NoChillerWarnVolumeL    = 15.0
	OverflowDangerHeadroom  = 1.25
	OverflowWarnHeadroom    = 1.35
	OverflowSafeHeadroom    = 1.3
	LowGrainAmountPerLiter  = 0.15
	GrainTargetLowPerLiter  = 0.25
	GrainTargetHighPerLiter = 0.3
)

// Risk is a dismissable safety or quality diagnostic with remediation steps.
type Risk struct {
	ID           string   `json:"id"`
	Level        Level    `json:"level"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	WhyItMatters string   `json:"whyItMatters"`
	HowToFix     []string `json:"howToFix"`
}

// RiskRule yields at most one risk for a context. The emitted risk id differs
// from the rule id when the rule has severity tiers.
type RiskRule struct {
	ID       string
	Evaluate func(Context) (Risk, bool)
}

// RiskRules returns the risk rules in evaluation order.
func RiskRules() []RiskRule {
	return []RiskRule{
		{ID: "priming_high", Evaluate: primingHigh},
		{ID: "ferm_temp_hot", Evaluate: fermTempHot},
		{ID: "ferm_temp_cold", Evaluate: fermTempCold},
		{ID: "no_chiller", Evaluate: noChiller},
		{ID: "kettle_overflow", Evaluate: kettleOverflow},
		{ID: "no_hydrometer", Evaluate: noHydrometerRisk},
		{ID: "lager_no_temp_control", Evaluate: lagerNoTempControl},
		{ID: "low_base_malt", Evaluate: lowGrainAmount},
	}
}

// IDSet is a set of risk ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set holds nothing.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Risks evaluates every risk rule, drops risks whose id is dismissed, and
// stable-sorts the rest danger first, then warn, then info. Risks of equal
// severity keep rule order.
func Risks(ctx Context, dismissed IDSet) []Risk {
	var risks []Risk
	for _, rule := range RiskRules() {
		r, ok := rule.Evaluate(ctx)
		if !ok || dismissed.Has(r.ID) {
			continue
		}
		risks = append(risks, r)
	}

	slices.SortStableFunc(risks, func(a, b Risk) int {
		return a.Level.Rank() - b.Level.Rank()
	})
	return risks
}

// HighestLevel returns the most severe level among risks.
func HighestLevel(risks []Risk) (Level, bool) {
	if len(risks) == 0 {
		return "", false
	}
	best := risks[0].Level
	for _, r := range risks[1:] {
		if r.Level.Rank() < best.Rank() {
			best = r.Level
		}
	}
	return best, true
}

func primingHigh(ctx Context) (Risk, bool) {
	c := ctx.Recipe.Conditioning
	if c.Mode != brew.ModeBottles {
		return Risk{}, false
	}
	sugar := c.SugarPerLiter

	switch {
	case sugar > PrimingDangerGPerL:
		return Risk{
			ID:      "priming_danger",
			Level:   LevelDanger,
			Title:   "Dangerous priming sugar dose!",
			Message: fmt.Sprintf("%s g/L of sugar is very high. Bottles may gush or explode.", num(sugar)),
			WhyItMatters: "Too much sugar makes too much CO2 inside a sealed bottle. The pressure can exceed " +
				"what the glass withstands and burst it, which is dangerous (glass shards) and messy.",
			HowToFix: []string{
				"Lower the sugar to 5-7 g/L for standard carbonation",
				"Stay at or below 8 g/L even for highly carbonated styles (saison, wit)",
				"Confirm fermentation is finished before bottling (FG stable for 2 days)",
				"Use pressure rated bottles, never thin decorative glass",
			},
		}, true
	case sugar >= PrimingWarnGPerL:
		return Risk{
			ID:      "priming_warn",
			Level:   LevelWarn,
			Title:   "High priming sugar dose",
			Message: fmt.Sprintf("%s g/L is above average. Make sure fermentation has completely finished.", num(sugar)),
			WhyItMatters: "If primary fermentation is not fully over, leftover sugar plus priming sugar can " +
				"over-pressurize the bottles. Some styles suit high carbonation, most do not.",
			HowToFix: []string{
				"Check FG with a hydrometer before bottling",
				"For strong carbonation use champagne or thick walled bottles",
				"7 g/L is a good compromise for most styles",
			},
		}, true
	}
	return Risk{}, false
}

func fermTempHot(ctx Context) (Risk, bool) {
	y := ctx.Yeast
	if y == nil {
		return Risk{}, false
	}
	temp := ctx.Recipe.Fermentation.FermentationTemp
	tempRange := fmt.Sprintf("Recommended range: %s-%s°C", num(y.TempMin), num(y.TempMax))

	switch {
	case temp > y.TempMax+FermHotDangerMarginC:
		return Risk{
			ID:    "ferm_temp_danger",
			Level: LevelDanger,
			Title: "Fermentation temperature far too high!",
			Message: fmt.Sprintf("%s°C is %.0f°C above the maximum for %s (%s°C max).",
				num(temp), temp-y.TempMax, y.Name, num(y.TempMax)),
			WhyItMatters: "At this temperature the yeast is badly stressed and produces excessive esters " +
				"(solvent, heavy banana) and fusel alcohols that cause headaches. The beer may be undrinkable.",
			HowToFix: []string{
				fmt.Sprintf("Bring the temperature down to %s°C, ideal for this yeast", num(y.TempIdeal)),
				"Use a fridge, a heat belt with a thermostat, or move the fermenter somewhere cooler",
				"In summer a water bath with frozen bottles helps",
				tempRange,
			},
		}, true
	case temp > y.TempMax+FermHotWarnMarginC:
		return Risk{
			ID:    "ferm_temp_warn",
			Level: LevelWarn,
			Title: "Fermentation temperature slightly high",
			Message: fmt.Sprintf("%s°C is above the recommended maximum (%s°C) for %s.",
				num(temp), num(y.TempMax), y.Name),
			WhyItMatters: "The yeast may produce stronger fruity esters than planned. Fine for some styles, " +
				"unwanted in clean beers such as lagers or pale ales.",
			HowToFix: []string{
				fmt.Sprintf("Try to get down to %s°C if you can", num(y.TempIdeal)),
				"Smell the beer closely near the end of fermentation",
				tempRange,
			},
		}, true
	}
	return Risk{}, false
}

func fermTempCold(ctx Context) (Risk, bool) {
	y := ctx.Yeast
	if y == nil {
		return Risk{}, false
	}
	temp := ctx.Recipe.Fermentation.FermentationTemp

	switch {
	case temp < y.TempMin-FermColdDangerMarginC:
		return Risk{
			ID:    "ferm_temp_cold_danger",
			Level: LevelDanger,
			Title: "Fermentation temperature far too low!",
			Message: fmt.Sprintf("%s°C is %.0f°C below the minimum for %s (%s°C min).",
				num(temp), y.TempMin-temp, y.Name, num(y.TempMin)),
			WhyItMatters: "The yeast will go dormant or die. Fermentation will crawl or stall, leaving " +
				"residual sugar and a green apple (acetaldehyde) taste.",
			HowToFix: []string{
				fmt.Sprintf("Raise the temperature to at least %s°C", num(y.TempMin)),
				fmt.Sprintf("Ideal temperature: %s°C", num(y.TempIdeal)),
				"Use a heat belt or move the fermenter somewhere warmer",
			},
		}, true
	case temp < y.TempMin:
		return Risk{
			ID:    "ferm_temp_cold_warn",
			Level: LevelWarn,
			Title: "Low fermentation temperature",
			Message: fmt.Sprintf("%s°C is below the recommended minimum (%s°C) for %s.",
				num(temp), num(y.TempMin), y.Name),
			WhyItMatters: "Fermentation will be slower and may not reach the expected attenuation. " +
				"The beer could end up sweeter and weaker than planned.",
			HowToFix: []string{
				fmt.Sprintf("Try to raise it to %s°C", num(y.TempIdeal)),
				"Plan a few extra days of fermentation",
			},
		}, true
	}
	return Risk{}, false
}

func noChiller(ctx Context) (Risk, bool) {
	if ctx.Caps.HasChiller {
		return Risk{}, false
	}
	vol := ctx.Recipe.Params.Volume

	switch {
	case vol >= NoChillerDangerVolumeL:
		return Risk{
			ID:      "no_chiller_danger",
			Level:   LevelDanger,
			Title:   "No chiller for a large batch",
			Message: fmt.Sprintf("Cooling %s L without a chiller will take a very long time (1h+ in an ice bath).", num(vol)),
			WhyItMatters: fmt.Sprintf("Between 30°C and 60°C bacteria multiply quickly in wort, and slow cooling "+
				"also forms DMS (cooked corn flavor). At %s L this is especially risky.", num(vol)),
			HowToFix: []string{
				"Get an immersion chiller (copper or stainless)",
				"Otherwise prepare a very large ice bath (over 10 kg of ice)",
				"Split the wort into several smaller vessels to cool faster",
				"Boil with 20% less water and top up with cold sterile water",
			},
		}, true
	case vol >= NoChillerWarnVolumeL:
		return Risk{
			ID:      "no_chiller_warn",
			Level:   LevelWarn,
			Title:   "No wort chiller",
			Message: fmt.Sprintf("For %s L an ice bath will be slow (about 30-45 min).", num(vol)),
			WhyItMatters: "Slow cooling raises the risk of infection and DMS. From 15 L up a chiller is " +
				"strongly recommended.",
			HowToFix: []string{
				"A sink or bathtub ice bath can work at this volume",
				"Have at least 5 kg of ice ready",
				"Leave the kettle uncovered so DMS can escape with the steam",
				"An immersion chiller pays for itself from 15 L batches",
			},
		}, true
	}
	return Risk{}, false
}

func kettleOverflow(ctx Context) (Risk, bool) {
	capacity := ctx.Caps.KettleCapacityL
	if capacity <= 0 {
		return Risk{}, false
	}
	vol := ctx.Recipe.Params.Volume

	switch {
	case capacity < vol*OverflowDangerHeadroom:
		return Risk{
			ID:    "kettle_overflow_danger",
			Level: LevelDanger,
			Title: "Kettle probably too small!",
			Message: fmt.Sprintf("Your kettle (%s L) is too tight for %s L of wort. It may boil over.",
				num(capacity), num(vol)),
			WhyItMatters: "When the boil starts the wort foams hard (the hot break). Without headroom it " +
				"spills onto the stove, which is sticky and dangerous with boiling wort.",
			HowToFix: []string{
				fmt.Sprintf("Reduce the batch to %s L at most", num(math.Floor(capacity/OverflowSafeHeadroom))),
				"Or use a larger kettle",
				"Watch the first 5 minutes of the boil and lower the heat if it foams",
				"Keep a cold water spray at hand to knock the foam down",
			},
		}, true
	case capacity < vol*OverflowWarnHeadroom:
		margin := units.RoundInt((capacity - vol) / vol * 100)
		return Risk{
			ID:    "kettle_overflow_warn",
			Level: LevelWarn,
			Title: "Kettle headroom is tight",
			Message: fmt.Sprintf("Your kettle (%s L) leaves little headroom for %s L. Watch the boil.",
				num(capacity), num(vol)),
			WhyItMatters: fmt.Sprintf("With only about %s%% headroom, a boil-over at hot break is a real risk. "+
				"30-35%% headroom is ideal.", num(margin)),
			HowToFix: []string{
				"Watch the first minutes of the boil closely",
				"Lower the heat at the first sign of foam",
				fmt.Sprintf("Recommended maximum batch for this kettle: %s L",
					num(math.Floor(capacity/OverflowWarnHeadroom))),
			},
		}, true
	}
	return Risk{}, false
}

func noHydrometerRisk(ctx Context) (Risk, bool) {
	if ctx.Caps.HasHydrometer {
		return Risk{}, false
	}
	return Risk{
		ID:      "no_hydrometer_info",
		Level:   LevelInfo,
		Title:   "No hydrometer",
		Message: "You have not listed a hydrometer.",
		WhyItMatters: "A hydrometer is how you know fermentation has finished. Without one you risk bottling " +
			"too early (exploding bottles) or ending with a different ABV than planned.",
		HowToFix: []string{
			"Buy a basic hydrometer, the most useful tool a brewer owns",
			"A refractometer is an alternative that needs less wort",
			"Until then, ferment at least 3 weeks before bottling",
		},
	}, true
}

func lagerNoTempControl(ctx Context) (Risk, bool) {
	y := ctx.Yeast
	if y == nil || y.Type != brew.YeastLager || ctx.Caps.HasTempControl {
		return Risk{}, false
	}
	return Risk{
		ID:    "lager_no_temp",
		Level: LevelWarn,
		Title: "Lager without temperature control",
		Message: fmt.Sprintf("%s is a lager yeast that needs %s-%s°C.",
			y.Name, num(y.TempMin), num(y.TempMax)),
		WhyItMatters: "Lager yeasts must ferment cold (8-15°C). At room temperature they produce off-flavors " +
			"such as sulfur and esters. Without a fridge the result will be far from a true lager.",
		HowToFix: []string{
			"Use a fridge with a temperature controller",
			"Or pick an ale yeast that works at room temperature",
			"In winter an unheated garage can work if it stays around 10-12°C",
		},
	}, true
}

func lowGrainAmount(ctx Context) (Risk, bool) {
	r := ctx.Recipe
	total := r.TotalGrainKg()
	vol := r.Params.Volume
	if total <= 0 || total >= vol*LowGrainAmountPerLiter {
		return Risk{}, false
	}
	return Risk{
		ID:      "low_grain_amount",
		Level:   LevelWarn,
		Title:   "Very low grain amount",
		Message: fmt.Sprintf("%.1f kg of grain for %s L looks insufficient.", total, num(vol)),
		WhyItMatters: "A 20 L batch usually needs about 4-6 kg of grain. With too little grain the beer " +
			"will be very light in body and alcohol.",
		HowToFix: []string{
			fmt.Sprintf("For %s L, aim for %.1f-%.1f kg of grain in total",
				num(vol), vol*GrainTargetLowPerLiter, vol*GrainTargetHighPerLiter),
			"Base malt should be at least 60% of the total",
		},
	}, true
}
