package procedure

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

const (
	defaultPitchTempC    = 20.0
	mashOvershootC       = 2.0
	iceKgPerLiter        = 0.25
	iceBathLongVolumeL   = 20.0
	smallBottleL         = 0.33
	largeBottleL         = 0.75
	noHydrometerExtraDay = 5.0
	minutesPerDay        = 24 * 60
)

func preparationStep(ctx Context) Step {
	names := make([]string, 0, len(ctx.Recipe.Profile.SelectedEquipment))
	for _, e := range ctx.Tables.SelectedEquipment(ctx.Recipe.Profile.SelectedEquipment) {
		names = append(names, e.Name)
	}

	equipment := Text("Get your kettle, fermenter, thermometer and utensils ready.")
	if len(names) > 0 {
		equipment = Textf("Equipment to prepare: %s.", strings.Join(names, ", "))
	}

	return Step{
		ID:          StepPreparation,
		Title:       "Preparation & hygiene",
		DurationMin: minutes(20),
		Details: []Line{
			Text("Gather all your equipment on your work surface."),
			equipment,
			Text("Clean and sanitize the fermenter, siphon, airlock and everything that touches the wort AFTER the boil."),
			Text("The boil kettle does not need sanitizing: the boil sterilizes it."),
			Textf("Prepare %s L of water in total.", num(ctx.Water.TotalWaterL)),
		},
		Tips: []string{
			"Contamination is the brewer's first enemy. Anything touching cooled wort must be spotless.",
			"Keep a spray bottle of sanitizer at hand for surprises during the brew day.",
		},
		Warnings: []string{
			"Never skip this step: most failed batches come down to poor hygiene.",
		},
	}
}

func heatWaterStep(ctx Context, allGrain bool) Step {
	if !allGrain {
		return Step{
			ID:          StepHeatWater,
			Title:       "Heat the water",
			DurationMin: minutes(15),
			Details: []Line{
				Textf("Measure %s L of water.", num(ctx.Water.TotalWaterL)),
				Text("Heat the water to about 70°C to dissolve the malt extract."),
				Text("Add the extract off the heat, stirring well to avoid lumps."),
				Text("Put it back on the heat and bring it to a boil."),
			},
			Tips: []string{
				"For a kit, follow the manufacturer's instructions first.",
				"The water mostly dilutes the extract up to the final volume.",
			},
		}
	}

	mashTemp := ctx.Recipe.Mashing.MashTemp
	return Step{
		ID:          StepHeatWater,
		Title:       "Heat the mash water",
		DurationMin: minutes(20),
		Details: []Line{
			Textf("Measure %s L of water for the mash.", num(ctx.Water.MashWaterL)),
			Textf("Heat it to %s°C, 2°C above target, because adding the grain cools it down.",
				num(mashTemp+mashOvershootC)),
			Textf("Target mash temperature: %s°C.", num(mashTemp)),
			Textf("Meanwhile prepare %s L of sparge water and start heating it to 75-78°C.",
				num(ctx.Water.SpargeWaterL)),
		},
		Tips: []string{
			"Use a reliable thermometer: mash temperature shapes the beer's profile.",
			fmt.Sprintf("%s°C gives %s.", num(mashTemp), mashProfile(mashTemp)),
		},
	}
}

func mashProfile(tempC float64) string {
	switch {
	case tempC < 65:
		return "a dry, stronger beer"
	case tempC < 67:
		return "a good balance of body and alcohol"
	default:
		return "a round, full-bodied beer"
	}
}

func mashStep(ctx Context) Step {
	r := ctx.Recipe
	mashTemp := r.Mashing.MashTemp

	grains := make([]string, 0, len(r.Malts))
	for _, add := range r.ActiveMalts() {
		name := add.MaltID
		if m, ok := ctx.Tables.Malt(add.MaltID); ok && m.Name != "" {
			name = m.Name
		}
		grains = append(grains, fmt.Sprintf("%s (%s kg)", name, num(add.Amount)))
	}

	return Step{
		ID:          StepMash,
		Title:       "Mash",
		DurationMin: minutes(60),
		Details: []Line{
			Textf("Stir the %.1f kg of crushed grain into the %s L of hot water.",
				r.TotalGrainKg(), num(ctx.Water.MashWaterL)),
			Textf("Grain: %s.", strings.Join(grains, ", ")),
			Text("Mix gently but thoroughly so no dry flour balls remain."),
			Textf("Check the temperature: it should read %s°C after mixing.", num(mashTemp)),
			Textf("Hold %s°C for 60 minutes. Stir every 15 minutes.", num(mashTemp)),
			Text("Cover the kettle between stirs to keep the heat in."),
		},
		Tips: []string{
			"If the temperature drops by more than 2°C, add a little boiling water and stir.",
			"Mashing lets the grain's enzymes turn starch into fermentable sugar.",
			"After 60 minutes you can run an iodine test: if a drop of wort stays brown or yellow, conversion is complete.",
		},
		Warnings: []string{
			"Do not exceed 78°C: tannins would give a harsh, astringent bitterness.",
		},
	}
}

func spargeStep(ctx Context) Step {
	return Step{
		ID:          StepSparge,
		Title:       "Lauter & sparge",
		DurationMin: minutes(30),
		Details: []Line{
			Text("Lift the grain basket or slowly open the lauter tun valve."),
			Text("Let the wort run off slowly: a steady trickle is ideal."),
			Textf("Rinse the grain with %s L of water at 75-78°C.", num(ctx.Water.SpargeWaterL)),
			Text("Pour the sparge water gently and evenly over the grain bed."),
			Textf("You should collect about %s L of wort in the boil kettle.", num(ctx.Water.PreBoilVolumeL)),
		},
		Tips: []string{
			"Sparging rinses out the last sugar trapped in the grain.",
			"Water at 75-78°C flows freely without extracting tannins.",
			"Without a lauter tun you can use a brew bag (BIAB).",
		},
		Warnings: []string{
			"Never sparge with water above 78°C: it extracts bitter tannins.",
		},
	}
}

type hopNarration struct {
	name   string
	grams  float64
	timing float64
}

func boilStep(ctx Context) Step {
	r := ctx.Recipe
	boilMin := r.BoilMinutes()

	hops := make([]hopNarration, 0, len(r.Hops))
	for _, add := range r.ActiveHops() {
		name := add.HopID
		if h, ok := ctx.Tables.Hop(add.HopID); ok && h.Name != "" {
			name = h.Name
		}
		hops = append(hops, hopNarration{name: name, grams: add.Amount, timing: add.Timing})
	}
	slices.SortStableFunc(hops, func(a, b hopNarration) int {
		return cmp.Compare(b.timing, a.timing)
	})

	details := []Line{
		Textf("Bring the %s L of wort to a rolling boil.", num(ctx.Water.PreBoilVolumeL)),
		Text("Watch for the hot break: heavy foam forms at the start. Lower the heat and stir if needed."),
		Textf("Keep a vigorous boil for %s minutes. Do NOT cover the kettle so DMS can escape.", num(boilMin)),
	}

	if len(hops) > 0 {
		details = append(details, Spacer(), Heading("Hop addition schedule"))
		for _, h := range hops {
			details = append(details, Textf("%s: add %s g of %s (%s)",
				hopTimeLabel(h.timing, boilMin), num(h.grams), h.name, HopImpact(h.timing)))
		}
	}

	var adjuncts []string
	for _, add := range r.ActiveAdjuncts() {
		if a, ok := ctx.Tables.Adjunct(add.AdjunctID); ok {
			adjuncts = append(adjuncts, fmt.Sprintf("%s (%s kg)", a.Name, num(add.Amount)))
		}
	}
	if len(adjuncts) > 0 {
		details = append(details, Textf("Add the adjuncts at the start of the boil: %s.", strings.Join(adjuncts, ", ")))
	}

	details = append(details, Textf("After %s minutes, turn off the heat. Expected volume: about %s L.",
		num(boilMin), num(ctx.Water.PostBoilVolumeL)))

	return Step{
		ID:          StepBoil,
		Title:       "Boil & hopping",
		DurationMin: minutes(boilMin),
		Details:     details,
		Tips: []string{
			"Hops added early (60 min) give bitterness. Added late (0-15 min) they give aroma.",
			"If it foams too much at first, a cold water spray or a wooden spoon across the kettle helps.",
			"The boil drives off DMS (cooked corn flavor), which is why the kettle stays uncovered.",
		},
		Warnings: []string{
			"Never leave the kettle during the first 10 minutes: boil-overs happen fast!",
		},
	}
}

func hopTimeLabel(timing, boilMin float64) string {
	if timing == 0 {
		return "Flame-out (heat off)"
	}
	return fmt.Sprintf("T-%s min (%s min after the boil starts)", num(timing), num(boilMin-timing))
}

// Hop impact labels by addition time.
const (
	ImpactBitterness       = "bitterness"
	ImpactBitterAroma      = "bitterness + aroma"
	ImpactMostlyAroma      = "mostly aroma"
	ImpactMaxAromaNoBitter = "maximum aroma, no bitterness"
)

// HopImpact describes what a hop addition contributes given the minutes it
// boils: 30 or more is bittering, 10 to 30 is mixed, under 10 is aroma and a
// flame-out addition adds no bitterness.
func HopImpact(timing float64) string {
	switch {
	case timing >= 30:
		return ImpactBitterness
	case timing >= 10:
		return ImpactBitterAroma
	case timing > 0:
		return ImpactMostlyAroma
	default:
		return ImpactMaxAromaNoBitter
	}
}

func coolingStep(ctx Context) Step {
	vol := ctx.Recipe.Params.Volume
	target := num(ctx.pitchTemp())

	if ctx.Caps.HasChiller {
		return Step{
			ID:          StepCooling,
			Title:       "Cooling",
			DurationMin: minutes(20),
			Details: []Line{
				Text("Immerse your chiller in the wort."),
				Text("Run cold water through the coil."),
				Textf("Cool the wort to %s°C, the pitching temperature.", target),
				Text("Gently swirl the wort around the coil to speed things up."),
				Text("Goal: below 25°C within 20-30 minutes."),
			},
			Tips: []string{
				"Faster is better: less infection, less DMS and a better cold break.",
			},
		}
	}

	duration := 40.0
	if vol >= iceBathLongVolumeL {
		duration = 60
	}
	return Step{
		ID:          StepCooling,
		Title:       "Cooling (no chiller)",
		DurationMin: minutes(duration),
		Details: []Line{
			Text("Fill a sink, bathtub or large tub with cold water and ice."),
			Textf("Set the kettle in the ice bath. For %s L, plan at least %s kg of ice.",
				num(vol), num(IceKg(vol))),
			Text("Gently stir the wort with a sanitized spoon to speed up heat exchange."),
			Textf("Cool down to %s°C.", target),
			Text("Replace the bath water when it gets lukewarm."),
		},
		Tips: []string{
			"Make ice the day before so you have enough.",
			"Alternatively freeze water bottles and drop them in the wort, sanitized on the outside.",
		},
		Warnings: []string{
			"Bacteria multiply quickly between 30°C and 60°C. Spend as little time there as possible.",
		},
	}
}

// IceKg estimates the ice needed to cool volumeL liters without a chiller.
func IceKg(volumeL float64) float64 {
	return math.Ceil(volumeL * iceKgPerLiter)
}

func transferStep(ctx Context) Step {
	return Step{
		ID:          StepTransfer,
		Title:       "Transfer to the fermenter",
		DurationMin: minutes(10),
		Details: []Line{
			Text("Siphon the cooled wort into your sanitized fermenter, or pour it gently."),
			Text("Try to leave the trub at the bottom of the kettle."),
			Text("Oxygenate the wort: shake the closed fermenter hard for 1-2 minutes or use a diffusion stone."),
			Textf("Check the volume: you should have about %s L.", num(ctx.Recipe.Params.Volume)),
		},
		Tips: []string{
			"Oxygen is IMPORTANT now: the yeast needs it to get going.",
			"From here on oxygen is unwanted: it is the enemy of finished beer.",
		},
	}
}

func pitchYeastStep(ctx Context) Step {
	y := ctx.Yeast
	var details []Line

	if y != nil {
		kind := "Lager (bottom fermenting)"
		if y.Type == brew.YeastAle {
			kind = "Ale (top fermenting)"
		}
		details = append(details,
			Textf("Check the wort is at %s°C (acceptable range %s-%s°C).", num(y.TempIdeal), num(y.TempMin), num(y.TempMax)),
			Textf("Sprinkle the %s yeast over the wort.", y.Name),
			Textf("Type: %s.", kind),
		)
		if y.Type == brew.YeastAle {
			details = append(details, Text("Wait 15 minutes, then stir gently to disperse the yeast."))
		}
	} else {
		details = append(details,
			Text("Check the wort is between 18 and 22°C."),
			Text("Sprinkle the yeast over the wort."),
		)
	}

	details = append(details,
		Text("Close the fermenter and fit the airlock, filled with water or sanitizer."),
		Text("Put the fermenter somewhere with a stable temperature."),
	)

	var warnings []string
	if y != nil && y.Type == brew.YeastLager && !ctx.Caps.HasTempControl {
		warnings = []string{
			"This lager yeast needs temperature control (8-15°C). Without a fridge or cold room results will be unpredictable.",
		}
	}

	return Step{
		ID:          StepPitchYeast,
		Title:       "Pitch the yeast",
		DurationMin: minutes(5),
		Details:     details,
		Tips: []string{
			"NEVER pitch into wort that is too hot (over 30°C): the yeast would die.",
			"Fermentation should start within 12-24h (bubbles in the airlock).",
		},
		Warnings: warnings,
	}
}

func fermentationStep(ctx Context) Step {
	f := ctx.Recipe.Fermentation
	y := ctx.Yeast

	hold := Textf("Hold the temperature at %s°C.", num(f.FermentationTemp))
	if y != nil {
		hold = Textf("Hold the temperature at %s°C (yeast range %s-%s°C).",
			num(f.FermentationTemp), num(y.TempMin), num(y.TempMax))
	}

	details := []Line{
		hold,
		Textf("Primary fermentation: %s days.", num(f.PrimaryDays)),
		Text("Leave the fermenter alone for the first days. Resist the urge to open it!"),
	}

	if ctx.Caps.HasHydrometer {
		details = append(details,
			Textf("After %s days, take a gravity reading (FG).", num(f.PrimaryDays)),
			Text("Take another reading 48h later. If the gravity is stable, fermentation is done."),
		)
	} else {
		details = append(details,
			Textf("Wait at least %s days, ideally %s days, to be sure fermentation has finished.",
				num(f.PrimaryDays), num(f.PrimaryDays+noHydrometerExtraDay)),
			Text("Without a hydrometer, a few extra days beats bottling too early."),
		)
	}

	if s := f.Secondary; s != nil {
		details = append(details,
			Spacer(),
			Heading("Secondary maturation"),
			Textf("Rack into a second fermenter at %s°C for %s days.", num(s.TempC), num(s.Days)),
			Text("This transfer clears the beer and refines its flavors."),
		)
	}

	tips := []string{
		"Airlock bubbles are not a reliable sign that fermentation has ended. Only a hydrometer is.",
	}
	if !ctx.Caps.HasTempControl {
		tips = append(tips,
			"Without temperature control, keep the fermenter in the most stable spot of your home (closet, cellar).",
			"In summer a water tub around the fermenter plus a fan lowers the temperature by 2-3°C.",
		)
	}

	return Step{
		ID:          StepFermentation,
		Title:       "Fermentation",
		DurationMin: minutes(f.PrimaryDays * minutesPerDay),
		Details:     details,
		Tips:        tips,
	}
}

func conditioningStep(ctx Context) Step {
	r := ctx.Recipe

	if r.Conditioning.Mode == brew.ModeKeg {
		return Step{
			ID:          StepConditioning,
			Title:       "Kegging & carbonation",
			DurationMin: minutes(30),
			Details: []Line{
				Text("Transfer the beer into a clean, sanitized keg, purged with CO2 if possible."),
				Text("Connect the CO2 and set 2.0-2.5 bar at serving temperature (about 4°C)."),
				Text("Wait 5-7 days for full carbonation."),
				Text("Quick alternative: force carbonate at 3 bar for 24-48h while rocking the keg."),
			},
			Tips: []string{
				"Force carbonation is faster and easier to control than bottle conditioning.",
				"Purge the keg with CO2 before transferring to limit oxidation.",
			},
		}
	}

	vol := r.Params.Volume
	sugar := ctx.totalSugar()
	return Step{
		ID:          StepConditioning,
		Title:       "Bottling",
		DurationMin: minutes(60),
		Details: []Line{
			Text("Clean and sanitize every bottle, cap and piece of bottling equipment."),
			Textf("Weigh the priming sugar: %s g/L × %s L = %s g of sugar.",
				num(r.Conditioning.SugarPerLiter), num(vol), num(sugar)),
			Textf("Dissolve the %s g of sugar in a little boiling water (about 100 mL). Let it cool.", num(sugar)),
			Text("Pour the syrup into a sanitized bottling bucket."),
			Text("Siphon the beer gently onto the syrup. Stir very gently to mix."),
			Text("Fill the bottles leaving 2-3 cm below the neck."),
			Text("Cap each bottle straight away."),
		},
		Tips: []string{
			"Do not stir hard: oxygen is harmful at this stage.",
			"A bottling wand with an auto shut-off gives even fills.",
			fmt.Sprintf("For %s L, plan about %s bottles of 33 cL or %s bottles of 75 cL.",
				num(vol), num(BottleCount(vol, smallBottleL)), num(BottleCount(vol, largeBottleL))),
		},
		Warnings: []string{
			"Make sure fermentation is FINISHED before bottling. Otherwise pressure builds and bottles can explode!",
		},
	}
}

// BottleCount is the number of bottles of sizeL liters needed for volumeL.
func BottleCount(volumeL, sizeL float64) float64 {
	if sizeL <= 0 {
		return 0
	}
	return math.Ceil(volumeL / sizeL)
}

func maturationStep(ctx Context) Step {
	var details []Line
	if ctx.Recipe.Conditioning.Mode == brew.ModeBottles {
		details = append(details,
			Text("Store the bottles upright at room temperature (about 20°C) for 2-3 weeks to carbonate."),
			Text("Then move them somewhere cool (cellar, fridge) to mature."),
		)
	} else {
		details = append(details, Text("Keep the keg cold for 1-2 weeks so the flavors settle."))
	}
	details = append(details,
		Text("Patience! Most beers improve with 2-4 weeks of maturation."),
		Text("Strong beers (over 7% ABV) benefit from 1-3 months."),
		Text("Taste your first bottle after the minimum maturation time and write down your impressions!"),
	)

	return Step{
		ID:      StepMaturation,
		Title:   "Maturation & tasting",
		Details: details,
		Tips: []string{
			"Taste a bottle every week to follow how it evolves.",
			"A slight yeasty or green taste is normal and will fade.",
			"Keep bottles out of the light: UV degrades hop compounds and makes the beer skunky.",
		},
	}
}
