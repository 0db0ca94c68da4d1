package brew

import "slices"

// Documented defaults of a freshly created recipe.
const (
	DefaultVolumeL          = 20.0
	DefaultBoilMinutes      = 60.0
	DefaultBoilOffLPerHour  = 2.0
	DefaultMashTempC        = 66.0
	DefaultFermentationTemp = 20.0
	DefaultPrimaryDays      = 10.0
	DefaultLagerPrimaryDays = 21.0
	DefaultSecondaryDays    = 14.0
	DefaultSecondaryTempC   = 12.0
	DefaultSugarPerLiter    = 7.0
	DefaultHopTiming        = 60.0
)

// Default returns a new recipe holding the documented default values. The
// grain bill and hop schedule each hold one placeholder row.
func Default() Recipe {
	return Recipe{
		Version: SchemaVersion,
		Profile: Profile{
			UserType:          UserHomebrew,
			SelectedEquipment: []string{},
		},
		Params: Params{
			Volume: DefaultVolumeL,
			Method: MethodAllGrain,
		},
		Malts:    []MaltAddition{{}},
		Hops:     []HopAddition{{Timing: DefaultHopTiming}},
		Adjuncts: []AdjunctAddition{},
		Water:    WaterSource{SourceType: WaterTap},
		Process: Process{
			BoilTimeMin:         DefaultBoilMinutes,
			BoilOffRateLPerHour: DefaultBoilOffLPerHour,
		},
		Mashing: Mashing{
			MashTemp:     DefaultMashTempC,
			BoilDuration: DefaultBoilMinutes,
		},
		Fermentation: Fermentation{
			FermentationTemp: DefaultFermentationTemp,
			PrimaryDays:      DefaultPrimaryDays,
		},
		Conditioning: Conditioning{
			Mode:          ModeBottles,
			SugarPerLiter: DefaultSugarPerLiter,
		},
	}
}

// DefaultSecondary returns the stage used when the user enables secondary
// fermentation without choosing values.
func DefaultSecondary() *Secondary {
	return &Secondary{Days: DefaultSecondaryDays, TempC: DefaultSecondaryTempC}
}

// SuggestedPrimaryDays returns the primary fermentation length suggested when
// a yeast of type yt is selected.
func SuggestedPrimaryDays(yt YeastType) float64 {
	if yt == YeastLager {
		return DefaultLagerPrimaryDays
	}
	return DefaultPrimaryDays
}

// Normalize fills the zero-valued enums and nil collections of r with their
// defaults so that r is total. Numeric fields are left as entered, including
// zero or negative values, since the engine is defined on them.
func (r *Recipe) Normalize() {
	d := Default()
	r.Version = SchemaVersion
	if r.Profile.UserType == "" {
		r.Profile.UserType = d.Profile.UserType
	}
	if r.Profile.SelectedEquipment == nil {
		r.Profile.SelectedEquipment = []string{}
	}
	if r.Params.Method == "" {
		r.Params.Method = d.Params.Method
	}
	if r.Malts == nil {
		r.Malts = []MaltAddition{}
	}
	if r.Hops == nil {
		r.Hops = []HopAddition{}
	}
	if r.Adjuncts == nil {
		r.Adjuncts = []AdjunctAddition{}
	}
	if r.Water.SourceType == "" {
		r.Water.SourceType = d.Water.SourceType
	}
	if r.Conditioning.Mode == "" {
		r.Conditioning.Mode = d.Conditioning.Mode
	}
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() Recipe {
	c := *r
	c.Profile.SelectedEquipment = slices.Clone(r.Profile.SelectedEquipment)
	c.Malts = slices.Clone(r.Malts)
	c.Hops = slices.Clone(r.Hops)
	c.Adjuncts = slices.Clone(r.Adjuncts)
	if r.Fermentation.Secondary != nil {
		s := *r.Fermentation.Secondary
		c.Fermentation.Secondary = &s
	}
	return c
}
