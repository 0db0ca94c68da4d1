// Package brew defines the recipe aggregate, its enumerations and the
// read-only reference tables the derivation engine consumes.
package brew

import (
	"fmt"
	"strings"
)

// SchemaVersion is the recipe document version written by Encode.
const SchemaVersion = 3

// Method is the brewing method of a recipe.
type Method string

// Brewing methods.
const (
	MethodKit      Method = "kit"
	MethodExtract  Method = "extract"
	MethodAllGrain Method = "all-grain"
)

// IsAllGrain reports whether the recipe mashes raw grain.
func (m Method) IsAllGrain() bool { return m == MethodAllGrain }

// UnmarshalText accepts the canonical tags plus the tags written by the
// first two document versions.
func (m *Method) UnmarshalText(b []byte) error {
	switch s := strings.TrimSpace(string(b)); s {
	case string(MethodKit):
		*m = MethodKit
	case string(MethodExtract), "extrait":
		*m = MethodExtract
	case string(MethodAllGrain), "tout_grain":
		*m = MethodAllGrain
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return nil
}

// ConditioningMode selects how finished beer is carbonated.
type ConditioningMode string

// Conditioning modes.
const (
	ModeBottles ConditioningMode = "bottles"
	ModeKeg     ConditioningMode = "keg"
)

// UnmarshalText validates the conditioning tag.
func (c *ConditioningMode) UnmarshalText(b []byte) error {
	switch s := strings.TrimSpace(string(b)); s {
	case string(ModeBottles), string(ModeKeg):
		*c = ConditioningMode(s)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return nil
}

// WaterSourceType describes where brewing water comes from.
type WaterSourceType string

// Water sources.
const (
	WaterTap     WaterSourceType = "tap"
	WaterBottled WaterSourceType = "bottled"
	WaterRO      WaterSourceType = "ro"
	WaterUnknown WaterSourceType = "unknown"
)

// UnmarshalText validates the water source tag and maps legacy tags.
func (w *WaterSourceType) UnmarshalText(b []byte) error {
	switch s := strings.TrimSpace(string(b)); s {
	case string(WaterTap), "robinet":
		*w = WaterTap
	case string(WaterBottled), "bouteille":
		*w = WaterBottled
	case string(WaterRO), "osmosee":
		*w = WaterRO
	case string(WaterUnknown), "inconnu":
		*w = WaterUnknown
	default:
		return fmt.Errorf("%w: %q", ErrInvalidWaterSource, s)
	}
	return nil
}

// UserType distinguishes home brewers from professional users.
type UserType string

// User types.
const (
	UserHomebrew UserType = "homebrew"
	UserPro      UserType = "pro"
)

// UnmarshalText validates the user type tag.
func (u *UserType) UnmarshalText(b []byte) error {
	switch s := strings.TrimSpace(string(b)); s {
	case string(UserHomebrew), string(UserPro):
		*u = UserType(s)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidUserType, s)
	}
	return nil
}

// Recipe is the aggregate root edited by the wizard. Every nested group is a
// value so a normalized Recipe is total; only the secondary fermentation is
// optional.
type Recipe struct {
	Version       int               `json:"version"       yaml:"version"`
	Profile       Profile           `json:"profile"       yaml:"profile"`
	Params        Params            `json:"params"        yaml:"params"`
	Malts         []MaltAddition    `json:"malts"         yaml:"malts"`
	Hops          []HopAddition     `json:"hops"          yaml:"hops"`
	Adjuncts      []AdjunctAddition `json:"adjuncts"      yaml:"adjuncts"`
	YeastID       string            `json:"yeastId"       yaml:"yeast_id"`
	Water         WaterSource       `json:"water"         yaml:"water"`
	Process       Process           `json:"process"       yaml:"process"`
	EquipmentInfo EquipmentInfo     `json:"equipmentInfo" yaml:"equipment_info"`
	Mashing       Mashing           `json:"mashing"       yaml:"mashing"`
	Fermentation  Fermentation      `json:"fermentation"  yaml:"fermentation"`
	Conditioning  Conditioning      `json:"conditioning"  yaml:"conditioning"`
}

// Profile holds who is brewing and with which equipment.
type Profile struct {
	UserType          UserType `json:"userType"          yaml:"user_type"`
	SelectedEquipment []string `json:"selectedEquipment" yaml:"selected_equipment"`
}

// Params are the top-level batch parameters.
type Params struct {
	RecipeName string  `json:"recipeName" yaml:"recipe_name"`
	Volume     float64 `json:"volume"     yaml:"volume"`
	StyleID    string  `json:"styleId"    yaml:"style_id"`
	Method     Method  `json:"method"     yaml:"method"`
}

// MaltAddition is one grain bill row. Mass is in kilograms.
type MaltAddition struct {
	MaltID string  `json:"maltId" yaml:"malt_id"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// HopAddition is one hop schedule row. Amount is in grams and Timing is the
// number of minutes before the end of the boil.
type HopAddition struct {
	HopID  string  `json:"hopId"  yaml:"hop_id"`
	Amount float64 `json:"amount" yaml:"amount"`
	Timing float64 `json:"timing" yaml:"timing"`
}

// AdjunctAddition is one adjunct row. Mass is in kilograms.
type AdjunctAddition struct {
	AdjunctID string  `json:"adjunctId" yaml:"adjunct_id"`
	Amount    float64 `json:"amount"    yaml:"amount"`
}

// WaterSource is descriptive metadata about the brewing water.
type WaterSource struct {
	SourceType WaterSourceType `json:"sourceType" yaml:"source_type"`
	Notes      string          `json:"notes"      yaml:"notes"`
}

// Process holds process overrides.
type Process struct {
	BoilTimeMin         float64 `json:"boilTimeMin"         yaml:"boil_time_min"`
	BoilOffRateLPerHour float64 `json:"boilOffRateLPerHour" yaml:"boil_off_rate_l_per_hour"`
}

// EquipmentInfo carries capability flags entered directly by the user. They
// are merged with the selected equipment by ResolveCapabilities.
type EquipmentInfo struct {
	KettleCapacityL float64 `json:"kettleCapacityL" yaml:"kettle_capacity_l"`
	HasChiller      bool    `json:"hasChiller"      yaml:"has_chiller"`
	HasHydrometer   bool    `json:"hasHydrometer"   yaml:"has_hydrometer"`
	HasTempControl  bool    `json:"hasTempControl"  yaml:"has_temp_control"`
}

// Mashing holds mash and boil parameters.
type Mashing struct {
	MashTemp     float64 `json:"mashTemp"     yaml:"mash_temp"`
	BoilDuration float64 `json:"boilDuration" yaml:"boil_duration"`
}

// Fermentation holds primary parameters and the optional secondary stage.
type Fermentation struct {
	FermentationTemp float64    `json:"fermentationTemp"    yaml:"fermentation_temp"`
	PrimaryDays      float64    `json:"primaryDays"         yaml:"primary_days"`
	Secondary        *Secondary `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Secondary is a secondary fermentation or maturation stage.
type Secondary struct {
	Days  float64 `json:"days"  yaml:"days"`
	TempC float64 `json:"tempC" yaml:"temp_c"`
}

// Conditioning selects the carbonation mode and priming dose.
type Conditioning struct {
	Mode          ConditioningMode `json:"mode"          yaml:"mode"`
	SugarPerLiter float64          `json:"sugarPerLiter" yaml:"sugar_per_liter"`
}

// BoilMinutes resolves the effective boil duration: the mash step value, then
// the process override, then 60 minutes.
func (r *Recipe) BoilMinutes() float64 {
	switch {
	case r.Mashing.BoilDuration > 0:
		return r.Mashing.BoilDuration
	case r.Process.BoilTimeMin > 0:
		return r.Process.BoilTimeMin
	default:
		return DefaultBoilMinutes
	}
}

// ActiveMalts returns the grain bill rows that contribute to calculations.
// Placeholder rows with no id or a non-positive mass are skipped.
func (r *Recipe) ActiveMalts() []MaltAddition {
	out := make([]MaltAddition, 0, len(r.Malts))
	for _, m := range r.Malts {
		if m.MaltID != "" && m.Amount > 0 {
			out = append(out, m)
		}
	}
	return out
}

// ActiveHops returns the hop rows that contribute to calculations.
func (r *Recipe) ActiveHops() []HopAddition {
	out := make([]HopAddition, 0, len(r.Hops))
	for _, h := range r.Hops {
		if h.HopID != "" && h.Amount > 0 {
			out = append(out, h)
		}
	}
	return out
}

// ActiveAdjuncts returns the adjunct rows with an id and a positive mass.
func (r *Recipe) ActiveAdjuncts() []AdjunctAddition {
	out := make([]AdjunctAddition, 0, len(r.Adjuncts))
	for _, a := range r.Adjuncts {
		if a.AdjunctID != "" && a.Amount > 0 {
			out = append(out, a)
		}
	}
	return out
}

// TotalGrainKg sums the mass of the active grain bill rows.
func (r *Recipe) TotalGrainKg() float64 {
	var total float64
	for _, m := range r.ActiveMalts() {
		total += m.Amount
	}
	return total
}
