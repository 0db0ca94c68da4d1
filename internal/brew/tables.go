package brew

// MaltType classifies a malt for grain bill ratio checks.
type MaltType string

// Malt types. Only base malts count toward the base malt share.
const (
	MaltBase      MaltType = "base"
	MaltSpecialty MaltType = "specialty"
	MaltCrystal   MaltType = "crystal"
	MaltRoasted   MaltType = "roasted"
)

// YeastType distinguishes top and bottom fermenting strains.
type YeastType string

// Yeast types.
const (
	YeastAle   YeastType = "ale"
	YeastLager YeastType = "lager"
)

// EquipmentCategory groups equipment items. The category drives capability
// resolution.
type EquipmentCategory string

// Equipment categories.
const (
	CategoryKettle      EquipmentCategory = "kettle"
	CategoryFermenter   EquipmentCategory = "fermenter"
	CategoryCooling     EquipmentCategory = "cooling"
	CategoryTemperature EquipmentCategory = "temperature"
	CategoryMeasurement EquipmentCategory = "measurement"
	CategoryHygiene     EquipmentCategory = "hygiene"
	CategoryPackaging   EquipmentCategory = "packaging"
	CategoryTools       EquipmentCategory = "tools"
)

// HydrometerID is the equipment id that grants the hydrometer capability.
const HydrometerID = "hydrometer"

// Malt is a grain reference record.
type Malt struct {
	ID               string   `json:"id"                yaml:"id"`
	Name             string   `json:"name"              yaml:"name"`
	Type             MaltType `json:"type"              yaml:"type"`
	ColorEBC         float64  `json:"color_ebc"         yaml:"color_ebc"`
	PotentialGravity float64  `json:"potential_gravity" yaml:"potential_gravity"`
	Description      string   `json:"description"       yaml:"description"`
	Origin           string   `json:"origin"            yaml:"origin"`
}

// Hop is a hop variety reference record.
type Hop struct {
	ID          string  `json:"id"          yaml:"id"`
	Name        string  `json:"name"        yaml:"name"`
	AlphaAcid   float64 `json:"alpha_acid"  yaml:"alpha_acid"`
	Type        string  `json:"type"        yaml:"type"`
	Description string  `json:"description" yaml:"description"`
	Origin      string  `json:"origin"      yaml:"origin"`
}

// Yeast is a yeast strain reference record. Temperatures are in °C.
type Yeast struct {
	ID               string    `json:"id"                yaml:"id"`
	Name             string    `json:"name"              yaml:"name"`
	Type             YeastType `json:"type"              yaml:"type"`
	Attenuation      float64   `json:"attenuation"       yaml:"attenuation"`
	TempMin          float64   `json:"temp_min"          yaml:"temp_min"`
	TempMax          float64   `json:"temp_max"          yaml:"temp_max"`
	TempIdeal        float64   `json:"temp_ideal"        yaml:"temp_ideal"`
	AlcoholTolerance float64   `json:"alcohol_tolerance" yaml:"alcohol_tolerance"`
	Flocculation     string    `json:"flocculation"      yaml:"flocculation"`
	Description      string    `json:"description"       yaml:"description"`
}

// Equipment is a piece of brewing equipment.
type Equipment struct {
	ID          string            `json:"id"          yaml:"id"`
	Name        string            `json:"name"        yaml:"name"`
	Category    EquipmentCategory `json:"category"    yaml:"category"`
	Description string            `json:"description" yaml:"description"`
	ForPro      bool              `json:"for_pro"     yaml:"for_pro"`
}

// Adjunct is a non-malt fermentable or flavoring addition. A gravity
// contribution above 1.0 marks it as a sugar source.
type Adjunct struct {
	ID                  string  `json:"id"                   yaml:"id"`
	Name                string  `json:"name"                 yaml:"name"`
	Category            string  `json:"category"             yaml:"category"`
	GravityContribution float64 `json:"gravity_contribution" yaml:"gravity_contribution"`
	Description         string  `json:"description"          yaml:"description"`
	Usage               string  `json:"usage"                yaml:"usage"`
}

// BeerStyle is a style guideline with inclusive metric ranges.
type BeerStyle struct {
	ID          string  `json:"id"          yaml:"id"`
	Name        string  `json:"name"        yaml:"name"`
	Color       string  `json:"color"       yaml:"color"`
	OGMin       float64 `json:"og_min"      yaml:"og_min"`
	OGMax       float64 `json:"og_max"      yaml:"og_max"`
	IBUMin      float64 `json:"ibu_min"     yaml:"ibu_min"`
	IBUMax      float64 `json:"ibu_max"     yaml:"ibu_max"`
	ABVMin      float64 `json:"abv_min"     yaml:"abv_min"`
	ABVMax      float64 `json:"abv_max"     yaml:"abv_max"`
	EBCMin      float64 `json:"ebc_min"     yaml:"ebc_min"`
	EBCMax      float64 `json:"ebc_max"     yaml:"ebc_max"`
	Description string  `json:"description" yaml:"description"`
}

// Tables bundles the reference datasets. Lookups are linear and an unknown id
// yields ok=false; callers treat that as "no contribution". A nil *Tables
// resolves nothing.
type Tables struct {
	Malts     []Malt
	Hops      []Hop
	Yeasts    []Yeast
	Equipment []Equipment
	Styles    []BeerStyle
	Adjuncts  []Adjunct
}

// Malt looks up a malt by id.
func (t *Tables) Malt(id string) (Malt, bool) {
	if t == nil {
		return Malt{}, false
	}
	for _, m := range t.Malts {
		if m.ID == id {
			return m, true
		}
	}
	return Malt{}, false
}

// Hop looks up a hop by id.
func (t *Tables) Hop(id string) (Hop, bool) {
	if t == nil {
		return Hop{}, false
	}
	for _, h := range t.Hops {
		if h.ID == id {
			return h, true
		}
	}
	return Hop{}, false
}

// Yeast looks up a yeast by id.
func (t *Tables) Yeast(id string) (Yeast, bool) {
	if t == nil {
		return Yeast{}, false
	}
	for _, y := range t.Yeasts {
		if y.ID == id {
			return y, true
		}
	}
	return Yeast{}, false
}

// EquipmentItem looks up an equipment item by id.
func (t *Tables) EquipmentItem(id string) (Equipment, bool) {
	if t == nil {
		return Equipment{}, false
	}
	for _, e := range t.Equipment {
		if e.ID == id {
			return e, true
		}
	}
	return Equipment{}, false
}

// Style looks up a beer style by id.
func (t *Tables) Style(id string) (BeerStyle, bool) {
	if t == nil {
		return BeerStyle{}, false
	}
	for _, s := range t.Styles {
		if s.ID == id {
			return s, true
		}
	}
	return BeerStyle{}, false
}

// Adjunct looks up an adjunct by id.
func (t *Tables) Adjunct(id string) (Adjunct, bool) {
	if t == nil {
		return Adjunct{}, false
	}
	for _, a := range t.Adjuncts {
		if a.ID == id {
			return a, true
		}
	}
	return Adjunct{}, false
}

// SelectedEquipment resolves the ids in sel, silently dropping unknown ids and
// keeping selection order.
func (t *Tables) SelectedEquipment(sel []string) []Equipment {
	out := make([]Equipment, 0, len(sel))
	for _, id := range sel {
		if e, ok := t.EquipmentItem(id); ok {
			out = append(out, e)
		}
	}
	return out
}
