package brew

import (
	"regexp"
	"strconv"
)

// kettleCapacityPattern pulls a liter capacity out of an equipment name such
// as "Brew kettle 30 L".
var kettleCapacityPattern = regexp.MustCompile(`(\d+)\s*[Ll]`) //nolint:gochecknoglobals // compiled once

// Capabilities is the resolved view of what the brewer can do, combining the
// flags entered on the recipe with the selected equipment.
type Capabilities struct {
	KettleCapacityL float64 `json:"kettleCapacityL"`
	HasChiller      bool    `json:"hasChiller"`
	HasHydrometer   bool    `json:"hasHydrometer"`
	HasTempControl  bool    `json:"hasTempControl"`
}

// ResolveCapabilities merges the explicit equipment flags of r with its
// selected equipment. An explicit kettle capacity wins; otherwise the largest
// capacity parsed from a selected kettle's name is used. Boolean flags are set
// when either the explicit flag or a matching equipment category is present.
func ResolveCapabilities(r *Recipe, t *Tables) Capabilities {
	selected := t.SelectedEquipment(r.Profile.SelectedEquipment)

	caps := Capabilities{
		KettleCapacityL: r.EquipmentInfo.KettleCapacityL,
		HasChiller:      r.EquipmentInfo.HasChiller,
		HasHydrometer:   r.EquipmentInfo.HasHydrometer,
		HasTempControl:  r.EquipmentInfo.HasTempControl,
	}

	if caps.KettleCapacityL <= 0 {
		caps.KettleCapacityL = 0
		for _, e := range selected {
			if e.Category != CategoryKettle {
				continue
			}
			if c := parseCapacity(e.Name); c > caps.KettleCapacityL {
				caps.KettleCapacityL = c
			}
		}
	}

	for _, e := range selected {
		switch e.Category {
		case CategoryCooling:
			caps.HasChiller = true
		case CategoryTemperature:
			caps.HasTempControl = true
		}
	}

	for _, id := range r.Profile.SelectedEquipment {
		if id == HydrometerID {
			caps.HasHydrometer = true
		}
	}

	return caps
}

func parseCapacity(name string) float64 {
	m := kettleCapacityPattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return float64(n)
}
