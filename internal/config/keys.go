package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

type accessor struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringKey(field func(*Config) *string) accessor {
	return accessor{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func floatKey(field func(*Config) *float64) accessor {
	return accessor{
		get: func(c *Config) string { return strconv.FormatFloat(*field(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
			}
			*field(c) = f
			return nil
		},
	}
}

//nolint:gochecknoglobals // static key table
var keys = map[string]accessor{
	"output.default_format": stringKey(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"logging.level":         stringKey(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":        stringKey(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":          stringKey(func(c *Config) *string { return &c.Logging.File }),
	"data.dir":              stringKey(func(c *Config) *string { return &c.Data.Dir }),
	"assistant.state_file":  stringKey(func(c *Config) *string { return &c.Assistant.StateFile }),
	"ui.mode":               stringKey(func(c *Config) *string { return &c.UI.Mode }),

	"water.grain_absorption_l_per_kg":   floatKey(func(c *Config) *float64 { return &c.Water.GrainAbsorptionLPerKg }),
	"water.mash_ratio_l_per_kg":         floatKey(func(c *Config) *float64 { return &c.Water.MashRatioLPerKg }),
	"water.trub_loss_l":                 floatKey(func(c *Config) *float64 { return &c.Water.TrubLossL }),
	"water.fixed_losses_l":              floatKey(func(c *Config) *float64 { return &c.Water.FixedLossesL }),
	"water.default_boil_off_l_per_hour": floatKey(func(c *Config) *float64 { return &c.Water.DefaultBoilOffLPerHour }),
}

// Keys lists every dotted key, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(keys))
}

// Get returns the value at a dotted key such as "ui.mode".
func (c *Config) Get(key string) (string, error) {
	a, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return a.get(c), nil
}

// Set assigns a dotted key and validates the result. On failure the previous
// value is restored.
func (c *Config) Set(key, value string) error {
	a, ok := keys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	prev := a.get(c)
	if err := a.set(c, value); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		_ = a.set(c, prev)
		return err
	}
	return nil
}

// List returns every key with its current value.
func (c *Config) List() [][2]string {
	out := make([][2]string, 0, len(keys))
	for _, k := range Keys() {
		out = append(out, [2]string{k, keys[k].get(c)})
	}
	return out
}
