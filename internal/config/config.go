// Package config loads and saves the brewplan configuration file,
// $BREWPLAN_HOME/config.yaml (default ~/.brewplan/config.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

// Environment variables read by the configuration layer.
const (
	EnvHome      = "BREWPLAN_HOME"
	EnvLogLevel  = "BREWPLAN_LOG_LEVEL"
	EnvLogFormat = "BREWPLAN_LOG_FORMAT"
)

// FileName is the configuration file name inside the config directory.
const FileName = "config.yaml"

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// UI modes. Beginners get tips inline; experts get loss breakdowns and water
// overrides.
const (
	ModeBeginner = "beginner"
	ModeExpert   = "expert"
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be 'table', 'json' or 'ndjson'")
	ErrInvalidLogLevel     = errors.New("log level must be one of trace, debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("log format must be 'console' or 'json'")
	ErrInvalidMode         = errors.New("ui mode must be 'beginner' or 'expert'")
	ErrNegativeWater       = errors.New("water parameters cannot be negative")
	ErrUnknownKey          = errors.New("unknown configuration key")
	ErrInvalidValue        = errors.New("invalid configuration value")
)

// OutputConfig controls report rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DataConfig points at an optional directory of reference tables.
type DataConfig struct {
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// WaterConfig overrides the water planner estimates.
type WaterConfig struct {
	GrainAbsorptionLPerKg  float64 `yaml:"grain_absorption_l_per_kg"   json:"grain_absorption_l_per_kg"`
	MashRatioLPerKg        float64 `yaml:"mash_ratio_l_per_kg"         json:"mash_ratio_l_per_kg"`
	TrubLossL              float64 `yaml:"trub_loss_l"                 json:"trub_loss_l"`
	FixedLossesL           float64 `yaml:"fixed_losses_l"              json:"fixed_losses_l"`
	DefaultBoilOffLPerHour float64 `yaml:"default_boil_off_l_per_hour" json:"default_boil_off_l_per_hour"`
}

// AssistantConfig locates the assistant state file.
type AssistantConfig struct {
	StateFile string `yaml:"state_file,omitempty" json:"state_file,omitempty"`
}

// UIConfig selects the presentation mode.
type UIConfig struct {
	Mode string `yaml:"mode" json:"mode"`
}

// Config is the brewplan configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"    json:"output"`
	Logging   LoggingConfig   `yaml:"logging"   json:"logging"`
	Data      DataConfig      `yaml:"data"      json:"data"`
	Water     WaterConfig     `yaml:"water"     json:"water"`
	Assistant AssistantConfig `yaml:"assistant" json:"assistant"`
	UI        UIConfig        `yaml:"ui"        json:"ui"`

	configPath string
}

// Dir returns the configuration directory: $BREWPLAN_HOME when set,
// otherwise ~/.brewplan.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".brewplan"), nil
}

// DefaultPath returns the path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// New returns the default configuration bound to the default path.
func New() *Config {
	p := water.DefaultParams()
	cfg := &Config{
		Output:  OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{Level: "warn", Format: LogFormatConsole},
		Water: WaterConfig{
			GrainAbsorptionLPerKg:  p.GrainAbsorptionLPerKg,
			MashRatioLPerKg:        p.MashRatioLPerKg,
			TrubLossL:              p.TrubLossL,
			FixedLossesL:           p.FixedLossesL,
			DefaultBoilOffLPerHour: p.BoilOffLPerHour,
		},
		UI: UIConfig{Mode: ModeBeginner},
	}
	if path, err := DefaultPath(); err == nil {
		cfg.configPath = path
	}
	return cfg
}

// Load reads the configuration at path (the default path when empty) on top
// of the defaults. A missing file is not an error. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		cfg.configPath = path
	}

	if cfg.configPath != "" {
		data, err := os.ReadFile(cfg.configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", cfg.configPath, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("reading config %s: %w", cfg.configPath, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies the BREWPLAN_LOG_LEVEL and BREWPLAN_LOG_FORMAT overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// ConfigPath returns the file the configuration is bound to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath rebinds the configuration to path.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Save writes the configuration atomically.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("configuration has no file path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp := c.configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config temp file: %w", err)
	}
	if err := os.Rename(tmp, c.configPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming config temp file: %w", err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	switch c.UI.Mode {
	case ModeBeginner, ModeExpert:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidMode, c.UI.Mode)
	}
	w := c.Water
	if w.GrainAbsorptionLPerKg < 0 || w.MashRatioLPerKg < 0 || w.TrubLossL < 0 ||
		w.FixedLossesL < 0 || w.DefaultBoilOffLPerHour < 0 {
		return ErrNegativeWater
	}
	return nil
}

// WaterParams converts the water section for the planner.
func (c *Config) WaterParams() water.Params {
	return water.Params{
		GrainAbsorptionLPerKg: c.Water.GrainAbsorptionLPerKg,
		MashRatioLPerKg:       c.Water.MashRatioLPerKg,
		TrubLossL:             c.Water.TrubLossL,
		FixedLossesL:          c.Water.FixedLossesL,
		BoilOffLPerHour:       c.Water.DefaultBoilOffLPerHour,
	}
}

// StateFilePath returns the assistant state file, defaulting to state.json
// next to the configuration file.
func (c *Config) StateFilePath() string {
	if c.Assistant.StateFile != "" {
		return c.Assistant.StateFile
	}
	if c.configPath != "" {
		return filepath.Join(filepath.Dir(c.configPath), "state.json")
	}
	return ""
}

// IsExpert reports whether the expert UI mode is selected.
func (c *Config) IsExpert() bool { return c.UI.Mode == ModeExpert }
