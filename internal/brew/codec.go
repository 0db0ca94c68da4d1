package brew

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a recipe document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the document format from a file extension,
// defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat converts a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// legacyFermentation captures the flat secondary fields written by version 2
// documents.
type legacyFermentation struct {
	Fermentation struct {
		HasSecondary  bool    `json:"hasSecondary"`
		SecondaryDays float64 `json:"secondaryDays"`
		SecondaryTemp float64 `json:"secondaryTemp"`
	} `json:"fermentation"`
}

// Decode reads a recipe document and merges it onto Default: groups and
// scalar fields absent from the document keep their default value, while a
// list present in the document replaces the default list entirely. The result
// is normalized and safe to hand to the derivation engine.
func Decode(r io.Reader, format Format) (Recipe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Recipe{}, fmt.Errorf("reading recipe: %w", err)
	}

	rec := Default()
	defaults := rec.Clone()
	rec.Malts, rec.Hops, rec.Adjuncts = nil, nil, nil

	switch format {
	case FormatJSON:
		if err = json.Unmarshal(data, &rec); err != nil {
			return Recipe{}, fmt.Errorf("decoding recipe json: %w", err)
		}
		var legacy legacyFermentation
		if json.Unmarshal(data, &legacy) == nil && legacy.Fermentation.HasSecondary &&
			rec.Fermentation.Secondary == nil {
			rec.Fermentation.Secondary = &Secondary{
				Days:  legacy.Fermentation.SecondaryDays,
				TempC: legacy.Fermentation.SecondaryTemp,
			}
		}
	case FormatYAML:
		if err = yaml.Unmarshal(data, &rec); err != nil {
			return Recipe{}, fmt.Errorf("decoding recipe yaml: %w", err)
		}
	default:
		return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if rec.Version > SchemaVersion || rec.Version < 0 {
		return Recipe{}, fmt.Errorf("%w: %d (max %d)", ErrUnsupportedVersion, rec.Version, SchemaVersion)
	}

	if rec.Malts == nil {
		rec.Malts = defaults.Malts
	}
	if rec.Hops == nil {
		rec.Hops = defaults.Hops
	}
	if rec.Adjuncts == nil {
		rec.Adjuncts = defaults.Adjuncts
	}

	rec.Normalize()
	return rec, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte, format Format) (Recipe, error) {
	return Decode(bytes.NewReader(data), format)
}

// Encode writes r as an indented document in the given format.
func Encode(w io.Writer, r Recipe, format Format) error {
	r.Normalize()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding recipe json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding recipe yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding recipe yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}
