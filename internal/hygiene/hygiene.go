// Package hygiene holds the sanitation checklist shown alongside the brew
// procedure. Items can be conditional on the packaging mode or on the
// brewer's equipment.
package hygiene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

//go:embed checklist.yaml
var defaultChecklist []byte

// Severity of a checklist item.
type Severity string

// Item severities.
const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

var (
	// ErrDuplicateItem is returned when two items share an id.
	ErrDuplicateItem = errors.New("duplicate checklist item id")
	// ErrInvalidItem is returned for items missing an id or label, or with
	// an unknown severity.
	ErrInvalidItem = errors.New("invalid checklist item")
	// ErrUnknownItem is returned when an id does not name a checklist item.
	ErrUnknownItem = errors.New("unknown checklist item")
)

// AppliesWhen restricts an item. Unset fields match anything.
type AppliesWhen struct {
	Packaging      brew.ConditioningMode `yaml:"packaging,omitempty"        json:"packaging,omitempty"`
	HasChiller     *bool                 `yaml:"has_chiller,omitempty"      json:"hasChiller,omitempty"`
	HasTempControl *bool                 `yaml:"has_temp_control,omitempty" json:"hasTempControl,omitempty"`
}

// Item is one thing to check.
type Item struct {
	ID          string       `yaml:"id"                     json:"id"`
	Label       string       `yaml:"label"                  json:"label"`
	Why         string       `yaml:"why"                    json:"why"`
	How         string       `yaml:"how"                    json:"how"`
	Severity    Severity     `yaml:"severity"               json:"severity"`
	AppliesWhen *AppliesWhen `yaml:"applies_when,omitempty" json:"appliesWhen,omitempty"`
}

// Section groups the items of one brewing stage.
type Section struct {
	Stage string `yaml:"stage" json:"stage"`
	Title string `yaml:"title" json:"title"`
	Intro string `yaml:"intro" json:"intro"`
	Items []Item `yaml:"items" json:"items"`
}

// Checklist is the full list of sections.
type Checklist struct {
	Sections []Section `yaml:"sections" json:"sections"`
}

// Default returns the built-in checklist.
func Default() (*Checklist, error) {
	return Parse(bytes.NewReader(defaultChecklist))
}

// Parse decodes a checklist document and checks item ids are unique.
func Parse(r io.Reader) (*Checklist, error) {
	var c Checklist
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding checklist: %w", err)
	}

	seen := make(map[string]struct{})
	for _, s := range c.Sections {
		for _, it := range s.Items {
			if it.ID == "" || it.Label == "" {
				return nil, fmt.Errorf("%w: section %q has an item without id or label", ErrInvalidItem, s.Stage)
			}
			if it.Severity != SeverityInfo && it.Severity != SeverityWarn {
				return nil, fmt.Errorf("%w: %s has severity %q", ErrInvalidItem, it.ID, it.Severity)
			}
			if _, dup := seen[it.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID)
			}
			seen[it.ID] = struct{}{}
		}
	}
	return &c, nil
}

// Matches reports whether the item applies to a brew with the given
// capabilities and packaging mode.
func (it Item) Matches(caps brew.Capabilities, mode brew.ConditioningMode) bool {
	aw := it.AppliesWhen
	if aw == nil {
		return true
	}
	if aw.Packaging != "" && aw.Packaging != mode {
		return false
	}
	if aw.HasChiller != nil && *aw.HasChiller != caps.HasChiller {
		return false
	}
	if aw.HasTempControl != nil && *aw.HasTempControl != caps.HasTempControl {
		return false
	}
	return true
}

// Applicable returns the sections of c filtered down to the items that apply.
// Sections left without items are dropped.
func Applicable(c *Checklist, caps brew.Capabilities, mode brew.ConditioningMode) []Section {
	if c == nil {
		return nil
	}
	out := make([]Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		items := make([]Item, 0, len(s.Items))
		for _, it := range s.Items {
			if it.Matches(caps, mode) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		s.Items = items
		out = append(out, s)
	}
	return out
}

// Item looks up an item by id across all sections.
func (c *Checklist) Item(id string) (Item, error) {
	if c != nil {
		for _, s := range c.Sections {
			for _, it := range s.Items {
				if it.ID == id {
					return it, nil
				}
			}
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
}

// Items flattens sections into one list, keeping order.
func Items(sections []Section) []Item {
	var out []Item
	for _, s := range sections {
		out = append(out, s.Items...)
	}
	return out
}

// Progress counts how many of items are checked.
func Progress(items []Item, checked map[string]bool) (done, total int) {
	for _, it := range items {
		if checked[it.ID] {
			done++
		}
	}
	return done, len(items)
}
