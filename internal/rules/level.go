// Package rules evaluates the consistency and risk rule sets against a
// recipe. Each rule set is a flat, ordered slice of independent rules that
// are always all evaluated; a rule yields at most one result.
package rules

import (
	"strconv"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

// Level is the severity of a diagnostic.
type Level string

// Severity levels, from least to most severe.
const (
	LevelInfo   Level = "info"
	LevelWarn   Level = "warn"
	LevelDanger Level = "danger"
)

// levelRank orders levels for sorting; lower sorts first.
var levelRank = map[Level]int{ //nolint:gochecknoglobals // immutable lookup table
	LevelDanger: 0,
	LevelWarn:   1,
	LevelInfo:   2,
}

// Rank returns the sort position of l. Unknown levels sort last.
func (l Level) Rank() int {
	if r, ok := levelRank[l]; ok {
		return r
	}
	return len(levelRank)
}

// AtLeast reports whether l is as severe as threshold or more.
func (l Level) AtLeast(threshold Level) bool {
	return l.Rank() <= threshold.Rank()
}

// ParseLevel converts a user supplied severity name.
func ParseLevel(s string) (Level, bool) {
	l := Level(s)
	_, ok := levelRank[l]
	return l, ok
}

// Context is the read-only input shared by every rule.
type Context struct {
	Recipe *brew.Recipe
	Tables *brew.Tables
	// Yeast is the resolved yeast, or nil when none is selected.
	Yeast *brew.Yeast
	Caps  brew.Capabilities
	Water water.Plan
}

// NewContext resolves everything the rules need from a recipe.
func NewContext(r *brew.Recipe, t *brew.Tables, wp water.Params) Context {
	ctx := Context{
		Recipe: r,
		Tables: t,
		Caps:   brew.ResolveCapabilities(r, t),
		Water:  water.CalculateWith(r, wp),
	}
	if y, ok := t.Yeast(r.YeastID); ok {
		ctx.Yeast = &y
	}
	return ctx
}

// num formats a quantity the way a user typed it: 20, 7.5, 9.25.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
