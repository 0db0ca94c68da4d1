package hygiene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDefaultChecklist(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Len(t, c.Sections, 5)
	assert.Equal(t, "preparation", c.Sections[0].Stage)
	assert.Len(t, Items(c.Sections), 18)
	for _, s := range c.Sections {
		assert.NotEmpty(t, s.Intro, s.Stage)
	}
}

func TestApplicable(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name      string
		caps      brew.Capabilities
		mode      brew.ConditioningMode
		wantCount int
		want      []string
		notWant   []string
	}{
		{
			name:      "bottles, no gear",
			mode:      brew.ModeBottles,
			wantCount: 15,
			want:      []string{"sanitize_bottles", "sanitize_caps", "measure_sugar"},
			notWant:   []string{"sanitize_keg", "sanitize_chiller", "stable_fermentation_temp"},
		},
		{
			name:      "keg with chiller and control",
			caps:      brew.Capabilities{HasChiller: true, HasTempControl: true},
			mode:      brew.ModeKeg,
			wantCount: 15,
			want:      []string{"sanitize_keg", "sanitize_chiller", "stable_fermentation_temp"},
			notWant:   []string{"sanitize_bottles", "measure_sugar"},
		},
		{
			name:      "keg, no gear",
			mode:      brew.ModeKeg,
			wantCount: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Items(Applicable(c, tt.caps, tt.mode)))
			assert.Len(t, got, tt.wantCount)
			for _, id := range tt.want {
				assert.Contains(t, got, id)
			}
			for _, id := range tt.notWant {
				assert.NotContains(t, got, id)
			}
		})
	}
}

func TestApplicableDropsEmptySections(t *testing.T) {
	yes := true
	c := &Checklist{Sections: []Section{
		{Stage: "a", Items: []Item{{ID: "x", AppliesWhen: &AppliesWhen{HasChiller: &yes}}}},
		{Stage: "b", Items: []Item{{ID: "y"}}},
	}}
	got := Applicable(c, brew.Capabilities{}, brew.ModeBottles)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Stage)
	assert.Len(t, c.Sections[0].Items, 1, "source checklist is not mutated")

	assert.Nil(t, Applicable(nil, brew.Capabilities{}, brew.ModeKeg))
}

func TestProgress(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	done, total := Progress(items, map[string]bool{"a": true, "c": false, "zzz": true})
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	done, total = Progress(nil, nil)
	assert.Zero(t, done)
	assert.Zero(t, total)
}

func TestItemLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	it, err := c.Item("measure_sugar")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarn, it.Severity)
	assert.Equal(t, brew.ModeBottles, it.AppliesWhen.Packaging)

	_, err = c.Item("nope")
	require.ErrorIs(t, err, ErrUnknownItem)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate",
			doc: `sections:
  - stage: a
    items:
      - {id: x, label: X, severity: info}
  - stage: b
    items:
      - {id: x, label: X again, severity: warn}`,
			want: ErrDuplicateItem,
		},
		{
			name: "bad severity",
			doc: `sections:
  - stage: a
    items:
      - {id: x, label: X, severity: danger}`,
			want: ErrInvalidItem,
		},
		{
			name: "missing label",
			doc: `sections:
  - stage: a
    items:
      - {id: x, severity: info}`,
			want: ErrInvalidItem,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse(strings.NewReader("sections: [unclosed"))
	assert.Error(t, err)
}
