package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/ConcepteurBiere/internal/rules"
	"github.com/guerrinflorian/ConcepteurBiere/internal/session"
)

func riskIDsFrom(t *testing.T, out string) ([]string, []string) {
	t.Helper()
	var report risksReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	ids := make([]string, 0, len(report.Risks))
	for _, r := range report.Risks {
		ids = append(ids, r.ID)
	}
	return ids, report.Dismissed
}

func TestRisksDefaultOrder(t *testing.T) {
	setupHome(t)
	path := writeRecipeFile(t, blondeRecipe(), "blonde.json")

	out, _, err := execute(t, "", "risks", path, "-o", "json")
	require.NoError(t, err)

	ids, dismissed := riskIDsFrom(t, out)
	assert.Equal(t, []string{"no_chiller_warn", "no_hydrometer_info"}, ids)
	assert.Empty(t, dismissed)
}

func TestRisksDismissLifecycle(t *testing.T) {
	setupHome(t)
	path := writeRecipeFile(t, blondeRecipe(), "blonde.json")

	out, _, err := execute(t, "", "risks", "dismiss", "no_hydrometer_info", "--reason", "refractometer")
	require.NoError(t, err)
	assert.Contains(t, out, "Risk no_hydrometer_info dismissed")

	out, _, err = execute(t, "", "risks", path, "-o", "json")
	require.NoError(t, err)
	ids, dismissed := riskIDsFrom(t, out)
	assert.Equal(t, []string{"no_chiller_warn"}, ids)
	assert.Equal(t, []string{"no_hydrometer_info"}, dismissed)

	out, _, err = execute(t, "", "risks", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 dismissed risk(s) hidden")

	out, _, err = execute(t, "", "risks", path, "--all", "-o", "json")
	require.NoError(t, err)
	ids, _ = riskIDsFrom(t, out)
	assert.Len(t, ids, 2)

	out, _, err = execute(t, "", "risks", "list-dismissed", "-o", "json")
	require.NoError(t, err)
	var entries []session.Dismissal
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "refractometer", entries[0].Reason)
	assert.Equal(t, session.StatusDismissed, entries[0].Status)

	out, _, err = execute(t, "", "risks", "undismiss", "no_hydrometer_info")
	require.NoError(t, err)
	assert.Contains(t, out, "restored")

	out, _, err = execute(t, "", "risks", "undismiss", "no_hydrometer_info")
	require.NoError(t, err)
	assert.Contains(t, out, "was not dismissed")

	out, _, err = execute(t, "", "risks", "list-dismissed")
	require.NoError(t, err)
	assert.Contains(t, out, "No dismissed risks")
}

func TestRisksSnooze(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "risks", "dismiss", "no_chiller_warn", "--for", "48h")
	require.NoError(t, err)
	assert.Contains(t, out, "snoozed for 48h0m0s")

	out, _, err = execute(t, "", "risks", "list-dismissed")
	require.NoError(t, err)
	assert.Contains(t, out, "no_chiller_warn")
	assert.Contains(t, out, "until")

	_, _, err = execute(t, "", "risks", "dismiss", "no_chiller_warn", "--for", "-1h")
	require.Error(t, err)
}

func TestRisksReset(t *testing.T) {
	setupHome(t)
	for _, id := range []string{"no_chiller_warn", "no_hydrometer_info"} {
		_, _, err := execute(t, "", "risks", "dismiss", id)
		require.NoError(t, err)
	}

	out, errOut, err := execute(t, "n\n", "risks", "reset")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Reset cancelled.")
	assert.NotContains(t, out, "Removed")

	out, _, err = execute(t, "y\n", "risks", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 dismissal(s)")

	out, _, err = execute(t, "", "risks", "reset", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 dismissal(s)")
}

func TestRisksExitOn(t *testing.T) {
	setupHome(t)
	path := writeRecipeFile(t, blondeRecipe(), "blonde.json")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  bool
	}{
		{name: "no threshold", args: nil},
		{name: "danger not reached", args: []string{"--exit-on", "danger"}},
		{name: "warn reached", args: []string{"--exit-on", "warn"}, wantCode: 1, wantErr: true},
		{name: "custom code", args: []string{"--exit-on", "info", "--exit-code", "3"}, wantCode: 3, wantErr: true},
		{name: "bad level", args: []string{"--exit-on", "fatal"}, wantErr: true},
		{name: "code out of range", args: []string{"--exit-on", "warn", "--exit-code", "300"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"risks", path, "-o", "json"}, tt.args...)
			_, _, err := execute(t, "", args...)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var exitErr *ExitError
			if tt.wantCode == 0 {
				assert.False(t, errors.As(err, &exitErr))
				return
			}
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.wantCode, exitErr.Code)
		})
	}
}

func TestRisksExitOnIgnoresDismissed(t *testing.T) {
	setupHome(t)
	path := writeRecipeFile(t, blondeRecipe(), "blonde.json")

	_, _, err := execute(t, "", "risks", "dismiss", "no_chiller_warn")
	require.NoError(t, err)

	_, _, err = execute(t, "", "risks", path, "--exit-on", string(rules.LevelWarn))
	assert.NoError(t, err)
}
