package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

// setupHome points BREWPLAN_HOME at a fresh directory.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("BREWPLAN_HOME", home)
	t.Setenv("BREWPLAN_LOG_LEVEL", "")
	t.Setenv("BREWPLAN_LOG_FORMAT", "")
	return home
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// blondeRecipe passes every wizard step: 20 L all-grain with a 30 L kettle,
// no chiller and no hydrometer.
func blondeRecipe() brew.Recipe {
	r := brew.Default()
	r.Params.RecipeName = "Test Blonde"
	r.Params.StyleID = "blonde_ale"
	r.Profile.SelectedEquipment = []string{"kettle_30", "fermenter_bucket"}
	r.Malts = []brew.MaltAddition{{MaltID: "pilsner", Amount: 4}, {MaltID: "carapils", Amount: 0.3}}
	r.Hops = []brew.HopAddition{{HopID: "saaz", Amount: 30, Timing: 60}, {HopID: "saaz", Amount: 20, Timing: 10}}
	r.YeastID = "us05"
	return r
}

func writeRecipeFile(t *testing.T, r brew.Recipe, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, brew.Encode(f, r, brew.FormatFromPath(name)))
	require.NoError(t, f.Close())
	return path
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
