package cli

import (
	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/calc"
	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
)

// calcReport is the structured output of the calc command.
type calcReport struct {
	Recipe     string            `json:"recipe"`
	Values     calc.Values       `json:"values"`
	Bitterness string            `json:"bitterness"`
	ColorHex   string            `json:"colorHex"`
	Style      []calc.RangeCheck `json:"style,omitempty"`
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <recipe>",
		Short: "Show gravity, strength, bitterness, color and carbonation",
		Long: `Derives OG, FG, ABV, IBU, EBC and CO2 volumes from a recipe file.
When the recipe names a known style, each metric is compared against the style range.
Use "-" to read the recipe from standard input.`,
		Example: `  brewplan calc blonde.json
  brewplan calc ipa.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCalc(cmd, args[0])
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func executeCalc(cmd *cobra.Command, path string) error {
	in, err := loadInput(cmd, path)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	v := calc.ForRecipe(in.recipe, in.tables)
	report := calcReport{
		Recipe:     in.recipe.Params.RecipeName,
		Values:     v,
		Bitterness: calc.BitternessLabel(v.IBU),
		ColorHex:   calc.ColorSwatch(v.EBC).Hex(),
		Style:      calc.CompareRecipeStyle(in.recipe, in.tables, v),
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Float64("og", v.OG).
		Float64("abv", v.ABV).
		Float64("ibu", v.IBU).
		Int("style_checks", len(report.Style)).
		Msg("metrics computed")

	return writeReport(cmd.OutOrStdout(), in.format, report, []calcReport{report}, func() string {
		return tui.RenderMetrics(report.Recipe, v, report.Style, renderOptions(cmd, in.cfg))
	})
}
