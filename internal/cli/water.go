package cli

import (
	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

func newWaterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water <recipe>",
		Short: "Plan mash, sparge and total water volumes",
		Long: `Computes the water needed for a recipe: mash and sparge volumes for all-grain,
total water, and the pre- and post-boil volumes. In expert mode the water
estimates from the configuration file apply and the loss breakdown is shown.`,
		Example: `  brewplan water blonde.json
  brewplan water blonde.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			plan := water.CalculateWith(in.recipe, in.water)
			return writeReport(cmd.OutOrStdout(), in.format, plan, []water.Plan{plan}, func() string {
				return tui.RenderWaterPlan(plan, renderOptions(cmd, in.cfg))
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}
