package cli

import (
	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/rules"
	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <recipe>",
		Short: "Run equipment and process consistency checks",
		Long: `Runs every consistency rule against the recipe and its equipment and prints
the findings in rule order.`,
		Example: `  brewplan check blonde.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			checks := rules.RunConsistency(rules.NewContext(in.recipe, in.tables, in.water))
			if checks == nil {
				checks = []rules.Check{}
			}
			logging.FromContext(ctx).Debug().Ctx(ctx).Int("checks", len(checks)).Msg("consistency rules evaluated")

			return writeReport(cmd.OutOrStdout(), in.format, checks, checks, func() string {
				return tui.RenderChecks(checks, renderOptions(cmd, in.cfg))
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}
