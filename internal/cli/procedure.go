package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/config"
	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/procedure"
	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
)

// procedureReport is the structured output of the procedure command.
type procedureReport struct {
	Recipe           string           `json:"recipe"`
	TotalDurationMin float64          `json:"totalDurationMin"`
	Steps            []procedure.Step `json:"steps"`
}

func newProcedureCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "procedure <recipe>",
		Short: "Generate the brew-day procedure",
		Long: `Generates the ordered production steps for a recipe, from preparation to
maturation, with durations, hop schedule, warnings and beginner tips.
With --interactive the steps are shown one at a time in a terminal pager.`,
		Example: `  brewplan procedure blonde.json
  brewplan procedure blonde.json --interactive
  brewplan procedure blonde.json --output ndjson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			steps := procedure.Generate(procedure.NewContext(in.recipe, in.tables, in.water))
			log.Debug().Ctx(ctx).Int("steps", len(steps)).Msg("procedure generated")

			opts := renderOptions(cmd, in.cfg)
			if interactive && in.format == config.FormatTable {
				if opts.Styled && isTerminal(os.Stdin) {
					return runStepper(cmd, steps, opts)
				}
				log.Debug().Ctx(ctx).Msg("not a terminal, printing the full procedure")
			}

			report := procedureReport{
				Recipe:           in.recipe.Params.RecipeName,
				TotalDurationMin: procedure.TotalDurationMin(steps),
				Steps:            steps,
			}
			return writeReport(cmd.OutOrStdout(), in.format, report, steps, func() string {
				return tui.RenderProcedure(steps, opts)
			})
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "step through the procedure in the terminal")
	addOutputFlag(cmd)
	return cmd
}

func runStepper(cmd *cobra.Command, steps []procedure.Step, opts tui.Options) error {
	p := tea.NewProgram(
		tui.NewProcedureModel(steps, opts),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running procedure stepper: %w", err)
	}
	return nil
}
