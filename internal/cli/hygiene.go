package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/hygiene"
	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/session"
	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
)

// hygieneItem is one checklist row with its checked state.
type hygieneItem struct {
	hygiene.Item
	Stage   string `json:"stage"`
	Checked bool   `json:"checked"`
}

// hygieneReport is the structured output of the hygiene command.
type hygieneReport struct {
	Done  int           `json:"done"`
	Total int           `json:"total"`
	Items []hygieneItem `json:"items"`
}

func newHygieneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hygiene <recipe>",
		Short: "Show the cleaning and sanitizing checklist",
		Long: `Lists the hygiene checklist for the recipe's equipment and packaging, grouped
by brewing stage. Items are ticked with "brewplan hygiene check <item-id>" and
the ticks are kept in the assistant state file.`,
		Example: `  brewplan hygiene blonde.json
  brewplan hygiene check clean_fermenter
  brewplan hygiene uncheck clean_fermenter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			list, err := hygiene.Default()
			if err != nil {
				return err
			}
			store, err := openStore(in.cfg)
			if err != nil {
				return err
			}
			if err := store.Load(); err != nil {
				return fmt.Errorf("loading assistant state: %w", err)
			}

			caps := brew.ResolveCapabilities(in.recipe, in.tables)
			sections := hygiene.Applicable(list, caps, in.recipe.Conditioning.Mode)
			checked := store.Checked()

			report := hygieneReport{Items: []hygieneItem{}}
			report.Done, report.Total = hygiene.Progress(hygiene.Items(sections), checked)
			for _, sec := range sections {
				for _, it := range sec.Items {
					report.Items = append(report.Items, hygieneItem{Item: it, Stage: sec.Stage, Checked: checked[it.ID]})
				}
			}

			return writeReport(cmd.OutOrStdout(), in.format, report, report.Items, func() string {
				return tui.RenderHygiene(sections, checked, renderOptions(cmd, in.cfg))
			})
		},
	}
	addOutputFlag(cmd)
	cmd.AddCommand(newHygieneMarkCmd(true), newHygieneMarkCmd(false), newHygieneResetCmd())
	return cmd
}

func newHygieneMarkCmd(checked bool) *cobra.Command {
	use, short, verb := "check <item-id>", "Tick a checklist item", "checked"
	if !checked {
		use, short, verb = "uncheck <item-id>", "Untick a checklist item", "unchecked"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := hygiene.Default()
			if err != nil {
				return err
			}
			item, err := list.Item(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(configFromContext(ctx))
			if err != nil {
				return err
			}
			if err := store.Update(func(s *session.Store) error {
				return s.SetChecked(item.ID, checked)
			}); err != nil {
				return fmt.Errorf("updating checklist: %w", err)
			}

			cmd.Printf("%s: %s\n", verb, item.Label)
			logging.FromContext(ctx).Debug().Ctx(ctx).Str("item", item.ID).Bool("checked", checked).Msg("hygiene item updated")
			return nil
		},
	}
}

func newHygieneResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Untick every checklist item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if res := Confirm(cmd.ErrOrStderr(), cmd.InOrStdin(), "Untick every hygiene item?"); !res.Accepted {
					cmd.PrintErrln("Reset cancelled.")
					return nil
				}
			}
			store, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := store.Update(func(s *session.Store) error {
				s.ResetHygiene()
				return nil
			}); err != nil {
				return fmt.Errorf("resetting checklist: %w", err)
			}
			cmd.Println("Checklist reset")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
