package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/config"
	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/rules"
	"github.com/guerrinflorian/ConcepteurBiere/internal/session"
	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
)

const maxExitCode = 255

// risksParams holds the flags of the risks command.
type risksParams struct {
	exitOn   string
	exitCode int
	all      bool
}

// risksReport is the structured output of the risks command.
type risksReport struct {
	Risks     []rules.Risk `json:"risks"`
	Dismissed []string     `json:"dismissed"`
}

func newRisksCmd() *cobra.Command {
	var params risksParams

	cmd := &cobra.Command{
		Use:   "risks <recipe>",
		Short: "List brewing risks with remediation advice",
		Long: `Evaluates the risk rules, hides the risks you dismissed, and lists the rest
danger first. With --exit-on the command fails when a remaining risk is at or
above the given severity, which lets a CI job gate on a recipe.`,
		Example: `  brewplan risks blonde.json
  brewplan risks blonde.json --exit-on danger --exit-code 3
  brewplan risks dismiss no_hydrometer --reason "I use a refractometer"
  brewplan risks dismiss no_chiller_warn --for 72h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRisks(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVar(&params.exitOn, "exit-on", "", "fail when a risk at or above this level remains: danger, warn or info")
	cmd.Flags().IntVar(&params.exitCode, "exit-code", 1, "exit code to use with --exit-on (0-255)")
	cmd.Flags().BoolVar(&params.all, "all", false, "include dismissed risks")
	addOutputFlag(cmd)

	cmd.AddCommand(newRisksDismissCmd(), newRisksUndismissCmd(), newRisksListDismissedCmd(), newRisksResetCmd())
	return cmd
}

func openStore(cfg *config.Config) (*session.Store, error) {
	store, err := session.NewStore(cfg.StateFilePath())
	if err != nil {
		return nil, fmt.Errorf("opening assistant state: %w", err)
	}
	return store, nil
}

func executeRisks(cmd *cobra.Command, path string, params risksParams) error {
	var threshold rules.Level
	if params.exitOn != "" {
		l, ok := rules.ParseLevel(params.exitOn)
		if !ok {
			return fmt.Errorf("invalid --exit-on %q: must be danger, warn or info", params.exitOn)
		}
		threshold = l
	}
	if params.exitCode < 0 || params.exitCode > maxExitCode {
		return fmt.Errorf("--exit-code must be between 0 and %d, got %d", maxExitCode, params.exitCode)
	}

	in, err := loadInput(cmd, path)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	store, err := openStore(in.cfg)
	if err != nil {
		return err
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading assistant state: %w", err)
	}

	dismissed := store.DismissedIDs()
	filter := rules.NewIDSet(dismissed...)
	if params.all {
		filter = nil
	}

	rctx := rules.NewContext(in.recipe, in.tables, in.water)
	risks := rules.Risks(rctx, filter)
	if risks == nil {
		risks = []rules.Risk{}
	}
	hidden := len(rules.Risks(rctx, nil)) - len(risks)

	log.Debug().Ctx(ctx).
		Int("risks", len(risks)).
		Int("hidden", hidden).
		Str("session_id", store.SessionID()).
		Msg("risk rules evaluated")

	report := risksReport{Risks: risks, Dismissed: dismissed}
	if err := writeReport(cmd.OutOrStdout(), in.format, report, risks, func() string {
		return tui.RenderRisks(risks, hidden, renderOptions(cmd, in.cfg))
	}); err != nil {
		return err
	}

	if threshold == "" {
		return nil
	}
	n := 0
	for _, r := range risks {
		if r.Level.AtLeast(threshold) {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	log.Info().Ctx(ctx).Int("count", n).Str("threshold", string(threshold)).Msg("risk threshold reached")
	return &ExitError{
		Code:   params.exitCode,
		Reason: fmt.Sprintf("%d risk(s) at or above %s", n, threshold),
	}
}
