package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/session"
)

// dismissParams holds the parameters for the dismiss subcommand.
type dismissParams struct {
	reason string
	snooze time.Duration
}

func newRisksDismissCmd() *cobra.Command {
	var params dismissParams

	cmd := &cobra.Command{
		Use:   "dismiss <risk-id>",
		Short: "Hide a risk in future reports",
		Long: `Hides a risk by id. Tiered risks have one id per tier (for example
priming_warn and priming_danger), so dismissing the warning keeps the danger visible.
With --for the dismissal expires after the given duration.`,
		Example: `  brewplan risks dismiss no_hydrometer --reason "I use a refractometer"
  brewplan risks dismiss no_chiller_warn --for 72h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeDismiss(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVarP(&params.reason, "reason", "r", "", "why the risk is dismissed")
	cmd.Flags().DurationVar(&params.snooze, "for", 0, "snooze instead of dismissing permanently (e.g. 48h)")
	return cmd
}

func executeDismiss(cmd *cobra.Command, riskID string, params dismissParams) error {
	if params.snooze < 0 {
		return fmt.Errorf("--for must be positive, got %s", params.snooze)
	}
	ctx := cmd.Context()
	store, err := openStore(configFromContext(ctx))
	if err != nil {
		return err
	}

	if err := store.Update(func(s *session.Store) error {
		return s.Dismiss(riskID, params.reason, params.snooze)
	}); err != nil {
		return fmt.Errorf("dismissing risk: %w", err)
	}

	if params.snooze > 0 {
		cmd.Printf("Risk %s snoozed for %s\n", riskID, params.snooze)
	} else {
		cmd.Printf("Risk %s dismissed\n", riskID)
	}

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("operation", "dismiss").
		Str("risk_id", riskID).
		Dur("snooze", params.snooze).
		Msg("risk dismissed")
	return nil
}

func newRisksUndismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "undismiss <risk-id>",
		Short:   "Show a dismissed risk again",
		Example: `  brewplan risks undismiss no_hydrometer`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(configFromContext(ctx))
			if err != nil {
				return err
			}

			var restored bool
			if err := store.Update(func(s *session.Store) error {
				var uerr error
				restored, uerr = s.Undismiss(args[0])
				return uerr
			}); err != nil {
				return fmt.Errorf("undismissing risk: %w", err)
			}

			if !restored {
				cmd.Printf("Risk %s was not dismissed\n", args[0])
				return nil
			}
			cmd.Printf("Risk %s restored\n", args[0])
			logging.FromContext(ctx).Info().Ctx(ctx).
				Str("operation", "undismiss").
				Str("risk_id", args[0]).
				Msg("risk restored")
			return nil
		},
	}
}

func newRisksListDismissedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-dismissed",
		Short: "List dismissed and snoozed risks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if err := store.Load(); err != nil {
				return fmt.Errorf("loading assistant state: %w", err)
			}

			now := time.Now()
			entries := []*session.Dismissal{}
			for _, d := range store.Dismissals() {
				if d.Hidden(now) {
					entries = append(entries, d)
				}
			}

			return writeReport(cmd.OutOrStdout(), format, entries, entries, func() string {
				return renderDismissed(entries)
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func renderDismissed(entries []*session.Dismissal) string {
	if len(entries) == 0 {
		return "No dismissed risks\n"
	}
	var b strings.Builder
	for _, e := range entries {
		line := fmt.Sprintf("%-24s %-9s %s", e.RiskID, e.Status, e.DismissedAt.Local().Format(time.DateTime))
		if e.ExpiresAt != nil {
			line += "  until " + e.ExpiresAt.Local().Format(time.DateTime)
		}
		if e.Reason != "" {
			line += "  " + e.Reason
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func newRisksResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget every dismissal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				res := Confirm(cmd.ErrOrStderr(), cmd.InOrStdin(), "Restore every dismissed risk?")
				if !res.Accepted {
					cmd.PrintErrln("Reset cancelled.")
					return nil
				}
			}

			ctx := cmd.Context()
			store, err := openStore(configFromContext(ctx))
			if err != nil {
				return err
			}
			var n int
			if err := store.Update(func(s *session.Store) error {
				n = s.ResetDismissals()
				return nil
			}); err != nil {
				return fmt.Errorf("resetting dismissals: %w", err)
			}
			cmd.Printf("Removed %d dismissal(s)\n", n)
			logging.FromContext(ctx).Info().Ctx(ctx).Int("count", n).Msg("dismissals reset")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
