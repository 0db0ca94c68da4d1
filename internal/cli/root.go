// Package cli implements the brewplan command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/guerrinflorian/ConcepteurBiere/internal/config"
	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type configKey struct{}

func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration loaded by the root command, or
// the defaults when the command runs without it.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the brewplan CLI.
// It loads the configuration, wires up logging and tracing, and registers
// every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "brewplan",
		Short:         "Home-brewing recipe planner",
		Long:          "brewplan derives metrics, water volumes, checks, risks and a brew-day procedure from a beer recipe.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(contextWithConfig(ctx, cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default $BREWPLAN_HOME/config.yaml)")

	cmd.AddCommand(
		newCalcCmd(), newWaterCmd(), newCheckCmd(), newRisksCmd(),
		newProcedureCmd(), newValidateCmd(), newHygieneCmd(),
		newRecipeCmd(), newConfigCmd(),
	)
	closeLogOnReturn(cmd, func() error { return logResult.Close() })

	return cmd
}

// closeLogOnReturn wraps the RunE of every command in the tree so the log
// file is closed when the command returns, including on error. Cobra skips
// PersistentPostRunE for failing commands.
func closeLogOnReturn(cmd *cobra.Command, closeLog func() error) {
	for _, sub := range cmd.Commands() {
		closeLogOnReturn(sub, closeLog)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := run(c, args)
		if closeErr := closeLog(); err == nil {
			err = closeErr
		}
		return err
	}
}

const rootCmdExample = `  # Create a starter recipe
  brewplan recipe new --out blonde.json

  # Show metrics and the style comparison
  brewplan calc blonde.json

  # Plan the water volumes
  brewplan water blonde.json

  # List brewing risks and fail a CI job on danger
  brewplan risks blonde.json --exit-on danger --exit-code 3

  # Walk through the brew day interactively
  brewplan procedure blonde.json --interactive

  # Switch to expert mode
  brewplan config set ui.mode expert`
