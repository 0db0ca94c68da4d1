package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/config"
	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
)

// addOutputFlag registers --output on a report command.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output format: table, json or ndjson (default from config)")
}

// outputFormat resolves --output, falling back to output.default_format.
func outputFormat(cmd *cobra.Command, cfg *config.Config) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: got %q", config.ErrInvalidOutputFormat, format)
	}
}

// renderOptions styles table output only when stdout is a terminal.
func renderOptions(cmd *cobra.Command, cfg *config.Config) tui.Options {
	styled := false
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		styled = isTerminal(f)
	}
	return tui.Options{Styled: styled, Expert: cfg.IsExpert()}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// writeReport renders a report in the requested format. table is called for
// table output; items are the ndjson records.
func writeReport[T any](w io.Writer, format string, whole any, items []T, table func() string) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, whole)
	case config.FormatNDJSON:
		return writeNDJSON(w, items)
	default:
		_, err := io.WriteString(w, table())
		return err
	}
}
