package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/tui"
	"github.com/guerrinflorian/ConcepteurBiere/internal/validate"
)

// stepStatus is one wizard step with its accessibility.
type stepStatus struct {
	validate.Result
	Accessible bool `json:"accessible"`
}

// validationReport is the structured output of the validate command.
type validationReport struct {
	Valid        bool         `json:"valid"`
	FirstInvalid string       `json:"firstInvalid,omitempty"`
	Steps        []stepStatus `json:"steps"`
}

func newValidateCmd() *cobra.Command {
	var (
		strict bool
		step   string
	)

	cmd := &cobra.Command{
		Use:   "validate <recipe>",
		Short: "Check a recipe step by step",
		Long: `Validates the recipe the way the recipe wizard does: each of the ten steps
(profile, params, malts, hops, yeast, water, mash, fermentation, conditioning,
summary) is checked in order, and a step is accessible only when every step
before it is valid.`,
		Example: `  brewplan validate blonde.json
  brewplan validate blonde.json --step mash
  brewplan validate blonde.json --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only *validate.Step
			if step != "" {
				s, err := validate.ParseStep(step)
				if err != nil {
					return err
				}
				only = &s
			}

			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}

			results := validate.All(in.recipe, in.tables)
			report := validationReport{Valid: true}
			if s, ok := validate.FirstInvalid(results); ok {
				report.Valid = false
				report.FirstInvalid = s.String()
			}
			for _, r := range results {
				if only != nil && r.Step != *only {
					continue
				}
				report.Steps = append(report.Steps, stepStatus{Result: r, Accessible: validate.Accessible(r.Step, results)})
			}

			err = writeReport(cmd.OutOrStdout(), in.format, report, report.Steps, func() string {
				shown := make([]validate.Result, 0, len(report.Steps))
				for _, s := range report.Steps {
					shown = append(shown, s.Result)
				}
				return renderValidationSummary(tui.RenderValidation(shown, renderOptions(cmd, in.cfg)), report)
			})
			if err != nil {
				return err
			}

			if strict && !report.Valid {
				return &ExitError{Code: 1, Reason: "recipe is invalid at step " + report.FirstInvalid}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with code 1 when any step is invalid")
	cmd.Flags().StringVar(&step, "step", "", "only show one step")
	addOutputFlag(cmd)
	return cmd
}

func renderValidationSummary(body string, report validationReport) string {
	var b strings.Builder
	b.WriteString(body)
	if report.Valid {
		b.WriteString("\nAll steps are valid\n")
		return b.String()
	}
	var locked []string
	for _, s := range report.Steps {
		if !s.Accessible {
			locked = append(locked, s.Name)
		}
	}
	fmt.Fprintf(&b, "\nFirst invalid step: %s\n", report.FirstInvalid)
	if len(locked) > 0 {
		fmt.Fprintf(&b, "Locked steps: %s\n", strings.Join(locked, ", "))
	}
	return b.String()
}
