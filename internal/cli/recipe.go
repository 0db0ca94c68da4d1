package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

func newRecipeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "recipe", Short: "Recipe file commands"}
	cmd.AddCommand(newRecipeNewCmd(), newRecipeNormalizeCmd())
	return cmd
}

// recipeParams holds the export flags shared by the recipe subcommands.
type recipeParams struct {
	out    string
	format string
}

func (p recipeParams) resolveFormat(fallback brew.Format) (brew.Format, error) {
	if p.format != "" {
		return brew.ParseFormat(p.format)
	}
	if p.out != "" {
		return brew.FormatFromPath(p.out), nil
	}
	return fallback, nil
}

func addRecipeFlags(cmd *cobra.Command, p *recipeParams) {
	cmd.Flags().StringVarP(&p.out, "out", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&p.format, "format", "", "document format: json or yaml (default from the file extension)")
}

func newRecipeNewCmd() *cobra.Command {
	var params recipeParams

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write the default starter recipe",
		Example: `  brewplan recipe new --out blonde.json
  brewplan recipe new --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := params.resolveFormat(brew.FormatJSON)
			if err != nil {
				return err
			}
			return writeRecipe(cmd, brew.Default(), format, params.out)
		},
	}
	addRecipeFlags(cmd, &params)
	return cmd
}

func newRecipeNormalizeCmd() *cobra.Command {
	var params recipeParams

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Fill defaults and rewrite a recipe in the current schema",
		Long: `Reads a recipe, fills every missing field with its default, upgrades older
documents to the current schema version and writes the result. Legacy French
enum values such as "tout_grain" and "robinet" are accepted on input.`,
		Example: `  brewplan recipe normalize old.json --out blonde.json
  brewplan recipe normalize blonde.json --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readRecipe(cmd, args[0])
			if err != nil {
				return err
			}
			fallback := brew.FormatFromPath(args[0])
			if args[0] == stdinPath {
				fallback = brew.FormatJSON
			}
			format, err := params.resolveFormat(fallback)
			if err != nil {
				return err
			}
			return writeRecipe(cmd, *r, format, params.out)
		},
	}
	addRecipeFlags(cmd, &params)
	return cmd
}

func writeRecipe(cmd *cobra.Command, r brew.Recipe, format brew.Format, path string) error {
	if path == "" {
		return brew.Encode(cmd.OutOrStdout(), r, format)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating recipe file: %w", err)
	}
	if err := brew.Encode(f, r, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing recipe file: %w", err)
	}
	cmd.PrintErrf("Recipe written to %s\n", path)
	return nil
}

