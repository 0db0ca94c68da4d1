package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
	"github.com/guerrinflorian/ConcepteurBiere/internal/config"
	"github.com/guerrinflorian/ConcepteurBiere/internal/logging"
	"github.com/guerrinflorian/ConcepteurBiere/internal/refdata"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

// stdinPath reads the recipe from standard input.
const stdinPath = "-"

// recipeInput is everything a report command needs.
type recipeInput struct {
	cfg    *config.Config
	recipe *brew.Recipe
	tables *brew.Tables
	water  water.Params
	format string
}

// readRecipe decodes the recipe at path. Standard input is read as JSON when
// it starts with '{' and as YAML otherwise.
func readRecipe(cmd *cobra.Command, path string) (*brew.Recipe, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading recipe from stdin: %w", err)
		}
		format := brew.FormatYAML
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			format = brew.FormatJSON
		}
		r, err := brew.DecodeBytes(data, format)
		if err != nil {
			return nil, fmt.Errorf("reading recipe from stdin: %w", err)
		}
		return &r, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recipe: %w", err)
	}
	defer f.Close()

	r, err := brew.Decode(f, brew.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &r, nil
}

// loadTables reads the reference tables from data.dir, or the embedded ones.
func loadTables(ctx context.Context, cfg *config.Config) (*brew.Tables, error) {
	log := logging.FromContext(ctx)
	res, err := refdata.Load(ctx, cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	ev := log.Debug().Ctx(ctx)
	for name, src := range res.Source {
		ev = ev.Str(name, src)
	}
	ev.Msg("reference data loaded")
	return res.Tables, nil
}

// waterParams applies the configured water overrides in expert mode only.
func waterParams(ctx context.Context, cfg *config.Config) water.Params {
	if cfg.IsExpert() {
		return cfg.WaterParams()
	}
	if cfg.WaterParams() != water.DefaultParams() {
		logging.FromContext(ctx).Debug().Ctx(ctx).Msg("water overrides ignored in beginner mode")
	}
	return water.DefaultParams()
}

// loadInput resolves configuration, output format, recipe and tables.
func loadInput(cmd *cobra.Command, path string) (*recipeInput, error) {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := outputFormat(cmd, cfg)
	if err != nil {
		return nil, err
	}
	recipe, err := readRecipe(cmd, path)
	if err != nil {
		return nil, err
	}
	tables, err := loadTables(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("recipe", recipe.Params.RecipeName).
		Str("method", string(recipe.Params.Method)).
		Float64("volume_l", recipe.Params.Volume).
		Msg("recipe loaded")

	return &recipeInput{
		cfg:    cfg,
		recipe: recipe,
		tables: tables,
		water:  waterParams(ctx, cfg),
		format: format,
	}, nil
}
