// Package refdata loads the reference tables (malts, hops, yeasts, equipment,
// styles, adjuncts) the derivation engine reads. Tables ship embedded in the
// binary and can be overridden file by file from a data directory.
package refdata

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/guerrinflorian/ConcepteurBiere/internal/brew"
)

//go:embed data/*.yaml
var embedded embed.FS

// SupportedSchema is the schema_version constraint every table must satisfy.
const SupportedSchema = "^1.0.0"

// Table file names.
const (
	MaltsFile     = "malts.yaml"
	HopsFile      = "hops.yaml"
	YeastsFile    = "yeasts.yaml"
	EquipmentFile = "equipment.yaml"
	StylesFile    = "styles.yaml"
	AdjunctsFile  = "adjuncts.yaml"
)

var (
	// ErrUnsupportedSchema is returned when a table's schema_version does
	// not satisfy SupportedSchema.
	ErrUnsupportedSchema = errors.New("unsupported reference table schema")
	// ErrDuplicateID is returned when two records of one table share an id.
	ErrDuplicateID = errors.New("duplicate reference id")
	// ErrMissingID is returned for a record without an id.
	ErrMissingID = errors.New("reference record without id")
)

type document[T any] struct {
	SchemaVersion string `yaml:"schema_version"`
	Records       []T    `yaml:"records"`
}

// Source tells where each table came from.
type Source map[string]string

// Result is the outcome of a load.
type Result struct {
	Tables *brew.Tables
	Source Source
}

// Embedded returns the built-in tables.
func Embedded(ctx context.Context) (*brew.Tables, error) {
	res, err := Load(ctx, "")
	if err != nil {
		return nil, err
	}
	return res.Tables, nil
}

// Load reads the six tables concurrently. With an empty dir every table comes
// from the embedded defaults; otherwise each file present in dir replaces
// its embedded counterpart.
func Load(ctx context.Context, dir string) (*Result, error) {
	var override fs.FS
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("reference data directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("reference data directory %s: not a directory", dir)
		}
		override = os.DirFS(dir)
	}
	return LoadFS(ctx, override)
}

// LoadFS is Load over an arbitrary file system. A nil override uses the
// embedded tables only.
func LoadFS(ctx context.Context, override fs.FS) (*Result, error) {
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return nil, fmt.Errorf("parsing schema constraint: %w", err)
	}

	l := &loader{override: override, constraint: constraint}
	t := &brew.Tables{}
	sources := make([]string, 6)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t.Malts, sources[0], err = loadTable(gCtx, l, MaltsFile, func(m brew.Malt) string { return m.ID })
		return err
	})
	g.Go(func() error {
		var err error
		t.Hops, sources[1], err = loadTable(gCtx, l, HopsFile, func(h brew.Hop) string { return h.ID })
		return err
	})
	g.Go(func() error {
		var err error
		t.Yeasts, sources[2], err = loadTable(gCtx, l, YeastsFile, func(y brew.Yeast) string { return y.ID })
		return err
	})
	g.Go(func() error {
		var err error
		t.Equipment, sources[3], err = loadTable(gCtx, l, EquipmentFile, func(e brew.Equipment) string { return e.ID })
		return err
	})
	g.Go(func() error {
		var err error
		t.Styles, sources[4], err = loadTable(gCtx, l, StylesFile, func(s brew.BeerStyle) string { return s.ID })
		return err
	})
	g.Go(func() error {
		var err error
		t.Adjuncts, sources[5], err = loadTable(gCtx, l, AdjunctsFile, func(a brew.Adjunct) string { return a.ID })
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := []string{MaltsFile, HopsFile, YeastsFile, EquipmentFile, StylesFile, AdjunctsFile}
	src := make(Source, len(files))
	for i, f := range files {
		src[f] = sources[i]
	}
	return &Result{Tables: t, Source: src}, nil
}

type loader struct {
	override   fs.FS
	constraint *semver.Constraints
}

// Source labels.
const (
	SourceEmbedded  = "embedded"
	SourceDirectory = "directory"
)

func (l *loader) read(name string) ([]byte, string, error) {
	if l.override != nil {
		b, err := fs.ReadFile(l.override, name)
		if err == nil {
			return b, SourceDirectory, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %s: %w", name, err)
		}
	}
	b, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("reading embedded %s: %w", name, err)
	}
	return b, SourceEmbedded, nil
}

func loadTable[T any](ctx context.Context, l *loader, name string, idOf func(T) string) ([]T, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	b, source, err := l.read(name)
	if err != nil {
		return nil, "", err
	}

	var doc document[T]
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, "", fmt.Errorf("decoding %s (%s): %w", name, source, err)
	}

	v, err := semver.NewVersion(doc.SchemaVersion)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s has schema_version %q: %w", ErrUnsupportedSchema, name, doc.SchemaVersion, err)
	}
	if !l.constraint.Check(v) {
		return nil, "", fmt.Errorf("%w: %s has schema_version %s, want %s",
			ErrUnsupportedSchema, name, v, SupportedSchema)
	}

	seen := make(map[string]struct{}, len(doc.Records))
	for i, rec := range doc.Records {
		id := idOf(rec)
		if id == "" {
			return nil, "", fmt.Errorf("%w: %s record %d", ErrMissingID, name, i)
		}
		if _, dup := seen[id]; dup {
			return nil, "", fmt.Errorf("%w: %s in %s", ErrDuplicateID, id, name)
		}
		seen[id] = struct{}{}
	}

	if doc.Records == nil {
		doc.Records = []T{}
	}
	return doc.Records, source, nil
}
