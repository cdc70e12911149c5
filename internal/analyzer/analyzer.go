// Package analyzer orchestrates a single-file analysis pass: load the
// source, extract the element inventory, and track uncommitted changes, then
// join the two into a read-only Result for the presentation layer.
package analyzer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/maypok86/otter"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/config"
	"github.com/mvp-joe/scout/internal/git"
	"github.com/mvp-joe/scout/internal/source"
	"github.com/mvp-joe/scout/internal/structure"
)

// inventoryCacheSize bounds the session inventory cache. Entries are small
// (names and line numbers), so a few thousand files fit comfortably.
const inventoryCacheSize = 4096

// Analyzer runs analysis passes. It caches extracted inventories per
// (path, content hash) for the lifetime of the process, so repeated analyses
// of identical content skip re-parsing. Safe for concurrent use.
type Analyzer struct {
	tracker *git.Tracker
	cache   otter.Cache[string, *structure.Inventory]
}

// New creates an Analyzer wired to subprocess git when change tracking is
// enabled in cfg.
func New(cfg *config.Config) (*Analyzer, error) {
	return NewWithGit(cfg, git.NewOperations())
}

// NewWithGit creates an Analyzer with explicit git operations. Tests inject
// a mock here.
func NewWithGit(cfg *config.Config, ops git.Operations) (*Analyzer, error) {
	cache, err := otter.MustBuilder[string, *structure.Inventory](inventoryCacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory cache: %w", err)
	}

	a := &Analyzer{cache: cache}
	if cfg.Git.Enabled {
		a.tracker = git.NewTracker(ops, git.Timeouts{
			Detect: cfg.Git.DetectTimeout,
			Diff:   cfg.Git.DiffTimeout,
			Status: cfg.Git.StatusTimeout,
		})
	}
	return a, nil
}

// Close releases the inventory cache.
func (a *Analyzer) Close() {
	a.cache.Close()
}

// Analyze loads path and runs a full analysis pass over it. IO and parse
// failures abort the pass; change tracking failures never do.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Result, error) {
	unit, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	defer unit.Close()
	return a.AnalyzeUnit(ctx, unit)
}

// AnalyzeUnit analyzes an already loaded unit. The caller keeps ownership of
// the unit; watch mode reuses one unit across reloads. The returned Result
// does not reference the unit's tree and stays valid after the unit closes.
func (a *Analyzer) AnalyzeUnit(ctx context.Context, unit *source.Unit) (*Result, error) {
	res := &Result{
		Path:     unit.Path,
		Language: unit.Language,
		Lines:    unit.Lines(),
		Changes:  changes.Map{},
		State:    changes.Disabled,
	}

	// Extraction and change tracking read independent inputs, so they run
	// concurrently and join here.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Inventory = a.inventory(unit)
		return nil
	})
	g.Go(func() error {
		if a.tracker != nil {
			res.Changes, res.State = a.tracker.Track(gctx, unit.Path, unit.LineCount())
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

// inventory returns the cached inventory for the unit's exact content,
// extracting on miss.
func (a *Analyzer) inventory(unit *source.Unit) *structure.Inventory {
	key := cacheKey(unit.Path, unit.Src())
	if inv, ok := a.cache.Get(key); ok {
		return inv
	}
	inv := structure.Extract(unit)
	a.cache.Set(key, inv)
	return inv
}

func cacheKey(path string, src []byte) string {
	return path + ":" + strconv.FormatUint(xxhash.Sum64(src), 16)
}
