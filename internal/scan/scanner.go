// Package scan runs whole-directory analysis: discover source files with
// glob patterns, analyze them across a bounded worker pool, and aggregate a
// per-run report. Files are independent; one file's failure never aborts the
// scan.
package scan

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/config"
)

// Report is the outcome of one scan run.
type Report struct {
	RunID      string       `json:"run_id"`
	Root       string       `json:"root"`
	DurationMS int64        `json:"duration_ms"`
	Scanned    int          `json:"scanned"`
	Failed     int          `json:"failed"`
	Files      []FileReport `json:"files"`
}

// FileReport is the per-file entry of a scan report. Error is set when the
// file could not be analyzed; the counters are zero in that case.
type FileReport struct {
	Path        string        `json:"path"`
	Language    string        `json:"language,omitempty"`
	Elements    int           `json:"elements"`
	Classes     int           `json:"classes"`
	Duplicates  int           `json:"duplicates"`
	ChangeState changes.State `json:"change_state,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Scanner fans whole-file analyses out across a worker pool.
type Scanner struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
}

// New creates a Scanner using cfg's path patterns and worker count.
func New(cfg *config.Config, a *analyzer.Analyzer) *Scanner {
	return &Scanner{cfg: cfg, analyzer: a}
}

// Scan discovers and analyzes every matching file under root. Per-file
// analysis failures land in the report; only discovery errors and context
// cancellation abort the scan.
func (s *Scanner) Scan(ctx context.Context, root string, reporter ProgressReporter) (*Report, error) {
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}
	start := time.Now()

	discovery, err := NewDiscovery(root, s.cfg.Paths.Include, s.cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}
	files, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files under %s: %w", root, err)
	}
	reporter.OnDiscoveryComplete(len(files))

	report := &Report{
		RunID: uuid.NewString(),
		Root:  root,
		Files: make([]FileReport, len(files)),
	}

	workers := s.cfg.Scan.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry := s.scanFile(gctx, path)

			mu.Lock()
			report.Files[i] = entry
			done++
			reporter.OnFileScanned(done, len(files), path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, entry := range report.Files {
		if entry.Error != "" {
			report.Failed++
		} else {
			report.Scanned++
		}
	}
	report.DurationMS = time.Since(start).Milliseconds()
	reporter.OnComplete(report)

	return report, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string) FileReport {
	entry := FileReport{Path: path}

	res, err := s.analyzer.Analyze(ctx, path)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Language = res.Language
	entry.Elements = len(res.Inventory.Elements)
	entry.Classes = len(res.Inventory.Classes)
	entry.Duplicates = len(res.Duplicates())
	entry.ChangeState = res.State
	return entry
}
