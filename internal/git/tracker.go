package git

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/mvp-joe/scout/internal/changes"
)

// Timeouts bounds each tracker stage. Expiry counts as a stage failure and
// is never retried.
type Timeouts struct {
	Detect time.Duration
	Diff   time.Duration
	Status time.Duration
}

// DefaultTimeouts returns the standard stage bounds.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Detect: 5 * time.Second,
		Diff:   10 * time.Second,
		Status: 5 * time.Second,
	}
}

// Tracker classifies the lines of a file against the repository's recorded
// state. Tracking is best-effort: subprocess failures downgrade the result
// instead of propagating, so it can never block structure analysis.
type Tracker struct {
	ops      Operations
	timeouts Timeouts
}

// NewTracker returns a tracker using the given git operations.
func NewTracker(ops Operations, timeouts Timeouts) *Tracker {
	return &Tracker{ops: ops, timeouts: timeouts}
}

// Track runs the per-file state machine: detect the repository, request a
// fine-grained diff (two strategies), parse it, or fall back to a coarse
// status signal. lineCount is the current length of the file, used when only
// the coarse signal is available. The returned state records how much
// information was obtained.
func (t *Tracker) Track(ctx context.Context, file string, lineCount int) (changes.Map, changes.State) {
	if !t.detect(ctx, file) {
		return changes.Map{}, changes.Untracked
	}

	out, err := t.diff(ctx, file)
	if err != nil {
		return t.fallback(ctx, file, lineCount)
	}
	return parseDiff(out), changes.Tracked
}

// detect reports whether the file lives inside a git work tree.
func (t *Tracker) detect(ctx context.Context, file string) bool {
	detectCtx, cancel := context.WithTimeout(ctx, t.timeouts.Detect)
	defer cancel()

	_, err := t.ops.RepoRoot(detectCtx, filepath.Dir(file))
	return err == nil
}

// diff runs the two-strategy ladder: the worktree diff for tracked files or
// the null-file diff for untracked ones, then a HEAD-relative diff when the
// first exits with an unexpected status code. A tool error or timeout on
// either strategy surfaces as an error so the caller can fall back.
func (t *Tracker) diff(ctx context.Context, file string) (string, error) {
	diffCtx, cancel := context.WithTimeout(ctx, t.timeouts.Diff)
	defer cancel()

	var out string
	var err error
	if t.isTracked(ctx, file) {
		out, err = t.ops.DiffWorktree(diffCtx, file)
	} else {
		out, err = t.ops.DiffNoIndex(diffCtx, file)
	}
	if err == nil {
		return out, nil
	}

	var ee *ExitError
	if !errors.As(err, &ee) {
		return "", err
	}

	headCtx, cancel := context.WithTimeout(ctx, t.timeouts.Diff)
	defer cancel()
	return t.ops.DiffHead(headCtx, file)
}

// isTracked gates the diff strategy. The query is as cheap as detection, so
// it shares the detect bound.
func (t *Tracker) isTracked(ctx context.Context, file string) bool {
	gateCtx, cancel := context.WithTimeout(ctx, t.timeouts.Detect)
	defer cancel()

	return t.ops.IsTracked(gateCtx, file)
}

// fallback downgrades to a status query when no diff could be produced.
// Non-empty status output means the file has some uncommitted change, so
// every line is conservatively marked modified rather than hiding known
// changes.
func (t *Tracker) fallback(ctx context.Context, file string, lineCount int) (changes.Map, changes.State) {
	statusCtx, cancel := context.WithTimeout(ctx, t.timeouts.Status)
	defer cancel()

	out, err := t.ops.Status(statusCtx, file)
	if err != nil {
		return changes.Map{}, changes.Untracked
	}
	if strings.TrimSpace(out) == "" {
		return changes.Map{}, changes.Tracked
	}
	return changes.NewCoarse(lineCount), changes.TrackedCoarse
}
