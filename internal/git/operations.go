package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Operations defines the interface for git subprocess calls.
// This allows mocking git commands in tests.
type Operations interface {
	// RepoRoot returns the repository root containing dir.
	// Returns an error when dir is not inside a git work tree.
	RepoRoot(ctx context.Context, dir string) (string, error)

	// IsTracked reports whether the file is known to the index.
	IsTracked(ctx context.Context, file string) bool

	// DiffWorktree returns a zero-context, no-prefix unified diff of the
	// working tree against the index for one file. Exit codes 0 and 1 both
	// count as success (1 means differences were found); any other exit
	// code is reported as *ExitError alongside the output.
	DiffWorktree(ctx context.Context, file string) (string, error)

	// DiffNoIndex diffs the file against the null file, producing an
	// all-added diff for files outside the index. Same exit code contract
	// as DiffWorktree.
	DiffNoIndex(ctx context.Context, file string) (string, error)

	// DiffHead diffs the working tree against HEAD for one file. The
	// output is returned whatever the exit status; the error is non-nil
	// only when the command could not run.
	DiffHead(ctx context.Context, file string) (string, error)

	// Status returns porcelain status output for one file. Non-empty
	// output means the file has uncommitted changes.
	Status(ctx context.Context, file string) (string, error)
}

// ExitError reports a git command that ran but exited with an unexpected
// status code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("git exited with status %d", e.Code)
}

// gitOps is the real implementation using exec.CommandContext.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

// run executes git in dir. The exit code is returned for commands that ran
// to completion; the error is reserved for commands that could not run
// (missing binary, expired context, killed process).
func (g *gitOps) run(ctx context.Context, dir string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", 0, ctxErr
	}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return string(output), ee.ExitCode(), nil
		}
		return "", 0, err
	}
	return string(output), 0, nil
}

func (g *gitOps) RepoRoot(ctx context.Context, dir string) (string, error) {
	out, code, err := g.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("not a git repository: %s", dir)
	}
	return strings.TrimSpace(out), nil
}

func (g *gitOps) IsTracked(ctx context.Context, file string) bool {
	_, code, err := g.run(ctx, filepath.Dir(file), "ls-files", "--error-unmatch", "--", filepath.Base(file))
	return err == nil && code == 0
}

func (g *gitOps) DiffWorktree(ctx context.Context, file string) (string, error) {
	out, code, err := g.run(ctx, filepath.Dir(file), "diff", "--no-prefix", "-U0", "--", filepath.Base(file))
	if err != nil {
		return "", err
	}
	if code != 0 && code != 1 {
		return out, &ExitError{Code: code}
	}
	return out, nil
}

func (g *gitOps) DiffNoIndex(ctx context.Context, file string) (string, error) {
	out, code, err := g.run(ctx, filepath.Dir(file), "diff", "--no-index", "--no-prefix", "-U0", os.DevNull, filepath.Base(file))
	if err != nil {
		return "", err
	}
	if code != 0 && code != 1 {
		return out, &ExitError{Code: code}
	}
	return out, nil
}

func (g *gitOps) DiffHead(ctx context.Context, file string) (string, error) {
	out, _, err := g.run(ctx, filepath.Dir(file), "diff", "HEAD", "--no-prefix", "-U0", "--", filepath.Base(file))
	if err != nil {
		return "", err
	}
	return out, nil
}

func (g *gitOps) Status(ctx context.Context, file string) (string, error) {
	out, code, err := g.run(ctx, filepath.Dir(file), "status", "--porcelain", "--", filepath.Base(file))
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", &ExitError{Code: code}
	}
	return out, nil
}
