package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/scout/internal/analyzer"
	"github.com/mvp-joe/scout/internal/config"
	"github.com/mvp-joe/scout/internal/git"
)

// newTestAnalyzer builds an analyzer on mock git operations. The default mock
// reports a clean tracked file; tests stage diffs on the returned mock.
func newTestAnalyzer(t *testing.T) (*analyzer.Analyzer, *git.MockGitOps) {
	t.Helper()

	ops := git.NewMockGitOps()
	a, err := analyzer.NewWithGit(config.Default(), ops)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, ops
}

// writeSource writes a source file into a fresh temp dir and returns its path.
func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
