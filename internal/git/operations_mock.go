package git

import (
	"context"
	"fmt"
	"sync"
)

// MockGitOps is a mock implementation of Operations for testing. It is safe
// for concurrent use; the scanner analyzes files in parallel.
type MockGitOps struct {
	Root        string
	RootErr     error
	Tracked     bool
	Worktree    string
	WorktreeErr error
	NoIndex     string
	NoIndexErr  error
	Head        string
	HeadErr     error
	Porcelain   string
	StatusErr   error

	mu    sync.Mutex
	calls []string
}

// NewMockGitOps creates a mock representing a clean tracked file.
func NewMockGitOps() *MockGitOps {
	return &MockGitOps{
		Root:    "/tmp/test-repo",
		Tracked: true,
	}
}

// Calls returns the method names invoked so far, in order.
func (m *MockGitOps) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockGitOps) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
}

func (m *MockGitOps) RepoRoot(ctx context.Context, dir string) (string, error) {
	m.record("RepoRoot")
	if m.RootErr != nil {
		return "", m.RootErr
	}
	return m.Root, nil
}

func (m *MockGitOps) IsTracked(ctx context.Context, file string) bool {
	m.record("IsTracked")
	return m.Tracked
}

func (m *MockGitOps) DiffWorktree(ctx context.Context, file string) (string, error) {
	m.record("DiffWorktree")
	if m.WorktreeErr != nil {
		return m.Worktree, m.WorktreeErr
	}
	return m.Worktree, nil
}

func (m *MockGitOps) DiffNoIndex(ctx context.Context, file string) (string, error) {
	m.record("DiffNoIndex")
	if m.NoIndexErr != nil {
		return m.NoIndex, m.NoIndexErr
	}
	return m.NoIndex, nil
}

func (m *MockGitOps) DiffHead(ctx context.Context, file string) (string, error) {
	m.record("DiffHead")
	if m.HeadErr != nil {
		return "", m.HeadErr
	}
	return m.Head, nil
}

func (m *MockGitOps) Status(ctx context.Context, file string) (string, error) {
	m.record("Status")
	if m.StatusErr != nil {
		return "", m.StatusErr
	}
	return m.Porcelain, nil
}

// String returns a human-readable representation of the mock state.
func (m *MockGitOps) String() string {
	return fmt.Sprintf("MockGitOps{root=%s, tracked=%v, calls=%v}", m.Root, m.Tracked, m.Calls())
}
