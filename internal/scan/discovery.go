package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/scout/internal/source"
)

// compiledPattern holds the pattern string and its compiled globs.
type compiledPattern struct {
	pattern    string
	glob       glob.Glob
	simplified glob.Glob // pattern with a leading **/ stripped; nil otherwise
}

// Discovery selects the source files to scan under a root directory using
// include and ignore glob patterns.
type Discovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewDiscovery compiles the include and ignore patterns for rootDir.
func NewDiscovery(rootDir string, include, ignore []string) (*Discovery, error) {
	includePatterns, err := compilePatterns(include)
	if err != nil {
		return nil, err
	}
	ignorePatterns, err := compilePatterns(ignore)
	if err != nil {
		return nil, err
	}

	return &Discovery{
		rootDir:         rootDir,
		includePatterns: includePatterns,
		ignorePatterns:  ignorePatterns,
	}, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			sg, err := glob.Compile(simplified, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}
			cp.simplified = sg
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// Discover walks the tree and returns the matching supported source files
// in walk order.
func (d *Discovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			// Don't descend into ignored directories.
			if path != d.rootDir && d.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.shouldIgnore(relPath) {
			return nil
		}
		if !d.matchesAnyPattern(relPath, d.includePatterns) {
			return nil
		}
		// Only languages with a registered grammar are scannable.
		if !source.Supported(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	// Always ignore the .scout directory
	if relPath == ".scout" || strings.HasPrefix(relPath, ".scout/") {
		return true
	}

	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// A directory named "node_modules" should match the pattern
	// "node_modules/**" too.
	return d.matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// glob's ** requires at least one separator, so "**/*.py" alone would
	// not match a root-level "main.py". Retry root-level paths against the
	// pattern with the **/ prefix stripped.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if cp.simplified != nil && cp.simplified.Match(path) {
				return true
			}
		}
	}

	return false
}
