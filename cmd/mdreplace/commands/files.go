package commands

import (
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// DefaultPatterns are used when apply is given no globs
var DefaultPatterns = []string{"**/*.md"}

// ExpandGlobs returns the sorted, de-duplicated files matching patterns that
// match none of excludes. Paths in skip are dropped as well.
func ExpandGlobs(patterns, excludes []string, skip ...string) ([]string, error) {
	for _, ex := range excludes {
		if !doublestar.ValidatePattern(ex) {
			return nil, errors.Errorf("invalid exclude glob %q", ex)
		}
	}

	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[filepath.Clean(s)] = true
	}

	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}

		for _, m := range matches {
			m = filepath.Clean(m)
			if seen[m] || skipped[m] || excluded(m, excludes) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	slices.Sort(files)
	return files, nil
}

func excluded(path string, excludes []string) bool {
	slashed := filepath.ToSlash(path)
	for _, ex := range excludes {
		if ok, _ := doublestar.Match(ex, slashed); ok {
			return true
		}
	}
	return false
}
