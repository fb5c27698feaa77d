// Package workspace finds request files under a directory and collects their
// variable definitions.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/variables"
)

// DefaultPatterns match request files at any depth.
var DefaultPatterns = []string{"**/*.http", "**/*.rest"}

// Find returns the files under root matching any of patterns, sorted and
// without duplicates. Patterns are relative to root and support **. When
// patterns is empty, DefaultPatterns is used. Glob syntax in root itself is
// taken literally.
func Find(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	fsys := os.DirFS(root)
	var files []string
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			files = append(files, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Definer lists the variables defined for a document. *engine.Engine
// satisfies it.
type Definer interface {
	Definitions(ctx context.Context, doc *document.Document) (variables.Index, error)
}

// FileDefinitions is the definition index of one request file.
type FileDefinitions struct {
	Path  string          `json:"path"`
	Index variables.Index `json:"variables"`
}

// Collect loads each file and lists its definitions. The first failure
// aborts the walk.
func Collect(ctx context.Context, d Definer, paths []string) ([]FileDefinitions, error) {
	results := make([]FileDefinitions, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		index, err := d.Definitions(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, FileDefinitions{Path: path, Index: index})
	}
	return results, nil
}
