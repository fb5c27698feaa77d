package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "users.http"), "GET /users\n")
	writeFile(t, filepath.Join(root, "api", "orders.rest"), "GET /orders\n")
	writeFile(t, filepath.Join(root, "api", "v2", "items.http"), "GET /items\n")
	writeFile(t, filepath.Join(root, "README.md"), "# readme\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.http"), 0o755))

	files, err := Find(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "api", "orders.rest"),
		filepath.Join(root, "api", "v2", "items.http"),
		filepath.Join(root, "users.http"),
	}, files)

	// Overlapping patterns do not produce duplicates.
	files, err = Find(root, []string{"**/*.http", "api/**/*.http"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "api", "v2", "items.http"),
		filepath.Join(root, "users.http"),
	}, files)
}

func TestFind_RootWithGlobSyntax(t *testing.T) {
	root := filepath.Join(t.TempDir(), "api[v1]")
	writeFile(t, filepath.Join(root, "a.http"), "GET /a\n")
	writeFile(t, filepath.Join(root, "nested", "b.rest"), "GET /b\n")

	files, err := Find(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.http"),
		filepath.Join(root, "nested", "b.rest"),
	}, files)
}

func TestFind_NoMatches(t *testing.T) {
	files, err := Find(t.TempDir(), []string{"*.http"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFind_BadPattern(t *testing.T) {
	_, err := Find(t.TempDir(), []string{"[.http"})
	assert.ErrorIs(t, err, doublestar.ErrBadPattern)
}

type definerFunc func(ctx context.Context, doc *document.Document) (variables.Index, error)

func (f definerFunc) Definitions(ctx context.Context, doc *document.Document) (variables.Index, error) {
	return f(ctx, doc)
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.http")
	b := filepath.Join(root, "b.http")
	writeFile(t, a, "@host = a\nGET {{host}}\n")
	writeFile(t, b, "@port = 1\n@port = 2\nGET /\n")

	d := definerFunc(func(_ context.Context, doc *document.Document) (variables.Index, error) {
		ix := variables.Index{}
		for _, fv := range doc.FileVariables {
			ix[fv.Name] = append(ix[fv.Name], variables.KindFile)
		}
		return ix, nil
	})

	results, err := Collect(context.Background(), d, []string{a, b})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, variables.Index{"host": {variables.KindFile}}, results[0].Index)
	assert.Equal(t, variables.Index{"port": {variables.KindFile, variables.KindFile}}, results[1].Index)
}

func TestCollect_Errors(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.http")
	writeFile(t, a, "GET /\n")

	ok := definerFunc(func(context.Context, *document.Document) (variables.Index, error) { return variables.Index{}, nil })
	_, err := Collect(context.Background(), ok, []string{a, filepath.Join(root, "missing.http")})
	assert.Error(t, err)

	boom := errors.New("boom")
	failing := definerFunc(func(context.Context, *document.Document) (variables.Index, error) { return nil, boom })
	_, err = Collect(context.Background(), failing, []string{a})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Collect(ctx, ok, []string{a})
	assert.ErrorIs(t, err, context.Canceled)
}
