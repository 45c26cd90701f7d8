package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func relPaths(files []ScannedFile) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestScanMatchAll(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a/b.js":     "b",
		"c.css":      "cc",
		"a/d/e.json": "{}",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{MatchAll}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/b.js", "a/d/e.json", "c.css"}, relPaths(files))
	assert.Equal(t, int64(2), files[2].Size)
	root, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "c.css"), files[2].Path)
}

func TestScanExclude(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.js":         "x",
		"my-widget.jar":    "old archive",
		"nested/other.jar": "kept",
	})

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{MatchAll}, []string{"my-widget.jar"})
	require.NoError(t, err)

	assert.Equal(t, []string{"index.js", "nested/other.jar"}, relPaths(files))
}

func TestScanSingleStarStaysInSegment(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"top.js":        "",
		"lib/nested.js": "",
	})

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{"*.js"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"top.js"}, relPaths(files))
}

func TestScanInvalidPattern(t *testing.T) {
	_, err := NewFileSystemScanner().Scan(context.Background(), t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := NewFileSystemScanner().Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), []string{MatchAll}, nil)
	assert.Error(t, err)
}

func TestScanCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSystemScanner().Scan(ctx, dir, []string{MatchAll}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFollowsDirectoryLinks(t *testing.T) {
	dir := t.TempDir()
	vendor := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.js": "x"})
	writeFiles(t, vendor, map[string]string{"lib.js": "lib", "sub/util.js": "util"})
	require.NoError(t, os.Symlink(vendor, filepath.Join(dir, "vendor")))
	require.NoError(t, os.Symlink(filepath.Join(vendor, "lib.js"), filepath.Join(dir, "lib-link.js")))

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{MatchAll}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"index.js", "lib-link.js", "vendor/lib.js", "vendor/sub/util.js"}, relPaths(files))
	for _, f := range files {
		info, err := os.Stat(f.Path)
		require.NoError(t, err)
		assert.False(t, info.IsDir(), f.RelPath)
		assert.Equal(t, info.Size(), f.Size, f.RelPath)
	}
}

func TestScanLinkLoops(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a/b.js": "b"})
	require.NoError(t, os.Symlink(filepath.Join(dir, "a"), filepath.Join(dir, "a", "self")))
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "root")))

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{MatchAll}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/b.js"}, relPaths(files))
}

func TestScanBrokenLink(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": ""})
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{MatchAll}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js"}, relPaths(files))
}

func TestScanHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.js":      "x",
		".cache/x":      "cached",
		"a/.eslintrc":   "{}",
		"a/visible.css": "",
	})

	files, err := NewFileSystemScanner().Scan(context.Background(), dir, []string{MatchAll}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/visible.css", "index.js"}, relPaths(files))

	s := &FileSystemScanner{IncludeHidden: true}
	files, err = s.Scan(context.Background(), dir, []string{MatchAll}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".cache/x", "a/.eslintrc", "a/visible.css", "index.js"}, relPaths(files))
}
