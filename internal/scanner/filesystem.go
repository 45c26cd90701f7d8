package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// MatchAll is the include pattern selecting every file
const MatchAll = "**"

// FileSystemScanner implements Scanner interface for filesystem scanning.
// Symbolic links are followed; a link to a directory is walked as if the
// directory were in place.
type FileSystemScanner struct {
	// IncludeHidden also selects files and directories whose name starts
	// with a dot
	IncludeHidden bool
}

// NewFileSystemScanner creates a new filesystem scanner skipping hidden files
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan recursively scans a directory for files matching the given patterns.
// Patterns are matched against slash separated relative paths; "*" stays
// within one segment and "**" spans any number of them.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string, include, exclude []string) ([]ScannedFile, error) {
	includes, err := compilePatterns(include)
	if err != nil {
		return nil, err
	}
	excludes, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	w := &walker{
		ctx:           ctx,
		includes:      includes,
		excludes:      excludes,
		includeHidden: s.IncludeHidden,
		active:        make(map[string]bool),
	}
	if err := w.walk(root, ""); err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	files := w.files
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})

	logrus.Debugf("Found %d files in %s", len(files), dir)
	return files, nil
}

type walker struct {
	ctx                context.Context
	includes, excludes []glob.Glob
	includeHidden      bool

	// Resolved directories currently being walked
	active map[string]bool
	files  []ScannedFile
}

// walk collects the files below the resolved directory dir, reporting them
// under the relative prefix
func (w *walker) walk(dir, prefix string) error {
	w.active[dir] = true
	defer delete(w.active, dir)

	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		if p == dir {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		rel = path.Join(prefix, filepath.ToSlash(rel))

		if !w.includeHidden && strings.HasPrefix(d.Name(), ".") {
			logrus.Debugf("Skipping hidden %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip directories
		if d.IsDir() {
			return nil
		}

		var info fs.FileInfo
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			info, err = os.Stat(p)
			if err != nil {
				logrus.Warnf("Skipping broken link %s: %v", rel, err)
				return nil
			}
			if info.IsDir() {
				return w.follow(p, rel)
			}
		case d.Type().IsRegular():
			info, err = d.Info()
			if err != nil {
				return err
			}
		default:
			logrus.Debugf("Skipping special file %s", rel)
			return nil
		}

		if !info.Mode().IsRegular() {
			logrus.Debugf("Skipping special file %s", rel)
			return nil
		}

		if !matchAny(w.includes, rel) || matchAny(w.excludes, rel) {
			logrus.Debugf("Skipping %s", rel)
			return nil
		}

		w.files = append(w.files, ScannedFile{
			Path:    p,
			RelPath: rel,
			Size:    info.Size(),
		})
		return nil
	})
}

// follow walks the directory behind the link at p unless that would loop
func (w *walker) follow(p, rel string) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return err
	}

	parent := filepath.Dir(p)
	if w.active[target] || parent == target || strings.HasPrefix(parent, target+string(filepath.Separator)) {
		logrus.Warnf("Skipping %s: link to an enclosing directory", rel)
		return nil
	}

	logrus.Debugf("Following link %s -> %s", rel, target)
	return w.walk(target, rel)
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
