package scanner

import "context"

// ScannedFile represents a regular file found during scanning
type ScannedFile struct {
	// Path is the file system path of the file
	Path string
	// RelPath is the slash separated path relative to the scanned directory
	RelPath string
	Size    int64
}

// Scanner interface for collecting files below a directory
type Scanner interface {
	// Scan recursively walks dir and returns every file matching at least one
	// include pattern and no exclude pattern
	Scan(ctx context.Context, dir string, include, exclude []string) ([]ScannedFile, error)
}
