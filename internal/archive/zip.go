package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// DefaultModTime is stamped on every entry unless overridden, so identical
// inputs produce identical archives.
var DefaultModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// SerializeOptions controls ZIP output
type SerializeOptions struct {
	// Flate level, see klauspost/compress/flate
	CompressionLevel int
	// Zero selects DefaultModTime
	ModTime time.Time
}

// DefaultSerializeOptions returns options using the default flate level
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{CompressionLevel: flate.DefaultCompression}
}

// Serialize writes the tree to a ZIP buffer
func (t *Tree) Serialize(opts SerializeOptions) ([]byte, error) {
	level := opts.CompressionLevel
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("invalid compression level %d", level)
	}

	modTime := opts.ModTime
	if modTime.IsZero() {
		modTime = DefaultModTime
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	for _, e := range t.Entries() {
		header := &zip.FileHeader{
			Name:     e.Path,
			Modified: modTime,
		}
		if e.IsDir {
			header.Method = zip.Store
			header.SetMode(fs.ModeDir | 0755)
		} else {
			header.Method = zip.Deflate
			header.SetMode(0644)
		}

		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("failed to create entry %s: %w", e.Path, err)
		}
		if e.IsDir {
			continue
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, fmt.Errorf("failed to write entry %s: %w", e.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
