// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ziparchive

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// WriterOptions configures a [Writer].
type WriterOptions struct {
	// Method is the compression method for every entry. Zero value
	// is [Store]; callers normally pass [Deflate].
	Method Method

	// Level is the compression level. For [Deflate] it follows the
	// flate scale (1 fastest to 9 best, 0 for the default). For [Zstd]
	// it is mapped with zstd.EncoderLevelFromZstd. Ignored for [Store].
	Level int

	// Modified is recorded as the modification time of every entry.
	// Zero means the time the writer was created.
	Modified time.Time
}

// Writer writes a new archive one entry at a time.
type Writer struct {
	archive  *zip.Writer
	method   Method
	modified time.Time
	closed   bool
}

// NewWriter starts an archive on w.
func NewWriter(w io.Writer, options WriterOptions) (*Writer, error) {
	archive := zip.NewWriter(w)

	switch options.Method {
	case Store:
	case Deflate:
		level := options.Level
		if level == 0 {
			level = flate.DefaultCompression
		}
		if level < flate.HuffmanOnly || level > flate.BestCompression {
			return nil, fmt.Errorf("deflate level %d out of range", options.Level)
		}
		archive.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	case Zstd:
		encoderOptions := []zstd.EOption{zstd.WithEncoderConcurrency(1)}
		if options.Level != 0 {
			encoderOptions = append(encoderOptions,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(options.Level)))
		}
		archive.RegisterCompressor(uint16(Zstd), zstd.ZipCompressor(encoderOptions...))
	default:
		return nil, fmt.Errorf("unsupported archive compression method %s", options.Method)
	}

	modified := options.Modified
	if modified.IsZero() {
		modified = time.Now()
	}

	return &Writer{
		archive:  archive,
		method:   options.Method,
		modified: modified,
	}, nil
}

// Create begins a new entry and returns a writer for its content. The
// previous entry is finished implicitly. The returned writer is valid
// until the next call to Create or Close.
func (w *Writer) Create(name string) (io.Writer, error) {
	if w.closed {
		return nil, fmt.Errorf("creating entry %s: archive writer is closed", name)
	}
	header := &zip.FileHeader{
		Name:     name,
		Method:   uint16(w.method),
		Modified: w.modified,
	}
	entry, err := w.archive.CreateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("creating entry %s: %w", name, err)
	}
	return entry, nil
}

// Close finishes the last entry and writes the central directory. It
// does not close the underlying writer. Calling Close more than once
// is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.archive.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}
