// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ziparchive

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Method is a zip compression method identifier as stored in entry
// headers.
type Method uint16

const (
	Store   Method = Method(zip.Store)
	Deflate Method = Method(zip.Deflate)
	Zstd    Method = Method(zstd.ZipMethodWinZip)
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case Store:
		return "store"
	case Deflate:
		return "deflate"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("method(%d)", uint16(m))
	}
}

// ParseMethod parses a method name as produced by [Method.String].
// The empty string selects [Deflate].
func ParseMethod(name string) (Method, error) {
	switch name {
	case "", "deflate":
		return Deflate, nil
	case "store", "none":
		return Store, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown archive compression method %q (want store, deflate, or zstd)", name)
	}
}

// ErrStop is returned by a [Scan] visitor to end the scan early. Scan
// itself then returns nil.
var ErrStop = errors.New("ziparchive: stop scan")

// Entry describes one archive entry during a scan.
type Entry struct {
	// Name is the entry path exactly as recorded in the archive.
	Name string

	// IsDir reports whether the entry is a directory marker.
	IsDir bool

	// Size is the uncompressed size recorded in the entry header.
	Size int64

	Method   Method
	Modified time.Time

	file   *zip.File
	reader io.ReadCloser
}

// Read reads the entry's uncompressed content. The content is opened
// on first use, so visitors that only look at names never pay for
// decompression.
func (e *Entry) Read(p []byte) (int, error) {
	if e.reader == nil {
		if e.IsDir {
			return 0, io.EOF
		}
		reader, err := e.file.Open()
		if err != nil {
			return 0, fmt.Errorf("opening entry %s: %w", e.Name, err)
		}
		e.reader = reader
	}
	return e.reader.Read(p)
}

func (e *Entry) release() {
	if e.reader != nil {
		e.reader.Close()
		e.reader = nil
	}
}

// Scan opens the archive at path and calls visit for every entry in
// archive order. Errors returned by visit are returned unchanged,
// except [ErrStop] which ends the scan successfully. Errors from the
// archive itself are wrapped with the archive path.
func Scan(path string, visit func(entry *Entry) error) error {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer archive.Close()
	registerDecompressors(&archive.Reader)

	return scanFiles(archive.File, visit)
}

// ScanReader is [Scan] over an already-open archive of the given size.
func ScanReader(source io.ReaderAt, size int64, visit func(entry *Entry) error) error {
	archive, err := zip.NewReader(source, size)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	registerDecompressors(archive)

	return scanFiles(archive.File, visit)
}

func scanFiles(files []*zip.File, visit func(entry *Entry) error) error {
	for _, file := range files {
		entry := &Entry{
			Name:     file.Name,
			IsDir:    file.FileInfo().IsDir(),
			Size:     int64(file.UncompressedSize64),
			Method:   Method(file.Method),
			Modified: file.Modified,
			file:     file,
		}
		err := visit(entry)
		entry.release()
		if errors.Is(err, ErrStop) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func registerDecompressors(reader *zip.Reader) {
	reader.RegisterDecompressor(uint16(Zstd), zstd.ZipDecompressor())
}
