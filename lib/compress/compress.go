// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps extracted package content in an optional
// compression stream. It is used when content leaves a package (for
// example "acs extract --compress zstd") and when compressed local
// files are added back as resource content.
package compress

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Tag identifies a stream compression format.
type Tag uint8

const (
	// None passes bytes through unchanged.
	None Tag = iota

	// LZ4 is the LZ4 frame format. Fast, modest ratio.
	LZ4

	// Zstd is the Zstandard frame format. Better ratio for the text
	// and list-mode event data that dominates ACS packages.
	Zstd
)

// String returns the name of the tag as accepted by [ParseTag].
func (tag Tag) String() string {
	switch tag {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// Extension returns the conventional file name suffix for the format,
// including the dot, or "" for [None].
func (tag Tag) Extension() string {
	switch tag {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// ParseTag parses a tag name. The empty string is [None].
func ParseTag(name string) (Tag, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression %q (want none, lz4, or zstd)", name)
	}
}

// TagForFilename infers the format from a file name suffix.
func TagForFilename(name string) Tag {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".lz4"):
		return LZ4
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return Zstd
	default:
		return None
	}
}

// NewWriter returns a writer that compresses into w. Close must be
// called to flush the final frame; it does not close w.
func NewWriter(w io.Writer, tag Tag) (io.WriteCloser, error) {
	switch tag {
	case None:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", tag)
	}
}

// NewReader returns a reader that decompresses r. Close releases
// decoder resources; it does not close r.
func NewReader(r io.Reader, tag Tag) (io.ReadCloser, error) {
	switch tag {
	case None:
		return io.NopCloser(r), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", tag)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
