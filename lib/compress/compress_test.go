// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestStreamRoundTrip(t *testing.T) {
	input := strings.Repeat("$P1N\tFSC-A\n$P2N\tSSC-A\n", 2000)

	for _, tag := range []Tag{None, LZ4, Zstd} {
		t.Run(tag.String(), func(t *testing.T) {
			var compressed bytes.Buffer
			writer, err := NewWriter(&compressed, tag)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			if _, err := io.WriteString(writer, input); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if tag != None && compressed.Len() >= len(input) {
				t.Errorf("compressed size %d not smaller than input %d", compressed.Len(), len(input))
			}

			reader, err := NewReader(&compressed, tag)
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			defer reader.Close()
			output, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(output) != input {
				t.Errorf("round trip produced %d bytes, want %d", len(output), len(input))
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name string
		want Tag
	}{
		{"", None},
		{"none", None},
		{"lz4", LZ4},
		{"LZ4", LZ4},
		{"zstd", Zstd},
		{"zst", Zstd},
	}
	for _, test := range tests {
		got, err := ParseTag(test.name)
		if err != nil {
			t.Errorf("ParseTag(%q): %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseTag(%q) = %s, want %s", test.name, got, test.want)
		}
	}
	if _, err := ParseTag("gzip"); err == nil {
		t.Error("ParseTag(gzip) succeeded, want error")
	}
}

func TestTagForFilename(t *testing.T) {
	tests := map[string]Tag{
		"sample.fcs":     None,
		"sample.fcs.zst": Zstd,
		"sample.FCS.LZ4": LZ4,
		"notes.zstd":     Zstd,
	}
	for name, want := range tests {
		if got := TagForFilename(name); got != want {
			t.Errorf("TagForFilename(%q) = %s, want %s", name, got, want)
		}
	}
	if Zstd.Extension() != ".zst" || LZ4.Extension() != ".lz4" || None.Extension() != "" {
		t.Error("Extension() does not match TagForFilename suffixes")
	}
}
