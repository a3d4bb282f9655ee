// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cytobank/acs/lib/ziparchive"
)

// PackageEntry is one entry of a test package. A Name ending in "/"
// produces a directory entry and Content is ignored.
type PackageEntry struct {
	Name    string
	Content string
}

// WritePackage writes a deflate-compressed zip package named name into
// a fresh temporary directory and returns its path.
func WritePackage(t *testing.T, name string, entries ...PackageEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating package %s: %v", path, err)
	}
	defer file.Close()

	writer, err := ziparchive.NewWriter(file, ziparchive.WriterOptions{Method: ziparchive.Deflate})
	if err != nil {
		t.Fatalf("starting package %s: %v", path, err)
	}
	for _, entry := range entries {
		content, err := writer.Create(entry.Name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", entry.Name, err)
		}
		if _, err := io.WriteString(content, entry.Content); err != nil {
			t.Fatalf("writing entry %s: %v", entry.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("finishing package %s: %v", path, err)
	}
	return path
}

// ReadPackage returns every non-directory entry of the package at path
// in archive order.
func ReadPackage(t *testing.T, path string) []PackageEntry {
	t.Helper()

	var entries []PackageEntry
	err := ziparchive.Scan(path, func(entry *ziparchive.Entry) error {
		if entry.IsDir {
			return nil
		}
		content, err := io.ReadAll(entry)
		if err != nil {
			return err
		}
		entries = append(entries, PackageEntry{Name: entry.Name, Content: string(content)})
		return nil
	})
	if err != nil {
		t.Fatalf("reading package %s: %v", path, err)
	}
	return entries
}
