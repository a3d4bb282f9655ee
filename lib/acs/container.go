// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/cytobank/acs/lib/digest"
	"github.com/cytobank/acs/lib/ziparchive"
)

// Config controls how a [Container] stages data and writes packages.
type Config struct {
	// TempDir is where manifests are staged while opening a package
	// and while deriving new versions. Empty means os.TempDir().
	TempDir string

	// Compression is the method used for every entry of a written
	// package. Zero value is [ziparchive.Store]; [DefaultConfig] uses
	// [ziparchive.Deflate].
	Compression ziparchive.Method

	// CompressionLevel is passed through to the archive writer. Zero
	// selects the method's default.
	CompressionLevel int

	// DigestInventory computes a BLAKE3 digest of every entry while
	// opening a package. It costs a full decompression pass over the
	// package, so it is off unless asked for.
	DigestInventory bool

	// Logger receives debug and warning output. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns a Config that writes deflate-compressed
// packages, readable by any zip tool.
func DefaultConfig() Config {
	return Config{Compression: ziparchive.Deflate}
}

// InventoryEntry describes one non-directory entry of the original
// package.
type InventoryEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`

	// Digest is the BLAKE3 entry digest, zero unless the container
	// was opened with DigestInventory. It encodes as hex.
	Digest digest.Digest `json:"digest,omitzero"`
}

// Container is an open ACS package: every manifest version, the
// inventory of the original package, and the temp files staged along
// the way. A container is used from one goroutine at a time.
//
// A container starts empty ([NewContainer]) or populated from a
// package ([Open]). Versions only ever grow, one at a time, and
// [Container.WritePackage] writes all of them into a new package.
type Container struct {
	config Config
	logger *slog.Logger

	// path is the original package, or "" for a new container.
	path string

	tocs      map[int]*TableOfContents
	highest   int
	inventory []InventoryEntry
	tempFiles []string
}

// NewContainer returns an empty container with no original package.
func NewContainer(config Config) *Container {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		config: config,
		logger: logger,
		tocs:   make(map[int]*TableOfContents),
	}
}

// Open scans the package at path and loads every manifest entry.
//
// Every non-directory entry is recorded in the inventory. Entries
// named like a manifest ("TOC" + digits + ".xml") are staged to a temp
// file and parsed; a manifest name whose version is not a positive
// decimal integer, or a manifest that does not parse, fails the open
// with [ErrInvalidIndex]. Failures reading the package itself fail
// with [ErrInvalidArchive]. On failure nothing is left behind.
func Open(path string, config Config) (*Container, error) {
	container := NewContainer(config)
	container.path = path

	err := ziparchive.Scan(path, func(entry *ziparchive.Entry) error {
		if entry.IsDir {
			return nil
		}
		return container.load(entry)
	})
	if err != nil {
		container.Close()
		if !errors.Is(err, ErrInvalidIndex) && !errors.Is(err, ErrInvalidArchive) {
			err = fmt.Errorf("%w: %s: %w", ErrInvalidArchive, path, err)
		}
		return nil, err
	}

	container.logger.Debug("opened package",
		"path", path,
		"entries", len(container.inventory),
		"versions", container.Versions(),
	)
	return container, nil
}

// load records one entry and parses it if it is a manifest.
func (c *Container) load(entry *ziparchive.Entry) error {
	record := InventoryEntry{Name: entry.Name, Size: entry.Size}

	var content io.Reader = entry
	var hasher *digest.Hasher
	if c.config.DigestInventory {
		hasher = digest.NewHasher()
		content = io.TeeReader(entry, hasher)
	}

	if IsManifestName(entry.Name) {
		version, err := ParseManifestVersion(entry.Name)
		if err != nil {
			return err
		}
		if _, exists := c.tocs[version]; exists {
			return fmt.Errorf("%w: %s: version %d appears more than once", ErrInvalidIndex, entry.Name, version)
		}
		toc, err := c.stageManifest(entry.Name, content, version)
		if err != nil {
			return err
		}
		toc.container = c
		c.tocs[version] = toc
		if version > c.highest {
			c.highest = version
		}
	}

	if hasher != nil {
		// Drain whatever the manifest parser or nobody read.
		if _, err := io.Copy(io.Discard, content); err != nil {
			return fmt.Errorf("%w: reading %s: %w", ErrInvalidArchive, entry.Name, err)
		}
		record.Digest = hasher.Sum()
		record.Size = hasher.Size()
	}

	c.inventory = append(c.inventory, record)
	return nil
}

// stageManifest copies a manifest entry to a temp file and parses it.
func (c *Container) stageManifest(name string, content io.Reader, version int) (*TableOfContents, error) {
	staged, err := c.tempFile("acs-toc-*.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: staging %s: %w", ErrInvalidArchive, name, err)
	}
	defer staged.Close()

	if _, err := io.Copy(staged, content); err != nil {
		return nil, fmt.Errorf("%w: staging %s: %w", ErrInvalidArchive, name, err)
	}
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewinding staged %s: %w", ErrInvalidArchive, name, err)
	}
	toc, err := decodeManifest(staged, version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return toc, nil
}

// tempFile creates and tracks a temp file. The caller closes it; the
// container removes it on Close.
func (c *Container) tempFile(pattern string) (*os.File, error) {
	file, err := os.CreateTemp(c.config.TempDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	c.tempFiles = append(c.tempFiles, file.Name())
	return file, nil
}

// Path returns the path of the original package, or "" for a new
// container.
func (c *Container) Path() string { return c.path }

// CurrentVersion returns the highest version, or 0 when empty.
func (c *Container) CurrentVersion() int { return c.highest }

// IsEmpty reports whether the container has no versions.
func (c *Container) IsEmpty() bool { return len(c.tocs) == 0 }

// Versions returns the versions present, ascending. An opened package
// may have gaps; versions added afterwards never do.
func (c *Container) Versions() []int {
	versions := make([]int, 0, len(c.tocs))
	for version := range c.tocs {
		versions = append(versions, version)
	}
	sort.Ints(versions)
	return versions
}

// TableOfContents returns the manifest at version, or nil.
func (c *Container) TableOfContents(version int) *TableOfContents {
	return c.tocs[version]
}

// Current returns the highest-version manifest, or nil when empty.
func (c *Container) Current() *TableOfContents {
	return c.tocs[c.highest]
}

// Inventory returns the non-directory entries of the original package
// in archive order.
func (c *Container) Inventory() []InventoryEntry {
	return append([]InventoryEntry(nil), c.inventory...)
}

// InventoryNames returns the entry names of [Container.Inventory].
func (c *Container) InventoryNames() []string {
	names := make([]string, len(c.inventory))
	for i, entry := range c.inventory {
		names[i] = entry.Name
	}
	return names
}

// AddTableOfContents attaches toc as the next version. Its version
// must be exactly [Container.CurrentVersion] + 1, otherwise the call
// fails with [ErrUnexpectedVersion] and nothing changes.
func (c *Container) AddTableOfContents(toc *TableOfContents) error {
	if toc == nil {
		return fmt.Errorf("%w: nil table of contents", ErrUnexpectedVersion)
	}
	if want := c.highest + 1; toc.version != want {
		return fmt.Errorf("%w: got version %d, want %d", ErrUnexpectedVersion, toc.version, want)
	}
	if toc.container != nil && toc.container != c {
		return fmt.Errorf("%w: version %d already belongs to another container", ErrUnexpectedVersion, toc.version)
	}
	toc.container = c
	c.tocs[toc.version] = toc
	c.highest = toc.version
	return nil
}

// CreateNextTableOfContents derives and attaches the next version: a
// blank version 1 for an empty container, otherwise a copy of the
// current version with the version bumped. Errors from the copy are
// returned; nothing is attached in that case.
func (c *Container) CreateNextTableOfContents() (*TableOfContents, error) {
	var next *TableOfContents
	if current := c.Current(); current == nil {
		next = NewTableOfContents(c.highest + 1)
	} else {
		var err error
		next, err = current.NextVersion()
		if err != nil {
			return nil, fmt.Errorf("deriving version %d: %w", c.highest+1, err)
		}
	}
	if err := c.AddTableOfContents(next); err != nil {
		return nil, err
	}
	return next, nil
}

// ExtractEntry scans the original package for the first non-directory
// entry named path (one leading slash is ignored) and copies it to w.
// If no entry matches nothing is written and no error is returned.
func (c *Container) ExtractEntry(path string, w io.Writer) error {
	if c.path == "" {
		return fmt.Errorf("extracting %s: %w", path, ErrNoPackage)
	}
	name := strings.TrimPrefix(path, "/")
	found := false
	err := ziparchive.Scan(c.path, func(entry *ziparchive.Entry) error {
		if entry.IsDir || entry.Name != name {
			return nil
		}
		found = true
		if _, err := io.Copy(w, entry); err != nil {
			return fmt.Errorf("extracting %s from %s: %w", name, c.path, err)
		}
		return ziparchive.ErrStop
	})
	if err != nil {
		return err
	}
	if !found {
		c.logger.Debug("entry not in package", "entry", name, "package", c.path)
	}
	return nil
}

// ExtractURI extracts the entry a file URI points at. URIs with any
// other scheme, or that do not parse, are ignored.
func (c *Container) ExtractURI(uri string, w io.Writer) error {
	path, ok := packagePath(uri)
	if !ok {
		return nil
	}
	return c.ExtractEntry(path, w)
}

// ExtractToFile extracts the entry a file URI points at into a new
// file at destination. The file is created even if nothing matches.
func (c *Container) ExtractToFile(uri, destination string) error {
	file, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destination, err)
	}
	if err := c.ExtractURI(uri, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ExtractToString returns the content of the entry a file URI points
// at, or "" if there is none.
func (c *Container) ExtractToString(uri string) (string, error) {
	var builder strings.Builder
	if err := c.ExtractURI(uri, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WritePackage writes every version into a new package on w, in
// ascending version order. Each manifest is followed by the content
// of its internal resources. Content for a given entry path is written
// once, by the first version that references it; external references
// are never written. The archive is finished even when writing fails,
// but a package from a failed write must be discarded.
func (c *Container) WritePackage(w io.Writer) (err error) {
	archive, err := ziparchive.NewWriter(w, ziparchive.WriterOptions{
		Method: c.config.Compression,
		Level:  c.config.CompressionLevel,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := archive.Close(); err == nil {
			err = closeErr
		}
	}()

	written := make(map[string]bool)
	for _, version := range c.Versions() {
		written[ManifestName(version)] = true
	}

	for _, version := range c.Versions() {
		toc := c.tocs[version]
		entry, err := archive.Create(toc.FileName())
		if err != nil {
			return err
		}
		if err := toc.WriteManifest(entry); err != nil {
			return err
		}

		for _, resource := range toc.resources {
			if resource.IsExternalReference() {
				continue
			}
			path := resource.PackagePath()
			if path == "" {
				c.logger.Warn("skipping resource without an entry path", "uri", resource.uri, "version", version)
				continue
			}
			if written[path] {
				continue
			}
			written[path] = true

			entry, err := archive.Create(path)
			if err != nil {
				return err
			}
			if err := resource.WriteContent(entry); err != nil {
				return fmt.Errorf("writing %s of %s: %w", path, toc.FileName(), err)
			}
		}
	}
	return nil
}

// WritePackageFile writes the package to a new file at path.
func (c *Container) WritePackageFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := c.WritePackage(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Close removes the container's temp files and closes every attached
// reader. Cleanup failures are logged, not returned.
func (c *Container) Close() {
	for _, name := range c.tempFiles {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("removing temp file", "path", name, "error", err)
		}
	}
	c.tempFiles = nil
	for _, toc := range c.tocs {
		toc.Close()
	}
}
