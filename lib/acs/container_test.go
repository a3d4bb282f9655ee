// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cytobank/acs/lib/testutil"
	"github.com/cytobank/acs/lib/ziparchive"
)

func TestNewContainerIsEmpty(t *testing.T) {
	container := newContainerForTest(t)

	if got := container.CurrentVersion(); got != 0 {
		t.Errorf("CurrentVersion() = %d, want 0", got)
	}
	if container.Current() != nil {
		t.Error("Current() on an empty container is not nil")
	}
	if !container.IsEmpty() {
		t.Error("IsEmpty() = false for a new container")
	}
	if len(container.Versions()) != 0 {
		t.Errorf("Versions() = %v, want none", container.Versions())
	}
}

func TestCreateNextTableOfContentsIsMonotonic(t *testing.T) {
	container := newContainerForTest(t)

	for want := 1; want <= 4; want++ {
		toc := mustCreateNext(t, container)
		if toc.Version() != want {
			t.Errorf("created version %d, want %d", toc.Version(), want)
		}
		if container.CurrentVersion() != want {
			t.Errorf("CurrentVersion() = %d, want %d", container.CurrentVersion(), want)
		}
		if container.Current() != toc {
			t.Errorf("Current() is not the table of contents just created")
		}
		if toc.Container() != container {
			t.Errorf("version %d is not attached to the container", want)
		}
	}
	if got := container.Versions(); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("Versions() = %v, want [1 2 3 4]", got)
	}
}

func TestAddTableOfContentsRequiresNextVersion(t *testing.T) {
	container := newContainerForTest(t)

	for _, version := range []int{0, 2, 5} {
		err := container.AddTableOfContents(NewTableOfContents(version))
		if !errors.Is(err, ErrUnexpectedVersion) {
			t.Errorf("AddTableOfContents(version %d) on empty container = %v, want ErrUnexpectedVersion", version, err)
		}
	}
	if !container.IsEmpty() {
		t.Fatal("rejected versions left the container non-empty")
	}

	if err := container.AddTableOfContents(NewTableOfContents(1)); err != nil {
		t.Fatalf("AddTableOfContents(version 1): %v", err)
	}
	if err := container.AddTableOfContents(NewTableOfContents(1)); !errors.Is(err, ErrUnexpectedVersion) {
		t.Errorf("adding version 1 twice = %v, want ErrUnexpectedVersion", err)
	}
	if container.CurrentVersion() != 1 {
		t.Errorf("CurrentVersion() = %d, want 1", container.CurrentVersion())
	}
}

func TestOpenTwoVersionPackage(t *testing.T) {
	container := openForTest(t, writeU937Package(t))

	if got := container.CurrentVersion(); got != 2 {
		t.Fatalf("CurrentVersion() = %d, want 2", got)
	}
	if got := container.TableOfContents(1).ResourceCount(); got != 1 {
		t.Errorf("version 1 has %d resources, want 1", got)
	}
	version2 := container.TableOfContents(2)
	if got := version2.ResourceCount(); got != 15 {
		t.Fatalf("version 2 has %d resources, want 15", got)
	}
	for i, name := range u937Names() {
		resource := version2.Resource(i)
		if want := "file:///" + name; resource.URI() != want {
			t.Errorf("resource %d URI = %q, want %q", i, resource.URI(), want)
		}
		if resource.MimeType() != FCSMimeType {
			t.Errorf("%s MIME type = %q, want %q", name, resource.MimeType(), FCSMimeType)
		}
	}

	version3 := mustCreateNext(t, container)
	if version3.Version() != 3 {
		t.Errorf("next version = %d, want 3", version3.Version())
	}
	if got := version3.ResourceCount(); got != 15 {
		t.Fatalf("version 3 has %d resources, want 15", got)
	}
	for i := range 15 {
		if version3.Resource(i).URI() != version2.Resource(i).URI() {
			t.Errorf("version 3 resource %d = %q, want %q", i, version3.Resource(i).URI(), version2.Resource(i).URI())
		}
		if version3.Resource(i) == version2.Resource(i) {
			t.Errorf("version 3 resource %d is shared with version 2", i)
		}
	}

	content, err := version3.ResourceByURI("file:///u937_07.fcs").ContentString()
	if err != nil {
		t.Fatalf("ContentString: %v", err)
	}
	if want := u937Content("u937_07.fcs"); content != want {
		t.Errorf("content = %q, want %q", content, want)
	}
}

func TestOpenRecordsInventory(t *testing.T) {
	path := testutil.WritePackage(t, "inventory.acs",
		testutil.PackageEntry{Name: "TOC1.xml", Content: manifestXML(fcsFileElement("data/a.fcs"))},
		testutil.PackageEntry{Name: "data/"},
		testutil.PackageEntry{Name: "data/a.fcs", Content: "aaaa"},
		testutil.PackageEntry{Name: "notes.txt", Content: "unreferenced"},
	)
	container := openForTest(t, path)

	want := []string{"TOC1.xml", "data/a.fcs", "notes.txt"}
	if got := container.InventoryNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("InventoryNames() = %v, want %v", got, want)
	}
	for _, entry := range container.Inventory() {
		if !entry.Digest.IsZero() {
			t.Errorf("%s has digest %s without DigestInventory", entry.Name, entry.Digest)
		}
	}
	if got := container.Inventory()[1].Size; got != 4 {
		t.Errorf("data/a.fcs size = %d, want 4", got)
	}
}

func TestOpenDigestInventory(t *testing.T) {
	manifest := manifestXML(fcsFileElement("a.fcs"))
	path := testutil.WritePackage(t, "digest.acs",
		testutil.PackageEntry{Name: "TOC1.xml", Content: manifest},
		testutil.PackageEntry{Name: "a.fcs", Content: "event data"},
	)

	config := DefaultConfig()
	config.TempDir = t.TempDir()
	config.DigestInventory = true
	container, err := Open(path, config)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer container.Close()

	inventory := container.Inventory()
	if len(inventory) != 2 {
		t.Fatalf("inventory has %d entries, want 2", len(inventory))
	}
	if want := entryDigest(manifest); inventory[0].Digest != want {
		t.Errorf("manifest digest = %s, want %s", inventory[0].Digest, want)
	}
	if want := entryDigest("event data"); inventory[1].Digest != want {
		t.Errorf("data digest = %s, want %s", inventory[1].Digest, want)
	}
	if container.TableOfContents(1).ResourceCount() != 1 {
		t.Error("manifest was not parsed while digesting")
	}
}

func TestOpenRejectsMalformedManifestNames(t *testing.T) {
	for _, name := range []string{"TOC.xml", "TOCx.xml", "TOC1a.xml", "TOC-1.xml", "TOC0.xml"} {
		t.Run(name, func(t *testing.T) {
			path := testutil.WritePackage(t, "bad.acs",
				testutil.PackageEntry{Name: "TOC1.xml", Content: manifestXML()},
				testutil.PackageEntry{Name: name, Content: manifestXML()},
			)
			config := DefaultConfig()
			config.TempDir = t.TempDir()
			_, err := Open(path, config)
			if !errors.Is(err, ErrInvalidIndex) {
				t.Errorf("Open = %v, want ErrInvalidIndex", err)
			}
			leftovers, _ := os.ReadDir(config.TempDir)
			if len(leftovers) != 0 {
				t.Errorf("failed Open left %d temp files", len(leftovers))
			}
		})
	}
}

func TestOpenIgnoresNonManifestXML(t *testing.T) {
	path := testutil.WritePackage(t, "xml.acs",
		testutil.PackageEntry{Name: "TOC1.xml", Content: manifestXML()},
		testutil.PackageEntry{Name: "gates/TOC2.xml", Content: "not a manifest"},
		testutil.PackageEntry{Name: "toc3.xml", Content: "lower case prefix"},
	)
	container := openForTest(t, path)

	if got := container.Versions(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Versions() = %v, want [1]", got)
	}
}

func TestOpenRejectsBrokenManifests(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		cause    error
	}{
		{"not xml", `<toc:TOC broken=></toc:TOC>`, nil},
		{"wrong root", `<manifest/>`, nil},
		{"duplicate uri", manifestXML(fcsFileElement("a.fcs"), fcsFileElement("A.FCS")), ErrDuplicateResource},
		{"missing uri", manifestXML(`<toc:file toc:mimeType="text/plain"/>`), nil},
		{"bad scheme", manifestXML(`<toc:file toc:URI="mailto:someone@example.org"/>`), ErrInvalidURIScheme},
		{"blank relationship", manifestXML(`<toc:file toc:URI="file:///a"><toc:associated toc:with="file:///b" toc:relationship="  "/></toc:file>`), ErrInvalidAssociation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := testutil.WritePackage(t, "broken.acs",
				testutil.PackageEntry{Name: "TOC1.xml", Content: test.manifest})
			config := DefaultConfig()
			config.TempDir = t.TempDir()
			_, err := Open(path, config)
			if !errors.Is(err, ErrInvalidIndex) {
				t.Errorf("Open = %v, want ErrInvalidIndex", err)
			}
			if test.cause != nil && !errors.Is(err, test.cause) {
				t.Errorf("Open = %v, want it to wrap %v", err, test.cause)
			}
		})
	}
}

func TestOpenRejectsNonArchive(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "plain.acs", "definitely not a zip")

	_, err := Open(path, DefaultConfig())
	if !errors.Is(err, ErrInvalidArchive) {
		t.Errorf("Open = %v, want ErrInvalidArchive", err)
	}

	_, err = Open(filepath.Join(t.TempDir(), "missing.acs"), DefaultConfig())
	if !errors.Is(err, ErrInvalidArchive) {
		t.Errorf("Open(missing) = %v, want ErrInvalidArchive", err)
	}
}

func TestExtract(t *testing.T) {
	path := testutil.WritePackage(t, "extract.acs",
		testutil.PackageEntry{Name: "TOC1.xml", Content: manifestXML()},
		testutil.PackageEntry{Name: "dir/"},
		testutil.PackageEntry{Name: "dir/notes.txt", Content: "first"},
		testutil.PackageEntry{Name: "dir/notes.txt", Content: "shadowed"},
	)
	container := openForTest(t, path)

	tests := []struct {
		uri  string
		want string
	}{
		{"file:///dir/notes.txt", "first"},
		{"file:/dir/notes.txt", "first"},
		{"file:///dir/missing.txt", ""},
		{"file:///dir/", ""},
		{"http://example.org/dir/notes.txt", ""},
		{"urn:uuid:6e8bc430-9c3a-11d9-9669-0800200c9a66", ""},
	}
	for _, test := range tests {
		got, err := container.ExtractToString(test.uri)
		if err != nil {
			t.Errorf("ExtractToString(%q): %v", test.uri, err)
			continue
		}
		if got != test.want {
			t.Errorf("ExtractToString(%q) = %q, want %q", test.uri, got, test.want)
		}
	}

	var buffer bytes.Buffer
	if err := container.ExtractEntry("/dir/notes.txt", &buffer); err != nil {
		t.Fatalf("ExtractEntry: %v", err)
	}
	if buffer.String() != "first" {
		t.Errorf("ExtractEntry = %q, want %q", buffer.String(), "first")
	}

	destination := filepath.Join(t.TempDir(), "notes.txt")
	if err := container.ExtractToFile("file:///dir/notes.txt", destination); err != nil {
		t.Fatalf("ExtractToFile: %v", err)
	}
	if got := testutil.ReadFile(t, destination); got != "first" {
		t.Errorf("extracted file = %q, want %q", got, "first")
	}
}

func TestExtractWithoutPackage(t *testing.T) {
	container := newContainerForTest(t)

	err := container.ExtractEntry("anything", &bytes.Buffer{})
	if !errors.Is(err, ErrNoPackage) {
		t.Errorf("ExtractEntry on a new container = %v, want ErrNoPackage", err)
	}
}

func TestWritePackageRoundTrip(t *testing.T) {
	original := openForTest(t, writeU937Package(t))

	version3 := mustCreateNext(t, original)
	version3.Annotations().Add("re-gated after compensation")
	gates, err := version3.CreateResource("file:///analysis/gates.xml",
		FromReader(strings.NewReader("<gates/>")), "application/xml")
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	gates.SetDescription("Gating & compensation for <all> tubes")
	gates.Annotations().Add("").SetKeyword("operator", "J. Smith")
	workspace, err := version3.CreateResource("https://cytobank.example.org/projects/42", FromPackage(), "")
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	sample := version3.ResourceByURI("file:///u937_01.fcs")
	if _, err := sample.CreateAssociation(gates, "Gating Description"); err != nil {
		t.Fatalf("CreateAssociation: %v", err)
	}
	if _, err := sample.CreateAssociation(workspace, "project/workspace"); err != nil {
		t.Fatalf("CreateAssociation: %v", err)
	}

	output := filepath.Join(t.TempDir(), "u937_v3.acs")
	if err := original.WritePackageFile(output); err != nil {
		t.Fatalf("WritePackageFile: %v", err)
	}

	reopened := openForTest(t, output)
	want := original.Snapshot()
	got := reopened.Snapshot()
	want.Path, got.Path = "", ""
	want.Inventory, got.Inventory = nil, nil
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reopened snapshot differs\n got: %+v\nwant: %+v", got, want)
	}

	content, err := reopened.ExtractToString("file:///analysis/gates.xml")
	if err != nil {
		t.Fatalf("ExtractToString: %v", err)
	}
	if content != "<gates/>" {
		t.Errorf("gates content = %q, want %q", content, "<gates/>")
	}
	for _, name := range u937Names() {
		content, err := reopened.ExtractToString("file:///" + name)
		if err != nil {
			t.Fatalf("ExtractToString(%s): %v", name, err)
		}
		if content != u937Content(name) {
			t.Errorf("%s content = %q, want %q", name, content, u937Content(name))
		}
	}

	names := reopened.InventoryNames()
	if names[0] != "TOC1.xml" || names[2] != "TOC2.xml" {
		t.Errorf("manifests are not written in version order: %v", names)
	}
	for _, name := range names {
		if strings.Contains(name, "cytobank.example.org") {
			t.Errorf("external reference written as entry %s", name)
		}
	}
	if len(names) != 3+15+1 {
		t.Errorf("written package has %d entries, want %d: %v", len(names), 3+15+1, names)
	}
}

func TestWritePackageDeduplicatesPaths(t *testing.T) {
	container := newContainerForTest(t)

	version1 := mustCreateNext(t, container)
	mustCreateResource(t, version1, "file:///shared.txt", FromReader(strings.NewReader("first")))

	version2 := mustCreateNext(t, container)
	copied := version2.ResourceByURI("file:///shared.txt")
	if !version2.RemoveResource(copied) {
		t.Fatal("RemoveResource of the copied resource failed")
	}
	second := mustCreateResource(t, version2, "file:///SHARED.txt", FromReader(strings.NewReader("second")))
	if err := second.SetURI("file:///shared.txt"); err != nil {
		t.Fatalf("SetURI: %v", err)
	}

	output := filepath.Join(t.TempDir(), "dedup.acs")
	if err := container.WritePackageFile(output); err != nil {
		t.Fatalf("WritePackageFile: %v", err)
	}

	var shared []string
	for _, entry := range testutil.ReadPackage(t, output) {
		if entry.Name == "shared.txt" {
			shared = append(shared, entry.Content)
		}
	}
	if !reflect.DeepEqual(shared, []string{"first"}) {
		t.Errorf("shared.txt entries = %q, want exactly [first]", shared)
	}
	if second.Consumed() {
		t.Error("the later version's reader was consumed although its path was already written")
	}
}

func TestWritePackageFailsOnConsumedReader(t *testing.T) {
	container := newContainerForTest(t)
	toc := mustCreateNext(t, container)
	mustCreateResource(t, toc, "file:///once.txt", FromReader(strings.NewReader("once")))

	if err := container.WritePackage(&bytes.Buffer{}); err != nil {
		t.Fatalf("first WritePackage: %v", err)
	}
	err := container.WritePackage(&bytes.Buffer{})
	if !errors.Is(err, ErrSourceConsumed) {
		t.Errorf("second WritePackage = %v, want ErrSourceConsumed", err)
	}
}

func TestWritePackageFromNewContainer(t *testing.T) {
	container := newContainerForTest(t)
	toc := mustCreateNext(t, container)
	data := testutil.WriteFile(t, t.TempDir(), "sample.fcs", "FCS3.1 header")
	if _, err := toc.CreateFCSResource("file:///sample.fcs", FromFile(data)); err != nil {
		t.Fatalf("CreateFCSResource: %v", err)
	}
	if _, err := toc.CreateResource("file:///unsourced.txt", FromPackage(), ""); err != nil {
		t.Fatalf("CreateResource: %v", err)
	}

	err := container.WritePackage(&bytes.Buffer{})
	if !errors.Is(err, ErrNoPackage) {
		t.Errorf("WritePackage with an unsourced resource = %v, want ErrNoPackage", err)
	}

	toc.RemoveResource(toc.ResourceByURI("file:///unsourced.txt"))
	output := filepath.Join(t.TempDir(), "new.acs")
	if err := container.WritePackageFile(output); err != nil {
		t.Fatalf("WritePackageFile: %v", err)
	}
	entries := testutil.ReadPackage(t, output)
	if len(entries) != 2 || entries[0].Name != "TOC1.xml" || entries[1].Content != "FCS3.1 header" {
		t.Errorf("written entries = %+v", entries)
	}
}

func TestWritePackageZstd(t *testing.T) {
	config := DefaultConfig()
	config.TempDir = t.TempDir()
	config.Compression = ziparchive.Zstd
	container := NewContainer(config)
	defer container.Close()

	toc := mustCreateNext(t, container)
	mustCreateResource(t, toc, "file:///events.csv", FromReader(strings.NewReader(strings.Repeat("1,2,3\n", 1000))))

	output := filepath.Join(t.TempDir(), "zstd.acs")
	if err := container.WritePackageFile(output); err != nil {
		t.Fatalf("WritePackageFile: %v", err)
	}
	reopened := openForTest(t, output)
	content, err := reopened.ExtractToString("file:///events.csv")
	if err != nil {
		t.Fatalf("ExtractToString: %v", err)
	}
	if len(content) != 6000 {
		t.Errorf("extracted %d bytes, want 6000", len(content))
	}
}

func TestCloseRemovesTempFiles(t *testing.T) {
	config := DefaultConfig()
	config.TempDir = t.TempDir()
	container, err := Open(writeU937Package(t), config)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := container.CreateNextTableOfContents(); err != nil {
		t.Fatalf("CreateNextTableOfContents: %v", err)
	}

	staged, _ := os.ReadDir(config.TempDir)
	if len(staged) != 3 {
		t.Errorf("staged %d temp files, want 3 (two manifests and one derived version)", len(staged))
	}

	container.Close()
	remaining, _ := os.ReadDir(config.TempDir)
	if len(remaining) != 0 {
		t.Errorf("%d temp files remain after Close", len(remaining))
	}
}

func TestCloseClosesAttachedReaders(t *testing.T) {
	container := newContainerForTest(t)
	toc := mustCreateNext(t, container)
	reader := &closeCounter{Reader: strings.NewReader("data")}
	mustCreateResource(t, toc, "file:///data.bin", FromReader(reader))

	container.Close()
	container.Close()
	if reader.closes != 1 {
		t.Errorf("reader closed %d times, want 1", reader.closes)
	}
}
