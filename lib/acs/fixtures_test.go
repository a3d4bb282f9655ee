// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cytobank/acs/lib/digest"
	"github.com/cytobank/acs/lib/testutil"
)

// entryDigest is the inventory digest of content.
func entryDigest(content string) digest.Digest {
	hasher := digest.NewHasher()
	hasher.Write([]byte(content))
	return hasher.Sum()
}

// manifestXML wraps file and annotation elements in a manifest root.
func manifestXML(body ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<toc:TOC xmlns:toc="` + Namespace + `">
` + strings.Join(body, "\n") + `
</toc:TOC>
`
}

func fcsFileElement(name string) string {
	return fmt.Sprintf(`<toc:file toc:URI="file:///%s" toc:mimeType="%s"/>`, name, FCSMimeType)
}

// u937Names are the data files of the two-version fixture. Version 1
// describes the first one; version 2 describes all fifteen.
func u937Names() []string {
	names := make([]string, 15)
	for i := range names {
		names[i] = fmt.Sprintf("u937_%02d.fcs", i+1)
	}
	return names
}

func u937Content(name string) string {
	return "FCS3.0 list-mode events for " + name
}

// writeU937Package builds a package with TOC1.xml describing one
// resource and TOC2.xml describing fifteen.
func writeU937Package(t *testing.T) string {
	t.Helper()

	names := u937Names()
	var v2 []string
	for _, name := range names {
		v2 = append(v2, fcsFileElement(name))
	}

	entries := []testutil.PackageEntry{
		{Name: "TOC1.xml", Content: manifestXML(fcsFileElement(names[0]))},
		{Name: "TOC2.xml", Content: manifestXML(v2...)},
	}
	for _, name := range names {
		entries = append(entries, testutil.PackageEntry{Name: name, Content: u937Content(name)})
	}
	return testutil.WritePackage(t, "u937.acs", entries...)
}

func openForTest(t *testing.T, path string) *Container {
	t.Helper()

	config := DefaultConfig()
	config.TempDir = t.TempDir()
	container, err := Open(path, config)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	t.Cleanup(container.Close)
	return container
}

func newContainerForTest(t *testing.T) *Container {
	t.Helper()

	config := DefaultConfig()
	config.TempDir = t.TempDir()
	container := NewContainer(config)
	t.Cleanup(container.Close)
	return container
}

func mustCreateNext(t *testing.T, container *Container) *TableOfContents {
	t.Helper()

	toc, err := container.CreateNextTableOfContents()
	if err != nil {
		t.Fatalf("CreateNextTableOfContents: %v", err)
	}
	return toc
}

func mustCreateResource(t *testing.T, toc *TableOfContents, uri string, source Source) *Resource {
	t.Helper()

	resource, err := toc.CreateResource(uri, source, "")
	if err != nil {
		t.Fatalf("CreateResource(%s): %v", uri, err)
	}
	return resource
}
