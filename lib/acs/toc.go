// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// TableOfContents is one version of a package manifest: an ordered set
// of resources, unique by case-insensitive URI, plus annotations.
//
// Once a table of contents is attached to a [Container] it should be
// treated as fixed. To change a package, derive the next version with
// [Container.CreateNextTableOfContents] and edit that.
type TableOfContents struct {
	version   int
	container *Container

	resources []*Resource
	byKey     map[string]*Resource

	annotations Annotations

	// rootAttributes are the attributes of the manifest root element,
	// namespace declarations included, carried from the parsed
	// manifest so that a rewritten manifest declares the same
	// namespaces.
	rootAttributes []etree.Attr
}

func newTableOfContents(version int) *TableOfContents {
	return &TableOfContents{
		version: version,
		byKey:   make(map[string]*Resource),
	}
}

// NewTableOfContents returns an empty table of contents at version,
// built from the blank manifest template.
func NewTableOfContents(version int) *TableOfContents {
	toc, err := decodeManifest(strings.NewReader(blankManifest), version)
	if err != nil {
		panic("acs: blank manifest template does not parse: " + err.Error())
	}
	return toc
}

// ParseTableOfContents reads manifest XML from r as the table of
// contents at version. The result is not attached to a container.
func ParseTableOfContents(r io.Reader, version int) (*TableOfContents, error) {
	return decodeManifest(r, version)
}

// Version returns the manifest version.
func (t *TableOfContents) Version() int { return t.version }

// FileName returns the package entry name of this manifest.
func (t *TableOfContents) FileName() string { return ManifestName(t.version) }

// Container returns the container this table of contents is attached
// to, or nil.
func (t *TableOfContents) Container() *Container { return t.container }

// Annotations returns the manifest-level annotation collection.
func (t *TableOfContents) Annotations() *Annotations { return &t.annotations }

// ResourceCount returns the number of resources.
func (t *TableOfContents) ResourceCount() int { return len(t.resources) }

// Resource returns the resource at index i in insertion order.
func (t *TableOfContents) Resource(i int) *Resource { return t.resources[i] }

// Resources returns all resources in insertion order.
func (t *TableOfContents) Resources() []*Resource {
	return append([]*Resource(nil), t.resources...)
}

// ResourceByURI looks up a resource by URI, ignoring case. It returns
// nil if there is none.
func (t *TableOfContents) ResourceByURI(uri string) *Resource {
	return t.byKey[uriKey(uri)]
}

// CreateResource adds a resource with the given URI, content source
// and MIME type (blank for none). It fails with [ErrInvalidURIScheme]
// for a disallowed URI and with [ErrDuplicateResource] if a resource
// with the same URI, ignoring case, already exists; in both cases the
// table of contents is unchanged and ownership of the source stays
// with the caller.
func (t *TableOfContents) CreateResource(uri string, source Source, mimeType string) (*Resource, error) {
	if err := ValidateURI(uri); err != nil {
		return nil, err
	}
	resource := &Resource{uri: uri, source: source}
	resource.SetMimeType(mimeType)
	if err := t.attach(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// CreateFCSResource adds a resource with the FCS MIME type.
func (t *TableOfContents) CreateFCSResource(uri string, source Source) (*Resource, error) {
	return t.CreateResource(uri, source, FCSMimeType)
}

func (t *TableOfContents) attach(resource *Resource) error {
	key := uriKey(resource.uri)
	if _, exists := t.byKey[key]; exists {
		return fmt.Errorf("%w: %s already exists in %s", ErrDuplicateResource, resource.uri, t.FileName())
	}
	t.resources = append(t.resources, resource)
	t.byKey[key] = resource
	resource.toc = t
	return nil
}

// RemoveResource removes resource and reports whether it was present.
// The removed resource is detached from this table of contents and its
// reader source, if any, is closed.
func (t *TableOfContents) RemoveResource(resource *Resource) bool {
	if resource == nil {
		return false
	}
	for i, existing := range t.resources {
		if existing != resource {
			continue
		}
		t.resources = append(t.resources[:i], t.resources[i+1:]...)
		key := uriKey(resource.uri)
		if t.byKey[key] == resource {
			delete(t.byKey, key)
		}
		resource.toc = nil
		resource.Close()
		return true
	}
	return false
}

// rename re-keys resource under uri. It must run before the resource's
// own URI changes so that a collision leaves everything untouched.
func (t *TableOfContents) rename(resource *Resource, uri string) error {
	oldKey := uriKey(resource.uri)
	newKey := uriKey(uri)
	if existing, ok := t.byKey[newKey]; ok && existing != resource {
		return fmt.Errorf("%w: cannot rename %s to %s in %s", ErrDuplicateResource, resource.uri, uri, t.FileName())
	}
	if t.byKey[oldKey] == resource {
		delete(t.byKey, oldKey)
	}
	t.byKey[newKey] = resource
	return nil
}

// ResourcesAssociatedTo returns the resources with at least one
// association that resolves to target. A nil target yields nil; a
// target nothing points at yields an empty, non-nil slice.
func (t *TableOfContents) ResourcesAssociatedTo(target *Resource) []*Resource {
	if target == nil {
		return nil
	}
	matches := []*Resource{}
	for _, resource := range t.resources {
		if t.pointsTo(resource, target) {
			matches = append(matches, resource)
		}
	}
	return matches
}

func (t *TableOfContents) pointsTo(resource, target *Resource) bool {
	for _, association := range resource.associations {
		if t.ResourceByURI(association.target) == target {
			return true
		}
	}
	return false
}

// FCSFiles returns the FCS data files in insertion order.
func (t *TableOfContents) FCSFiles() []*Resource {
	var files []*Resource
	for _, resource := range t.resources {
		if resource.IsFCSFile() {
			files = append(files, resource)
		}
	}
	return files
}

// FCSFilesAssociatedTo returns the FCS data files with an association
// to target. Like [TableOfContents.ResourcesAssociatedTo], a nil
// target yields nil.
func (t *TableOfContents) FCSFilesAssociatedTo(target *Resource) []*Resource {
	associated := t.ResourcesAssociatedTo(target)
	if associated == nil {
		return nil
	}
	files := []*Resource{}
	for _, resource := range associated {
		if resource.IsFCSFile() {
			files = append(files, resource)
		}
	}
	return files
}

// ProjectWorkspaces returns the targets of every project/workspace
// association, each once, in order of first reference. Targets that do
// not resolve are skipped.
func (t *TableOfContents) ProjectWorkspaces() []*Resource {
	var workspaces []*Resource
	seen := make(map[*Resource]bool)
	for _, resource := range t.resources {
		for _, association := range resource.associations {
			if !association.IsProjectWorkspace() {
				continue
			}
			target := t.ResourceByURI(association.target)
			if target == nil || seen[target] {
				continue
			}
			seen[target] = true
			workspaces = append(workspaces, target)
		}
	}
	return workspaces
}

// WriteManifest writes the manifest XML to w.
func (t *TableOfContents) WriteManifest(w io.Writer) error {
	if _, err := encodeManifest(t).WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", t.FileName(), err)
	}
	return nil
}

// ManifestXML returns the manifest XML as a string.
func (t *TableOfContents) ManifestXML() (string, error) {
	var buffer bytes.Buffer
	if err := t.WriteManifest(&buffer); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// NextVersion returns an independent copy of this table of contents at
// version+1. The copy is made by writing the manifest out and parsing
// it back, so resources, associations and annotations share nothing
// with the original, and content sources are not carried over: the
// copied resources read their content from the package. The copy is
// not attached; pass it to [Container.AddTableOfContents].
func (t *TableOfContents) NextVersion() (*TableOfContents, error) {
	if t.container == nil {
		var buffer bytes.Buffer
		if err := t.WriteManifest(&buffer); err != nil {
			return nil, err
		}
		return decodeManifest(&buffer, t.version+1)
	}

	staged, err := t.container.tempFile("acs-next-*.xml")
	if err != nil {
		return nil, err
	}
	if err := t.WriteManifest(staged); err != nil {
		staged.Close()
		return nil, err
	}
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		staged.Close()
		return nil, fmt.Errorf("rewinding staged %s: %w", t.FileName(), err)
	}
	next, err := decodeManifest(staged, t.version+1)
	staged.Close()
	return next, err
}

// Close closes every resource's attached reader.
func (t *TableOfContents) Close() {
	for _, resource := range t.resources {
		resource.Close()
	}
}
