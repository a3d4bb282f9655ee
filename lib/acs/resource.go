// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FCS (Flow Cytometry Standard) data files are the primary content of
// most packages.
const (
	FCSMimeType  = "application/vnd.isac.fcs"
	FCSExtension = ".fcs"
)

// Resource is one file entry of a table of contents: a URI, optional
// metadata, typed associations to other resources, annotations, and a
// content source.
//
// A resource belongs to at most one table of contents. Resources are
// created through [TableOfContents.CreateResource] or by parsing a
// manifest; after [TableOfContents.RemoveResource] the resource is
// detached, its reader source is closed, and its associations can no
// longer be resolved.
type Resource struct {
	uri          string
	mimeType     string
	description  string
	associations []*Association
	annotations  Annotations

	toc      *TableOfContents
	source   Source
	consumed bool
	closed   bool
}

// URI returns the resource URI as given.
func (r *Resource) URI() string { return r.uri }

// MimeType returns the MIME type, or "" if unset.
func (r *Resource) MimeType() string { return r.mimeType }

// Description returns the description, or "" if unset.
func (r *Resource) Description() string { return r.description }

// TableOfContents returns the owning table of contents, or nil if the
// resource has been removed.
func (r *Resource) TableOfContents() *TableOfContents { return r.toc }

// Container returns the container the owning table of contents is
// attached to, or nil.
func (r *Resource) Container() *Container {
	if r.toc == nil {
		return nil
	}
	return r.toc.container
}

// Annotations returns the resource's annotation collection.
func (r *Resource) Annotations() *Annotations { return &r.annotations }

// Source returns the attached content source.
func (r *Resource) Source() Source { return r.source }

// SetURI changes the resource URI. The new URI must use an allowed
// scheme and must not collide, ignoring case, with a different
// resource in the same table of contents. On error the URI is
// unchanged.
func (r *Resource) SetURI(uri string) error {
	if err := ValidateURI(uri); err != nil {
		return err
	}
	if r.toc != nil {
		if err := r.toc.rename(r, uri); err != nil {
			return err
		}
	}
	r.uri = uri
	return nil
}

// SetMimeType sets the MIME type. Surrounding whitespace is trimmed;
// a blank value unsets it.
func (r *Resource) SetMimeType(mimeType string) {
	r.mimeType = strings.TrimSpace(mimeType)
}

// SetDescription sets the description. A blank value unsets it;
// otherwise the text is stored as given.
func (r *Resource) SetDescription(description string) {
	if strings.TrimSpace(description) == "" {
		r.description = ""
		return
	}
	r.description = description
}

// Associations returns the resource's outgoing associations in order.
func (r *Resource) Associations() []*Association {
	return append([]*Association(nil), r.associations...)
}

// HasAssociations reports whether the resource has any outgoing
// associations.
func (r *Resource) HasAssociations() bool { return len(r.associations) > 0 }

// CreateAssociation adds an association from r to the resource to,
// labelled with relationship. The label is trimmed and lower-cased.
// Errors wrap [ErrInvalidAssociation] for a blank label or nil target,
// and [ErrInvalidURIScheme] for a target with a disallowed URI.
func (r *Resource) CreateAssociation(to *Resource, relationship string) (*Association, error) {
	association, err := newAssociation(r, to, relationship)
	if err != nil {
		return nil, err
	}
	r.associations = append(r.associations, association)
	return association, nil
}

// RemoveAssociation removes association and reports whether it was
// one of r's associations.
func (r *Resource) RemoveAssociation(association *Association) bool {
	for i, existing := range r.associations {
		if existing == association {
			r.associations = append(r.associations[:i], r.associations[i+1:]...)
			association.from = nil
			return true
		}
	}
	return false
}

// IsInternal reports whether the content lives inside the package,
// that is, whether the URI uses the file scheme. Unparsable URIs are
// not internal.
func (r *Resource) IsInternal() bool {
	return isFileURI(r.uri)
}

// IsExternalReference reports whether the resource only points at
// content outside the package. External references are never written
// into a package.
func (r *Resource) IsExternalReference() bool {
	return !r.IsInternal()
}

// PackagePath returns the package entry name for an internal
// resource, or "" for an external reference.
func (r *Resource) PackagePath() string {
	path, _ := packagePath(r.uri)
	return path
}

// IsFCSFile reports whether the resource is an FCS data file, by MIME
// type or by a ".fcs" path suffix.
func (r *Resource) IsFCSFile() bool {
	if strings.EqualFold(r.mimeType, FCSMimeType) {
		return true
	}
	path, ok := packagePath(r.uri)
	if !ok {
		path = r.uri
	}
	return strings.HasSuffix(strings.ToLower(path), FCSExtension)
}

// WriteContent streams the resource content to w. Content comes from
// the attached reader, the attached local file, or the original
// package, in that order of preference.
//
// A reader source is consumed on the first call whether or not the
// copy succeeds; every later call fails with [ErrSourceConsumed]. For
// an external reference without an attached source nothing is written.
func (r *Resource) WriteContent(w io.Writer) error {
	switch {
	case r.source.reader != nil:
		if r.consumed {
			return fmt.Errorf("reading %s: %w", r.uri, ErrSourceConsumed)
		}
		r.consumed = true
		if _, err := io.Copy(w, r.source.reader); err != nil {
			return fmt.Errorf("copying content of %s: %w", r.uri, err)
		}
		return nil

	case r.source.path != "":
		file, err := os.Open(r.source.path)
		if err != nil {
			return fmt.Errorf("opening content of %s: %w", r.uri, err)
		}
		defer file.Close()
		if _, err := io.Copy(w, file); err != nil {
			return fmt.Errorf("copying content of %s from %s: %w", r.uri, r.source.path, err)
		}
		return nil

	default:
		if r.IsExternalReference() {
			return nil
		}
		container := r.Container()
		if container == nil {
			return fmt.Errorf("resolving content of %s: %w", r.uri, ErrNoContentSource)
		}
		return container.ExtractURI(r.uri, w)
	}
}

// WriteContentToFile writes the resource content to a new file at
// path.
func (r *Resource) WriteContentToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.WriteContent(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ContentString returns the resource content as a string. It follows
// the same resolution rules as [Resource.WriteContent], including
// consuming a reader source.
func (r *Resource) ContentString() (string, error) {
	var builder strings.Builder
	if err := r.WriteContent(&builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Consumed reports whether a reader source has been read.
func (r *Resource) Consumed() bool { return r.consumed }

// Close closes an attached reader source if it is an io.Closer and
// has not been closed yet. Errors are ignored.
func (r *Resource) Close() {
	if r.closed || r.source.reader == nil {
		return
	}
	r.closed = true
	if closer, ok := r.source.reader.(io.Closer); ok {
		closer.Close()
	}
}
