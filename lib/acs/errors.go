// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import "errors"

var (
	// ErrInvalidIndex reports a manifest that cannot be understood: a
	// manifest entry name whose version is not a positive decimal
	// integer, malformed XML, or a structural problem inside a
	// manifest. Parse errors wrap both this and the specific cause
	// (for example [ErrDuplicateResource]).
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInvalidArchive reports an I/O or format failure while
	// scanning the package itself.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrUnexpectedVersion reports an attempt to attach a table of
	// contents whose version is not exactly one past the current.
	ErrUnexpectedVersion = errors.New("unexpected table of contents version")

	// ErrDuplicateResource reports a URI that collides, ignoring
	// case, with another resource in the same table of contents.
	ErrDuplicateResource = errors.New("duplicate resource")

	// ErrInvalidAssociation reports a blank relationship label, a
	// missing target, or resolving an association whose source is no
	// longer part of a table of contents.
	ErrInvalidAssociation = errors.New("invalid association")

	// ErrInvalidURIScheme reports a URI that does not parse or whose
	// scheme is not one of file, http, https, ftp, or urn.
	ErrInvalidURIScheme = errors.New("invalid URI scheme")

	// ErrSourceConsumed reports a second attempt to read a resource
	// whose content came from a one-shot reader.
	ErrSourceConsumed = errors.New("content source already consumed")

	// ErrNoPackage reports an extraction from a container that was
	// not opened from a package.
	ErrNoPackage = errors.New("container has no package")

	// ErrNoContentSource reports a resource with neither an attached
	// source nor a container to extract from.
	ErrNoContentSource = errors.New("resource has no content source")
)
