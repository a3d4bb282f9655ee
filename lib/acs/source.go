// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import "io"

// Source is where a resource's content comes from when a package is
// written or the resource is extracted. The zero value, also returned
// by [FromPackage], means the content is read from the original
// package by URI path.
type Source struct {
	reader io.Reader
	path   string
}

// FromReader attaches a one-shot reader. The content can be read
// exactly once over the resource's lifetime. If reader is also an
// io.Closer, closing the resource closes it.
func FromReader(reader io.Reader) Source {
	return Source{reader: reader}
}

// FromFile reads content from a local file, opened afresh each time
// the content is needed.
func FromFile(path string) Source {
	return Source{path: path}
}

// FromPackage resolves content from the original package.
func FromPackage() Source {
	return Source{}
}

// IsReader reports whether the source is a one-shot reader.
func (s Source) IsReader() bool { return s.reader != nil }

// Path returns the local file path, or "" if the source is not a file.
func (s Source) Path() string { return s.path }
