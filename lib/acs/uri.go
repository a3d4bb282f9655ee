// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// URI schemes a resource may use. Only [FileScheme] denotes content
// stored inside the package.
const (
	FileScheme  = "file"
	HTTPScheme  = "http"
	HTTPSScheme = "https"
	FTPScheme   = "ftp"
	URNScheme   = "urn"
)

var allowedSchemes = map[string]bool{
	FileScheme:  true,
	HTTPScheme:  true,
	HTTPSScheme: true,
	FTPScheme:   true,
	URNScheme:   true,
}

// AllowedSchemes returns the accepted URI schemes in a stable order.
func AllowedSchemes() []string {
	return []string{FileScheme, HTTPScheme, HTTPSScheme, FTPScheme, URNScheme}
}

// ValidateURI checks that uri parses and uses an allowed scheme.
// Errors wrap [ErrInvalidURIScheme].
func ValidateURI(uri string) error {
	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: parsing %q: %v", ErrInvalidURIScheme, uri, err)
	}
	if parsed.Scheme == "" {
		return fmt.Errorf("%w: %q has no scheme", ErrInvalidURIScheme, uri)
	}
	if !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return fmt.Errorf("%w: %q uses scheme %q (allowed: %s)",
			ErrInvalidURIScheme, uri, parsed.Scheme, strings.Join(AllowedSchemes(), ", "))
	}
	return nil
}

// uriKey is the uniqueness key of a URI within one table of contents.
func uriKey(uri string) string {
	return strings.ToLower(uri)
}

// isFileURI reports whether uri parses with the file scheme. It never
// fails; anything unparsable is not a file URI.
func isFileURI(uri string) bool {
	parsed, err := url.Parse(uri)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Scheme, FileScheme)
}

// packagePath maps a file URI to the name of its package entry: the
// decoded URI path with one leading slash removed. It returns false
// for anything that is not a file URI. A file URI with an authority
// and no path ("file://foo") maps to the empty name and so never
// matches an entry.
func packagePath(uri string) (string, bool) {
	parsed, err := url.Parse(uri)
	if err != nil || !strings.EqualFold(parsed.Scheme, FileScheme) {
		return "", false
	}
	return strings.TrimPrefix(parsed.Path, "/"), true
}

// EntryName returns the package entry a file URI points at. It
// returns false for URIs with any other scheme or that do not parse.
func EntryName(uri string) (string, bool) {
	return packagePath(uri)
}

// FileURI returns the file URI for a package entry name.
func FileURI(entryName string) string {
	u := url.URL{Scheme: FileScheme, Path: "/" + strings.TrimPrefix(entryName, "/")}
	return u.String()
}

// NewURN returns a fresh urn:uuid URI, suitable for an external
// reference that has no natural location.
func NewURN() string {
	return uuid.New().URN()
}
