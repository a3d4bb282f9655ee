// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"errors"
	"strings"
	"testing"
)

func TestParseManifestVersion(t *testing.T) {
	valid := map[string]int{
		"TOC1.xml":   1,
		"TOC2.xml":   2,
		"TOC10.xml":  10,
		"TOC007.xml": 7,
	}
	for name, want := range valid {
		got, err := ParseManifestVersion(name)
		if err != nil || got != want {
			t.Errorf("ParseManifestVersion(%q) = %d, %v; want %d", name, got, err, want)
		}
	}

	for _, name := range []string{
		"TOC.xml", "TOC0.xml", "TOC-1.xml", "TOC+1.xml", "TOC1a.xml",
		"TOC 1.xml", "TOC1.XML", "toc1.xml", "TOC1.xml.bak", "data.xml",
		"TOC99999999999999999999.xml",
	} {
		if _, err := ParseManifestVersion(name); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("ParseManifestVersion(%q) = %v, want ErrInvalidIndex", name, err)
		}
	}
}

func TestIsManifestName(t *testing.T) {
	tests := map[string]bool{
		"TOC1.xml":     true,
		"TOCx.xml":     true,
		"TOC.xml":      true,
		"TO.xml":       false,
		"dir/TOC1.xml": false,
		"TOC1.xml/":    false,
		"TOC1":         false,
	}
	for name, want := range tests {
		if got := IsManifestName(name); got != want {
			t.Errorf("IsManifestName(%q) = %v, want %v", name, got, want)
		}
	}
	if ManifestName(12) != "TOC12.xml" {
		t.Errorf("ManifestName(12) = %q", ManifestName(12))
	}
}

func TestFileURI(t *testing.T) {
	tests := map[string]string{
		"a.fcs":               "file:///a.fcs",
		"/a.fcs":              "file:///a.fcs",
		"data/run 1/a.fcs":    "file:///data/run%201/a.fcs",
		"attachments/fig.png": "file:///attachments/fig.png",
	}
	for name, want := range tests {
		got := FileURI(name)
		if got != want {
			t.Errorf("FileURI(%q) = %q, want %q", name, got, want)
		}
		path, ok := packagePath(got)
		if !ok || path != strings.TrimPrefix(name, "/") {
			t.Errorf("packagePath(FileURI(%q)) = %q, %v", name, path, ok)
		}
	}
}

func TestPackagePathOfNonFileURIs(t *testing.T) {
	for _, uri := range []string{"http://example.org/a.fcs", "urn:uuid:1234", "ftp://host/a"} {
		if path, ok := packagePath(uri); ok {
			t.Errorf("packagePath(%q) = %q, want no mapping", uri, path)
		}
	}
	if path, ok := packagePath("file://host"); !ok || path != "" {
		t.Errorf("packagePath(file://host) = %q, %v; want empty mapping", path, ok)
	}
}

func TestNewURN(t *testing.T) {
	first, second := NewURN(), NewURN()
	if !strings.HasPrefix(first, "urn:uuid:") {
		t.Errorf("NewURN() = %q, want urn:uuid: prefix", first)
	}
	if first == second {
		t.Errorf("NewURN() repeated %q", first)
	}
	if err := ValidateURI(first); err != nil {
		t.Errorf("ValidateURI(NewURN()) = %v", err)
	}
}

func TestValidateURI(t *testing.T) {
	for _, uri := range []string{
		"file:///a.fcs", "FILE:///a.fcs", "http://example.org", "https://example.org/x",
		"ftp://example.org/pub", "urn:isbn:0451450523",
	} {
		if err := ValidateURI(uri); err != nil {
			t.Errorf("ValidateURI(%q) = %v", uri, err)
		}
	}
	for _, uri := range []string{"", "a.fcs", "/abs/path", "mailto:x@example.org", "javascript:alert(1)", "%zz"} {
		if err := ValidateURI(uri); !errors.Is(err, ErrInvalidURIScheme) {
			t.Errorf("ValidateURI(%q) = %v, want ErrInvalidURIScheme", uri, err)
		}
	}
}

func TestEntryName(t *testing.T) {
	if name, ok := EntryName("file:///data/run%201/a.fcs"); !ok || name != "data/run 1/a.fcs" {
		t.Errorf("EntryName = %q, %v", name, ok)
	}
	if _, ok := EntryName("https://example.org/a.fcs"); ok {
		t.Error("EntryName accepted an https URI")
	}
}
