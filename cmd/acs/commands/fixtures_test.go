// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
	"github.com/cytobank/acs/lib/config"
	"github.com/cytobank/acs/lib/testutil"
)

const fixtureManifest = `<?xml version="1.0" encoding="UTF-8"?>
<toc:TOC xmlns:toc="http://www.isac-net.org/std/ACS/1.0/toc/">
  <toc:file toc:URI="file:///a.fcs" toc:mimeType="application/vnd.isac.fcs"/>
  <toc:file toc:URI="file:///gates.xml" toc:mimeType="application/xml">
    <toc:associated toc:with="file:///a.fcs" toc:relationship="gating description"/>
  </toc:file>
</toc:TOC>
`

// writeFixture writes a one-version package holding a data file and a
// gating description associated with it.
func writeFixture(t *testing.T, dataContent string) string {
	t.Helper()
	return testutil.WritePackage(t, "fixture.acs",
		testutil.PackageEntry{Name: "TOC1.xml", Content: fixtureManifest},
		testutil.PackageEntry{Name: "a.fcs", Content: dataContent},
		testutil.PackageEntry{Name: "gates.xml", Content: "<gates/>"},
	)
}

func testEnvironment(t *testing.T) *environment {
	t.Helper()
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	return newEnvironment(cfg, slog.New(slog.DiscardHandler))
}

func openForTest(t *testing.T, env *environment, path string) *acs.Container {
	t.Helper()
	container, err := env.open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	t.Cleanup(container.Close)
	return container
}

// requireCategory fails unless err is a ToolError of the given category.
func requireCategory(t *testing.T, err error, want cli.ErrorCategory) {
	t.Helper()
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) {
		t.Fatalf("error %v (%T) is not a ToolError", err, err)
	}
	if toolError.Category != want {
		t.Fatalf("category = %q, want %q (error: %v)", toolError.Category, want, err)
	}
}
