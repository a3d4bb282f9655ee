// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for ACS packages.
//
// [WriteFile] drops a file with fixed content into a directory and
// returns its path. Tests use it for local-file content sources and
// configuration files.
//
// [WritePackage] builds a zip package from a list of [PackageEntry]
// values in the order given. Entry order matters for ACS packages:
// scans are forward-only and the first matching entry wins, so tests
// that exercise ordering need to control it exactly. [ReadPackage] is
// the inverse, returning every entry's name and content in archive
// order.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
