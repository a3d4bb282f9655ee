// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// supportedFormats are the ACS specification versions this package
// reads and writes.
var supportedFormats = []string{"1.0"}

// SupportedFormatVersions returns the supported ACS specification
// versions.
func SupportedFormatVersions() []string {
	return append([]string(nil), supportedFormats...)
}

// SupportsFormatVersion reports whether version names a supported
// ACS specification version. Patch releases of a supported version
// ("1.0.2") are accepted; other minor or major versions are not.
func SupportsFormatVersion(version string) (bool, error) {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("parsing format version %q: %w", version, err)
	}
	for _, supported := range supportedFormats {
		constraint, err := semver.NewConstraint("~" + supported)
		if err != nil {
			return false, fmt.Errorf("supported format %q: %w", supported, err)
		}
		if constraint.Check(parsed) {
			return true, nil
		}
	}
	return false, nil
}
