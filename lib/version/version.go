// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the acs binary.
//
// Release builds stamp the variables below with -ldflags:
//
//	go build -ldflags "-X github.com/cytobank/acs/lib/version.Version=1.2.0" ./cmd/acs
//
// Development builds fall back to the VCS settings the Go toolchain
// records in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"

	"github.com/cytobank/acs/lib/acs"
)

// Set via -ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version        string   `json:"version"`
	Commit         string   `json:"commit,omitempty"`
	Dirty          bool     `json:"dirty,omitempty"`
	BuildTime      string   `json:"build_time,omitempty"`
	GoVersion      string   `json:"go_version"`
	Platform       string   `json:"platform"`
	FormatVersions []string `json:"format_versions"`
}

// Current returns the build information of the running binary.
func Current() Info {
	info := Info{
		Version:        Version,
		Commit:         GitCommit,
		BuildTime:      BuildTime,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		FormatVersions: acs.SupportedFormatVersions(),
	}
	if build, ok := debug.ReadBuildInfo(); ok {
		applyBuildSettings(&info, build.Settings)
	}
	return info
}

// applyBuildSettings fills commit, dirty flag and build time from the
// toolchain's VCS stamps. Values stamped with -ldflags win.
func applyBuildSettings(info *Info, settings []debug.BuildSetting) {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = shortCommit(setting.Value)
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = setting.Value
			}
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		}
	}
}

func shortCommit(revision string) string {
	if len(revision) > 12 {
		return revision[:12]
	}
	return revision
}

// Valid reports whether the stamped version is a semantic version.
func (i Info) Valid() bool {
	_, err := semver.StrictNewVersion(i.Version)
	return err == nil
}

// String formats the information on one line for --version style
// output, for example "1.2.0 (3f2a9c1b0d4e-dirty, 2026-02-10T09:00:00Z)".
func (i Info) String() string {
	commit := i.Commit
	if commit == "" {
		commit = "unknown"
	}
	if i.Dirty {
		commit += "-dirty"
	}
	if i.BuildTime == "" {
		return fmt.Sprintf("%s (%s)", i.Version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", i.Version, commit, i.BuildTime)
}
