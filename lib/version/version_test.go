// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"testing"
)

func TestCurrent(t *testing.T) {
	info := Current()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if len(info.FormatVersions) == 0 {
		t.Error("FormatVersions is empty")
	}
	if !info.Valid() {
		t.Errorf("default version %q is not a semantic version", info.Version)
	}
}

func TestApplyBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "3f2a9c1b0d4e5f60718293a4b5c6d7e8f9a0b1c2"},
		{Key: "vcs.time", Value: "2026-02-10T09:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	var info Info
	applyBuildSettings(&info, settings)
	if info.Commit != "3f2a9c1b0d4e" {
		t.Errorf("Commit = %q, want %q", info.Commit, "3f2a9c1b0d4e")
	}
	if info.BuildTime != "2026-02-10T09:00:00Z" {
		t.Errorf("BuildTime = %q", info.BuildTime)
	}
	if !info.Dirty {
		t.Error("Dirty = false, want true")
	}

	stamped := Info{Commit: "abc1234", BuildTime: "release"}
	applyBuildSettings(&stamped, settings)
	if stamped.Commit != "abc1234" || stamped.BuildTime != "release" {
		t.Errorf("stamped values overwritten: %+v", stamped)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "1.2.0"}, "1.2.0 (unknown)"},
		{Info{Version: "1.2.0", Commit: "abc1234", Dirty: true}, "1.2.0 (abc1234-dirty)"},
		{Info{Version: "1.2.0", Commit: "abc1234", BuildTime: "2026-02-10"}, "1.2.0 (abc1234, 2026-02-10)"},
	}
	for _, test := range tests {
		if got := test.info.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestValid(t *testing.T) {
	if (Info{Version: "v1"}).Valid() {
		t.Error("Valid(v1) = true, want false")
	}
	if !(Info{Version: "2.0.0-rc.1"}).Valid() {
		t.Error("Valid(2.0.0-rc.1) = false, want true")
	}
}
