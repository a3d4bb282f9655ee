// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Mime     string   `flag:"mime" desc:"mime type"`
		New      bool     `flag:"new,n" desc:"create a new package"`
		Version  int      `flag:"version" desc:"manifest version"`
		Keywords []string `flag:"keyword,k" desc:"name=value keyword"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--mime", "application/vnd.isac.fcs",
		"-n",
		"--version", "3",
		"-k", "operator=J. Smith, PhD",
		"--keyword", "site=lab 2",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Mime != "application/vnd.isac.fcs" {
		t.Errorf("Mime = %q", p.Mime)
	}
	if !p.New {
		t.Error("New = false, want true")
	}
	if p.Version != 3 {
		t.Errorf("Version = %d, want 3", p.Version)
	}
	if len(p.Keywords) != 2 || p.Keywords[0] != "operator=J. Smith, PhD" || p.Keywords[1] != "site=lab 2" {
		t.Errorf("Keywords = %q, want each occurrence kept whole", p.Keywords)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Level   int      `flag:"level" default:"6"`
		Digest  bool     `flag:"digest" default:"true"`
		Formats []string `flag:"format" default:"json,cbor"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if p.Level != 6 || !p.Digest || len(p.Formats) != 2 {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlags_Embedded(t *testing.T) {
	type params struct {
		OutputFormat
		Path string `flag:"path"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--json", "--path", "x"}); err != nil {
		t.Fatal(err)
	}
	if !p.OutputJSON || p.Path != "x" {
		t.Errorf("params = %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	type badDefault struct {
		Count int `flag:"count" default:"many"`
	}

	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"unsupported type", &unsupported{}, "unsupported type"},
		{"bad default", &badDefault{}, "default for --count"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags = %v, want error containing %q", err, test.want)
			}
		})
	}
}
