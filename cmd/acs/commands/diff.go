// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
)

type diffParams struct {
	configParams
	cli.OutputFormat
}

// diffReport is the result of comparing two packages by content.
type diffReport struct {
	VersionA int      `json:"version_a,omitempty"`
	VersionB int      `json:"version_b,omitempty"`
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Changed  []string `json:"changed"`
}

// Empty reports whether the packages hold the same entries with the
// same content.
func (r *diffReport) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

func diffCommand() *cli.Command {
	var params diffParams

	return &cli.Command{
		Name:    "diff",
		Summary: "Compare the entries of two packages",
		Description: `Compare two packages entry by entry using BLAKE3 digests of the
uncompressed content. Entries only in the second package are added,
entries only in the first are removed, and entries in both with
different content are changed. Archive compression does not matter.

Exits with status 1 when the packages differ.`,
		Usage: "acs diff <package-a> <package-b> [flags]",
		Examples: []cli.Example{
			{Description: "What did the last edit touch", Command: "acs diff experiment.orig.acs experiment.acs"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 2, 2, "acs diff <package-a> <package-b>"); err != nil {
				return err
			}
			env, err := params.environment()
			if err != nil {
				return err
			}
			env.config.DigestInventory = true

			first, err := env.open(args[0])
			if err != nil {
				return err
			}
			defer first.Close()
			second, err := env.open(args[1])
			if err != nil {
				return err
			}
			defer second.Close()

			report := comparePackages(first, second)
			done, err := params.Emit(os.Stdout, report)
			if !done {
				err = printDiff(os.Stdout, report)
			}
			if err != nil {
				return err
			}
			if !report.Empty() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// comparePackages compares the digest inventories of two containers.
// Names are reported in the order of the package they come from.
func comparePackages(first, second *acs.Container) *diffReport {
	report := compareInventories(first.Inventory(), second.Inventory())
	report.VersionA = first.CurrentVersion()
	report.VersionB = second.CurrentVersion()
	return report
}

// compareInventories reports entries added to, removed from, or changed
// between two inventories. An entry changed when its size differs, or
// when both sides carry a digest and the digests differ.
func compareInventories(first, second []acs.InventoryEntry) *diffReport {
	report := &diffReport{
		Added:   []string{},
		Removed: []string{},
		Changed: []string{},
	}

	inSecond := make(map[string]acs.InventoryEntry)
	for _, entry := range second {
		inSecond[entry.Name] = entry
	}
	inFirst := make(map[string]bool)
	for _, entry := range first {
		inFirst[entry.Name] = true
		other, ok := inSecond[entry.Name]
		switch {
		case !ok:
			report.Removed = append(report.Removed, entry.Name)
		case other.Size != entry.Size:
			report.Changed = append(report.Changed, entry.Name)
		case !other.Digest.IsZero() && !entry.Digest.IsZero() && other.Digest != entry.Digest:
			report.Changed = append(report.Changed, entry.Name)
		}
	}
	for _, entry := range second {
		if !inFirst[entry.Name] {
			report.Added = append(report.Added, entry.Name)
		}
	}
	return report
}

func printDiff(w io.Writer, report *diffReport) error {
	if report.VersionA != report.VersionB {
		fmt.Fprintf(w, "current version %d -> %d\n", report.VersionA, report.VersionB)
	}
	for _, name := range report.Removed {
		fmt.Fprintf(w, "- %s\n", name)
	}
	for _, name := range report.Added {
		fmt.Fprintf(w, "+ %s\n", name)
	}
	for _, name := range report.Changed {
		fmt.Fprintf(w, "~ %s\n", name)
	}
	return nil
}
