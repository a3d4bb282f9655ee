// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
	"github.com/cytobank/acs/lib/codec"
)

type inventoryParams struct {
	configParams
	cli.OutputFormat
	Digest bool   `flag:"digest,d" desc:"compute a BLAKE3 digest of every entry"`
	Check  string `flag:"check" desc:"compare with an inventory saved by --json or --cbor (.cbor) and exit 1 on differences"`
}

func inventoryCommand() *cli.Command {
	var params inventoryParams

	return &cli.Command{
		Name:    "inventory",
		Summary: "List the entries of a package",
		Description: `List every file entry of an ACS package in archive order with its
uncompressed size. Directory entries are omitted.

With --digest (or inventory.digest in the configuration) each entry is
hashed with keyed BLAKE3 while the package is read.

With --check, the package is compared with an inventory saved earlier
and the differences are reported the way "acs diff" reports them.
Digests are compared only for entries whose saved record has one.`,
		Usage: "acs inventory <package> [flags]",
		Examples: []cli.Example{
			{Description: "List entries with digests", Command: "acs inventory --digest experiment.acs"},
			{Description: "Save an inventory", Command: "acs inventory --digest --cbor experiment.acs > experiment.cbor"},
			{Description: "Verify against it later", Command: "acs inventory --check experiment.cbor experiment.acs"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "acs inventory <package>"); err != nil {
				return err
			}
			env, err := params.environment()
			if err != nil {
				return err
			}
			var saved []acs.InventoryEntry
			if params.Check != "" {
				if saved, err = loadInventory(params.Check); err != nil {
					return err
				}
				env.config.DigestInventory = true
			}
			if params.Digest {
				env.config.DigestInventory = true
			}
			container, err := env.open(args[0])
			if err != nil {
				return err
			}
			defer container.Close()

			inventory := container.Inventory()
			if params.Check != "" {
				return checkInventory(os.Stdout, &params.OutputFormat, saved, inventory)
			}
			if done, err := params.Emit(os.Stdout, inventory); done {
				return err
			}
			return printInventory(os.Stdout, inventory)
		},
	}
}

func printInventory(w io.Writer, inventory []acs.InventoryEntry) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, entry := range inventory {
		if !entry.Digest.IsZero() {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", entry.Size, entry.Digest, entry.Name)
		} else {
			fmt.Fprintf(tw, "%d\t%s\n", entry.Size, entry.Name)
		}
	}
	return tw.Flush()
}

// loadInventory reads an inventory written by "acs inventory --cbor"
// (a .cbor file) or "acs inventory --json" (anything else).
func loadInventory(path string) ([]acs.InventoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(fmt.Errorf("reading inventory: %w", err))
	}
	var inventory []acs.InventoryEntry
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		err = codec.Unmarshal(data, &inventory)
	} else {
		err = json.Unmarshal(data, &inventory)
	}
	if err != nil {
		return nil, cli.Validation("parsing inventory %s: %w", path, err).
			WithHint("Save inventories with \"acs inventory --json\" or \"--cbor\" into a .cbor file.")
	}
	return inventory, nil
}

// checkInventory reports how current differs from saved and returns an
// exit status of 1 when it does.
func checkInventory(w io.Writer, output *cli.OutputFormat, saved, current []acs.InventoryEntry) error {
	report := compareInventories(saved, current)
	done, err := output.Emit(w, report)
	if !done {
		err = printDiff(w, report)
	}
	if err != nil {
		return err
	}
	if !report.Empty() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
