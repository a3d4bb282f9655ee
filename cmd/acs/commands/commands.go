// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the acs command tree.
package commands

import "github.com/cytobank/acs/cmd/acs/cli"

// Root returns the complete acs command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "acs",
		Description: `acs: inspect and edit Archival Cytometry Standard packages.

An ACS package is a zip archive of data files plus versioned tables of
contents (TOC1.xml, TOC2.xml, ...). Every edit adds a version; older
versions are kept. Configuration is read from the file named by
$ACS_CONFIG or --config.`,
		Subcommands: []*cli.Command{
			versionsCommand(),
			showCommand(),
			inventoryCommand(),
			extractCommand(),
			addCommand(),
			annotateCommand(),
			diffCommand(),
			formatsCommand(),
			versionCommand(),
		},
	}
}
