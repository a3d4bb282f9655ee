// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/cmd/acs/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own result (diff, formats) return
		// an ExitError; there is nothing more to say.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCodeFor(err))
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
