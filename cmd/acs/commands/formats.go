// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
)

func formatsCommand() *cli.Command {
	var params struct {
		cli.OutputFormat
	}

	return &cli.Command{
		Name:    "formats",
		Summary: "Show or check supported ACS format versions",
		Description: `Without arguments, list the ACS specification versions this tool reads
and writes. With a version argument, report whether it is supported;
patch releases of a supported version are. Exits with status 1 for an
unsupported version.`,
		Usage: "acs formats [version] [flags]",
		Examples: []cli.Example{
			{Description: "Check a version", Command: "acs formats 1.0.2"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 0, 1, "acs formats [version]"); err != nil {
				return err
			}
			if len(args) == 0 {
				versions := acs.SupportedFormatVersions()
				if done, err := params.Emit(os.Stdout, versions); done {
					return err
				}
				_, err := fmt.Fprintln(os.Stdout, strings.Join(versions, "\n"))
				return err
			}
			return checkFormat(os.Stdout, args[0])
		},
	}
}

func checkFormat(w io.Writer, version string) error {
	supported, err := acs.SupportsFormatVersion(version)
	if err != nil {
		return cli.Validation("%w", err)
	}
	if !supported {
		fmt.Fprintf(w, "%s: not supported (supported: %s)\n", version, strings.Join(acs.SupportedFormatVersions(), ", "))
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintf(w, "%s: supported\n", version)
	return nil
}
