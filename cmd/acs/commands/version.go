// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/version"
)

func versionCommand() *cli.Command {
	var params struct {
		cli.OutputFormat
	}

	return &cli.Command{
		Name:    "version",
		Summary: "Show build information",
		Usage:   "acs version [flags]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 0, 0, "acs version"); err != nil {
				return err
			}
			info := version.Current()
			if done, err := params.Emit(os.Stdout, info); done {
				return err
			}
			_, err := fmt.Fprintf(os.Stdout, "acs %s\n  Go: %s\n  Platform: %s\n", info, info.GoVersion, info.Platform)
			return err
		},
	}
}
