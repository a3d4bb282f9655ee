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

type showParams struct {
	configParams
	cli.OutputFormat
	Version int  `flag:"version,v" desc:"table of contents version (default: current)"`
	FCS     bool `flag:"fcs" desc:"list only FCS data files"`
	XML     bool `flag:"xml" desc:"print the manifest XML instead of a summary"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Describe the resources of one version",
		Description: `Describe the resources listed by one table of contents: URI, mime
type, description, associations and annotations. External references
are marked. The current version is shown unless --version is given.

With --xml the manifest is printed as it would be written.`,
		Usage: "acs show <package> [flags]",
		Examples: []cli.Example{
			{Description: "Show the current version", Command: "acs show experiment.acs"},
			{Description: "Show only data files of version 1", Command: "acs show --version 1 --fcs experiment.acs"},
			{Description: "Print the manifest", Command: "acs show --xml experiment.acs"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "acs show <package>"); err != nil {
				return err
			}
			env, err := params.environment()
			if err != nil {
				return err
			}
			container, err := env.open(args[0])
			if err != nil {
				return err
			}
			defer container.Close()

			toc, err := selectVersion(container, params.Version)
			if err != nil {
				return err
			}
			if params.XML {
				return classify(toc.WriteManifest(os.Stdout))
			}

			snapshot := showSnapshot(toc, params.FCS)
			if done, err := params.Emit(os.Stdout, snapshot); done {
				return err
			}
			return printVersion(os.Stdout, snapshot)
		},
	}
}

// showSnapshot captures toc, optionally restricted to FCS data files.
func showSnapshot(toc *acs.TableOfContents, fcsOnly bool) acs.VersionSnapshot {
	snapshot := toc.Snapshot()
	if !fcsOnly {
		return snapshot
	}
	snapshot.Resources = snapshot.Resources[:0]
	for _, resource := range toc.FCSFiles() {
		snapshot.Resources = append(snapshot.Resources, resource.Snapshot())
	}
	return snapshot
}

func printVersion(w io.Writer, snapshot acs.VersionSnapshot) error {
	fmt.Fprintf(w, "%s (version %d, %d resources)\n", snapshot.FileName, snapshot.Version, len(snapshot.Resources))
	for _, annotation := range snapshot.Annotations {
		fmt.Fprintf(w, "  note: %s\n", oneLine(annotation))
	}
	for _, resource := range snapshot.Resources {
		fmt.Fprintf(w, "\n%s\n", resource.URI)
		if resource.External {
			fmt.Fprintln(w, "  external reference")
		}
		if resource.MimeType != "" {
			fmt.Fprintf(w, "  type: %s\n", resource.MimeType)
		}
		if resource.Description != "" {
			fmt.Fprintf(w, "  description: %s\n", oneLine(resource.Description))
		}
		for _, association := range resource.Associations {
			fmt.Fprintf(w, "  %s -> %s\n", association.Relationship, association.Target)
		}
		for _, annotation := range resource.Annotations {
			fmt.Fprintf(w, "  note: %s\n", oneLine(annotation))
		}
	}
	return nil
}

// oneLine collapses whitespace runs so multi-line values fit one line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
