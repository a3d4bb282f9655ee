// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
)

type versionsParams struct {
	configParams
	cli.OutputFormat
}

// versionSummary is one row of "acs versions".
type versionSummary struct {
	Version     int    `json:"version"`
	FileName    string `json:"file_name"`
	Resources   int    `json:"resources"`
	Annotations int    `json:"annotations"`
	Current     bool   `json:"current"`
}

func versionsCommand() *cli.Command {
	var params versionsParams

	return &cli.Command{
		Name:    "versions",
		Summary: "List the table of contents versions in a package",
		Description: `List every table of contents version in an ACS package, oldest
first, with its resource and annotation counts. The highest version is
the current one.`,
		Usage: "acs versions <package> [flags]",
		Examples: []cli.Example{
			{Description: "List versions", Command: "acs versions experiment.acs"},
			{Description: "Machine-readable listing", Command: "acs versions --json experiment.acs"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "acs versions <package>"); err != nil {
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

			summaries := summarizeVersions(container)
			if done, err := params.Emit(os.Stdout, summaries); done {
				return err
			}
			return printVersions(os.Stdout, summaries)
		},
	}
}

func summarizeVersions(container *acs.Container) []versionSummary {
	var summaries []versionSummary
	for _, version := range container.Versions() {
		toc := container.TableOfContents(version)
		summaries = append(summaries, versionSummary{
			Version:     version,
			FileName:    toc.FileName(),
			Resources:   toc.ResourceCount(),
			Annotations: toc.Annotations().Len(),
			Current:     version == container.CurrentVersion(),
		})
	}
	return summaries
}

func printVersions(w io.Writer, summaries []versionSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "no versions")
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tMANIFEST\tRESOURCES\tANNOTATIONS\t")
	for _, summary := range summaries {
		marker := ""
		if summary.Current {
			marker = "current"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n",
			summary.Version, summary.FileName, summary.Resources, summary.Annotations, marker)
	}
	return tw.Flush()
}
