// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
	"github.com/cytobank/acs/lib/compress"
)

type extractParams struct {
	configParams
	Output   string `flag:"output,o" desc:"write to this file instead of stdout"`
	Compress string `flag:"compress" desc:"compress the output: none, lz4 or zstd (default: from the --output suffix)"`
	Force    bool   `flag:"force,f" desc:"overwrite an existing output file"`
}

func extractCommand() *cli.Command {
	var params extractParams

	return &cli.Command{
		Name:    "extract",
		Summary: "Copy one entry out of a package",
		Description: `Copy one package entry to stdout or to a file. The entry is named
either by its path inside the package or by a file URI as it appears in
a table of contents.

The output can be compressed on the way out. Without --compress the
format follows the --output suffix: .lz4 for LZ4 and .zst for
Zstandard.`,
		Usage: "acs extract <package> <entry-or-uri> [flags]",
		Examples: []cli.Example{
			{Description: "Print a manifest", Command: "acs extract experiment.acs TOC2.xml"},
			{Description: "Save a data file by URI", Command: "acs extract -o u937.fcs experiment.acs file:///u937_01.fcs"},
			{Description: "Save it compressed", Command: "acs extract -o u937.fcs.zst experiment.acs u937_01.fcs"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 2, 2, "acs extract <package> <entry-or-uri>"); err != nil {
				return err
			}
			tag := compress.TagForFilename(params.Output)
			if params.Compress != "" {
				parsed, err := compress.ParseTag(params.Compress)
				if err != nil {
					return cli.Validation("--compress: %w", err)
				}
				tag = parsed
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

			if params.Output == "" {
				_, err := extractEntry(container, args[1], os.Stdout, tag)
				return err
			}
			return extractToFile(env, container, args[1], params.Output, tag, params.Force)
		},
	}
}

// entryName resolves a file URI or a plain entry path to the entry
// name inside the package.
func entryName(reference string) (string, error) {
	if err := acs.ValidateURI(reference); err != nil {
		return strings.TrimPrefix(reference, "/"), nil
	}
	name, ok := acs.EntryName(reference)
	if !ok || name == "" {
		return "", cli.Validation("%s does not refer to content inside the package", reference)
	}
	return name, nil
}

// extractEntry copies the referenced entry to w through the tag's
// compressor and returns the number of uncompressed bytes.
func extractEntry(container *acs.Container, reference string, w io.Writer, tag compress.Tag) (int64, error) {
	name, err := entryName(reference)
	if err != nil {
		return 0, err
	}
	if !slices.Contains(container.InventoryNames(), name) {
		return 0, cli.NotFound("%s has no entry %q", container.Path(), name).
			WithHint(fmt.Sprintf("Run 'acs inventory %s' to list entries.", container.Path()))
	}

	compressor, err := compress.NewWriter(w, tag)
	if err != nil {
		return 0, cli.Internal("%w", err)
	}
	counter := &countingWriter{w: compressor}
	if err := container.ExtractEntry(name, counter); err != nil {
		compressor.Close()
		return counter.n, classify(err)
	}
	if err := compressor.Close(); err != nil {
		return counter.n, cli.Internal("finishing %s output: %w", tag, err)
	}
	return counter.n, nil
}

func extractToFile(env *environment, container *acs.Container, reference, output string, tag compress.Tag, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(output, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return cli.Conflict("%s already exists", output).WithHint("Pass --force to overwrite it.")
	}
	if err != nil {
		return classify(err)
	}

	written, err := extractEntry(container, reference, file, tag)
	if err != nil {
		file.Close()
		os.Remove(output)
		return err
	}
	if err := file.Close(); err != nil {
		return classify(fmt.Errorf("writing %s: %w", output, err))
	}
	env.logger.Debug("extracted entry", "reference", reference, "output", output, "bytes", written, "compression", tag.String())
	return nil
}
