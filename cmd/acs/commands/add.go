// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
	"github.com/cytobank/acs/lib/compress"
)

type addParams struct {
	configParams
	URI         string   `flag:"uri" desc:"resource URI (only with a single file; default: file:///<base name>)"`
	Mime        string   `flag:"mime,m" desc:"mime type of the added resources"`
	FCS         bool     `flag:"fcs" desc:"mark the added files as FCS data (application/vnd.isac.fcs)"`
	Description string   `flag:"description" desc:"description of the added resources"`
	Associate   []string `flag:"associate,a" desc:"TARGET-URI=RELATIONSHIP association from each added resource (repeatable)"`
	External    []string `flag:"external" desc:"add an external reference with this URI (repeatable)"`
	URN         bool     `flag:"urn" desc:"add an external reference with a generated urn:uuid URI"`
	Decompress  bool     `flag:"decompress" desc:"decompress .lz4 and .zst inputs and drop the suffix from the URI"`
	Note        string   `flag:"note" desc:"annotation on the new version"`
	New         bool     `flag:"new" desc:"create the package if it does not exist"`
	Output      string   `flag:"output,o" desc:"write the result here instead of rewriting the package"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Add files to a package as a new version",
		Description: `Create the next table of contents version, carrying every resource of
the current version forward, and add the given files to it. The package
is then rewritten with all versions.

Each file becomes a resource at file:///<base name> unless --uri names
it. --external and --urn add references to content that lives outside
the package. --associate links every added resource to an existing
one; the target must be in the new version.`,
		Usage: "acs add <package> [file...] [flags]",
		Examples: []cli.Example{
			{Description: "Start a package with two data files", Command: "acs add --new --fcs experiment.acs u937_01.fcs u937_02.fcs"},
			{
				Description: "Add a gating description for a data file",
				Command:     "acs add -a 'file:///u937_01.fcs=gating description' -m application/xml experiment.acs gates.xml",
			},
			{Description: "Reference a publication", Command: "acs add --external https://doi.org/10.1002/cyto.a.20825 experiment.acs"},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, -1, "acs add <package> [file...]"); err != nil {
				return err
			}
			packagePath, files := args[0], args[1:]
			if len(files) == 0 && len(params.External) == 0 && !params.URN {
				return cli.Validation("nothing to add: give files, --external or --urn")
			}
			if params.URI != "" && len(files) != 1 {
				return cli.Validation("--uri needs exactly one file, got %d", len(files))
			}

			env, err := params.environment()
			if err != nil {
				return err
			}
			container, err := openOrCreate(env, packagePath, params.New)
			if err != nil {
				return err
			}
			defer container.Close()

			toc, added, err := addVersion(container, files, &params)
			if err != nil {
				return err
			}
			destination := params.Output
			if destination == "" {
				destination = packagePath
			}
			if err := writePackage(container, destination); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s: version %d, added %d resources\n", destination, toc.Version(), len(added))
			return nil
		},
	}
}

// openOrCreate opens the package at path, or starts an empty container
// when create is set and nothing exists there yet.
func openOrCreate(env *environment, path string, create bool) (*acs.Container, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if !create {
			return nil, cli.NotFound("%s does not exist", path).WithHint("Pass --new to create it.")
		}
		env.logger.Debug("creating package", "path", path)
		return acs.NewContainer(env.config), nil
	}
	return env.open(path)
}

// addVersion creates the next version of container holding the files
// and external references named by params.
func addVersion(container *acs.Container, files []string, params *addParams) (*acs.TableOfContents, []*acs.Resource, error) {
	associations, err := parseAssociations(params.Associate)
	if err != nil {
		return nil, nil, err
	}

	toc, err := container.CreateNextTableOfContents()
	if err != nil {
		return nil, nil, classify(err)
	}
	if params.Note != "" {
		toc.Annotations().Add(params.Note)
	}

	mimeType := params.Mime
	if params.FCS && mimeType == "" {
		mimeType = acs.FCSMimeType
	}

	var added []*acs.Resource
	for _, file := range files {
		uri, source, closer, err := fileSource(file, params.Decompress)
		if err != nil {
			return nil, nil, err
		}
		if params.URI != "" {
			uri = params.URI
		}
		resource, err := toc.CreateResource(uri, source, mimeType)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, classify(err)
		}
		added = append(added, resource)
	}

	externals := append([]string(nil), params.External...)
	if params.URN {
		externals = append(externals, acs.NewURN())
	}
	for _, uri := range externals {
		resource, err := toc.CreateResource(uri, acs.FromPackage(), params.Mime)
		if err != nil {
			return nil, nil, classify(err)
		}
		if resource.IsInternal() {
			return nil, nil, cli.Validation("--external %s is a file URI; add the file itself instead", uri)
		}
		added = append(added, resource)
	}

	for _, resource := range added {
		resource.SetDescription(params.Description)
		for _, association := range associations {
			target := toc.ResourceByURI(association.target)
			if target == nil {
				return nil, nil, cli.NotFound("association target %s is not in version %d", association.target, toc.Version())
			}
			if _, err := resource.CreateAssociation(target, association.relationship); err != nil {
				return nil, nil, classify(err)
			}
		}
	}
	return toc, added, nil
}

// fileSource returns the default URI and the content source for a
// file given on the command line. A decompressing source comes with
// the closer that releases it; the resource closes it once attached.
func fileSource(path string, decompress bool) (string, acs.Source, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", acs.Source{}, nil, classify(err)
	}
	if info.IsDir() {
		return "", acs.Source{}, nil, cli.Validation("%s is a directory", path)
	}

	name := filepath.Base(path)
	tag := compress.TagForFilename(name)
	if !decompress || tag == compress.None {
		return acs.FileURI(name), acs.FromFile(path), nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", acs.Source{}, nil, classify(err)
	}
	reader, err := compress.NewReader(file, tag)
	if err != nil {
		file.Close()
		return "", acs.Source{}, nil, cli.Internal("%s: %w", path, err)
	}
	content := &decompressingFile{ReadCloser: reader, file: file}
	name = name[:len(name)-len(suffixOf(name, tag))]
	return acs.FileURI(name), acs.FromReader(content), content, nil
}

// suffixOf returns the compression suffix name ends with, matched
// without regard to case.
func suffixOf(name string, tag compress.Tag) string {
	lower := strings.ToLower(name)
	for _, suffix := range []string{tag.Extension(), ".zstd"} {
		if suffix != "" && strings.HasSuffix(lower, suffix) {
			return name[len(name)-len(suffix):]
		}
	}
	return ""
}

// decompressingFile closes both the decoder and the file under it.
type decompressingFile struct {
	io.ReadCloser
	file *os.File
}

func (d *decompressingFile) Close() error {
	err := d.ReadCloser.Close()
	if closeErr := d.file.Close(); err == nil {
		err = closeErr
	}
	return err
}

type associationRequest struct {
	target       string
	relationship string
}

// parseAssociations parses TARGET=RELATIONSHIP values. The split is at
// the last "=" since URIs may contain one and labels do not.
func parseAssociations(values []string) ([]associationRequest, error) {
	var requests []associationRequest
	for _, value := range values {
		index := strings.LastIndex(value, "=")
		if index <= 0 || strings.TrimSpace(value[index+1:]) == "" {
			return nil, cli.Validation("--associate %q: want TARGET-URI=RELATIONSHIP", value)
		}
		requests = append(requests, associationRequest{target: value[:index], relationship: value[index+1:]})
	}
	return requests, nil
}
