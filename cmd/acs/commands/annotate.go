// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
)

type annotateParams struct {
	configParams
	URI      string   `flag:"uri" desc:"annotate this resource instead of the table of contents"`
	Text     string   `flag:"text,t" desc:"annotation text"`
	Keywords []string `flag:"keyword,k" desc:"NAME=VALUE keyword (repeatable)"`
	Output   string   `flag:"output,o" desc:"write the result here instead of rewriting the package"`
}

func annotateCommand() *cli.Command {
	var params annotateParams

	return &cli.Command{
		Name:    "annotate",
		Summary: "Record a note as a new version",
		Description: `Create the next table of contents version and attach an annotation to
it, or with --uri to one of its resources. An annotation holds free
text and any number of name=value keywords.`,
		Usage: "acs annotate <package> [flags]",
		Examples: []cli.Example{
			{Description: "Note on the package", Command: "acs annotate -t 're-gated after compensation' experiment.acs"},
			{
				Description: "Keywords on one data file",
				Command:     "acs annotate --uri file:///u937_01.fcs -k operator='J. Smith' -k cytometer='LSR II' experiment.acs",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, 1, "acs annotate <package>"); err != nil {
				return err
			}
			if params.Text == "" && len(params.Keywords) == 0 {
				return cli.Validation("nothing to record: give --text or --keyword")
			}
			keywords, err := parseKeywords(params.Keywords)
			if err != nil {
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

			toc, err := annotateVersion(container, params.URI, params.Text, keywords)
			if err != nil {
				return err
			}
			destination := params.Output
			if destination == "" {
				destination = args[0]
			}
			if err := writePackage(container, destination); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s: version %d annotated\n", destination, toc.Version())
			return nil
		},
	}
}

// annotateVersion creates the next version of container and attaches
// the annotation to it, or to the resource at uri when uri is set.
func annotateVersion(container *acs.Container, uri, text string, keywords []acs.Attribute) (*acs.TableOfContents, error) {
	if container.IsEmpty() {
		return nil, cli.NotFound("%s has no table of contents to annotate", container.Path())
	}
	toc, err := container.CreateNextTableOfContents()
	if err != nil {
		return nil, classify(err)
	}

	target := toc.Annotations()
	if uri != "" {
		resource := toc.ResourceByURI(uri)
		if resource == nil {
			return nil, cli.NotFound("%s has no resource %s", container.Path(), uri)
		}
		target = resource.Annotations()
	}

	annotation := target.Add(text)
	for _, keyword := range keywords {
		annotation.SetKeyword(keyword.Key, keyword.Value)
	}
	return toc, nil
}

func parseKeywords(values []string) ([]acs.Attribute, error) {
	var keywords []acs.Attribute
	for _, value := range values {
		name, keywordValue, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, cli.Validation("--keyword %q: want NAME=VALUE", value)
		}
		keywords = append(keywords, acs.Attribute{Key: strings.TrimSpace(name), Value: keywordValue})
	}
	return keywords, nil
}
