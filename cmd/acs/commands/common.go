// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cytobank/acs/cmd/acs/cli"
	"github.com/cytobank/acs/lib/acs"
	"github.com/cytobank/acs/lib/config"
)

// configParams is embedded by every command that touches a package.
type configParams struct {
	ConfigPath string `flag:"config" desc:"configuration file (default: $ACS_CONFIG)"`
}

// environment is what a command needs besides its arguments: the
// container settings and a logger.
type environment struct {
	config acs.Config
	logger *slog.Logger
}

func (p *configParams) environment() (*environment, error) {
	var (
		cfg *config.Config
		err error
	)
	if p.ConfigPath != "" {
		cfg, err = config.LoadFile(p.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return newEnvironment(cfg, cli.NewCommandLogger(cfg)), nil
}

func newEnvironment(cfg *config.Config, logger *slog.Logger) *environment {
	return &environment{
		config: acs.Config{
			TempDir:          cfg.TempDir,
			Compression:      cfg.Compression(),
			CompressionLevel: cfg.Archive.Level,
			DigestInventory:  cfg.Inventory.Digest,
			Logger:           logger,
		},
		logger: logger,
	}
}

// open opens the package at path, classifying failures for the exit
// status.
func (e *environment) open(path string) (*acs.Container, error) {
	container, err := acs.Open(path, e.config)
	if err != nil {
		return nil, classify(err)
	}
	return container, nil
}

// classify maps library errors onto tool error categories.
func classify(err error) error {
	var toolError *cli.ToolError
	switch {
	case errors.As(err, &toolError):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
	case errors.Is(err, acs.ErrDuplicateResource):
		return &cli.ToolError{Category: cli.CategoryConflict, Err: err}
	case errors.Is(err, acs.ErrInvalidURIScheme), errors.Is(err, acs.ErrInvalidAssociation):
		return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	default:
		return &cli.ToolError{Category: cli.CategoryInternal, Err: err}
	}
}

// selectVersion returns the table of contents for version, or the
// current one when version is zero.
func selectVersion(container *acs.Container, version int) (*acs.TableOfContents, error) {
	if container.IsEmpty() {
		return nil, cli.NotFound("%s has no table of contents", container.Path())
	}
	if version == 0 {
		return container.Current(), nil
	}
	toc := container.TableOfContents(version)
	if toc == nil {
		return nil, cli.NotFound("%s has no version %d", container.Path(), version).
			WithHint(fmt.Sprintf("Run 'acs versions %s' to list versions.", container.Path()))
	}
	return toc, nil
}

// writePackage writes container to destination through a temporary
// file in the same directory, so destination may be the package the
// container was opened from.
func writePackage(container *acs.Container, destination string) error {
	file, err := os.CreateTemp(filepath.Dir(destination), ".acs-write-*")
	if err != nil {
		return classify(fmt.Errorf("creating temporary package: %w", err))
	}
	temporary := file.Name()

	if err := container.WritePackage(file); err != nil {
		file.Close()
		os.Remove(temporary)
		return classify(err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporary)
		return classify(fmt.Errorf("writing %s: %w", destination, err))
	}
	if err := os.Rename(temporary, destination); err != nil {
		os.Remove(temporary)
		return classify(fmt.Errorf("replacing %s: %w", destination, err))
	}
	return nil
}

// requireArgs checks the positional argument count.
func requireArgs(args []string, minimum, maximum int, usage string) error {
	if len(args) < minimum || (maximum >= 0 && len(args) > maximum) {
		return cli.Validation("usage: %s", usage)
	}
	return nil
}

// countingWriter counts bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
