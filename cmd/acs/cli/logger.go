// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/cytobank/acs/lib/config"
)

// NewCommandLogger creates the diagnostic logger for a command,
// writing to stderr at the configured level. With the "auto" format it
// writes text when stderr is a terminal and JSON otherwise.
func NewCommandLogger(cfg *config.Config) *slog.Logger {
	json := cfg.Log.Format == config.LogFormatJSON ||
		(cfg.Log.Format == config.LogFormatAuto && !term.IsTerminal(int(os.Stderr.Fd())))
	return newLogger(os.Stderr, cfg.LogLevel(), json)
}

func newLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
