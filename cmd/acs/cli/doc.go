// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the acs tool.
//
// The central type is [Command]: a named command with optional nested
// [Command.Subcommands], flags bound from a tagged params struct (see
// [BindFlags]) or built by a [pflag.FlagSet] factory, and a Run
// function. [Command.Execute] parses flags, routes subcommands and
// prints structured help with examples. Unknown commands and flags get
// an edit-distance suggestion.
//
// Commands report failures as [ToolError] values carrying an
// [ErrorCategory], which the entry point maps to an exit status with
// [ExitCodeFor]. [OutputFormat] adds --json and --cbor result output to
// a params struct.
package cli
