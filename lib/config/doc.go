// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the acs tool configuration.
//
// Configuration comes from at most one file, named by the ACS_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). Without either the defaults apply. There is no search
// path and no per-field environment override.
//
// Files are YAML unless the name ends in .json or .jsonc, in which case
// they are JSON with comments and trailing commas allowed. Values are
// merged over [Default]. temp_dir supports ${VAR} and ${VAR:-default}
// expansion.
//
// A complete file:
//
//	temp_dir: ${XDG_RUNTIME_DIR:-/tmp}/acs
//	archive:
//	  compression: zstd
//	  level: 3
//	inventory:
//	  digest: true
//	log:
//	  level: debug
//	  format: json
package config
