// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for machine-readable
// package reports.
//
// The CLI prints snapshots and inventories either as JSON (--json) or
// as CBOR (--cbor). Both come from the same Go types: fxamacker/cbor
// reads `json` struct tags when no `cbor` tag is present, so a single
// `json` tag governs field names and omitempty for both formats. Do
// not put both tags on one field.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. Two
// reports of the same package are byte-identical, which makes CBOR
// output usable as a cache key or diff input.
//
// Saved reports are read back with [Unmarshal], for example when
// "acs inventory --check" compares a package with an earlier inventory.
//
//	encoder := codec.NewEncoder(os.Stdout)
//	err := encoder.Encode(inventory)
//
//	err = codec.Unmarshal(data, &inventory)
package codec
