// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ziparchive is the narrow archive layer used by ACS packages.
//
// Reading is a forward-only enumeration: [Scan] visits every entry in
// archive order and hands the visitor a reader that is valid only for
// the duration of the visit. There is no random access by name; a
// caller looking for one entry scans from the start and returns
// [ErrStop] once it has what it needs.
//
// Writing goes through [Writer], which creates named entries one after
// another and must be closed to emit the central directory. Three
// compression methods are supported on both sides:
//
//   - [Store]: no compression.
//   - [Deflate]: the standard zip method, backed by klauspost/compress/flate.
//   - [Zstd]: zip method 93, backed by klauspost/compress/zstd.
//
// Packages written with [Store] or [Deflate] open in any zip tool.
// [Zstd] trades that portability for ratio and speed.
package ziparchive
