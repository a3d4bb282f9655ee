// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests for package entries.
//
// Digests are BLAKE3 in keyed mode with a fixed domain key, so an entry
// digest never collides with a BLAKE3 hash computed for some other
// purpose over the same bytes. [Hasher] is an io.Writer that also
// counts bytes, which lets a single pass over an archive entry produce
// both its digest and its size.
//
// The canonical text form is lowercase hex ([Digest.String], [Parse]).
// Digest implements encoding.TextMarshaler and TextUnmarshaler, so it
// appears as a hex string in JSON and CBOR reports and the zero value
// is left out of them with omitzero.
package digest
