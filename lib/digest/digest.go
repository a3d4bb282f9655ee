// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed digest.
type Digest [32]byte

// entryDomainKey is the ASCII of "acs.package.entry", zero-padded.
// Changing it changes every digest ever reported.
var entryDomainKey = [32]byte{
	'a', 'c', 's', '.', 'p', 'a', 'c', 'k', 'a', 'g', 'e', '.',
	'e', 'n', 't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Hasher accumulates a digest over everything written to it.
type Hasher struct {
	hasher *blake3.Hasher
	size   int64
}

// NewHasher returns an empty entry hasher.
func NewHasher() *Hasher {
	hasher, err := blake3.NewKeyed(entryDomainKey[:])
	if err != nil {
		// Only fails for a key that is not 32 bytes.
		panic("digest: " + err.Error())
	}
	return &Hasher{hasher: hasher}
}

// Write adds p to the digest. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	n, _ := h.hasher.Write(p)
	h.size += int64(n)
	return n, nil
}

// Size returns the number of bytes written so far.
func (h *Hasher) Size() int64 { return h.size }

// Sum returns the digest of the bytes written so far.
func (h *Hasher) Sum() Digest {
	var digest Digest
	copy(digest[:], h.hasher.Sum(nil))
	return digest
}

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero value, which no real content
// hashes to in practice and is used to mean "not computed".
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse parses a 64-character hex digest.
func Parse(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
