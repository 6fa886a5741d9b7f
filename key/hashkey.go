// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package key

import "bytes"

// hashSeed is the fixed MurmurHash3-32 seed used for every HashKey,
// pinned by spec §3 so that keys built in one process and compared in
// another (e.g. a warm-started worker thread) hash identically.
const hashSeed uint32 = 0x4AC093E6

// HashKey is a variable-length, opaque byte record: {len, bytes}. It is
// compared by length then byte-wise equality, and hashed with
// MurmurHash3-32 (seed 0x4AC093E6) over bytes, with length mixed into the
// finalizer (murmurHash32 folds len(data) into the hash before the final
// avalanche mix, matching spec §4.1).
//
// The zero value is a valid, empty key.
type HashKey struct {
	bytes []byte
}

// NewHashKey wraps an already-built byte slice as a HashKey without
// defensive copying. Callers that do not own data exclusively should copy
// first; Builder.Finalize always returns a private copy.
func NewHashKey(data []byte) HashKey {
	return HashKey{bytes: data}
}

// Len returns the number of bytes in the key.
func (k HashKey) Len() int {
	return len(k.bytes)
}

// Bytes returns the key's underlying bytes. Callers must not mutate the
// returned slice.
func (k HashKey) Bytes() []byte {
	return k.bytes
}

// Equal reports whether k and other represent the same structural key:
// same length, then byte-for-byte identical.
func (k HashKey) Equal(other HashKey) bool {
	if len(k.bytes) != len(other.bytes) {
		return false
	}
	return bytes.Equal(k.bytes, other.bytes)
}

// Hash returns the MurmurHash3-32 digest of k, suitable for use as a Go map
// key alongside Equal-based disambiguation. The cache and descriptor
// packages do not call it: they key their maps by [HashKey.String].
func (k HashKey) Hash() uint32 {
	return murmurHash32(k.bytes, hashSeed)
}

// String returns the key's bytes reinterpreted as a string, used as the
// comparable Go map key in cache and descriptor (a HashKey's byte slice is
// not itself comparable, but the string conversion is, and Go interns the
// conversion into the map's own storage without an extra copy surviving
// past the map operation).
func (k HashKey) String() string {
	return string(k.bytes)
}
