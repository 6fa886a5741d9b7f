// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package key

// MurmurHash3 (x86, 32-bit) over a byte slice, seed mixed in at the start
// and the slice length mixed in during finalization. This is the exact
// algorithm the reference Vulkan engine uses for HashKey hashing (spec §4.1);
// it is hand-written rather than pulled from a third-party hashing library
// because no library in this module's dependency set implements this
// specific 32-bit x86 MurmurHash3 variant (see DESIGN.md).

const (
	murmur3C1 uint32 = 0xcc9e2d51
	murmur3C2 uint32 = 0x1b873593
)

// murmurHash32 computes MurmurHash3_x86_32(data, seed).
func murmurHash32(data []byte, seed uint32) uint32 {
	h := seed
	n := len(data)
	nBlocks := n / 4

	for i := 0; i < nBlocks; i++ {
		k := uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
		k *= murmur3C1
		k = rotl32(k, 15)
		k *= murmur3C2

		h ^= k
		h = rotl32(h, 13)
		h = h*5 + 0xe6546b64
	}

	var k1 uint32
	tail := data[nBlocks*4:]
	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= murmur3C1
		k1 = rotl32(k1, 15)
		k1 *= murmur3C2
		h ^= k1
	}

	h ^= uint32(n)
	h = fmix32(h)
	return h
}

func rotl32(x uint32, r uint8) uint32 {
	return (x << r) | (x >> (32 - r))
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
