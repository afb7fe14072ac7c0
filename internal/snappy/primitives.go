// Copyright (C) 2014 The Protocol Authors.

// Package snappy is a from-scratch, byte-exact reimplementation of the
// Google Snappy codec: a hash-table LZ77-style compressor, the matching
// opcode decoder, and the varint length header that ties them together.
//
// Every buffer it touches is caller-owned. The package performs no
// allocation on the hot compress/decompress path; callers provide the
// working-memory scratch region for the match finder.
package snappy

import "encoding/binary"

// loadU32 reads a little-endian uint32 at offset i, unaligned.
func loadU32(b []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(b[i : i+4 : len(b)])
}

// loadU64 reads a little-endian uint64 at offset i, unaligned.
func loadU64(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i : i+8 : len(b)])
}

// storeU64 writes v as little-endian at offset i, unaligned.
func storeU64(b []byte, i int, v uint64) {
	binary.LittleEndian.PutUint64(b[i:i+8:len(b)], v)
}
