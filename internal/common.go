// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of constants and helpers shared by the
// stages of the dlzip2 pipeline.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

// Symbols beyond the byte range that flow between pipeline stages.
const (
	// BWTMarker terminates every block handed to the BWT.
	BWTMarker = 256

	// RunOne and RunTwo are the digits of a bijective base-2 zero-run length.
	RunOne = 257
	RunTwo = 258

	// EOBMarker terminates the Huffman coded stream.
	EOBMarker = 259

	// NumSymbols is the size of the Huffman alphabet.
	NumSymbols = EOBMarker + 1

	// MTFSize is the size of the move-to-front alphabet (bytes plus BWTMarker).
	MTFSize = BWTMarker + 1
)

// MaxBlockSize is the largest number of input bytes transformed as one block.
const MaxBlockSize = 500000

// ReverseLUT returns the input key with its bits reversed.
var ReverseLUT [256]byte

func init() {
	for i := range ReverseLUT {
		b := uint8(i)
		b = (b&0xaa)>>1 | (b&0x55)<<1
		b = (b&0xcc)>>2 | (b&0x33)<<2
		b = (b&0xf0)>>4 | (b&0x0f)<<4
		ReverseLUT[i] = b
	}
}

// ReverseUint32 reverses all bits of v.
func ReverseUint32(v uint32) (x uint32) {
	x |= uint32(ReverseLUT[byte(v>>0)]) << 24
	x |= uint32(ReverseLUT[byte(v>>8)]) << 16
	x |= uint32(ReverseLUT[byte(v>>16)]) << 8
	x |= uint32(ReverseLUT[byte(v>>24)]) << 0
	return x
}

// ReverseUint64 reverses all bits of v.
func ReverseUint64(v uint64) uint64 {
	return uint64(ReverseUint32(uint32(v)))<<32 | uint64(ReverseUint32(uint32(v>>32)))
}

// ReverseUint64N reverses the lower n bits of v.
func ReverseUint64N(v uint64, n uint) uint64 {
	if n == 0 {
		return 0
	}
	return ReverseUint64(v << (64 - n))
}
