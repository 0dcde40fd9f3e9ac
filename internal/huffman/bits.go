// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

// bitWriter packs bits into bytes starting with the most significant bit.
type bitWriter struct {
	buf     []byte
	bufBits uint64 // Pending bits in the low numBits positions
	numBits uint   // Always less than 8 between calls
	offset  int64  // Number of bits written
}

// WriteBits writes the lower nb bits of v, most significant bit first.
func (bw *bitWriter) WriteBits(v uint64, nb uint) {
	if nb > 32 {
		bw.WriteBits(v>>32, nb-32)
		v, nb = v&(1<<32-1), 32
	}
	bw.bufBits = bw.bufBits<<nb | v&(1<<nb-1)
	bw.numBits += nb
	bw.offset += int64(nb)
	for bw.numBits >= 8 {
		bw.numBits -= 8
		bw.buf = append(bw.buf, byte(bw.bufBits>>bw.numBits))
	}
}

// Bytes returns the written bits with the final byte padded with zeros.
func (bw *bitWriter) Bytes() []byte {
	if bw.numBits > 0 {
		return append(bw.buf, byte(bw.bufBits<<(8-bw.numBits)))
	}
	return bw.buf
}

// bitReader reads bits from a byte slice starting with the most significant
// bit of each byte.
type bitReader struct {
	buf    []byte
	offset int64 // Bit offset into buf
}

// ReadBit returns the next bit and false if no bits remain.
func (br *bitReader) ReadBit() (uint, bool) {
	i := br.offset >> 3
	if i >= int64(len(br.buf)) {
		return 0, false
	}
	b := br.buf[i] >> (7 - uint(br.offset&7)) & 1
	br.offset++
	return uint(b), true
}
