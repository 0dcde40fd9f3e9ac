// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

// The Burrows-Wheeler Transform implementation used here is based on the
// Suffix Array by Induced Sorting (SA-IS) methodology by Nong, Zhang, and Chan.
//
// Every block is terminated with BWTMarker, which is larger than any byte and
// occurs exactly once. Thus, sorting the cyclic rotations of the block is
// equivalent to sorting its suffixes, and the marker locates the original
// rotation during decoding without a separate origin pointer.
//
// The suffix array is computed over the block with every symbol shifted up by
// one so that a unique sentinel of 0 can be appended without colliding with
// the zero byte.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space

import (
	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
	"github.com/dsnet/dlzip2/internal/sais"
)

// saisAlphabet covers the shifted bytes, the shifted marker, and the sentinel.
const saisAlphabet = internal.BWTMarker + 2

type burrowsWheelerTransform struct {
	text []int32
	sa   []int32
	tt   []int32
}

// Encode returns the last column of the sorted rotations of buf followed by
// BWTMarker. The output is one symbol longer than buf.
func (bwt *burrowsWheelerTransform) Encode(buf []byte) []uint16 {
	n := len(buf)
	if cap(bwt.text) < n+2 {
		bwt.text = make([]int32, n+2)
		bwt.sa = make([]int32, n+2)
	}
	t, sa := bwt.text[:n+2], bwt.sa[:n+2]
	for i, b := range buf {
		t[i] = int32(b) + 1
	}
	t[n] = internal.BWTMarker + 1
	t[n+1] = 0

	if err := sais.ComputeSA(t, sa, saisAlphabet); err != nil {
		errors.Panic(errWrap(err, errors.Internal))
	}

	// The suffix at the sentinel sorts first and has no rotation.
	out := make([]uint16, n+1)
	for i, s := range sa[1:] {
		j := s - 1
		if s == 0 {
			j = int32(n)
		}
		out[i] = uint16(t[j] - 1)
	}
	return out
}

// Decode inverts Encode. The input must contain BWTMarker exactly once.
func (bwt *burrowsWheelerTransform) Decode(last []uint16) []byte {
	if len(last) == 0 {
		panicf(errors.Corrupted, "empty BWT block")
	}

	ptr := -1
	var c [internal.MTFSize]int
	for i, v := range last {
		if v > internal.BWTMarker {
			panicf(errors.Corrupted, "invalid BWT symbol: %d", v)
		}
		if v == internal.BWTMarker {
			if ptr >= 0 {
				panicf(errors.Corrupted, "duplicate BWT marker")
			}
			ptr = i
		}
		c[v]++
	}
	if ptr < 0 {
		panicf(errors.Corrupted, "missing BWT marker")
	}

	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	// tt maps each row of the first column to the row of the last column
	// holding the same occurrence of that symbol.
	if cap(bwt.tt) < len(last) {
		bwt.tt = make([]int32, len(last))
	}
	tt := bwt.tt[:len(last)]
	for i, v := range last {
		tt[c[v]] = int32(i)
		c[v]++
	}

	buf := make([]byte, 0, len(last)-1)
	tPos := tt[ptr]
	for last[tPos] != internal.BWTMarker {
		if len(buf) == cap(buf) {
			break
		}
		buf = append(buf, byte(last[tPos]))
		tPos = tt[tPos]
	}
	if len(buf) != len(last)-1 || last[tPos] != internal.BWTMarker {
		panicf(errors.Corrupted, "BWT block does not form a single cycle")
	}
	return buf
}

// encodeBlocks splits buf into blocks of at most blockSize bytes and returns
// the concatenation of their transforms.
func encodeBlocks(bwt *burrowsWheelerTransform, buf []byte, blockSize int) (syms []uint16, nblks int) {
	syms = make([]uint16, 0, len(buf)+(len(buf)+blockSize-1)/blockSize)
	for len(buf) > 0 {
		n := blockSize
		if n > len(buf) {
			n = len(buf)
		}
		syms = append(syms, bwt.Encode(buf[:n])...)
		buf = buf[n:]
		nblks++
	}
	return syms, nblks
}

// decodeBlocks inverts encodeBlocks. The next function returns up to n
// symbols of the concatenated transforms, and fewer only at the end of the
// stream. Every block except the last must hold exactly blockSize+1 symbols.
// At most one block is held in memory at a time.
func decodeBlocks(bwt *burrowsWheelerTransform, blockSize int, next func(n int) []uint16) (buf []byte, nblks int) {
	for {
		syms := next(blockSize + 1)
		if len(syms) == 0 {
			return buf, nblks
		}
		buf = append(buf, bwt.Decode(syms)...)
		nblks++
	}
}
