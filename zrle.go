// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

import (
	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
)

// Runs of zeros in the MTF output are replaced with a bijective base-2
// numeration of the run length using the digits RunOne (1) and RunTwo (2).
// There is no zero digit, so every positive length has exactly one
// representation and adjacent runs cannot be confused with each other.
//
// The digits are stored most significant first. For example:
//	1  => [RunOne]
//	2  => [RunTwo]
//	3  => [RunOne, RunOne]
//	10 => [RunOne, RunTwo, RunTwo]
//
// All other symbols pass through unchanged.

// maxRunLength bounds the value of a single run while its digits are read.
const maxRunLength = 1 << 30

type runCode []uint16

// encodeRun appends the digits of n to rc. The value n must be positive.
func (rc runCode) encodeRun(n int) runCode {
	start := len(rc)
	for n > 0 {
		next := (n+1)/2 - 1
		if n-2*next == 1 {
			rc = append(rc, internal.RunOne)
		} else {
			rc = append(rc, internal.RunTwo)
		}
		n = next
	}

	// Digits were produced least significant first.
	for i, j := start, len(rc)-1; i < j; i, j = i+1, j-1 {
		rc[i], rc[j] = rc[j], rc[i]
	}
	return rc
}

// decodeRun returns the run length of a sequence of digits.
func (rc runCode) decodeRun() (n int) {
	for _, d := range rc {
		switch d {
		case internal.RunOne:
			n = 2*n + 1
		case internal.RunTwo:
			n = 2*n + 2
		default:
			panicf(errors.Internal, "invalid run digit: %d", d)
		}
		if n > maxRunLength {
			panicf(errors.Corrupted, "zero run too long")
		}
	}
	return n
}

func isRunDigit(v uint16) bool {
	return v == internal.RunOne || v == internal.RunTwo
}

// encodeZRLE replaces every maximal run of zeros in idxs with its digits.
func encodeZRLE(idxs []uint16) []uint16 {
	out := make(runCode, 0, len(idxs))
	for i := 0; i < len(idxs); {
		if idxs[i] != 0 {
			if isRunDigit(idxs[i]) {
				panicf(errors.Invalid, "symbol %d collides with run digits", idxs[i])
			}
			out = append(out, idxs[i])
			i++
			continue
		}
		j := i + 1
		for j < len(idxs) && idxs[j] == 0 {
			j++
		}
		out = out.encodeRun(j - i)
		i = j
	}
	return out
}

// zrleReader expands the digits of a run coded stream on demand, so that a
// long run never needs to be materialized all at once.
type zrleReader struct {
	syms  []uint16 // Remaining run coded symbols
	zeros int      // Zeros still owed from the last decoded run
}

func (zr *zrleReader) Init(syms []uint16) {
	*zr = zrleReader{syms: syms}
}

// Read appends up to n expanded symbols to out. It appends fewer than n
// symbols only once the stream is exhausted.
func (zr *zrleReader) Read(out []uint16, n int) []uint16 {
	for n > 0 {
		if zr.zeros > 0 {
			cnt := zr.zeros
			if cnt > n {
				cnt = n
			}
			for k := 0; k < cnt; k++ {
				out = append(out, 0)
			}
			zr.zeros -= cnt
			n -= cnt
			continue
		}
		if len(zr.syms) == 0 {
			break
		}

		if v := zr.syms[0]; !isRunDigit(v) {
			if v == 0 {
				panicf(errors.Corrupted, "unexpected literal zero")
			}
			out = append(out, v)
			zr.syms = zr.syms[1:]
			n--
			continue
		}
		j := 1
		for j < len(zr.syms) && isRunDigit(zr.syms[j]) {
			j++
		}
		zr.zeros = runCode(zr.syms[:j]).decodeRun()
		zr.syms = zr.syms[j:]
	}
	return out
}
