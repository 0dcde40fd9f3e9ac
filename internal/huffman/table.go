// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"encoding/binary"

	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
)

// The code table holds one entry per symbol in canonical order. Each entry is
// the symbol followed by the increase in code length over the previous entry.
// Symbols that do not fit in a byte are escaped with a leading zero byte:
//	sym < 256:  [sym, delta]
//	sym >= 256: [0x00, sym-256, delta]
//
// Symbol 0 has no representation. The table is preceded by its length in
// bytes as a 16-bit big-endian integer.

const (
	escapeByte  = 0x00
	maxTableLen = 1<<16 - 1
)

// MarshalTable appends the header and code table for codes to buf.
// The codes must be sorted by length, then by symbol.
func MarshalTable(buf []byte, codes Codes) ([]byte, error) {
	start := len(buf)
	buf = append(buf, 0, 0)
	var prevLen uint32
	for _, c := range codes {
		switch {
		case c.Sym == 0:
			return nil, errorf(errors.Invalid, "symbol 0 cannot be represented")
		case c.Sym >= internal.NumSymbols:
			return nil, errorf(errors.Invalid, "symbol %d outside of alphabet", c.Sym)
		case c.Sym >= 256:
			buf = append(buf, escapeByte, byte(c.Sym-256))
		default:
			buf = append(buf, byte(c.Sym))
		}
		if c.Len < prevLen || c.Len > MaxCodeBits {
			return nil, errorf(errors.Invalid, "codes not sorted by length")
		}
		buf = append(buf, byte(c.Len-prevLen))
		prevLen = c.Len
	}

	n := len(buf) - start - 2
	if n > maxTableLen {
		return nil, errorf(errors.Invalid, "code table too large: %d bytes", n)
	}
	binary.BigEndian.PutUint16(buf[start:], uint16(n))
	return buf, nil
}

// UnmarshalTable parses the header and code table at the start of buf and
// returns the canonical codes along with the remaining bytes.
func UnmarshalTable(buf []byte) (Codes, []byte, error) {
	if len(buf) < 2 {
		return nil, nil, errorf(errors.Corrupted, "missing code table header")
	}
	n := int(binary.BigEndian.Uint16(buf))
	if len(buf)-2 < n {
		return nil, nil, errorf(errors.Corrupted, "code table truncated")
	}
	table, rest := buf[2:2+n], buf[2+n:]

	var codes Codes
	var seen [internal.NumSymbols]bool
	var curLen, prevLen uint32
	var prevSym uint16
	for len(table) > 0 {
		sym := uint16(table[0])
		table = table[1:]
		if sym == escapeByte {
			if len(table) == 0 {
				return nil, nil, errorf(errors.Corrupted, "code table truncated")
			}
			sym = 256 + uint16(table[0])
			table = table[1:]
		}
		if len(table) == 0 {
			return nil, nil, errorf(errors.Corrupted, "code table truncated")
		}
		curLen += uint32(table[0])
		table = table[1:]

		switch {
		case sym >= internal.NumSymbols:
			return nil, nil, errorf(errors.Corrupted, "invalid symbol: %d", sym)
		case seen[sym]:
			return nil, nil, errorf(errors.Corrupted, "duplicate symbol: %d", sym)
		case curLen == 0 || curLen > MaxCodeBits:
			return nil, nil, errorf(errors.Corrupted, "invalid code length: %d", curLen)
		case curLen == prevLen && sym < prevSym:
			return nil, nil, errorf(errors.Corrupted, "code table out of order at symbol %d", sym)
		}
		seen[sym] = true
		prevLen, prevSym = curLen, sym
		codes = append(codes, Code{Sym: sym, Len: curLen})
	}
	if len(codes) == 0 {
		return nil, nil, errorf(errors.Corrupted, "empty code table")
	}
	if !seen[internal.EOBMarker] {
		return nil, nil, errorf(errors.Corrupted, "code table lacks end-of-block marker")
	}

	if err := GeneratePrefixes(codes); err != nil {
		if cerr, ok := err.(errors.Error); ok && cerr.IsInvalid() {
			cerr.Code = errors.Corrupted
			err = cerr
		}
		return nil, nil, err
	}
	return codes, rest, nil
}
