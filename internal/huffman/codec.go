// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
)

// BuildCodes returns the canonical codes for the symbols used in syms plus
// one end-of-block marker. The codes are sorted by length, then by symbol.
func BuildCodes(syms []uint16) (Codes, error) {
	var cnts [internal.NumSymbols]uint64
	for _, s := range syms {
		if s >= internal.EOBMarker {
			return nil, errorf(errors.Invalid, "symbol %d outside of alphabet", s)
		}
		cnts[s]++
	}
	cnts[internal.EOBMarker]++

	var codes Codes
	for s, n := range cnts {
		if n > 0 {
			codes = append(codes, Code{Sym: uint16(s), Cnt: n})
		}
	}
	if err := GenerateLengths(codes); err != nil {
		return nil, err
	}
	if err := GeneratePrefixes(codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// Encode compresses syms into a code table followed by the packed codes of
// every symbol and a final end-of-block marker.
func Encode(syms []uint16) ([]byte, error) {
	codes, err := BuildCodes(syms)
	if err != nil {
		return nil, err
	}
	nb := codes.Length()
	buf, err := MarshalTable(make([]byte, 0, 2+3*len(codes)+int((nb+7)/8)), codes)
	if err != nil {
		return nil, err
	}

	var lut [internal.NumSymbols]Code
	for _, c := range codes {
		lut[c.Sym] = c
	}
	bw := bitWriter{buf: buf}
	for _, s := range syms {
		c := lut[s]
		bw.WriteBits(c.Val, uint(c.Len))
	}
	eob := lut[internal.EOBMarker]
	bw.WriteBits(eob.Val, uint(eob.Len))
	if uint64(bw.offset) != nb {
		return nil, errorf(errors.Internal, "wrote %d bits, want %d", bw.offset, nb)
	}
	return bw.Bytes(), nil
}

// Decode inverts Encode. Any bytes after the end-of-block marker are ignored.
func Decode(buf []byte) ([]uint16, error) {
	codes, rest, err := UnmarshalTable(buf)
	if err != nil {
		return nil, err
	}
	t, err := newTreeFromCodes(codes)
	if err != nil {
		return nil, err
	}

	syms := make([]uint16, 0, 2*len(rest))
	br := bitReader{buf: rest}
	for cur := t.root; ; {
		b, ok := br.ReadBit()
		if !ok {
			return nil, errorf(errors.Corrupted, "missing end-of-block marker")
		}
		next := t.nodes[cur].child[b]
		if next < 0 {
			return nil, errorf(errors.Corrupted, "invalid prefix code at bit %d", br.offset-1)
		}
		if n := t.nodes[next]; n.isLeaf() {
			if n.sym == internal.EOBMarker {
				return syms, nil
			}
			syms = append(syms, uint16(n.sym))
			cur = t.root
			continue
		}
		cur = next
	}
}
