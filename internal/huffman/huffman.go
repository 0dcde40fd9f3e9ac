// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements canonical Huffman coding over the dlzip2
// symbol alphabet.
//
// The code lengths come from a Huffman tree that is built by repeatedly
// merging the two lightest nodes. Nodes of equal weight are merged in the
// order they entered the queue. The bit patterns are then reassigned
// canonically (shorter codes first, ties by symbol value) so that only the
// lengths need to be transmitted.
package huffman

import (
	"fmt"
	"sort"

	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
)

// MaxCodeBits is the longest code that can be represented.
const MaxCodeBits = 64

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

// Code is a representation of a prefix code.
type Code struct {
	Sym uint16 // The symbol being mapped
	Len uint32 // Bit-length of the prefix code
	Val uint64 // Value of the prefix code, first bit in the most significant position
	Cnt uint64 // The number times this symbol is used
}

// Codes is a list of prefix codes.
type Codes []Code

// SortByLength sorts by bit-length, breaking ties by symbol value.
func (pc Codes) SortByLength() {
	sort.Slice(pc, func(i, j int) bool {
		if pc[i].Len != pc[j].Len {
			return pc[i].Len < pc[j].Len
		}
		return pc[i].Sym < pc[j].Sym
	})
}

// Length computes the total bit-length using the Len and Cnt fields.
func (pc Codes) Length() (nb uint64) {
	for _, c := range pc {
		nb += uint64(c.Len) * c.Cnt
	}
	return nb
}

// checkPrefixes reports whether all codes are valid and none is a prefix of
// another. The codes must be sorted by length.
func (pc Codes) checkPrefixes() bool {
	for i, c1 := range pc {
		if c1.Len == 0 || c1.Len > MaxCodeBits {
			return false
		}
		if c1.Len < 64 && c1.Val>>c1.Len != 0 {
			return false
		}
		for _, c2 := range pc[i+1:] {
			if c1.Val == c2.Val>>(c2.Len-c1.Len) {
				return false
			}
		}
	}
	return true
}

// GenerateLengths assigns non-zero bit-lengths to all codes from the Cnt
// field of each code. Codes with a zero count still receive a length and
// should be omitted by the caller if unused.
//
// The tree is built by merging the two lightest nodes until one is left.
// The first node taken becomes the left child. A lone code receives a
// length of one, since an empty code cannot be written.
func GenerateLengths(codes Codes) error {
	if len(codes) == 0 {
		return nil
	}
	if len(codes) == 1 {
		codes[0].Len = 1
		return nil
	}

	t := newTree(len(codes))
	var q nodeQueue
	for i, c := range codes {
		q.Push(t.addLeaf(int32(i), c.Cnt), c.Cnt)
	}
	for q.Len() > 1 {
		x, y := q.Pop(), q.Pop()
		cnt := x.cnt + y.cnt
		if cnt < x.cnt {
			return errorf(errors.Invalid, "symbol counts overflow")
		}
		q.Push(t.addNode(x.idx, y.idx, cnt), cnt)
	}
	t.root = q.Pop().idx

	// Leaves reference the position in codes rather than the symbol.
	return t.walk(func(leaf int32, depth uint32) error {
		if depth > MaxCodeBits {
			return errorf(errors.Internal, "code length %d exceeds %d bits", depth, MaxCodeBits)
		}
		codes[leaf].Len = depth
		return nil
	})
}

// GeneratePrefixes assigns a canonical prefix value to every code from its
// Len field. The codes are sorted by length, then by symbol.
//
// The first code is all zeros. Each following code is the previous code plus
// one, shifted left by the difference in length.
func GeneratePrefixes(codes Codes) error {
	codes.SortByLength()
	var c uint64
	var prevLen uint32
	for i := range codes {
		n := codes[i].Len
		if n == 0 || n > MaxCodeBits {
			return errorf(errors.Invalid, "invalid code length: %d", n)
		}
		if i > 0 {
			c++
		}
		c <<= n - prevLen
		if n < 64 && c>>n != 0 {
			return errorf(errors.Invalid, "code lengths are over-subscribed")
		}
		codes[i].Val = c
		prevLen = n
	}
	if internal.Debug && !codes.checkPrefixes() {
		return errorf(errors.Internal, "canonical codes are not prefix free")
	}
	return nil
}
