// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "strings"

// Generator produces n bytes of deterministic test data from a seed.
type Generator func(seed, n int) []byte

// Generators is the set of named data generators used by tests and by the
// benchmark tool when no input files are given.
var Generators = map[string]Generator{
	"random":  Random,
	"repeats": Repeats,
	"text":    Text,
	"zeros":   Zeros,
}

// Random returns n bytes of incompressible data.
func Random(seed, n int) []byte {
	return NewRand(seed).Bytes(n)
}

// Zeros returns n zero bytes. It is the worst case for run-length coding.
func Zeros(_, n int) []byte {
	return make([]byte, n)
}

// Repeats returns n bytes that are mostly copies of earlier data at some
// distance. Since the source data is random, entropy coding alone does poorly
// while any context-based transform does well.
func Repeats(seed, n int) []byte {
	r := NewRand(seed)
	b := make([]byte, 0, n+512)

	randLen := func() int {
		p := r.Float32()
		switch {
		case p <= 0.15:
			return 4 + r.Intn(4)
		case p <= 0.30:
			return 8 + r.Intn(8)
		case p <= 0.45:
			return 16 + r.Intn(16)
		case p <= 0.60:
			return 32 + r.Intn(32)
		case p <= 0.75:
			return 64 + r.Intn(64)
		case p <= 0.90:
			return 128 + r.Intn(128)
		default:
			return 256 + r.Intn(256)
		}
	}
	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			p := r.Float32()
			switch {
			case p <= 0.2:
				d = 1 + r.Intn(3)
			case p <= 0.4:
				d = 4 + r.Intn(12)
			case p <= 0.6:
				d = 16 + r.Intn(240)
			case p <= 0.8:
				d = 256 + r.Intn(3840)
			default:
				d = 4096 + r.Intn(28672)
			}
		}
		return d
	}

	b = append(b, r.Bytes(randLen())...)
	for len(b) < n {
		if r.Float32() <= 0.1 {
			b = append(b, r.Bytes(randLen())...)
			continue
		}
		d, l := randDist(), randLen()
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}
	return b[:n]
}

var words = strings.Fields(`
	the of and to in is that for it as was with be by on not he this are or
	his from at which but have an they you were her she there one all we
	their been has when who will more no if out so said what up its about
	into than them can only other new some could time these two may then do
	first any my now such like our over man me even most made after also
	did many before must through back years where much your way well down
	should because each just those people how too little state good very
	make world still own see men work long get here between both life being
	under never day same another know while last might us great old year off
	come since against go came right used take three block symbol transform
	sorted suffix array rotation prefix code length table stream marker
`)

// Text returns n bytes of English-like text built from a small vocabulary.
func Text(seed, n int) []byte {
	r := NewRand(seed)
	b := make([]byte, 0, n+16)
	for col := 0; len(b) < n; {
		w := words[r.Intn(1+r.Intn(len(words)))]
		b = append(b, w...)
		col += len(w) + 1
		switch {
		case col > 72:
			b = append(b, ".\n"...)
			col = 0
		case r.Intn(12) == 0:
			b = append(b, ", "...)
		default:
			b = append(b, ' ')
		}
	}
	return b[:n]
}
