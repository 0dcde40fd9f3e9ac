// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
	"github.com/dsnet/dlzip2/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestQueue(t *testing.T) {
	var q nodeQueue
	for i, cnt := range []uint64{5, 3, 3, 7, 3, 1} {
		q.Push(int32(i), cnt)
	}

	// Equal weights come out in the order they were pushed.
	var got []int32
	for q.Len() > 0 {
		got = append(got, q.Pop().idx)
	}
	if want := []int32{5, 1, 2, 4, 0, 3}; !cmp.Equal(got, want) {
		t.Errorf("pop order mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}

	if infinite.less(infinite) || infinite.less(item{}) || !(item{}).less(infinite) {
		t.Errorf("infinite item compares less than a real item")
	}
}

func TestGenerateLengths(t *testing.T) {
	var vectors = []struct {
		input  Codes
		output Codes
	}{{
		input:  Codes{},
		output: Codes{},
	}, {
		input:  Codes{{Sym: 259, Cnt: 1}},
		output: Codes{{Sym: 259, Cnt: 1, Len: 1}},
	}, {
		input: Codes{
			{Sym: 1, Cnt: 5}, {Sym: 2, Cnt: 9}, {Sym: 3, Cnt: 12},
			{Sym: 4, Cnt: 13}, {Sym: 5, Cnt: 16}, {Sym: 6, Cnt: 45},
		},
		output: Codes{
			{Sym: 1, Cnt: 5, Len: 4}, {Sym: 2, Cnt: 9, Len: 4}, {Sym: 3, Cnt: 12, Len: 3},
			{Sym: 4, Cnt: 13, Len: 3}, {Sym: 5, Cnt: 16, Len: 3}, {Sym: 6, Cnt: 45, Len: 1},
		},
	}, {
		input: Codes{
			{Sym: 1, Cnt: 1}, {Sym: 2, Cnt: 1}, {Sym: 3, Cnt: 2}, {Sym: 4, Cnt: 3},
		},
		output: Codes{
			{Sym: 1, Cnt: 1, Len: 3}, {Sym: 2, Cnt: 1, Len: 3}, {Sym: 3, Cnt: 2, Len: 2}, {Sym: 4, Cnt: 3, Len: 1},
		},
	}}

	for i, v := range vectors {
		if err := GenerateLengths(v.input); err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if !cmp.Equal(v.input, v.output) {
			t.Errorf("test %d, codes mismatch (-got +want):\n%s", i, cmp.Diff(v.input, v.output))
		}
	}
}

func TestGeneratePrefixes(t *testing.T) {
	codes := Codes{
		{Sym: 1, Len: 4}, {Sym: 2, Len: 4}, {Sym: 3, Len: 3},
		{Sym: 4, Len: 3}, {Sym: 5, Len: 3}, {Sym: 6, Len: 1},
	}
	want := Codes{
		{Sym: 6, Len: 1, Val: 0x0}, //    0
		{Sym: 3, Len: 3, Val: 0x4}, //  100
		{Sym: 4, Len: 3, Val: 0x5}, //  101
		{Sym: 5, Len: 3, Val: 0x6}, //  110
		{Sym: 1, Len: 4, Val: 0xe}, // 1110
		{Sym: 2, Len: 4, Val: 0xf}, // 1111
	}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmp.Equal(codes, want) {
		t.Errorf("codes mismatch (-got +want):\n%s", cmp.Diff(codes, want))
	}
	if !codes.checkPrefixes() {
		t.Errorf("codes are not prefix free")
	}

	overfull := Codes{{Sym: 1, Len: 1}, {Sym: 2, Len: 1}, {Sym: 3, Len: 1}}
	if err := GeneratePrefixes(overfull); !errors.IsInvalid(err) {
		t.Errorf("mismatching error: got %v, want invalid argument", err)
	}
}

func TestTable(t *testing.T) {
	codes := Codes{
		{Sym: 6, Len: 1}, {Sym: 3, Len: 3}, {Sym: 257, Len: 3},
		{Sym: 259, Len: 3}, {Sym: 1, Len: 4}, {Sym: 258, Len: 4},
	}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf, err := MarshalTable(nil, codes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := testutil.MustDecodeBitGen(`>>> >
		H16:000f                       # Table length
		D8:6 D8:1                      # 6: +1
		D8:3 D8:2                      # 3: +2
		D8:0 D8:1 D8:0                 # 257: +0
		D8:0 D8:3 D8:0                 # 259: +0
		D8:1 D8:1                      # 1: +1
		D8:0 D8:2 D8:0                 # 258: +0
	`)
	if !bytes.Equal(buf, want) {
		t.Errorf("table mismatch:\ngot  %x\nwant %x", buf, want)
	}

	got, rest, err := UnmarshalTable(append(buf, 0xff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmp.Equal(got, codes) {
		t.Errorf("codes mismatch (-got +want):\n%s", cmp.Diff(got, codes))
	}
	if !bytes.Equal(rest, []byte{0xff}) {
		t.Errorf("remainder mismatch: got %x, want ff", rest)
	}

	if _, err := MarshalTable(nil, Codes{{Sym: 0, Len: 1}}); !errors.IsInvalid(err) {
		t.Errorf("mismatching error: got %v, want invalid argument", err)
	}
}

func TestEncoder(t *testing.T) {
	var vectors = []struct {
		input  []uint16
		output string // Expected output in BitGen format
		errf   func(error) bool
	}{{
		input: []uint16{},
		output: `>>> >
			H16:0003 D8:0 D8:3 D8:1 # 259: +1
			0                       # EOB
		`,
	}, {
		input: []uint16{1, 1, 1},
		output: `>>> >
			H16:0005 D8:1 D8:1      # 1: +1
			D8:0 D8:3 D8:0          # 259: +0
			0 0 0 1                 # 1, 1, 1, EOB
		`,
	}, {
		input: []uint16{257, 258, 257, 4, 257},
		output: `>>> >
			H16:000b
			D8:0 D8:1 D8:1          # 257: +1
			D8:0 D8:3 D8:1          # 259: +1
			D8:4 D8:1               # 4: +1
			D8:0 D8:2 D8:0          # 258: +0
			0 111 0 110 0 10        # 257, 258, 257, 4, 257, EOB
		`,
	}, {
		input: []uint16{1, 0, 1},
		errf:  errors.IsInvalid,
	}, {
		input: []uint16{1, internal.EOBMarker},
		errf:  errors.IsInvalid,
	}, {
		input: []uint16{300},
		errf:  errors.IsInvalid,
	}}

	for i, v := range vectors {
		output, err := Encode(v.input)
		if v.errf != nil {
			if !v.errf(err) {
				t.Errorf("test %d, mismatching error: got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if want := testutil.MustDecodeBitGen(v.output); !bytes.Equal(output, want) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, output, want)
		}
	}
}

func TestDecoder(t *testing.T) {
	var vectors = []struct {
		desc   string
		input  string // Input in hexadecimal
		output []uint16
		errf   func(error) bool
	}{{
		desc:   "only end-of-block marker",
		input:  "0003000301" + "00",
		output: []uint16{},
	}, {
		desc:   "three symbols",
		input:  "00050101000300" + "10",
		output: []uint16{1, 1, 1},
	}, {
		desc:   "trailing bytes are ignored",
		input:  "00050101000300" + "10ffff",
		output: []uint16{1, 1, 1},
	}, {
		desc:  "empty input",
		input: "",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "truncated header",
		input: "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "truncated table",
		input: "000a0101",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "truncated escape",
		input: "000100",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "missing payload",
		input: "00050101000300",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "payload without end-of-block marker",
		input: "00050101000300" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "table without end-of-block marker",
		input: "00020101" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "duplicate symbol",
		input: "0007010101000003" + "00" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "escaped symbol outside alphabet",
		input: "0006000901000300" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "zero code length",
		input: "000501000003" + "01" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "over-subscribed lengths",
		input: "00070101020000" + "0300" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "unsorted symbols",
		input: "00070201010000" + "0301" + "00",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "code outside of an incomplete tree",
		input: "00050102000300" + "80",
		errf:  errors.IsCorrupted,
	}, {
		desc:  "code length too long",
		input: "000501410003" + "00" + "00",
		errf:  errors.IsCorrupted,
	}}

	for i, v := range vectors {
		input, err := hex.DecodeString(v.input)
		if err != nil {
			t.Fatalf("test %d (%s), invalid hex: %v", i, v.desc, err)
		}
		output, err := Decode(input)
		if v.errf != nil {
			if !v.errf(err) {
				t.Errorf("test %d (%s), mismatching error: got %v", i, v.desc, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d (%s), unexpected error: %v", i, v.desc, err)
			continue
		}
		if !cmp.Equal(output, v.output) {
			t.Errorf("test %d (%s), output mismatch (-got +want):\n%s", i, v.desc, cmp.Diff(output, v.output))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rand := testutil.NewRand(0)
	var vectors [][]uint16
	vectors = append(vectors, []uint16{15, 15, 15, 15, 16, 16, 231, 231, 192, 255})
	for _, n := range []int{1, 10, 1000, 100000} {
		// Skewed towards small values, like the output of MTF.
		syms := make([]uint16, n)
		for i := range syms {
			syms[i] = uint16(1 + rand.Intn(1+rand.Intn(internal.RunTwo)))
		}
		vectors = append(vectors, syms)
	}

	for i, input := range vectors {
		buf, err := Encode(input)
		if err != nil {
			t.Errorf("test %d, unexpected Encode error: %v", i, err)
			continue
		}
		output, err := Decode(buf)
		if err != nil {
			t.Errorf("test %d, unexpected Decode error: %v", i, err)
			continue
		}
		if !cmp.Equal(output, input) {
			t.Errorf("test %d, output mismatch", i)
		}

		// The canonical table must reproduce the lengths of the original tree.
		want, _ := BuildCodes(input)
		got, rest, err := UnmarshalTable(buf)
		if err != nil {
			t.Errorf("test %d, unexpected UnmarshalTable error: %v", i, err)
			continue
		}
		if nb := want.Length(); uint64(len(rest)) != (nb+7)/8 {
			t.Errorf("test %d, payload size mismatch: got %d bytes, want %d bits", i, len(rest), nb)
		}
		for j := range want {
			want[j].Cnt = 0
		}
		if !cmp.Equal(got, want) {
			t.Errorf("test %d, code table mismatch (-got +want):\n%s", i, cmp.Diff(got, want))
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	rand := testutil.NewRand(0)
	syms := make([]uint16, 1e5)
	for i := range syms {
		syms[i] = uint16(1 + rand.Intn(1+rand.Intn(internal.RunTwo)))
	}
	b.SetBytes(int64(len(syms)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Encode(syms)
	}
}

func BenchmarkDecode(b *testing.B) {
	rand := testutil.NewRand(0)
	syms := make([]uint16, 1e5)
	for i := range syms {
		syms[i] = uint16(1 + rand.Intn(1+rand.Intn(internal.RunTwo)))
	}
	buf, err := Encode(syms)
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	b.SetBytes(int64(len(syms)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decode(buf)
	}
}
