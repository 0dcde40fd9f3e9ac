// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

import (
	"sort"
	"testing"

	"github.com/dsnet/dlzip2/internal/errors"
	"github.com/dsnet/dlzip2/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

var (
	easyText = []int32{3, 1, 2, 2, 1, 7, 5, 0}
	hardText = []int32{2, 1, 1, 2, 1, 1, 2, 1, 3, 0}
)

func TestClassify(t *testing.T) {
	types, cnts := classify(easyText, 257)
	if want := []bool{false, true, false, false, true, false, false, true}; !cmp.Equal(types, want) {
		t.Errorf("type map mismatch (-got +want):\n%s", cmp.Diff(types, want))
	}
	if got, want := cnts[:5], []int32{1, 2, 2, 1, 0}; !cmp.Equal(got, want) {
		t.Errorf("counts mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
	if got, want := lmsPositions(types), []int32{1, 4, 7}; !cmp.Equal(got, want) {
		t.Errorf("LMS positions mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
}

func TestBuckets(t *testing.T) {
	_, cnts := classify(easyText, 257)
	head, tail := buckets(cnts)

	var vectors = []struct {
		sym        int
		head, tail int32
	}{
		{0, 0, 1},
		{1, 1, 3},
		{2, 3, 5},
		{7, 7, 8},
	}
	for i, v := range vectors {
		if head[v.sym] != v.head || tail[v.sym] != v.tail {
			t.Errorf("test %d, bucket %d mismatch: got [%d, %d), want [%d, %d)",
				i, v.sym, head[v.sym], tail[v.sym], v.head, v.tail)
		}
	}
}

func TestInduce(t *testing.T) {
	// Each stage is checked on the same scratch array.
	var vectors = []struct {
		text            []int32
		guess, l, s, sa []int32
		reduced         []int32
	}{{
		text:    easyText,
		guess:   []int32{7, 4, 1, -1, -1, -1, -1, -1},
		reduced: []int32{1, 2, 0},
		sa:      []int32{7, 1, 4, 3, 2, 0, 6, 5},
	}, {
		text:    hardText,
		l:       []int32{9, -1, -1, 7, 4, 1, 6, 3, 0, 8},
		s:       []int32{9, 4, 1, 5, 2, 7, 6, 3, 0, 8},
		reduced: []int32{1, 1, 2, 0},
		sa:      []int32{9, 1, 4, 2, 5, 7, 0, 3, 6, 8},
	}}

	for i, v := range vectors {
		types, cnts := classify(v.text, 257)
		lms := lmsPositions(types)
		SA := make([]int32, len(v.text))

		head, tail := buckets(cnts)
		guessLMS(v.text, SA, lms, tail)
		if v.guess != nil && !cmp.Equal(SA, v.guess) {
			t.Errorf("test %d, guess mismatch (-got +want):\n%s", i, cmp.Diff(SA, v.guess))
		}
		induceL(v.text, SA, types, head)
		if v.l != nil && !cmp.Equal(SA, v.l) {
			t.Errorf("test %d, induce L mismatch (-got +want):\n%s", i, cmp.Diff(SA, v.l))
		}
		_, tail = buckets(cnts)
		induceS(v.text, SA, types, tail)
		if v.s != nil && !cmp.Equal(SA, v.s) {
			t.Errorf("test %d, induce S mismatch (-got +want):\n%s", i, cmp.Diff(SA, v.s))
		}
		if _, s1 := nameLMS(v.text, SA, types, lms); !cmp.Equal(s1, v.reduced) {
			t.Errorf("test %d, reduced string mismatch (-got +want):\n%s", i, cmp.Diff(s1, v.reduced))
		}

		got := make([]int32, len(v.text))
		if err := ComputeSA(v.text, got, 257); err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if !cmp.Equal(got, v.sa) {
			t.Errorf("test %d, suffix array mismatch (-got +want):\n%s", i, cmp.Diff(got, v.sa))
		}
	}
}

func TestComputeSA(t *testing.T) {
	var vectors = []struct {
		input string
		k     int
	}{
		{"", 257},
		{"a", 257},
		{"banana", 257},
		{"mmiissiissiippii", 257},
		{"abababababababababababab", 257},
		{"\x0f\x0f\x0f\x0f\x10\x10\xe7\xe7\xc0\xff", 257},
		{"\x01\x01\x01\x01\x01\x01\x01\x01\x01\x01", 2},
		{"\x01\x02\x01\x02\x01\x02\x01\x02\x01\x01\x02", 3},
	}

	for i, v := range vectors {
		T := make([]int32, len(v.input)+1)
		for j := range v.input {
			T[j] = int32(v.input[j])
		}
		SA := make([]int32, len(T))
		if err := ComputeSA(T, SA, v.k); err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if want := naiveSA(T); !cmp.Equal(SA, want) {
			t.Errorf("test %d, suffix array mismatch (-got +want):\n%s", i, cmp.Diff(SA, want))
		}
	}
}

func TestComputeSARandom(t *testing.T) {
	rand := testutil.NewRand(0)
	for i := 0; i < 50; i++ {
		// Small alphabets produce many repeated LMS substrings,
		// which forces recursion on the reduced string.
		k := 2 + rand.Intn(8)
		n := rand.Intn(2000)
		if i%10 == 0 {
			k = 257
		}
		T := make([]int32, n+1)
		for j := 0; j < n; j++ {
			T[j] = int32(1 + rand.Intn(k-1))
		}
		SA := make([]int32, len(T))
		if err := ComputeSA(T, SA, k); err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if !IsSorted(T, SA) {
			t.Errorf("test %d, suffix array not sorted", i)
		}
	}
}

func TestComputeSAInvalid(t *testing.T) {
	var vectors = []struct {
		text  []int32
		saLen int
		k     int
	}{
		{nil, 0, 257},                     // Missing sentinel
		{[]int32{1, 2, 3}, 3, 257},        // Missing sentinel
		{[]int32{1, 0, 2, 0}, 4, 257},     // Duplicate sentinel
		{[]int32{1, 300, 0}, 3, 257},      // Symbol outside alphabet
		{[]int32{1, 2, 0}, 2, 257},        // Mismatching sizes
		{[]int32{1, -1, 0}, 3, 257},       // Negative symbol
		{[]int32{0}, 1, 0},                // Empty alphabet
		{[]int32{2, 1, 2, 1, 0}, 5, 2},    // Symbol equal to alphabet size
	}

	for i, v := range vectors {
		err := ComputeSA(v.text, make([]int32, v.saLen), v.k)
		if !errors.IsInvalid(err) {
			t.Errorf("test %d, mismatching error: got %v, want invalid argument", i, err)
		}
	}
}

func TestIsSorted(t *testing.T) {
	T := []int32{2, 1, 2, 1, 0}
	if !IsSorted(T, []int32{4, 3, 1, 2, 0}) {
		t.Errorf("IsSorted() = false, want true")
	}
	if IsSorted(T, []int32{4, 1, 3, 2, 0}) {
		t.Errorf("IsSorted() = true, want false for misordered suffixes")
	}
	if IsSorted(T, []int32{4, 3, 3, 2, 0}) {
		t.Errorf("IsSorted() = true, want false for duplicate suffixes")
	}
}

func naiveSA(T []int32) []int32 {
	SA := make([]int32, len(T))
	for i := range SA {
		SA[i] = int32(i)
	}
	sort.Slice(SA, func(i, j int) bool {
		return compareSuffix(T, int(SA[i]), int(SA[j])) < 0
	})
	return SA
}

func BenchmarkComputeSA(b *testing.B) {
	rand := testutil.NewRand(0)
	T := make([]int32, 1e5+1)
	for i := range T[:len(T)-1] {
		T[i] = int32(1 + rand.Intn(4))
	}
	SA := make([]int32, len(T))
	b.SetBytes(int64(len(T)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeSA(T, SA, 5)
	}
}
