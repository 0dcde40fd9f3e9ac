// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
package sais

// The implementation follows the Suffix Array by Induced Sorting (SA-IS)
// methodology by Nong, Zhang, and Chan. The text is an integer string over
// an alphabet of size k that ends with a unique smallest sentinel symbol (0).
// LMS substrings are sorted by induction, named, and the reduced string of
// names is sorted recursively whenever two LMS substrings share a name.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://ge-nong.googlecode.com/files/Two%20Efficient%20Algorithms%20for%20Linear%20Time%20Suffix%20Array%20Construction.pdf

import (
	"fmt"

	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
)

// maxDepth bounds the recursion on reduced strings. Each level at most halves
// the text, so a legitimate input never comes close.
const maxDepth = 64

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "sais", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

// ComputeSA computes the suffix array of T and places the result in SA.
// Both T and SA must be the same length. The last symbol of T must be 0 and
// occur nowhere else, and every symbol must be less than k.
func ComputeSA(T, SA []int32, k int) (err error) {
	defer errors.Recover(&err)

	if len(SA) != len(T) {
		return errorf(errors.Invalid, "mismatching sizes: %d != %d", len(T), len(SA))
	}
	if len(T) == 0 || T[len(T)-1] != 0 {
		return errorf(errors.Invalid, "text does not end with the sentinel")
	}
	if k < 1 {
		return errorf(errors.Invalid, "invalid alphabet size: %d", k)
	}
	for i, c := range T[:len(T)-1] {
		if c <= 0 || int(c) >= k {
			return errorf(errors.Invalid, "symbol %d at offset %d outside of [1, %d)", c, i, k)
		}
	}

	computeSA(T, SA, k, 0)
	if internal.Debug && !IsSorted(T, SA) {
		return errorf(errors.Internal, "suffixes out of order")
	}
	return nil
}

// IsSorted reports whether SA lists the suffixes of T in ascending order.
func IsSorted(T, SA []int32) bool {
	if len(T) != len(SA) {
		return false
	}
	seen := make([]bool, len(T))
	for _, s := range SA {
		if s < 0 || int(s) >= len(T) || seen[s] {
			return false
		}
		seen[s] = true
	}
	for i := 1; i < len(SA); i++ {
		if compareSuffix(T, int(SA[i-1]), int(SA[i])) >= 0 {
			return false
		}
	}
	return true
}

func compareSuffix(T []int32, a, b int) int {
	for a < len(T) && b < len(T) {
		if T[a] != T[b] {
			if T[a] < T[b] {
				return -1
			}
			return +1
		}
		a, b = a+1, b+1
	}
	return (len(T) - a) - (len(T) - b)
}

func computeSA(T, SA []int32, k, depth int) {
	if depth > maxDepth {
		panicf(errors.Internal, "recursion exceeded %d levels", maxDepth)
	}
	n := len(T)
	if n == 1 {
		SA[0] = 0
		return
	}

	t, cnts := classify(T, k)
	lms := lmsPositions(t)

	// Sort LMS substrings by placing them at bucket tails and inducing.
	head, tail := buckets(cnts)
	guessLMS(T, SA, lms, tail)
	induceL(T, SA, t, head)
	_, tail = buckets(cnts)
	induceS(T, SA, t, tail)

	// Name the LMS substrings and sort the reduced string.
	names, s1 := nameLMS(T, SA, t, lms)
	sa1 := make([]int32, len(s1))
	if names == len(s1) {
		for i, c := range s1 {
			sa1[c] = int32(i)
		}
	} else {
		computeSA(s1, sa1, names, depth+1)
	}

	// Place LMS suffixes in their exact order and induce the rest.
	head, tail = buckets(cnts)
	exactLMS(T, SA, sa1, lms, tail)
	induceL(T, SA, t, head)
	_, tail = buckets(cnts)
	induceS(T, SA, t, tail)
}

// classify returns the type map (true for S-type) and the symbol counts.
// Equal neighbors are handled as a run, which takes the type of the first
// differing symbol that follows it.
func classify(T []int32, k int) (t []bool, cnts []int32) {
	n := len(T)
	t = make([]bool, n)
	cnts = make([]int32, k)
	for i := 0; i < n-1; {
		j := i + 1
		for T[j] == T[i] {
			j++
		}
		isS := T[i] < T[j]
		for ; i < j; i++ {
			t[i] = isS
			cnts[T[i]]++
		}
	}
	t[n-1] = true
	cnts[0] = 1
	return t, cnts
}

func isLMS(t []bool, i int) bool {
	return i > 0 && t[i] && !t[i-1]
}

func lmsPositions(t []bool) (lms []int32) {
	for i := 1; i < len(t); i++ {
		if isLMS(t, i) {
			lms = append(lms, int32(i))
		}
	}
	return lms
}

// buckets returns the first slot and one past the last slot of each symbol.
func buckets(cnts []int32) (head, tail []int32) {
	head = make([]int32, len(cnts))
	tail = make([]int32, len(cnts))
	var sum int32
	for c, cnt := range cnts {
		head[c] = sum
		sum += cnt
		tail[c] = sum
	}
	return head, tail
}

func guessLMS(T, SA []int32, lms, tail []int32) {
	for i := range SA {
		SA[i] = -1
	}
	for _, p := range lms {
		c := T[p]
		tail[c]--
		SA[tail[c]] = p
	}
}

func exactLMS(T, SA []int32, sa1, lms, tail []int32) {
	for i := range SA {
		SA[i] = -1
	}
	for i := len(sa1) - 1; i >= 0; i-- {
		p := lms[sa1[i]]
		c := T[p]
		tail[c]--
		SA[tail[c]] = p
	}
}

func induceL(T, SA []int32, t []bool, head []int32) {
	for i := 0; i < len(SA); i++ {
		if SA[i] <= 0 {
			continue
		}
		if j := SA[i] - 1; !t[j] {
			c := T[j]
			SA[head[c]] = j
			head[c]++
		}
	}
}

func induceS(T, SA []int32, t []bool, tail []int32) {
	for i := len(SA) - 1; i >= 0; i-- {
		if SA[i] <= 0 {
			continue
		}
		if j := SA[i] - 1; t[j] {
			c := T[j]
			tail[c]--
			SA[tail[c]] = j
		}
	}
}

// nameLMS assigns names to the sorted LMS substrings and returns the number
// of distinct names along with the reduced string in text order. The sentinel
// always receives name 0, which keeps the reduced string sentinel terminated.
func nameLMS(T, SA []int32, t []bool, lms []int32) (int, []int32) {
	n := len(T)
	names := make([]int32, n)
	var name int32 = -1
	prev := -1
	for _, p := range SA {
		if !isLMS(t, int(p)) {
			continue
		}
		if prev < 0 || !equalLMS(T, t, prev, int(p)) {
			name++
		}
		names[p] = name
		prev = int(p)
	}

	s1 := make([]int32, len(lms))
	for i, p := range lms {
		s1[i] = names[p]
	}
	return int(name) + 1, s1
}

// equalLMS reports whether the LMS substrings starting at a and b are equal
// in both symbols and types. The substring at the sentinel is unique.
func equalLMS(T []int32, t []bool, a, b int) bool {
	n := len(T)
	if a == n-1 || b == n-1 {
		return false
	}
	for i := 0; ; i++ {
		if T[a+i] != T[b+i] || t[a+i] != t[b+i] {
			return false
		}
		if i > 0 {
			endA, endB := isLMS(t, a+i), isLMS(t, b+i)
			if endA || endB {
				return endA && endB
			}
		}
	}
}
