// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug
// +build debug

package huffman

import (
	"fmt"
	"strings"
)

func padBase2(v, n interface{}, m int) string {
	var s string
	if fmt.Sprint(n) != "0" {
		s = fmt.Sprintf(fmt.Sprintf("%%0%db", n), v)
	}
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func lenBase10(n int) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func (pc Codes) String() string {
	var maxSym, maxLen int
	var maxCnt uint64
	for _, c := range pc {
		if maxSym < int(c.Sym) {
			maxSym = int(c.Sym)
		}
		if maxLen < int(c.Len) {
			maxLen = int(c.Len)
		}
		if maxCnt < c.Cnt {
			maxCnt = c.Cnt
		}
	}
	maxSymStr := lenBase10(maxSym)
	maxCntStr := len(fmt.Sprint(maxCnt))

	var ss []string
	ss = append(ss, "{")
	for _, c := range pc {
		var cntStr string
		if maxCnt > 0 {
			cnt := int(32*float64(c.Cnt)/float64(maxCnt) + 0.5)
			cntStr = fmt.Sprintf("%s |%s",
				padBase10(c.Cnt, maxCntStr),
				strings.Repeat("#", cnt),
			)
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s,  %s",
			padBase10(c.Sym, maxSymStr),
			padBase2(c.Val, c.Len, maxLen),
			cntStr,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (t tree) String() string {
	var ss []string
	ss = append(ss, "{")
	for i, n := range t.nodes {
		if n.isLeaf() {
			ss = append(ss, fmt.Sprintf("\t%s:  {sym: %s, cnt: %d},",
				padBase10(i, 3), padBase10(n.sym, 3), n.cnt))
		} else {
			ss = append(ss, fmt.Sprintf("\t%s:  {left: %s, right: %s, cnt: %d},",
				padBase10(i, 3), padBase10(n.child[0], 3), padBase10(n.child[1], 3), n.cnt))
		}
	}
	ss = append(ss, fmt.Sprintf("\troot: %d,", t.root))
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}
