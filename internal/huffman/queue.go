// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "math"

// item is an entry of nodeQueue. Items are ordered by weight and then by the
// order in which they were pushed.
type item struct {
	cnt uint64 // Weight of the node
	seq uint64 // Arrival order
	idx int32  // Index of the node in the tree; -1 for the infinite item
}

// infinite stands in for a missing child of the heap. It is heavier than
// every real item, so it is never chosen over one.
var infinite = item{cnt: math.MaxUint64, seq: math.MaxUint64, idx: -1}

func (x item) less(y item) bool {
	switch {
	case x.idx < 0:
		return false
	case y.idx < 0:
		return true
	case x.cnt != y.cnt:
		return x.cnt < y.cnt
	default:
		return x.seq < y.seq
	}
}

// nodeQueue is a binary min-heap of tree nodes.
type nodeQueue struct {
	items []item
	seq   uint64
}

func (q *nodeQueue) Len() int { return len(q.items) }

func (q *nodeQueue) at(i int) item {
	if i < len(q.items) {
		return q.items[i]
	}
	return infinite
}

func (q *nodeQueue) Push(idx int32, cnt uint64) {
	q.items = append(q.items, item{cnt: cnt, seq: q.seq, idx: idx})
	q.seq++

	for i := len(q.items) - 1; i > 0; {
		p := (i - 1) / 2
		if !q.items[i].less(q.items[p]) {
			break
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

// Pop removes and returns the lightest item. The queue must not be empty.
func (q *nodeQueue) Pop() item {
	top := q.items[0]
	last := len(q.items) - 1
	q.items[0] = q.items[last]
	q.items = q.items[:last]

	for i := 0; ; {
		m := i
		if l := 2*i + 1; q.at(l).less(q.at(m)) {
			m = l
		}
		if r := 2*i + 2; q.at(r).less(q.at(m)) {
			m = r
		}
		if m == i {
			break
		}
		q.items[i], q.items[m] = q.items[m], q.items[i]
		i = m
	}
	return top
}
