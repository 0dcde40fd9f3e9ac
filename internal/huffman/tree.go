// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "github.com/dsnet/dlzip2/internal/errors"

// node is a tree node stored in an arena. Children are arena indices.
type node struct {
	cnt   uint64
	sym   int32    // Leaf value; -1 for internal nodes
	child [2]int32 // Left (0) and right (1) children; -1 when absent
}

func (n node) isLeaf() bool { return n.sym >= 0 }

// tree is a binary prefix tree. Every node is owned by exactly one parent.
type tree struct {
	nodes []node
	root  int32
}

func newTree(numLeaves int) *tree {
	return &tree{nodes: make([]node, 0, 2*numLeaves), root: -1}
}

func (t *tree) addLeaf(sym int32, cnt uint64) int32 {
	t.nodes = append(t.nodes, node{cnt: cnt, sym: sym, child: [2]int32{-1, -1}})
	return int32(len(t.nodes) - 1)
}

func (t *tree) addNode(left, right int32, cnt uint64) int32 {
	t.nodes = append(t.nodes, node{cnt: cnt, sym: -1, child: [2]int32{left, right}})
	return int32(len(t.nodes) - 1)
}

// walk calls fn for every leaf with its depth. The traversal uses an explicit
// stack and visits left children before right children.
func (t *tree) walk(fn func(leaf int32, depth uint32) error) error {
	if t.root < 0 {
		return nil
	}
	type frame struct {
		idx   int32
		depth uint32
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.idx]
		if n.isLeaf() {
			if err := fn(n.sym, f.depth); err != nil {
				return err
			}
			continue
		}
		for b := 1; b >= 0; b-- {
			if c := n.child[b]; c >= 0 {
				stack = append(stack, frame{c, f.depth + 1})
			}
		}
	}
	return nil
}

// insert adds a leaf for c along the path given by its bits, creating
// internal nodes on demand. It fails if the path runs through another leaf
// or ends on an existing node.
func (t *tree) insert(c Code) error {
	if t.root < 0 {
		t.root = t.addNode(-1, -1, 0)
	}
	cur := t.root
	for i := int(c.Len) - 1; i >= 0; i-- {
		if t.nodes[cur].isLeaf() {
			return errorf(errors.Corrupted, "code for symbol %d extends another code", c.Sym)
		}
		b := (c.Val >> uint(i)) & 1
		next := t.nodes[cur].child[b]
		switch {
		case next >= 0 && i == 0:
			return errorf(errors.Corrupted, "code for symbol %d is already in use", c.Sym)
		case next < 0 && i == 0:
			next = t.addLeaf(int32(c.Sym), c.Cnt)
			t.nodes[cur].child[b] = next
		case next < 0:
			next = t.addNode(-1, -1, 0)
			t.nodes[cur].child[b] = next
		}
		cur = next
	}
	return nil
}

// newTreeFromCodes rebuilds a prefix tree from codes with assigned values.
func newTreeFromCodes(codes Codes) (*tree, error) {
	t := newTree(len(codes))
	for _, c := range codes {
		if c.Len == 0 || c.Len > MaxCodeBits {
			return nil, errorf(errors.Corrupted, "invalid code length: %d", c.Len)
		}
		if err := t.insert(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}
