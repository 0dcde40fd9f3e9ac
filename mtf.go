// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

import (
	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
)

// moveToFront implements the MTF stage over the BWT output alphabet, which is
// every byte value plus BWTMarker.
//
// The dictionary starts in ascending order, such that symbol 0 is at the front
// and BWTMarker is at the back. For example, with that initial order:
//	vals: []uint16{1, 1, 0, 256, 256}
//	idxs: []uint16{1, 0, 1, 256, 0}
type moveToFront struct {
	dictBuf [internal.MTFSize]uint16
	dictLen int
}

// Init resets the dictionary to its initial order.
func (m *moveToFront) Init() {
	for i := range m.dictBuf {
		m.dictBuf[i] = uint16(i)
	}
	m.dictLen = len(m.dictBuf)
}

func (m *moveToFront) Encode(vals []uint16) (idxs []uint16) {
	dict := m.dictBuf[:m.dictLen]
	idxs = make([]uint16, 0, len(vals))
	for _, val := range vals {
		idx := -1 // Reverse lookup idx in dict
		for di, dv := range dict {
			if dv == val {
				idx = di
				break
			}
		}
		if idx < 0 {
			panicf(errors.Invalid, "symbol %d outside of MTF alphabet", val)
		}
		copy(dict[1:], dict[:idx])
		dict[0] = val
		idxs = append(idxs, uint16(idx))
	}
	return idxs
}

func (m *moveToFront) Decode(idxs []uint16) (vals []uint16) {
	dict := m.dictBuf[:m.dictLen]
	vals = make([]uint16, 0, len(idxs))
	for _, idx := range idxs {
		if int(idx) >= len(dict) {
			panicf(errors.Corrupted, "MTF index %d out of range", idx)
		}
		val := dict[idx] // Forward lookup val in dict
		copy(dict[1:], dict[:idx])
		dict[0] = val
		vals = append(vals, val)
	}
	return vals
}
