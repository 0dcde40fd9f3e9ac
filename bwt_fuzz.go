// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

// This file exists to export internal implementation details for fuzz testing.

package dlzip2

import "github.com/dsnet/dlzip2/internal/errors"

func ForwardBWT(buf []byte) []uint16 {
	var bwt burrowsWheelerTransform
	return bwt.Encode(buf)
}

func ReverseBWT(last []uint16) (buf []byte, err error) {
	defer errors.Recover(&err)
	var bwt burrowsWheelerTransform
	return bwt.Decode(last), nil
}
