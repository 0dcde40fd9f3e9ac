// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package dlzip2

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/dlzip2"
)

var blockSizes = []int{1, 7, 4096, dlzip2.MaxBlockSize}

func Fuzz(data []byte) int {
	data, ok := testDecoders(data)
	testBWT(data)
	for _, n := range blockSizes {
		testEncoder(data, n)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders tests that the input is handled identically by the framed
// reader and the raw codec. Every failure must be reported as corruption.
func testDecoders(data []byte) ([]byte, bool) {
	zr, err := dlzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		panic(err)
	}
	defer zr.Close()

	fb, ferr := ioutil.ReadAll(zr)
	if ferr != nil && !dlzip2.IsCorrupted(ferr) {
		panic(ferr)
	}

	rb, rerr := dlzip2.Decompress(data)
	if rerr != nil && !dlzip2.IsCorrupted(rerr) {
		panic(rerr)
	}

	switch {
	case ferr == nil:
		if err := zr.Close(); err != nil {
			panic(err)
		}
		return fb, true
	case rerr == nil:
		return rb, true
	default:
		return data, false
	}
}

// testBWT checks that the inverse transform recovers every input.
func testBWT(data []byte) {
	if len(data) > dlzip2.MaxBlockSize {
		data = data[:dlzip2.MaxBlockSize]
	}
	last := dlzip2.ForwardBWT(data)
	buf, err := dlzip2.ReverseBWT(last)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(buf, data) {
		panic("mismatching bytes")
	}
}

// testEncoder compresses the input data with the given block size and checks
// that both the framed and raw forms decompress back to the input.
func testEncoder(data []byte, blockSize int) {
	bb := new(bytes.Buffer)
	zw, err := dlzip2.NewWriter(bb, &dlzip2.WriterConfig{BlockSize: blockSize})
	if err != nil {
		panic(err)
	}
	n, err := zw.Write(data)
	if n != len(data) || err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}

	zr, err := dlzip2.NewReader(bb, nil)
	if err != nil {
		panic(err)
	}
	b, err := ioutil.ReadAll(zr)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}

	codec, err := dlzip2.NewCodec(&dlzip2.Config{BlockSize: blockSize})
	if err != nil {
		panic(err)
	}
	raw, err := codec.Compress(data)
	if err != nil {
		panic(err)
	}
	if b, err = codec.Decompress(raw); err != nil {
		panic(err)
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}
}
