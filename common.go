// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package dlzip2 implements a block-sorting lossless compressor.
//
// Compression stack:
//	Burrows-Wheeler transform (BWT)
//	Move-to-front transform   (MTF)
//	Zero run-length encoding  (ZRLE)
//	Canonical prefix encoding (Huffman)
//
// The BWT is computed per block of at most MaxBlockSize bytes from a suffix
// array built by induced sorting. The remaining stages run once over the
// concatenated output of all blocks.
package dlzip2

import (
	"fmt"
	"hash/crc32"

	"github.com/dsnet/dlzip2/internal"
	"github.com/dsnet/dlzip2/internal/errors"
	hashutil "github.com/dsnet/golib/hashmerge"
)

// MaxBlockSize is the largest number of bytes transformed as one BWT block.
const MaxBlockSize = internal.MaxBlockSize

// DefaultBlockSize is used when a configuration leaves the block size unset.
const DefaultBlockSize = MaxBlockSize

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "dlzip2", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

// errWrap converts a lower-level errors.Error to be one from this package.
// The replaceCode passed in will be used to replace the code for any errors
// with the errors.Invalid code.
//
// For the decoding path, set this to errors.Corrupted.
// For the encoding path, set this to errors.Internal.
func errWrap(err error, replaceCode int) error {
	if cerr, ok := err.(errors.Error); ok {
		if errors.IsInvalid(cerr) {
			cerr.Code = replaceCode
		}
		err = errorf(cerr.Code, "%s", cerr.Msg)
	}
	return err
}

var errClosed = errorf(errors.Closed, "")

// IsCorrupted reports whether err indicates a malformed compressed stream.
func IsCorrupted(err error) bool { return errors.IsCorrupted(err) }

// IsInvalid reports whether err indicates a misuse of the API.
func IsInvalid(err error) bool { return errors.IsInvalid(err) }

// IsClosed reports whether err indicates use of a closed Reader or Writer.
func IsClosed(err error) bool { return errors.IsClosed(err) }

// updateCRC returns the result of adding the bytes in buf to the crc.
func updateCRC(crc uint32, buf []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, buf)
}

// combineCRC combines two CRC-32 checksums together, where crc2 covers the
// len2 bytes that follow the data covered by crc1.
func combineCRC(crc1, crc2 uint32, len2 int64) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
}
