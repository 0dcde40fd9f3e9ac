// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

import (
	"github.com/dsnet/dlzip2/internal/errors"
	"github.com/dsnet/dlzip2/internal/huffman"
	"github.com/nuclio/logger"
)

// maxDecodeSymbols bounds the intermediate output of a stream decoded without
// a known raw length.
const maxDecodeSymbols = 1 << 30

// Config configures a Codec. The zero value is valid.
type Config struct {
	// BlockSize is the number of bytes transformed as one BWT block.
	// It must be within [1, MaxBlockSize]. Zero selects DefaultBlockSize.
	// The same value must be used for compression and decompression.
	BlockSize int

	// Logger receives per-stage debug records. It may be nil.
	Logger logger.Logger

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Stats describes the result of a single compression.
type Stats struct {
	Blocks         int
	RawSize        int64
	CompressedSize int64
}

// Ratio is the raw size divided by the compressed size.
func (s Stats) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.RawSize) / float64(s.CompressedSize)
}

// Codec compresses and decompresses whole buffers. A Codec may be reused but
// is not safe for concurrent use.
type Codec struct {
	blkSize int
	logger  logger.Logger

	bwt burrowsWheelerTransform
	mtf moveToFront
}

// NewCodec returns a Codec for the given configuration. A nil conf selects
// the default configuration.
func NewCodec(conf *Config) (*Codec, error) {
	c := &Codec{blkSize: DefaultBlockSize}
	if conf != nil {
		switch {
		case conf.BlockSize == 0:
		case conf.BlockSize < 1 || conf.BlockSize > MaxBlockSize:
			return nil, errorf(errors.Invalid, "invalid block size: %d", conf.BlockSize)
		default:
			c.blkSize = conf.BlockSize
		}
		c.logger = conf.Logger
	}
	return c, nil
}

// Compress compresses data using the default configuration.
func Compress(data []byte) ([]byte, error) {
	c, _ := NewCodec(nil)
	return c.Compress(data)
}

// Decompress decompresses data that was produced by Compress.
func Decompress(data []byte) ([]byte, error) {
	c, _ := NewCodec(nil)
	return c.Decompress(data)
}

// BlockSize reports the block size used by c.
func (c *Codec) BlockSize() int { return c.blkSize }

// Compress returns the compressed form of data.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	out, _, err := c.CompressStats(data)
	return out, err
}

// CompressStats is like Compress, but also reports statistics.
func (c *Codec) CompressStats(data []byte) (out []byte, st Stats, err error) {
	defer errors.Recover(&err)

	syms, nblks := encodeBlocks(&c.bwt, data, c.blkSize)
	c.debugWith("Transformed blocks", "blocks", nblks, "symbols", len(syms))

	c.mtf.Init()
	idxs := c.mtf.Encode(syms)
	runs := encodeZRLE(idxs)
	c.debugWith("Encoded zero runs", "in", len(idxs), "out", len(runs))

	out, err = huffman.Encode(runs)
	if err != nil {
		return nil, st, errWrap(err, errors.Internal)
	}
	st = Stats{Blocks: nblks, RawSize: int64(len(data)), CompressedSize: int64(len(out))}
	c.debugWith("Compressed", "raw", st.RawSize, "compressed", st.CompressedSize)
	return out, st, nil
}

// Decompress returns the original data of a stream produced by Compress with
// the same block size.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	return c.decompress(data, maxDecodeSymbols)
}

// decompress decodes data, failing if the intermediate symbol stream would
// exceed limit symbols.
func (c *Codec) decompress(data []byte, limit int) (out []byte, err error) {
	defer errors.Recover(&err)

	if len(data) == 0 {
		return []byte{}, nil
	}
	runs, err := huffman.Decode(data)
	if err != nil {
		return nil, errWrap(err, errors.Corrupted)
	}
	c.debugWith("Decoded prefix codes", "symbols", len(runs))

	// Symbols are pulled one block at a time so that a hostile run is
	// rejected by the BWT before it can grow past a single block.
	var zr zrleReader
	var chunk []uint16
	var nsyms int
	zr.Init(runs)
	c.mtf.Init()
	out, nblks := decodeBlocks(&c.bwt, c.blkSize, func(n int) []uint16 {
		if rem := limit - nsyms; n > rem {
			n = rem + 1
		}
		chunk = zr.Read(chunk[:0], n)
		if nsyms += len(chunk); nsyms > limit {
			panicf(errors.Corrupted, "stream exceeds %d symbols", limit)
		}
		return c.mtf.Decode(chunk)
	})
	if out == nil {
		out = []byte{}
	}
	c.debugWith("Decompressed", "blocks", nblks, "raw", len(out))
	return out, nil
}

func (c *Codec) debugWith(msg string, vars ...interface{}) {
	if c.logger != nil {
		c.logger.DebugWith(msg, vars...)
	}
}
