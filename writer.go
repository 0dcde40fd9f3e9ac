// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

import (
	"encoding/binary"
	"io"

	"github.com/nuclio/logger"
)

// The container frame wraps one compressed stream:
//	magic      [4]byte  "DLZ2"
//	blockSize  uvarint
//	rawLength  uvarint
//	checksum   [4]byte  CRC-32 (IEEE) of the raw data, big-endian
//	stream     []byte   output of Codec.Compress
const magic = "DLZ2"

// WriterConfig configures a Writer. The zero value is valid.
type WriterConfig struct {
	BlockSize int           // Zero selects DefaultBlockSize
	Logger    logger.Logger // May be nil

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer buffers all data written to it and emits a single frame on Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr    io.Writer
	codec *Codec
	buf   []byte
	crc   uint32
	err   error
}

// NewWriter returns a new Writer that writes a frame to w.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var cc Config
	if conf != nil {
		cc.BlockSize = conf.BlockSize
		cc.Logger = conf.Logger
	}
	codec, err := NewCodec(&cc)
	if err != nil {
		return nil, err
	}
	zw := &Writer{codec: codec}
	zw.Reset(w)
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	crc := updateCRC(0, buf)
	zw.crc = combineCRC(zw.crc, crc, int64(len(buf)))
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close compresses the buffered data and writes the frame. It does not close
// the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	data, err := zw.codec.Compress(zw.buf)
	if err != nil {
		zw.err = err
		return err
	}

	hdr := make([]byte, 0, len(magic)+2*binary.MaxVarintLen64+4)
	hdr = append(hdr, magic...)
	hdr = appendUvarint(hdr, uint64(zw.codec.BlockSize()))
	hdr = appendUvarint(hdr, uint64(len(zw.buf)))
	hdr = append(hdr, byte(zw.crc>>24), byte(zw.crc>>16), byte(zw.crc>>8), byte(zw.crc))

	for _, b := range [][]byte{hdr, data} {
		n, err := zw.wr.Write(b)
		zw.OutputOffset += int64(n)
		if err != nil {
			zw.err = err
			return err
		}
	}
	zw.buf = zw.buf[:0]
	zw.err = errClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result of
// NewWriter with w, keeping the original configuration.
func (zw *Writer) Reset(w io.Writer) error {
	*zw = Writer{wr: w, codec: zw.codec, buf: zw.buf[:0]}
	return nil
}

func appendUvarint(buf []byte, v uint64) []byte {
	var b [binary.MaxVarintLen64]byte
	return append(buf, b[:binary.PutUvarint(b[:], v)]...)
}
