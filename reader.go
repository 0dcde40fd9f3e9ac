// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/ioutil"

	"github.com/dsnet/dlzip2/internal/errors"
	"github.com/nuclio/logger"
)

// ReaderConfig configures a Reader. The zero value is valid.
type ReaderConfig struct {
	Logger logger.Logger // May be nil

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader decompresses a single frame produced by Writer.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd     io.Reader
	logger logger.Logger
	toRead []byte // Uncompressed data ready to be emitted from Read
	done   bool   // Whether the frame was already decoded
	err    error  // Persistent error
}

// NewReader returns a new Reader that decompresses the frame read from r.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	if conf != nil {
		zr.logger = conf.Logger
	}
	zr.Reset(r)
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}
		if zr.done {
			zr.err = io.EOF
			continue
		}
		zr.toRead, zr.err = zr.readFrame()
		zr.done = true
	}
}

// Close ends the Reader. It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == io.EOF || zr.err == errClosed {
		zr.toRead = nil // Make sure future reads fail
		zr.err = errClosed
		return nil
	}
	return zr.err // Return the persistent error
}

// Reset discards the Reader's state and makes it equivalent to the result of
// NewReader with r, keeping the original configuration.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{rd: r, logger: zr.logger}
	return nil
}

// readFrame reads the entire frame, decompresses it, and verifies the result
// against the recorded length and checksum.
func (zr *Reader) readFrame() (out []byte, err error) {
	defer errors.Recover(&err)

	frame, err := ioutil.ReadAll(zr.rd)
	zr.InputOffset += int64(len(frame))
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(frame, []byte(magic)) {
		panicf(errors.Corrupted, "invalid frame magic")
	}
	r := bytes.NewReader(frame[len(magic):])
	blkSize, err1 := binary.ReadUvarint(r)
	rawLen, err2 := binary.ReadUvarint(r)
	var sum [4]byte
	_, err3 := io.ReadFull(r, sum[:])
	if err1 != nil || err2 != nil || err3 != nil {
		panicf(errors.Corrupted, "truncated frame header")
	}
	if blkSize < 1 || blkSize > MaxBlockSize {
		panicf(errors.Corrupted, "invalid block size: %d", blkSize)
	}
	if rawLen > maxDecodeSymbols {
		panicf(errors.Corrupted, "raw length too large: %d", rawLen)
	}

	codec, err := NewCodec(&Config{BlockSize: int(blkSize), Logger: zr.logger})
	if err != nil {
		return nil, errWrap(err, errors.Corrupted)
	}
	nblks := (int(rawLen) + int(blkSize) - 1) / int(blkSize)
	stream := frame[len(frame)-r.Len():]
	if out, err = codec.decompress(stream, int(rawLen)+nblks); err != nil {
		return nil, err
	}

	if uint64(len(out)) != rawLen {
		panicf(errors.Corrupted, "mismatching length: got %d, want %d", len(out), rawLen)
	}
	if crc := binary.BigEndian.Uint32(sum[:]); updateCRC(0, out) != crc {
		panicf(errors.Corrupted, "mismatching checksum: got 0x%08x, want 0x%08x", updateCRC(0, out), crc)
	}
	return out, nil
}
