// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package dlzip2

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"

	"github.com/dsnet/dlzip2/internal/testutil"
)

const bananaFrame = "444c5a32" + "a0c21e" + "06" + "038b67cf" +
	"0012000302620164006e000000000001000002005357c0"

func TestWriter(t *testing.T) {
	var bb bytes.Buffer
	zw, err := NewWriter(&bb, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range []string{"ban", "", "a", "na"} {
		if _, err := io.WriteString(zw, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := hex.EncodeToString(bb.Bytes()); got != bananaFrame {
		t.Errorf("output mismatch:\ngot  %s\nwant %s", got, bananaFrame)
	}
	if zw.InputOffset != 6 || zw.OutputOffset != int64(bb.Len()) {
		t.Errorf("offset mismatch: got (%d, %d), want (6, %d)", zw.InputOffset, zw.OutputOffset, bb.Len())
	}

	if err := zw.Close(); err != nil {
		t.Errorf("second Close: unexpected error: %v", err)
	}
	if _, err := zw.Write([]byte("x")); !IsClosed(err) {
		t.Errorf("Write after Close: got %v, want closed", err)
	}

	bb.Reset()
	zw.Reset(&bb)
	io.WriteString(zw, "banana")
	if err := zw.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := hex.EncodeToString(bb.Bytes()); got != bananaFrame {
		t.Errorf("output after Reset mismatch:\ngot  %s\nwant %s", got, bananaFrame)
	}
}

func TestWriterConfig(t *testing.T) {
	if _, err := NewWriter(new(bytes.Buffer), &WriterConfig{BlockSize: -5}); !IsInvalid(err) {
		t.Errorf("mismatching error: got %v, want invalid argument", err)
	}
}

func TestWriterError(t *testing.T) {
	errBuggy := io.ErrShortWrite
	bw := &testutil.BuggyWriter{W: new(bytes.Buffer), N: 5, Err: errBuggy}
	zw, _ := NewWriter(bw, nil)
	zw.Write([]byte("banana"))
	if err := zw.Close(); err != errBuggy {
		t.Errorf("mismatching error: got %v, want %v", err, errBuggy)
	}
	if err := zw.Close(); err != errBuggy {
		t.Errorf("persistent error mismatch: got %v, want %v", err, errBuggy)
	}
}

func TestContainerRoundTrip(t *testing.T) {
	for name, gen := range testutil.Generators {
		for _, blkSize := range []int{0, 777} {
			input := gen(0, 20000)
			var bb bytes.Buffer
			zw, err := NewWriter(&bb, &WriterConfig{BlockSize: blkSize})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for buf := input; len(buf) > 0; {
				n := 1 + len(buf)/3
				zw.Write(buf[:n])
				buf = buf[n:]
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("%s/%d, unexpected error: %v", name, blkSize, err)
			}
			frameLen := int64(bb.Len())

			zr, _ := NewReader(&bb, nil)
			output, err := io.ReadAll(zr)
			if err != nil {
				t.Errorf("%s/%d, unexpected error: %v", name, blkSize, err)
				continue
			}
			if !bytes.Equal(output, input) {
				t.Errorf("%s/%d, round trip mismatch", name, blkSize)
			}
			if zr.InputOffset != frameLen || zr.OutputOffset != int64(len(input)) {
				t.Errorf("%s/%d, offset mismatch: got (%d, %d), want (%d, %d)",
					name, blkSize, zr.InputOffset, zr.OutputOffset, frameLen, len(input))
			}
			if err := zr.Close(); err != nil {
				t.Errorf("%s/%d, unexpected error: %v", name, blkSize, err)
			}
		}
	}
}
