// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"io"
	"testing"
)

func TestError(t *testing.T) {
	var vectors = []struct {
		err  Error
		want string
	}{
		{Error{}, "unknown error"},
		{Error{Code: Corrupted, Pkg: "dlzip2"}, "dlzip2: corrupted input"},
		{Error{Code: Invalid, Pkg: "sais", Msg: "missing sentinel"}, "sais: invalid argument: missing sentinel"},
		{Error{Code: Closed, Msg: "write after close"}, "closed handler: write after close"},
	}

	for i, v := range vectors {
		if got := v.err.Error(); got != v.want {
			t.Errorf("test %d, Error() mismatch: got %q, want %q", i, got, v.want)
		}
	}
}

func TestCodes(t *testing.T) {
	var vectors = []struct {
		err                                   error
		internal, invalid, corrupted, closed bool
	}{
		{io.EOF, false, false, false, false},
		{Error{Code: Internal}, true, false, false, false},
		{Error{Code: Invalid}, false, true, false, false},
		{Error{Code: Corrupted}, false, false, true, false},
		{Error{Code: Closed}, false, false, false, true},
	}

	for i, v := range vectors {
		if got := IsInternal(v.err); got != v.internal {
			t.Errorf("test %d, IsInternal() = %v, want %v", i, got, v.internal)
		}
		if got := IsInvalid(v.err); got != v.invalid {
			t.Errorf("test %d, IsInvalid() = %v, want %v", i, got, v.invalid)
		}
		if got := IsCorrupted(v.err); got != v.corrupted {
			t.Errorf("test %d, IsCorrupted() = %v, want %v", i, got, v.corrupted)
		}
		if got := IsClosed(v.err); got != v.closed {
			t.Errorf("test %d, IsClosed() = %v, want %v", i, got, v.closed)
		}
	}
}

func TestRecover(t *testing.T) {
	want := Error{Code: Corrupted, Msg: "bad stream"}
	got := func() (err error) {
		defer Recover(&err)
		Panic(want)
		return nil
	}()
	if got != want {
		t.Errorf("recovered error mismatch: got %v, want %v", got, want)
	}

	// Panics not raised through Panic must propagate.
	defer func() {
		if ex := recover(); ex == nil {
			t.Errorf("unexpected recovery of foreign panic")
		}
	}()
	func() (err error) {
		defer Recover(&err)
		panic("foreign")
	}()
}
