// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"io/ioutil"

	"github.com/dsnet/dlzip2"
	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

func init() {
	RegisterCodec("dlzip2",
		func(w io.Writer) (io.WriteCloser, error) {
			return dlzip2.NewWriter(w, nil)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return dlzip2.NewReader(r, nil)
		})
	RegisterCodec("flate",
		func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.DefaultCompression)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		})
	RegisterCodec("xz",
		func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return ioutil.NopCloser(zr), nil
		})
}
