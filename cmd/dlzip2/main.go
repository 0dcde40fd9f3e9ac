// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command dlzip2 compresses and decompresses files with the dlzip2 codec.
//
// Example usage:
//	$ dlzip2 compress twain.txt            # writes twain.txt.dlz
//	$ dlzip2 decompress -o copy.txt twain.txt.dlz
//	$ dlzip2 bench --codecs dlzip2,xz --sizes 1e5 text repeats
package main

import (
	"os"

	"github.com/dsnet/dlzip2/internal/command"
	"github.com/nuclio/errors"
)

func main() {
	if err := command.NewRootCommandeer().Execute(); err != nil {
		errors.PrintErrorStack(os.Stderr, err, 5)
		os.Exit(1)
	}
}
