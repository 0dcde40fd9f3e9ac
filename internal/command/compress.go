// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package command

import (
	"io"
	"os"
	"strings"

	"github.com/dsnet/dlzip2"
	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
)

// Extension is appended to the names of compressed files.
const Extension = ".dlz"

type compressCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
	outputPath     string
	blockSize      string
}

func newCompressCommandeer(rootCommandeer *RootCommandeer) *compressCommandeer {
	commandeer := &compressCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:   "compress file",
		Short: "Compress a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("Compress requires a single input file")
			}

			blockSize, err := parseBlockSize(commandeer.blockSize)
			if err != nil {
				return errors.Wrap(err, "Invalid block size")
			}

			// initialize root
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			outputPath := commandeer.outputPath
			if outputPath == "" {
				outputPath = args[0] + Extension
			}

			return commandeer.compress(args[0], outputPath, blockSize)
		},
	}

	cmd.Flags().StringVarP(&commandeer.outputPath, "output", "o", "", "Output file (default is the input file with "+Extension+" appended)")
	cmd.Flags().StringVarP(&commandeer.blockSize, "block-size", "b", defaultBlockSize(), "Block size, e.g. 500k or 1e5 (env "+BlockSizeEnv+")")

	commandeer.cmd = cmd

	return commandeer
}

func (c *compressCommandeer) compress(inputPath, outputPath string, blockSize int) error {
	loggerInstance := c.rootCommandeer.loggerInstance

	input, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrap(err, "Failed to open input file")
	}
	defer input.Close() // nolint: errcheck

	output, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "Failed to create output file")
	}
	defer output.Close() // nolint: errcheck

	zw, err := dlzip2.NewWriter(output, &dlzip2.WriterConfig{
		BlockSize: blockSize,
		Logger:    loggerInstance.GetChild("codec"),
	})
	if err != nil {
		return errors.Wrap(err, "Failed to create writer")
	}
	if _, err := io.Copy(zw, input); err != nil {
		return errors.Wrap(err, "Failed to read input file")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "Failed to compress")
	}
	if err := output.Close(); err != nil {
		return errors.Wrap(err, "Failed to close output file")
	}

	loggerInstance.InfoWith("Compressed file",
		"input", inputPath,
		"output", outputPath,
		"rawSize", zw.InputOffset,
		"compressedSize", zw.OutputOffset)

	return nil
}

// decompressedPath derives the output path of a compressed file.
func decompressedPath(inputPath string) (string, error) {
	if !strings.HasSuffix(inputPath, Extension) || len(inputPath) == len(Extension) {
		return "", errors.Errorf("Input file %q lacks the %s extension; use --output", inputPath, Extension)
	}
	return strings.TrimSuffix(inputPath, Extension), nil
}
