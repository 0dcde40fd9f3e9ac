// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package command

import (
	"io"
	"os"

	"github.com/dsnet/dlzip2"
	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
)

type decompressCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
	outputPath     string
}

func newDecompressCommandeer(rootCommandeer *RootCommandeer) *decompressCommandeer {
	commandeer := &decompressCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:   "decompress file" + Extension,
		Short: "Decompress a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("Decompress requires a single input file")
			}

			outputPath := commandeer.outputPath
			if outputPath == "" {
				var err error
				if outputPath, err = decompressedPath(args[0]); err != nil {
					return err
				}
			}

			// initialize root
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			return commandeer.decompress(args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&commandeer.outputPath, "output", "o", "", "Output file (default is the input file without "+Extension+")")

	commandeer.cmd = cmd

	return commandeer
}

func (d *decompressCommandeer) decompress(inputPath, outputPath string) error {
	loggerInstance := d.rootCommandeer.loggerInstance

	input, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrap(err, "Failed to open input file")
	}
	defer input.Close() // nolint: errcheck

	zr, err := dlzip2.NewReader(input, &dlzip2.ReaderConfig{
		Logger: loggerInstance.GetChild("codec"),
	})
	if err != nil {
		return errors.Wrap(err, "Failed to create reader")
	}

	// a corrupt input must not leave a partial output file
	var data []byte
	if data, err = io.ReadAll(zr); err != nil {
		return errors.Wrap(err, "Failed to decompress")
	}
	if err := zr.Close(); err != nil {
		return errors.Wrap(err, "Failed to close reader")
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return errors.Wrap(err, "Failed to write output file")
	}

	loggerInstance.InfoWith("Decompressed file",
		"input", inputPath,
		"output", outputPath,
		"compressedSize", zr.InputOffset,
		"rawSize", zr.OutputOffset)

	return nil
}
