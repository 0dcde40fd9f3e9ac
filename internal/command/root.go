// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package command implements the dlzip2 command-line interface.
package command

import (
	"math"
	"os"

	"github.com/dsnet/dlzip2"
	strconv "github.com/dsnet/golib/unitconv"
	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
	nucliozap "github.com/nuclio/zap"
	"github.com/spf13/cobra"
)

// BlockSizeEnv overrides the default of the --block-size flag.
const BlockSizeEnv = "DLZIP2_BLOCK_SIZE"

type RootCommandeer struct {
	loggerInstance logger.Logger
	cmd            *cobra.Command
	verbose        bool
}

func NewRootCommandeer() *RootCommandeer {
	commandeer := &RootCommandeer{}

	cmd := &cobra.Command{
		Use:           "dlzip2 [command]",
		Short:         "Block-sorting file compressor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&commandeer.verbose, "verbose", "v", false, "Verbose output")

	// add children
	cmd.AddCommand(
		newCompressCommandeer(commandeer).cmd,
		newDecompressCommandeer(commandeer).cmd,
		newBenchCommandeer(commandeer).cmd,
	)

	commandeer.cmd = cmd

	return commandeer
}

// Execute uses os.Args to execute the command
func (rc *RootCommandeer) Execute() error {
	return rc.cmd.Execute()
}

// GetCmd returns the underlying cobra command
func (rc *RootCommandeer) GetCmd() *cobra.Command {
	return rc.cmd
}

func (rc *RootCommandeer) initialize() error {
	if rc.loggerInstance != nil {
		return nil
	}

	var err error
	rc.loggerInstance, err = rc.createLogger()
	if err != nil {
		return errors.Wrap(err, "Failed to create logger")
	}

	return nil
}

func (rc *RootCommandeer) createLogger() (logger.Logger, error) {
	var loggerLevel nucliozap.Level

	if rc.verbose {
		loggerLevel = nucliozap.DebugLevel
	} else {
		loggerLevel = nucliozap.InfoLevel
	}

	loggerInstance, err := nucliozap.NewNuclioZapCmd("dlzip2", loggerLevel, os.Stdout)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create logger")
	}

	return loggerInstance, nil
}

func defaultBlockSize() string {
	if blockSize := os.Getenv(BlockSizeEnv); blockSize != "" {
		return blockSize
	}
	return "500k"
}

// parseBlockSize parses a block size such as "500k" or "1e5"
func parseBlockSize(s string) (int, error) {
	nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to parse block size %q", s)
	}
	if nf != math.Trunc(nf) || nf < 1 || nf > dlzip2.MaxBlockSize {
		return 0, errors.Errorf("Block size must be an integer between 1 and %d, got %s", dlzip2.MaxBlockSize, s)
	}
	return int(nf), nil
}
