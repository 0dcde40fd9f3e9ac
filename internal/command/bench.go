// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package command

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/dlzip2/internal/testutil"
	"github.com/dsnet/dlzip2/internal/tool/bench"
	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
)

type benchCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
	codecs         []string
	tests          []string
	sizes          []string
	paths          []string
}

func newBenchCommandeer(rootCommandeer *RootCommandeer) *benchCommandeer {
	commandeer := &benchCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:   "bench [file|generator ...]",
		Short: "Compare dlzip2 against other codecs",
		Long: "Compare dlzip2 against other codecs in encode rate, decode rate and compression ratio.\n" +
			"Inputs are files or the names of built-in data generators: " + strings.Join(generatorNames(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				inputs = generatorNames()
			}

			sizes, err := bench.ParseSizes(commandeer.sizes)
			if err != nil {
				return errors.Wrap(err, "Invalid sizes")
			}

			for _, codec := range commandeer.codecs {
				if !contains(bench.Codecs(), codec) {
					return errors.Errorf("Unknown codec %q", codec)
				}
			}

			var tests []int
			for _, name := range commandeer.tests {
				test, found := bench.Tests[name]
				if !found {
					return errors.Errorf("Unknown test %q", name)
				}
				tests = append(tests, test)
			}

			// initialize root
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			bench.Paths = commandeer.paths
			return commandeer.run(cmd, inputs, sizes, tests)
		},
	}

	cmd.Flags().StringSliceVarP(&commandeer.codecs, "codecs", "c", bench.Codecs(), "Codecs to benchmark")
	cmd.Flags().StringSliceVarP(&commandeer.tests, "tests", "t", []string{"ratio", "encRate", "decRate"}, "Benchmark tests")
	cmd.Flags().StringSliceVarP(&commandeer.sizes, "sizes", "s", []string{"1e4", "1e5", "1e6"}, "Input sizes")
	cmd.Flags().StringSliceVarP(&commandeer.paths, "paths", "p", nil, "Paths to search for input files")

	commandeer.cmd = cmd

	return commandeer
}

func (b *benchCommandeer) run(cmd *cobra.Command, inputs []string, sizes, tests []int) error {
	loggerInstance := b.rootCommandeer.loggerInstance
	out := cmd.OutOrStdout()
	start := time.Now()

	for _, test := range tests {
		var results [][]bench.Result
		var rows []string
		var title, suffix string

		total := len(b.codecs) * len(inputs) * len(sizes)
		var count int
		tick := func() {
			count++
			loggerInstance.DebugWith("Running benchmark", "test", testName(test), "step", count, "total", total)
		}

		switch test {
		case bench.TestEncodeRate:
			title = "MB/s"
			results, rows = bench.BenchmarkEncoderSuite(b.codecs, inputs, sizes, tick)
		case bench.TestDecodeRate:
			title = "MB/s"
			results, rows = bench.BenchmarkDecoderSuite(b.codecs, inputs, sizes, tick)
		case bench.TestCompressRatio:
			title, suffix = "ratio", "x"
			results, rows = bench.BenchmarkRatioSuite(b.codecs, inputs, sizes, tick)
		}

		fmt.Fprintf(out, "BENCHMARK: %s\n", testName(test))
		bench.PrintResults(out, results, rows, b.codecs, title, suffix)
		fmt.Fprintln(out)
	}

	loggerInstance.InfoWith("Benchmarks completed", "duration", time.Since(start).String())

	return nil
}

func testName(test int) string {
	for name, t := range bench.Tests {
		if t == test {
			return name
		}
	}
	return "unknown"
}

func generatorNames() []string {
	var names []string
	for name := range testutil.Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
