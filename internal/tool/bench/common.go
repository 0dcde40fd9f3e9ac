// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of dlzip2 against other compression
// implementations with respect to encode speed, decode speed, and ratio.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/dsnet/dlzip2/internal/testutil"
	strconv "github.com/dsnet/golib/unitconv"
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

// Tests maps the name of each benchmark test to its enum.
var Tests = map[string]int{
	"encRate": TestEncodeRate,
	"decRate": TestDecodeRate,
	"ratio":   TestCompressRatio,
}

type Encoder func(io.Writer) (io.WriteCloser, error)
type Decoder func(io.Reader) (io.ReadCloser, error)

type codec struct {
	enc Encoder
	dec Decoder
}

var (
	codecs = make(map[string]codec)

	// List of search paths for test files.
	Paths []string
)

// RegisterCodec makes a codec available to the benchmark suites under name.
func RegisterCodec(name string, enc Encoder, dec Decoder) {
	codecs[name] = codec{enc, dec}
}

// Codecs returns the names of all registered codecs with "dlzip2" first.
func Codecs() []string {
	var s []string
	for k := range codecs {
		if k != "dlzip2" {
			s = append(s, k)
		}
	}
	sort.Strings(s)
	if _, ok := codecs["dlzip2"]; ok {
		s = append([]string{"dlzip2"}, s...)
	}
	return s
}

// BenchmarkEncoder benchmarks a single encoder on the given input data and
// reports the result.
func BenchmarkEncoder(input []byte, enc Encoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := encode(enc, input); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkEncoderSuite runs multiple benchmarks across all codecs, inputs,
// and sizes.
//
// The values returned have the following structure:
//	results: [len(inputs)*len(sizes)][len(codecs)]Result
//	names:   [len(inputs)*len(sizes)]string
func BenchmarkEncoderSuite(names, inputs []string, sizes []int, tick func()) ([][]Result, []string) {
	return benchmarkSuite(names, inputs, sizes, tick,
		func(input []byte, c codec) Result {
			result := BenchmarkEncoder(input, c.enc)
			return rateOf(result)
		})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd, err := dec(bufio.NewReader(bytes.NewReader(input)))
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			cnt, err := io.Copy(ioutil.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all codecs, inputs,
// and sizes. Every decoder reads data compressed by its own encoder.
//
// The values returned have the following structure:
//	results: [len(inputs)*len(sizes)][len(codecs)]Result
//	names:   [len(inputs)*len(sizes)]string
func BenchmarkDecoderSuite(names, inputs []string, sizes []int, tick func()) ([][]Result, []string) {
	return benchmarkSuite(names, inputs, sizes, tick,
		func(input []byte, c codec) Result {
			output, err := encode(c.enc, input)
			if err != nil {
				return Result{}
			}
			result := BenchmarkDecoder(output, c.dec)
			return rateOf(result)
		})
}

// BenchmarkRatioSuite computes the compression ratio across all codecs,
// inputs, and sizes.
//
// The values returned have the following structure:
//	results: [len(inputs)*len(sizes)][len(codecs)]Result
//	names:   [len(inputs)*len(sizes)]string
func BenchmarkRatioSuite(names, inputs []string, sizes []int, tick func()) ([][]Result, []string) {
	return benchmarkSuite(names, inputs, sizes, tick,
		func(input []byte, c codec) Result {
			output, err := encode(c.enc, input)
			if err != nil || len(output) == 0 {
				return Result{}
			}
			ratio := float64(len(input)) / float64(len(output))
			return Result{R: ratio}
		})
}

func encode(enc Encoder, input []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr, err := enc(buf)
	if err != nil {
		return nil, err
	}
	_, cpErr := io.Copy(wr, bytes.NewReader(input))
	if err := wr.Close(); err != nil {
		return nil, err
	}
	if cpErr != nil {
		return nil, cpErr
	}
	return buf.Bytes(), nil
}

func rateOf(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	rate := float64(result.Bytes) / us
	return Result{R: rate}
}

type benchFunc func(input []byte, c codec) Result

func benchmarkSuite(names, inputs []string, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(inputs) * len(sizes)
	d1 := len(names)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	rows := make([]string, d0)

	// Run the benchmark for every codec, input, and size.
	var i int
	for _, f := range inputs {
		for _, n := range sizes {
			b, err := LoadInput(f, n)
			row := getName(f, len(b))
			for j, name := range names {
				if tick != nil {
					tick()
				}
				rows[i] = row
				if c, ok := codecs[name]; ok && err == nil {
					results[i][j] = run(b, c)
				}
				results[i][j].D = results[i][j].R / results[i][0].R
			}
			i++
		}
	}
	return results, rows
}

// LoadInput returns n bytes of input. The name is either a generator from
// testutil.Generators or a file searched for in Paths.
func LoadInput(name string, n int) ([]byte, error) {
	if gen, ok := testutil.Generators[name]; ok {
		if n < 0 {
			return nil, fmt.Errorf("bench: generator %q requires a size", name)
		}
		return gen(0, n), nil
	}
	return testutil.LoadFile(getPath(name), n)
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%s", path.Base(f), sn)
}

// ParseSizes parses a list of sizes, where each size may use an SI or IEC
// prefix (e.g., "1e4", "64Ki", "1M").
func ParseSizes(ss []string) ([]int, error) {
	var sizes []int
	for _, s := range ss {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || nf < 0 || nf != math.Trunc(nf) {
			return nil, fmt.Errorf("bench: invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}
	return sizes, nil
}

// PrintResults writes a table of results to w.
func PrintResults(w io.Writer, results [][]Result, rows, names []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(rows))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(names))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range names {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = rows[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(names))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Fprint(w, "\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Fprint(w, row[i])
		}
		fmt.Fprintln(w)
	}
}
