// Package report builds the cosmetic compression-quality summary printed
// by the CLI's "report" command. None of this feeds back into the
// container format; it exists purely to answer "how did we do compared
// to some familiar codecs," the way the reference implementation's
// "Weissman Score" printout did.
package report

import (
	"bytes"
	"compress/flate"
	"fmt"
	"math"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	klauspostflate "github.com/klauspost/compress/flate"
	"github.com/pierrec/lz4/v4"
	"github.com/pierrec/xxHash/xxHash32"
)

// Baseline is the size a reference codec produced for the same input,
// purely for comparison.
type Baseline struct {
	Name string
	Size int
}

// Report summarizes one compression run.
type Report struct {
	OriginalSize   int
	CompressedSize int
	Ratio          float64
	Elapsed        time.Duration
	Checksum       uint32
	Baselines      []Baseline
	BestBaseline   Baseline
	WeissmanScore  float64
}

// Compute builds a Report comparing this system's own compressed output
// against snappy, lz4, flate, and brotli run over the same input.
func Compute(original, compressed []byte, elapsed time.Duration) Report {
	r := Report{
		OriginalSize:   len(original),
		CompressedSize: len(compressed),
		Elapsed:        elapsed,
		Checksum:       xxHash32.Checksum(original, 0),
	}
	if r.CompressedSize > 0 {
		r.Ratio = float64(r.OriginalSize) / float64(r.CompressedSize)
	}

	r.Baselines = []Baseline{
		{Name: "snappy", Size: len(snappy.Encode(nil, original))},
		{Name: "lz4", Size: sizeLZ4(original)},
		{Name: "flate", Size: sizeKlauspostFlate(original)},
		{Name: "brotli", Size: sizeBrotli(original)},
	}

	r.BestBaseline = r.Baselines[0]
	for _, b := range r.Baselines[1:] {
		if b.Size < r.BestBaseline.Size {
			r.BestBaseline = b
		}
	}

	// Same formula as the reference implementation's Weissman score:
	// ratio weighted by how fast the compression ran, floored at 0.
	seconds := elapsed.Seconds()
	r.WeissmanScore = r.Ratio * math.Log10(1/(seconds+0.0001)) * 10
	if r.WeissmanScore < 0 {
		r.WeissmanScore = 0
	}

	return r
}

func sizeLZ4(data []byte) int {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return -1
	}
	if err := w.Close(); err != nil {
		return -1
	}
	return buf.Len()
}

func sizeKlauspostFlate(data []byte) int {
	var buf bytes.Buffer
	w, err := klauspostflate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return -1
	}
	if _, err := w.Write(data); err != nil {
		return -1
	}
	if err := w.Close(); err != nil {
		return -1
	}
	return buf.Len()
}

func sizeBrotli(data []byte) int {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return -1
	}
	if err := w.Close(); err != nil {
		return -1
	}
	return buf.Len()
}

// String renders the report the way the reference implementation printed
// its compression summary to stdout.
func (r Report) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "----------------------------------------\n")
	fmt.Fprintf(&b, "Compression Report\n")
	fmt.Fprintf(&b, "----------------------------------------\n")
	fmt.Fprintf(&b, "Original size    : %d bytes\n", r.OriginalSize)
	fmt.Fprintf(&b, "Compressed size  : %d bytes\n", r.CompressedSize)
	fmt.Fprintf(&b, "Ratio            : %.2f\n", r.Ratio)
	fmt.Fprintf(&b, "Time             : %s\n", r.Elapsed)
	fmt.Fprintf(&b, "Content checksum : %#08x\n", r.Checksum)
	for _, base := range r.Baselines {
		fmt.Fprintf(&b, "  vs %-7s: %d bytes\n", base.Name, base.Size)
	}
	fmt.Fprintf(&b, "Best baseline    : %s (%d bytes)\n", r.BestBaseline.Name, r.BestBaseline.Size)
	fmt.Fprintf(&b, "Weissman score   : %.2f\n", r.WeissmanScore)
	fmt.Fprintf(&b, "----------------------------------------\n")
	return b.String()
}
