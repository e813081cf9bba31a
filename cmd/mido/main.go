// Command mido is the command-line front end for the mido compressor: it
// dispatches compress/decompress/report/verify/analyze, each a thin
// wrapper around the mido package's in-memory API.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bpowers/mido"
	"github.com/bpowers/mido/report"
	"github.com/bpowers/mido/suffixarray"
)

func main() {
	app := &cli.App{
		Name:  "mido",
		Usage: "a single-file LZ77 + rANS byte compressor",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "compress INPUT to OUTPUT",
				ArgsUsage: "INPUT OUTPUT",
				Action:    runCompress,
			},
			{
				Name:      "decompress",
				Usage:     "decompress INPUT to OUTPUT",
				ArgsUsage: "INPUT OUTPUT",
				Action:    runDecompress,
			},
			{
				Name:      "report",
				Usage:     "print a compression report for INPUT without writing a file",
				ArgsUsage: "INPUT",
				Action:    runReport,
			},
			{
				Name:      "verify",
				Usage:     "check a container's structure without fully decompressing it",
				ArgsUsage: "CONTAINER",
				Action:    runVerify,
			},
			{
				Name:      "analyze",
				Usage:     "compare the greedy parser's matches to the suffix array's best-possible matches",
				ArgsUsage: "INPUT",
				Action:    runAnalyze,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("mido: %s", err)
	}
}

func runCompress(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: mido compress INPUT OUTPUT", 1)
	}
	inputPath, outputPath := c.Args().Get(0), c.Args().Get(1)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read %s: %s", inputPath, err), 2)
	}

	out := mido.Compress(data)
	if len(out) == 0 {
		fmt.Printf("empty input: no output file written\n")
		return nil
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write %s: %s", outputPath, err), 2)
	}
	fmt.Printf("compressed %d bytes to %d bytes\n", len(data), len(out))
	return nil
}

func runDecompress(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: mido decompress INPUT OUTPUT", 1)
	}
	inputPath, outputPath := c.Args().Get(0), c.Args().Get(1)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read %s: %s", inputPath, err), 2)
	}

	out, err := mido.Decompress(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to decompress: %s", err), 3)
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write %s: %s", outputPath, err), 2)
	}
	fmt.Printf("decompressed %d bytes to %d bytes\n", len(data), len(out))
	return nil
}

func runReport(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: mido report INPUT", 1)
	}
	inputPath := c.Args().Get(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read %s: %s", inputPath, err), 2)
	}

	start := time.Now()
	compressed := mido.Compress(data)
	elapsed := time.Since(start)

	r := report.Compute(data, compressed, elapsed)
	fmt.Print(r.String())
	return nil
}

func runVerify(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: mido verify CONTAINER", 1)
	}
	containerPath := c.Args().Get(0)

	data, err := os.ReadFile(containerPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read %s: %s", containerPath, err), 2)
	}

	if err := mido.VerifyContainer(data); err != nil {
		fmt.Printf("INVALID\n")
		return cli.Exit(err.Error(), 3)
	}
	fmt.Printf("OK\n")
	return nil
}

func runAnalyze(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: mido analyze INPUT", 1)
	}
	inputPath := c.Args().Get(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read %s: %s", inputPath, err), 2)
	}

	actual := mido.ParseStats(data)
	best := suffixarray.BestMatchLengths(data, mido.WindowSize)

	var bestMatches, bestLiteralBytes int
	for p := 0; p < len(best); {
		if best[p] >= mido.MinMatchLength {
			bestMatches++
			p += best[p]
		} else {
			bestLiteralBytes++
			p++
		}
	}

	fmt.Printf("input size        : %d bytes\n", len(data))
	fmt.Printf("greedy parser      : %d literals, %d matches\n", actual.Literals, actual.Matches)
	fmt.Printf("suffix-array bound : %d literal bytes, %d matches (never consulted by compress)\n", bestLiteralBytes, bestMatches)
	return nil
}

