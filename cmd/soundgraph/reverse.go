package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soundgraph-xyz/go-soundgraph/graph"
	rep "github.com/soundgraph-xyz/go-soundgraph/repair"
	rev "github.com/soundgraph-xyz/go-soundgraph/reverse"
	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

func reverse(args []string) error {
	fs := flag.NewFlagSet("reverse", flag.ExitOnError)
	output := fs.String("output", "samples.jsonl", "Output JSONL file")
	maxLines := fs.Int("max-lines", rev.DefaultOptions().MaxLines, "Statement-count split threshold per sample")
	maxDepth := fs.Int("max-depth", rev.DefaultOptions().MaxDepth, "Nesting-depth split threshold per sample")
	source := fs.String("source", "", "Source label stored in sample metadata (default: input filename)")
	noRepair := fs.Bool("no-repair", false, "Skip the cross-sample parent repair pass")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soundgraph reverse <tree.json> [options]

Reverse-compile a decoded project tree into DSL samples, one JSONL
record per logical root. Oversized subtrees are split into their own
samples; the repair pass then rewrites cross-sample parent references
to the sentinel root.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("tree file required")
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	root, err := graph.DecodeTree(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	label := *source
	if label == "" {
		label = filepath.Base(path)
	}

	compiler := rev.New(rev.Options{MaxLines: *maxLines, MaxDepth: *maxDepth})
	samples, err := compiler.Compile(root, label)
	if err != nil {
		return err
	}
	if !*noRepair {
		samples = rep.Repair(samples)
	}

	if err := sample.SaveJSONL(*output, samples); err != nil {
		return err
	}

	dist := make(map[sample.Complexity]int)
	for _, s := range samples {
		dist[s.Meta.Complexity]++
	}
	fmt.Printf("%d samples -> %s\n", len(samples), *output)
	for _, c := range []sample.Complexity{sample.Simple, sample.Medium, sample.Complex, sample.Expert} {
		if dist[c] > 0 {
			fmt.Printf("  %-7s %d\n", c, dist[c])
		}
	}
	return nil
}
