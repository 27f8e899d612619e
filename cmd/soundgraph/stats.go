package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

func stats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := fs.String("db", "", "Also store the batch in this SQLite database")
	label := fs.String("label", "batch", "Batch label used when storing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soundgraph stats <samples.jsonl> [options]

Summarize a sample batch: complexity distribution, statement mix and
size percentiles. With --db the batch is also persisted for cross-run
queries.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("samples file required")
	}

	batch, err := sample.LoadJSONL(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return fmt.Errorf("no samples in %s", fs.Arg(0))
	}

	dist := make(map[sample.Complexity]int)
	commands := make(map[string]int)
	var lines []int
	totalLines := 0
	for _, s := range batch {
		dist[s.Meta.Complexity]++
		for cmd, n := range s.Meta.Commands {
			commands[cmd] += n
		}
		lines = append(lines, s.Meta.LineCount)
		totalLines += s.Meta.LineCount
	}
	sort.Ints(lines)

	fmt.Printf("%d samples, %d statements\n\n", len(batch), totalLines)

	fmt.Println("Complexity:")
	for _, c := range []sample.Complexity{sample.Simple, sample.Medium, sample.Complex, sample.Expert} {
		fmt.Printf("  %-7s %5d  (%.1f%%)\n", c, dist[c], 100*float64(dist[c])/float64(len(batch)))
	}

	fmt.Println("\nStatements:")
	for _, cmd := range []string{"CREATE", "SET_PROP", "LINK", "ADD_ACTION"} {
		fmt.Printf("  %-10s %6d\n", cmd, commands[cmd])
	}

	fmt.Printf("\nLines per sample: min %d / median %d / p90 %d / max %d\n",
		lines[0], lines[len(lines)/2], lines[len(lines)*9/10], lines[len(lines)-1])

	if *dbPath != "" {
		store, err := sample.OpenStore(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		batchID, err := store.SaveBatch(*label, batch)
		if err != nil {
			return err
		}
		fmt.Printf("\nstored as batch %d (%s) in %s\n", batchID, *label, *dbPath)
	}
	return nil
}
