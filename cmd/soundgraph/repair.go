package main

import (
	"flag"
	"fmt"
	"os"

	rep "github.com/soundgraph-xyz/go-soundgraph/repair"
	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

func repair(args []string) error {
	fs := flag.NewFlagSet("repair", flag.ExitOnError)
	output := fs.String("output", "", "Output JSONL file (default: rewrite input in place)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soundgraph repair <samples.jsonl> [options]

Rewrite dangling cross-sample parent references to the sentinel root.
The pass needs the whole batch at once and is idempotent: running it
twice changes nothing further.

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

	path := fs.Arg(0)
	batch, err := sample.LoadJSONL(path)
	if err != nil {
		return err
	}

	repaired := rep.Repair(batch)

	changed := 0
	for i := range batch {
		if batch[i].Output != repaired[i].Output {
			changed++
		}
	}

	out := *output
	if out == "" {
		out = path
	}
	if err := sample.SaveJSONL(out, repaired); err != nil {
		return err
	}
	fmt.Printf("%d samples, %d repaired -> %s\n", len(repaired), changed, out)
	return nil
}
