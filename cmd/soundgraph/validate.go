package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/soundgraph-xyz/go-soundgraph/sample"
	val "github.com/soundgraph-xyz/go-soundgraph/validate"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	showWarnings := fs.Bool("warnings", false, "Print dependency and property warnings")
	validOut := fs.String("valid-output", "", "Write samples that passed to this JSONL file")
	invalidOut := fs.String("invalid-output", "", "Write samples that failed to this JSONL file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soundgraph validate <samples.jsonl> [options]

Validate a sample batch on three levels: syntax, semantics and
dependencies. Dependency findings are warnings only; a sample fails on
syntax or semantic errors.

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

	report := val.New().ValidateBatch(batch)

	fmt.Printf("%d samples: %d valid, %d invalid\n", report.Total, report.Valid, report.Invalid)
	fmt.Printf("  syntax errors:       %d\n", report.SyntaxErrors)
	fmt.Printf("  semantic errors:     %d\n", report.SemanticErrors)
	fmt.Printf("  dependency warnings: %d\n", report.DependencyWarnings)

	var valid, invalid []sample.Sample
	for _, res := range report.Results {
		if res.Valid() {
			valid = append(valid, batch[res.Index])
		} else {
			invalid = append(invalid, batch[res.Index])
		}
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "sample %d (%s): %s\n", res.Index, batch[res.Index].Meta.RootName, e)
		}
		if *showWarnings {
			for _, w := range res.Warnings {
				fmt.Fprintf(os.Stderr, "sample %d (%s): warning: %s\n", res.Index, batch[res.Index].Meta.RootName, w)
			}
		}
	}

	if *validOut != "" {
		if err := sample.SaveJSONL(*validOut, valid); err != nil {
			return err
		}
	}
	if *invalidOut != "" {
		if err := sample.SaveJSONL(*invalidOut, invalid); err != nil {
			return err
		}
	}

	if report.Invalid > 0 {
		return fmt.Errorf("%d samples failed validation", report.Invalid)
	}
	return nil
}
