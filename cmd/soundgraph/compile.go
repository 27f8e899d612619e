package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soundgraph-xyz/go-soundgraph/planner"
	"github.com/soundgraph-xyz/go-soundgraph/session"
)

func compile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Abort on the first parse error instead of skipping bad lines")
	verbose := fs.Bool("verbose", false, "Log every rejected or failed statement")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soundgraph compile <input.dsl> [options]

Compile DSL text into an ordered backend call plan. The plan is printed
one call per line; failed statements are reported without discarding
the applied prefix.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("input file required")
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rec := &planner.Recorder{}
	sess := session.New(rec, session.Options{Strict: *strict, Logger: logger})

	rep, err := sess.Compile(string(input))
	if err != nil {
		return err
	}

	for _, call := range rec.Calls {
		switch call.Op {
		case "create":
			fmt.Printf("create %s %q under %s -> %s\n", call.Type, call.Name, call.ParentID, call.ID)
		case "set_property":
			fmt.Printf("set_property %s %q = %v\n", call.ID, call.Prop, call.Value)
		case "link":
			fmt.Printf("link %s -> %q as %s\n", call.ID, call.Target, call.Relation)
		case "add_action":
			fmt.Printf("add_action %s %s -> %q\n", call.ID, call.Action, call.Target)
		}
	}

	fmt.Printf("\n%d statements: %d applied, %d failed, %d rejected lines\n",
		rep.Statements, rep.Applied, rep.Failed, len(rep.ParseErrors))

	if !rep.OK() {
		for _, pe := range rep.ParseErrors {
			fmt.Fprintf(os.Stderr, "  %v\n", &pe)
		}
		for _, res := range rep.Results {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "  line %d: %v\n", res.Statement.Line, res.Err)
			}
		}
		return fmt.Errorf("%d statements failed", rep.Failed)
	}
	return nil
}
