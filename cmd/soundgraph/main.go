package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "compile":
		if err := compile(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "reverse":
		if err := reverse(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "repair":
		if err := repair(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := stats(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("soundgraph version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`soundgraph - audio-object DSL compiler toolkit

Usage:
  soundgraph <command> [options]

Commands:
  compile    Compile DSL text into an ordered backend call plan
  reverse    Reverse-compile a project tree into DSL samples
  repair     Fix cross-sample parent references in a sample batch
  validate   Validate a sample batch (syntax, semantics, dependencies)
  stats      Summarize a sample batch or stored batches
  help       Show this help message
  version    Show version information

Examples:
  # Compile a DSL file and print the call plan
  soundgraph compile steps.dsl

  # Reverse-compile a project tree into samples
  soundgraph reverse tree.json --output samples.jsonl

  # Repair a freshly reverse-compiled batch
  soundgraph repair samples.jsonl --output repaired.jsonl

  # Validate a batch
  soundgraph validate samples.jsonl

  # Store and summarize batches
  soundgraph stats samples.jsonl --db samples.db --label nightly

For command-specific help, run:
  soundgraph <command> --help`)
}
