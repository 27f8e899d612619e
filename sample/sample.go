// Package sample defines the unit the reverse compiler produces: one
// self-contained DSL text plus metadata about the subtree it encodes.
// It also carries the downstream record shape and batch persistence
// (JSONL and SQLite).
package sample

import (
	"strings"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/graph"
)

// Complexity grades a sample by statement count, nesting depth and
// statement mix.
type Complexity string

const (
	Simple  Complexity = "simple"
	Medium  Complexity = "medium"
	Complex Complexity = "complex"
	Expert  Complexity = "expert"
)

// Meta describes the subtree a sample was compiled from. Field names
// are part of the dataset contract and must not change.
type Meta struct {
	Source     string         `json:"source"`
	RootType   string         `json:"root_type"`
	RootName   string         `json:"root_name"`
	LineCount  int            `json:"line_count"`
	Depth      int            `json:"depth"`
	Complexity Complexity     `json:"complexity"`
	Commands   map[string]int `json:"commands"`
}

// Sample is one reverse-compiled DSL block. Output holds the statement
// lines joined by newlines; only the repair pass ever mutates it.
type Sample struct {
	Output string
	Meta   Meta
}

// Statements parses the sample body back into statements.
func (s Sample) Statements() ([]dsl.Statement, []dsl.ParseError) {
	return dsl.Parse(s.Output)
}

// Record is the downstream dataset row. Instruction and Input are
// filled by an external generator and stay empty here.
type Record struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
	Meta        Meta   `json:"meta"`
}

// ToRecord wraps the sample in the dataset row shape.
func (s Sample) ToRecord() Record {
	return Record{Output: s.Output, Meta: s.Meta}
}

// CountCommands tallies statements per keyword for the Meta histogram.
func CountCommands(stmts []dsl.Statement) map[string]int {
	counts := map[string]int{
		"CREATE":     0,
		"SET_PROP":   0,
		"LINK":       0,
		"ADD_ACTION": 0,
	}
	for _, s := range stmts {
		counts[s.Kind.String()]++
	}
	return counts
}

// Classify grades a statement sequence. Small shallow blocks are
// simple; event actions, heavy linking or deep nesting push a block to
// expert.
func Classify(stmts []dsl.Statement, depth int) Complexity {
	lineCount := len(stmts)
	hasAction := false
	linkCount := 0
	for _, s := range stmts {
		switch s.Kind {
		case dsl.KindAddAction:
			hasAction = true
		case dsl.KindLink:
			linkCount++
		}
	}

	switch {
	case lineCount <= 3 && depth <= 1:
		return Simple
	case lineCount <= 10 && depth <= 2:
		return Medium
	case hasAction || linkCount >= 3 || depth >= 3:
		return Expert
	default:
		return Complex
	}
}

// NewMeta assembles a sample's metadata from its statements.
func NewMeta(source string, rootType graph.ObjectType, rootName string, stmts []dsl.Statement, depth int) Meta {
	return Meta{
		Source:     source,
		RootType:   string(rootType),
		RootName:   rootName,
		LineCount:  len(stmts),
		Depth:      depth,
		Complexity: Classify(stmts, depth),
		Commands:   CountCommands(stmts),
	}
}

// HeadParent returns the parent name of the sample's first CREATE, the
// reference the repair pass inspects. The second return is false when
// the sample has no CREATE head.
func (s Sample) HeadParent() (string, bool) {
	head, ok := s.headCreate()
	if !ok {
		return "", false
	}
	return head.Parent, true
}

func (s Sample) headCreate() (dsl.Statement, bool) {
	for _, line := range strings.Split(s.Output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stmts, errs := dsl.Parse(line)
		if len(errs) > 0 || len(stmts) == 0 {
			return dsl.Statement{}, false
		}
		if stmts[0].Kind != dsl.KindCreate {
			return dsl.Statement{}, false
		}
		return stmts[0], true
	}
	return dsl.Statement{}, false
}
