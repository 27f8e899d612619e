// Package reverse compiles decoded project trees into DSL samples: one
// sample per logical root, each a self-contained statement sequence
// that rebuilds its subtree in depth-first preorder.
package reverse

import (
	"errors"
	"fmt"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/graph"
	"github.com/soundgraph-xyz/go-soundgraph/registry"
	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

var ErrNoTree = errors.New("reverse: no tree to compile")

// Options bound how much of a hierarchy is inlined into one sample.
// A nested subtree whose emission would cross either limit is split off
// into its own sample; the repair pass later rewrites the cross-sample
// parent reference.
type Options struct {
	MaxLines int // statement-count split threshold
	MaxDepth int // nesting-depth split threshold
}

// DefaultOptions keeps samples small enough to stay learnable chunks.
func DefaultOptions() Options {
	return Options{MaxLines: 50, MaxDepth: 4}
}

// Compiler turns node trees into sample batches.
type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultOptions().MaxLines
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	return &Compiler{opts: opts}
}

// defaultPropValues lists property values the authoring tool assumes
// anyway; emitting them would only pad samples.
var defaultPropValues = map[string]any{
	"Volume":           int64(0),
	"Pitch":            int64(0),
	"Lowpass":          int64(0),
	"Highpass":         int64(0),
	"InitialValue":     int64(0),
	"Priority":         int64(50),
	"IsLoopingEnabled": false,
	"Inclusion":        true,
}

// Sound subtrees never head their own sample: a lone Sound is not an
// executable unit, it needs the container context around it.
func rootable(t graph.ObjectType) bool {
	switch t {
	case graph.Sound, graph.WorkUnit, graph.Folder:
		return false
	}
	return true
}

// Compile walks the tree under scope and returns one sample per logical
// root, in depth-first order. scope itself is the top-level container
// (typically the default work unit) and is never emitted.
func (c *Compiler) Compile(scope *graph.Node, source string) ([]sample.Sample, error) {
	if scope == nil {
		return nil, ErrNoTree
	}
	scopeName := scope.Name
	if scopeName == "" {
		scopeName = registry.RootName
	}

	var samples []sample.Sample
	for _, child := range scope.Children {
		c.collect(child, scopeName, source, &samples)
	}
	return samples, nil
}

// collect handles one candidate head. Grouping containers (work units,
// folders) are transparent: they never head a sample, their children
// are visited with the parent name advanced past them.
func (c *Compiler) collect(node *graph.Node, parentName, source string, out *[]sample.Sample) {
	if !rootable(node.Type) {
		if node.Type.IsContainer() {
			for _, child := range node.Children {
				c.collect(child, node.Name, source, out)
			}
		}
		// A bare leaf directly under the scope has no executable
		// context of its own and is dropped.
		return
	}
	c.build(node, parentName, source, out)
}

// build emits one sample headed by node and appends it, followed by the
// samples of any subtree split off along the way.
func (c *Compiler) build(node *graph.Node, parentName, source string, out *[]sample.Sample) {
	var splits []*graph.Node
	splitParents := make(map[*graph.Node]string)

	stmts, depth := c.emit(node, parentName, 0, &splits, splitParents)
	if len(stmts) > 0 {
		*out = append(*out, sample.Sample{
			Output: dsl.Render(stmts),
			Meta:   sample.NewMeta(source, node.Type, node.Name, stmts, depth),
		})
	}
	for _, split := range splits {
		c.build(split, splitParents[split], source, out)
	}
}

// emit writes node's statements followed by its inlined children in
// preorder, returning the statements and the deepest inlined level.
// Oversized rootable children are recorded as splits instead.
func (c *Compiler) emit(node *graph.Node, parentName string, depth int, splits *[]*graph.Node, splitParents map[*graph.Node]string) ([]dsl.Statement, int) {
	stmts := c.nodeStatements(node, parentName)
	maxDepth := depth

	for _, child := range node.Children {
		if rootable(child.Type) && c.oversized(child) {
			*splits = append(*splits, child)
			splitParents[child] = node.Name
			continue
		}
		childStmts, childDepth := c.emit(child, node.Name, depth+1, splits, splitParents)
		stmts = append(stmts, childStmts...)
		if childDepth > maxDepth {
			maxDepth = childDepth
		}
	}
	return stmts, maxDepth
}

// nodeStatements emits the statements for one node, children excluded:
// the CREATE, then properties, curve points, links and event actions.
func (c *Compiler) nodeStatements(node *graph.Node, parentName string) []dsl.Statement {
	var stmts []dsl.Statement

	stmts = append(stmts, dsl.Statement{
		Kind: dsl.KindCreate, Type: node.Type, Name: node.Name, Parent: parentName,
	})

	for _, p := range node.Properties {
		if def, ok := defaultPropValues[p.Name]; ok && def == p.Value {
			continue
		}
		stmts = append(stmts, dsl.Statement{
			Kind: dsl.KindSetProp, Name: node.Name, Prop: p.Name, Value: p.Value,
		})
	}

	// Curve points ride the SET_PROP vocabulary; there is no dedicated
	// curve grammar.
	for i, cp := range node.Curves {
		stmts = append(stmts, dsl.Statement{
			Kind: dsl.KindSetProp, Name: node.Name,
			Prop:  fmt.Sprintf("CurvePoint%d", i),
			Value: fmt.Sprintf("%g;%g", cp.X, cp.Y),
		})
	}

	for _, rel := range node.Relations {
		name, ok := dsl.NormalizeRelation(rel.Name)
		if !ok {
			continue
		}
		stmts = append(stmts, dsl.Statement{
			Kind: dsl.KindLink, Name: node.Name, Target: rel.Target, Relation: name,
		})
	}

	if node.Type == graph.Event {
		for _, a := range node.Actions {
			kind, ok := dsl.ParseActionKind(a.Kind)
			if !ok {
				kind = dsl.ActionPlay
			}
			stmts = append(stmts, dsl.Statement{
				Kind: dsl.KindAddAction, Name: node.Name, Action: kind, Target: a.Target,
			})
		}
	}
	return stmts
}

// oversized reports whether inlining node would cross a split
// threshold.
func (c *Compiler) oversized(node *graph.Node) bool {
	return c.countStatements(node) > c.opts.MaxLines || node.Depth()+1 > c.opts.MaxDepth
}

// countStatements estimates the lines node's subtree would emit.
func (c *Compiler) countStatements(node *graph.Node) int {
	total := len(c.nodeStatements(node, ""))
	for _, child := range node.Children {
		total += c.countStatements(child)
	}
	return total
}
