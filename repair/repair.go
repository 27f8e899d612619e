// Package repair reconciles cross-sample parent references after a
// reverse-compile run. Splitting an oversized subtree leaves the new
// sample's head created under its original parent's name, a name that
// only exists inside some other sample; rewriting that parent to the
// sentinel root makes every sample independently executable.
package repair

import (
	"strings"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/registry"
	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

// Repair returns a copy of the batch with dangling head parents
// rewritten to the sentinel root. It is pure and idempotent; samples
// whose head parent is not another sample's root name come back
// byte-identical. The whole batch must be present: streaming samples
// through one at a time would miss the root-name set.
func Repair(batch []sample.Sample) []sample.Sample {
	roots := make(map[string]bool, len(batch))
	for _, s := range batch {
		roots[s.Meta.RootName] = true
	}

	out := make([]sample.Sample, len(batch))
	for i, s := range batch {
		out[i] = s
		parent, ok := s.HeadParent()
		if !ok || !roots[parent] {
			continue
		}
		out[i].Output = rewriteHeadParent(s.Output)
	}
	return out
}

// rewriteHeadParent re-renders the head CREATE with the sentinel root
// as parent, leaving every other line untouched.
func rewriteHeadParent(output string) string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stmts, errs := dsl.Parse(line)
		if len(errs) > 0 || len(stmts) == 0 || stmts[0].Kind != dsl.KindCreate {
			return output
		}
		head := stmts[0]
		head.Parent = registry.RootName
		lines[i] = dsl.RenderStatement(head)
		break
	}
	return strings.Join(lines, "\n")
}
