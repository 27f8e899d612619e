// Package validate grades sample batches on three levels: syntax (the
// lines parse), semantics (types, relations and properties are ones the
// backend understands) and dependencies (referenced names exist in
// context). Dependency findings are warnings, not errors: targets may
// legitimately name pre-existing backend objects.
package validate

import (
	"fmt"
	"strings"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

// system objects every project starts with; references to them never
// warrant a dependency warning.
var systemObjects = map[string]bool{
	"Master Audio Bus":            true,
	"Master":                      true,
	"Root":                        true,
	"Default Work Unit":           true,
	"Default Conversion Settings": true,
	"Master-Mixer Hierarchy":      true,
	"Actor-Mixer Hierarchy":       true,
	"Events":                      true,
	"Switches":                    true,
	"States":                      true,
	"Game Parameters":             true,
	"Attenuations":                true,
	"Effects":                     true,
}

// commonProps are the property names seen across real projects; others
// get a warning so a reviewer can confirm them.
var commonProps = map[string]bool{
	"Volume":               true,
	"Pitch":                true,
	"Lowpass":              true,
	"Highpass":             true,
	"InitialValue":         true,
	"MinValue":             true,
	"MaxValue":             true,
	"OverrideOutput":       true,
	"OverridePositioning":  true,
	"OverrideGameAuxSends": true,
	"MakeUpGain":           true,
	"BusVolume":            true,
	"InitialDelay":         true,
	"IsLoopingEnabled":     true,
	"IsLoopingInfinite":    true,
	"Inclusion":            true,
	"Color":                true,
	"Priority":             true,
}

// Result grades one sample.
type Result struct {
	Index        int
	SyntaxOK     bool
	SemanticOK   bool
	DependencyOK bool
	Errors       []string
	Warnings     []string
	Commands     map[string]int
}

// Valid reports whether the sample passed both hard levels. Dependency
// warnings alone do not invalidate a sample.
func (r Result) Valid() bool {
	return r.SyntaxOK && r.SemanticOK
}

// Report aggregates a batch run.
type Report struct {
	Total              int
	Valid              int
	Invalid            int
	SyntaxErrors       int
	SemanticErrors     int
	DependencyWarnings int
	Results            []Result
}

// Validator carries the created-object context across the samples of
// one batch, so later samples may reference earlier roots without
// warnings.
type Validator struct {
	created map[string]bool
}

func New() *Validator {
	return &Validator{created: make(map[string]bool)}
}

// ValidateBatch grades every sample in order and aggregates the counts.
func (v *Validator) ValidateBatch(batch []sample.Sample) Report {
	rep := Report{Total: len(batch)}
	for i, s := range batch {
		res := v.ValidateSample(s)
		res.Index = i
		rep.Results = append(rep.Results, res)

		if res.Valid() {
			rep.Valid++
		} else {
			rep.Invalid++
		}
		if !res.SyntaxOK {
			rep.SyntaxErrors++
		}
		if !res.SemanticOK {
			rep.SemanticErrors++
		}
		rep.DependencyWarnings += len(res.Warnings)
	}
	return rep
}

// ValidateSample grades one sample and records its created names into
// the validator's context.
func (v *Validator) ValidateSample(s sample.Sample) Result {
	res := Result{SyntaxOK: true, SemanticOK: true, DependencyOK: true}

	stmts, perrs := s.Statements()
	for _, pe := range perrs {
		res.SyntaxOK = false
		res.Errors = append(res.Errors, pe.Error())
	}
	res.Commands = sample.CountCommands(stmts)

	local := make(map[string]bool)
	for _, st := range stmts {
		switch st.Kind {
		case dsl.KindCreate:
			if !v.known(st.Parent, local) {
				res.DependencyOK = false
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("line %d: parent %q not found in context (object %q)", st.Line, st.Parent, st.Name))
			}
			local[st.Name] = true

		case dsl.KindSetProp:
			if !commonProps[st.Prop] && !strings.HasPrefix(st.Prop, "CurvePoint") {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("line %d: uncommon property %q on %q", st.Line, st.Prop, st.Name))
			}

		case dsl.KindLink:
			if _, ok := dsl.NormalizeRelation(st.Relation); !ok {
				res.SemanticOK = false
				res.Errors = append(res.Errors,
					fmt.Sprintf("line %d: invalid relation %q", st.Line, st.Relation))
			}
			if !v.known(st.Target, local) {
				res.DependencyOK = false
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("line %d: link target %q may not exist (object %q)", st.Line, st.Target, st.Name))
			}

		case dsl.KindAddAction:
			if !v.known(st.Target, local) {
				res.DependencyOK = false
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("line %d: action target %q may not exist (event %q)", st.Line, st.Target, st.Name))
			}
		}
	}

	for name := range local {
		v.created[name] = true
	}
	return res
}

func (v *Validator) known(name string, local map[string]bool) bool {
	return systemObjects[name] || v.created[name] || local[name]
}
