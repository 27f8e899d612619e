// Package dsl implements the line-oriented statement language used to
// describe audio-object hierarchies, in both directions: parsing text
// into statement sequences and rendering statement sequences back to
// canonical text.
package dsl

import "github.com/soundgraph-xyz/go-soundgraph/graph"

// Kind discriminates the statement variants.
type Kind int

const (
	KindCreate Kind = iota
	KindSetProp
	KindLink
	KindAddAction
)

// String returns the statement keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "CREATE"
	case KindSetProp:
		return "SET_PROP"
	case KindLink:
		return "LINK"
	case KindAddAction:
		return "ADD_ACTION"
	}
	return "UNKNOWN"
}

// Statement is one parsed DSL statement. Which fields are meaningful
// depends on Kind:
//
//	KindCreate:    Type, Name, Parent
//	KindSetProp:   Name, Prop, Value
//	KindLink:      Name, Target, Relation
//	KindAddAction: Name (event), Action, Target
//
// Statement order within a sample is semantically meaningful: a
// statement may only reference names introduced earlier, except for the
// planner's single deferred retry.
type Statement struct {
	Kind     Kind
	Type     graph.ObjectType
	Name     string
	Parent   string
	Prop     string
	Value    any
	Target   string
	Relation string
	Action   ActionKind
	Line     int // 1-based source line, 0 when synthesized
}

// relationAliases maps shorthand relation names to the reference names
// the backend understands.
var relationAliases = map[string]string{
	"Bus":         "OutputBus",
	"SwitchGroup": "SwitchGroupOrStateGroup",
}

// canonical relation names accepted by LINK, after alias mapping.
var knownRelations = map[string]bool{
	"OutputBus":               true,
	"Attenuation":             true,
	"SwitchGroupOrStateGroup": true,
	"StateGroup":              true,
	"GameParameter":           true,
	"Conversion":              true,
	"Effect0":                 true,
	"Effect1":                 true,
	"Effect2":                 true,
	"Effect3":                 true,
	"UserAuxSend0":            true,
	"UserAuxSend1":            true,
}

// NormalizeRelation maps a relation spelling from LINK ... AS "..." to
// its canonical reference name. The second return is false for
// relations outside the known set.
func NormalizeRelation(raw string) (string, bool) {
	if mapped, ok := relationAliases[raw]; ok {
		return mapped, true
	}
	return raw, knownRelations[raw]
}
