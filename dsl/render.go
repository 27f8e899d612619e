package dsl

import (
	"fmt"
	"strings"
)

// RenderStatement returns the canonical single-line form of a statement.
// Parsing the result yields a statement operationally equivalent to the
// input (identical after reference resolution).
func RenderStatement(s Statement) string {
	switch s.Kind {
	case KindCreate:
		return fmt.Sprintf("CREATE %s %q UNDER %q", s.Type, s.Name, s.Parent)
	case KindSetProp:
		return fmt.Sprintf("SET_PROP %q %q = %s", s.Name, s.Prop, FormatValue(s.Value))
	case KindLink:
		return fmt.Sprintf("LINK %q TO %q AS %q", s.Name, s.Target, renderRelation(s.Relation))
	case KindAddAction:
		return fmt.Sprintf("ADD_ACTION %q %s %q", s.Name, s.Action, s.Target)
	}
	return ""
}

// Render joins statements into a DSL sample body, one per line.
func Render(stmts []Statement) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		lines = append(lines, RenderStatement(s))
	}
	return strings.Join(lines, "\n")
}

// renderRelation writes the short spelling for relations that have one;
// the parser maps it straight back to the canonical name.
func renderRelation(canonical string) string {
	if canonical == "OutputBus" {
		return "Bus"
	}
	return canonical
}
