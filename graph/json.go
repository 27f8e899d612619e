package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// jsonNode is the wire shape of one tree node. Physical project-file
// decoding lives outside this module; collaborators hand trees over as
// JSON in this shape.
type jsonNode struct {
	Type       string           `json:"type"`
	Name       string           `json:"name"`
	Properties map[string]any   `json:"properties,omitempty"`
	Relations  []jsonRelation   `json:"relations,omitempty"`
	Curves     []jsonCurvePoint `json:"curves,omitempty"`
	Actions    []jsonAction     `json:"actions,omitempty"`
	Children   []*jsonNode      `json:"children,omitempty"`
}

type jsonRelation struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

type jsonCurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonAction struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// DecodeTree reads a single JSON node tree from r. Type spellings are
// normalized to the closed enumeration; an unknown type fails the decode.
func DecodeTree(r io.Reader) (*Node, error) {
	var root jsonNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return buildNode(&root, "")
}

func buildNode(jn *jsonNode, parentName string) (*Node, error) {
	if jn.Name == "" {
		return nil, fmt.Errorf("node under %q has no name", parentName)
	}
	typ, ok := Normalize(jn.Type)
	if !ok {
		return nil, fmt.Errorf("node %q: unknown object type %q", jn.Name, jn.Type)
	}

	n := &Node{Type: typ, Name: jn.Name}

	// JSON objects are unordered; sort property names so downstream
	// statement emission is deterministic.
	if len(jn.Properties) > 0 {
		names := make([]string, 0, len(jn.Properties))
		for name := range jn.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			n.Properties = append(n.Properties, Property{Name: name, Value: normalizeValue(jn.Properties[name])})
		}
	}

	for _, rel := range jn.Relations {
		if rel.Name == "" || rel.Target == "" {
			return nil, fmt.Errorf("node %q: relation missing name or target", jn.Name)
		}
		n.Relations = append(n.Relations, Relation{Name: rel.Name, Target: rel.Target})
	}
	for _, cp := range jn.Curves {
		n.Curves = append(n.Curves, CurvePoint{X: cp.X, Y: cp.Y})
	}
	for _, a := range jn.Actions {
		if a.Target == "" {
			return nil, fmt.Errorf("node %q: action missing target", jn.Name)
		}
		n.Actions = append(n.Actions, ActionRef{Kind: a.Kind, Target: a.Target})
	}

	for _, jc := range jn.Children {
		child, err := buildNode(jc, jn.Name)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// normalizeValue collapses the float64-only numerics of encoding/json
// into int64 where the value is integral, matching parsed DSL values.
func normalizeValue(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}
