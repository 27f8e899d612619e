package graph

// Property is a single named property value on a node. Values are kept
// ordered so statement emission is deterministic.
type Property struct {
	Name  string
	Value any
}

// Relation is a typed, named reference from one node to another object,
// for example an output bus or an attenuation share set.
type Relation struct {
	Name   string // relation kind, e.g. "Bus", "Attenuation", "SwitchGroup"
	Target string // name of the referenced object
}

// CurvePoint is one point of an attenuation curve.
type CurvePoint struct {
	X float64
	Y float64
}

// ActionRef is a triggered action attached to an Event node.
type ActionRef struct {
	Kind   string // e.g. "PLAY", "STOP", "SETSWITCH"
	Target string
}

// Node is one object in a decoded project-definition tree.
type Node struct {
	Type       ObjectType
	Name       string
	Properties []Property
	Relations  []Relation
	Curves     []CurvePoint // attenuation curve points, Attenuation nodes only
	Actions    []ActionRef  // Event nodes only
	Children   []*Node
}

// Depth returns the maximum nesting depth below n. A node without
// children has depth 0.
func (n *Node) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Size returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Size() int {
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}
