package planner

import (
	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/graph"
	"github.com/soundgraph-xyz/go-soundgraph/registry"
)

// Backend receives the ordered authoring calls a statement sequence
// compiles to. Implementations talk to a real authoring tool or record
// the calls for inspection; either way calls arrive in dependency order.
type Backend interface {
	// Create makes an object under an already-existing parent and
	// returns the identifier the backend assigned to it.
	Create(typ graph.ObjectType, name, parentID string) (string, error)
	SetProperty(id, prop string, value any) error
	// Link points id's named relation slot at target, which is either a
	// resolved identifier or a raw name the backend resolves itself.
	Link(id, target, relation string) error
	AddAction(eventID string, kind dsl.ActionKind, targetID string) error
}

// Call is one recorded backend invocation. Only the fields relevant to
// Op are set.
type Call struct {
	Op       string // "create", "set_property", "link", "add_action"
	Type     graph.ObjectType
	Name     string
	ParentID string
	ID       string
	Prop     string
	Value    any
	Target   string
	Relation string
	Action   dsl.ActionKind
}

// Recorder is a Backend that logs every call and mints identifiers
// locally. It backs dry-run compilation and the tests.
type Recorder struct {
	Calls []Call

	// Fail maps object names to the error their Create should return,
	// for exercising failure paths.
	Fail map[string]error
}

func (r *Recorder) Create(typ graph.ObjectType, name, parentID string) (string, error) {
	if err := r.Fail[name]; err != nil {
		return "", err
	}
	id := registry.NewID()
	r.Calls = append(r.Calls, Call{Op: "create", Type: typ, Name: name, ParentID: parentID, ID: id})
	return id, nil
}

func (r *Recorder) SetProperty(id, prop string, value any) error {
	r.Calls = append(r.Calls, Call{Op: "set_property", ID: id, Prop: prop, Value: value})
	return nil
}

func (r *Recorder) Link(id, target, relation string) error {
	r.Calls = append(r.Calls, Call{Op: "link", ID: id, Target: target, Relation: relation})
	return nil
}

func (r *Recorder) AddAction(eventID string, kind dsl.ActionKind, targetID string) error {
	r.Calls = append(r.Calls, Call{Op: "add_action", ID: eventID, Action: kind, Target: targetID})
	return nil
}
