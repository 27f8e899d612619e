// Package planner turns an ordered statement sequence into backend
// calls. Statements may reference names a few lines before their
// CREATE, so resolution failures get one deferred retry after the first
// pass; the planner deliberately stops there instead of topologically
// sorting, keeping call order close to authoring order.
package planner

import (
	"errors"
	"fmt"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/registry"
)

var (
	ErrUnresolvedReference = errors.New("planner: unresolved reference")
	ErrDependencyFailed    = errors.New("planner: dependency failed")
)

// Status classifies the outcome of one statement.
type Status int

const (
	StatusApplied Status = iota
	StatusUnresolved       // a required reference never resolved
	StatusBackendFailed    // the backend rejected the call
	StatusDependencyFailed // an earlier statement this one depends on failed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusUnresolved:
		return "unresolved"
	case StatusBackendFailed:
		return "backend_failed"
	case StatusDependencyFailed:
		return "dependency_failed"
	}
	return "unknown"
}

// Result is the outcome of one statement. Execution is never
// all-or-nothing: every statement gets a Result in input order.
type Result struct {
	Statement dsl.Statement
	Status    Status
	ID        string // identifier minted by a successful CREATE
	Err       error
}

// Planner drives one session's statement execution against a backend,
// using the session registry for name-to-id resolution.
type Planner struct {
	reg     *registry.Registry
	backend Backend
	failed  map[string]bool // names whose CREATE failed
}

func New(reg *registry.Registry, backend Backend) *Planner {
	return &Planner{reg: reg, backend: backend, failed: make(map[string]bool)}
}

// Execute applies the statements in order. Statements whose required
// reference is not yet registered are set aside and retried once after
// the first pass, so forward references within the sequence resolve
// without reordering the rest.
func (p *Planner) Execute(stmts []dsl.Statement) []Result {
	results := make([]Result, len(stmts))
	var pending []int

	for i, s := range stmts {
		res, done := p.apply(s, false)
		if !done {
			pending = append(pending, i)
			continue
		}
		results[i] = res
	}
	for _, i := range pending {
		res, _ := p.apply(stmts[i], true)
		results[i] = res
	}
	return results
}

// apply executes one statement. It returns done=false when a required
// reference is not registered yet and the statement should be retried;
// on the final attempt every outcome is terminal.
func (p *Planner) apply(s dsl.Statement, final bool) (Result, bool) {
	res := Result{Statement: s, Status: StatusApplied}

	if name, bad := p.failedRef(s); bad {
		p.markFailed(s)
		res.Status = StatusDependencyFailed
		res.Err = fmt.Errorf("%w: %q", ErrDependencyFailed, name)
		return res, true
	}

	switch s.Kind {
	case dsl.KindCreate:
		parentID, err := p.reg.Resolve(s.Parent, registry.AsParent)
		if err != nil {
			return p.resolveFailure(s, err, final)
		}
		id, err := p.backend.Create(s.Type, s.Name, parentID)
		if err != nil {
			p.markFailed(s)
			res.Status = StatusBackendFailed
			res.Err = fmt.Errorf("create %q: %w", s.Name, err)
			return res, true
		}
		if err := p.reg.Bind(s.Name, s.Type, id); err != nil {
			p.markFailed(s)
			res.Status = StatusBackendFailed
			res.Err = err
			return res, true
		}
		res.ID = id

	case dsl.KindSetProp:
		id, err := p.reg.Resolve(s.Name, registry.AsTarget)
		if err != nil {
			return p.resolveFailure(s, err, final)
		}
		if err := p.backend.SetProperty(id, s.Prop, s.Value); err != nil {
			res.Status = StatusBackendFailed
			res.Err = fmt.Errorf("set %q.%s: %w", s.Name, s.Prop, err)
			return res, true
		}

	case dsl.KindLink:
		id, err := p.reg.Resolve(s.Name, registry.AsTarget)
		if err != nil {
			return p.resolveFailure(s, err, final)
		}
		target, err := p.resolveTarget(s.Target)
		if err != nil {
			p.markFailed(s)
			res.Status = StatusUnresolved
			res.Err = err
			return res, true
		}
		if err := p.backend.Link(id, target, s.Relation); err != nil {
			res.Status = StatusBackendFailed
			res.Err = fmt.Errorf("link %q as %s: %w", s.Name, s.Relation, err)
			return res, true
		}

	case dsl.KindAddAction:
		id, err := p.reg.Resolve(s.Name, registry.AsTarget)
		if err != nil {
			return p.resolveFailure(s, err, final)
		}
		target, err := p.resolveTarget(s.Target)
		if err != nil {
			p.markFailed(s)
			res.Status = StatusUnresolved
			res.Err = err
			return res, true
		}
		if err := p.backend.AddAction(id, s.Action, target); err != nil {
			res.Status = StatusBackendFailed
			res.Err = fmt.Errorf("action %s on %q: %w", s.Action, s.Name, err)
			return res, true
		}
	}
	return res, true
}

// resolveFailure decides between deferring and failing a statement
// whose required reference did not resolve. Only not-yet-registered
// names are retryable; ambiguity never improves with more statements.
func (p *Planner) resolveFailure(s dsl.Statement, err error, final bool) (Result, bool) {
	if errors.Is(err, registry.ErrNotFound) {
		if !final {
			return Result{}, false
		}
		err = fmt.Errorf("%w: %v", ErrUnresolvedReference, err)
	}
	p.markFailed(s)
	return Result{Statement: s, Status: StatusUnresolved, Err: err}, true
}

// resolveTarget handles LINK and ADD_ACTION targets, which may name
// pre-existing backend objects this session never created. Unregistered
// names pass through raw for the backend to resolve.
func (p *Planner) resolveTarget(name string) (string, error) {
	id, err := p.reg.Resolve(name, registry.AsTarget)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, registry.ErrNotFound) {
		return name, nil
	}
	return "", err
}

// failedRef reports the first name this statement references whose
// CREATE already failed.
func (p *Planner) failedRef(s dsl.Statement) (string, bool) {
	var refs []string
	switch s.Kind {
	case dsl.KindCreate:
		refs = []string{s.Parent}
	case dsl.KindSetProp:
		refs = []string{s.Name}
	case dsl.KindLink, dsl.KindAddAction:
		refs = []string{s.Name, s.Target}
	}
	for _, ref := range refs {
		if p.failed[ref] {
			return ref, true
		}
	}
	return "", false
}

// markFailed poisons the name a failed CREATE would have introduced, so
// later statements depending on it fail fast instead of deferring.
func (p *Planner) markFailed(s dsl.Statement) {
	if s.Kind == dsl.KindCreate {
		p.failed[s.Name] = true
	}
}
