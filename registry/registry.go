// Package registry tracks object identity for one compile-or-replay
// session: a map from (name, type) to the identifier the backend knows
// the object by. Names are unique only within a type, so resolution by
// bare name must disambiguate; parent resolution prefers containers so
// that a same-named leaf created later can never shadow its container.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/soundgraph-xyz/go-soundgraph/graph"
)

var (
	ErrNotFound             = errors.New("registry: name not registered")
	ErrAmbiguousParent      = errors.New("registry: ambiguous parent reference")
	ErrAmbiguousTarget      = errors.New("registry: ambiguous target reference")
	ErrRegistrationConflict = errors.New("registry: conflicting registration")
)

// RootID is the fixed identifier of the sentinel root: the pre-existing
// top-level scope that needs no registration.
const RootID = "{00000000-0000-0000-0000-000000000000}"

// RootName is the canonical spelling of the sentinel root.
const RootName = "Default Work Unit"

// sentinel parent literals that always resolve to RootID.
var rootNames = map[string]bool{
	"default work unit": true,
	"root":              true,
}

// IsRootName reports whether name is a sentinel spelling of the
// top-level scope.
func IsRootName(name string) bool {
	return rootNames[strings.ToLower(name)]
}

// Role says how a name reference will be used, which changes how
// ambiguity between same-named objects is settled.
type Role int

const (
	// AsParent resolves a CREATE ... UNDER reference. Container-typed
	// candidates win over leaves regardless of registration order.
	AsParent Role = iota
	// AsTarget resolves LINK/SET_PROP/ADD_ACTION references and
	// requires a unique candidate.
	AsTarget
)

// Entry is one registered object.
type Entry struct {
	Name string
	Type graph.ObjectType
	ID   string
}

type key struct {
	name string
	typ  graph.ObjectType
}

// Registry is session-scoped mutable state. Create one per session and
// pass it explicitly; it is not safe for concurrent use and is never
// shared across sessions.
type Registry struct {
	byKey   map[key]string
	entries []Entry // registration order, oldest first
}

// New returns an empty session registry.
func New() *Registry {
	return &Registry{byKey: make(map[key]string)}
}

// Register records name under type's namespace and returns its
// identifier, minting a fresh one on first registration. Repeated calls
// with the same (name, type) return the same identifier.
func (r *Registry) Register(name string, typ graph.ObjectType) string {
	k := key{name: name, typ: typ}
	if id, ok := r.byKey[k]; ok {
		return id
	}
	id := NewID()
	r.record(k, id)
	return id
}

// Bind records a backend-assigned identifier for (name, type). Binding
// the same pair to a different identifier is a logic fault and returns
// ErrRegistrationConflict.
func (r *Registry) Bind(name string, typ graph.ObjectType, id string) error {
	k := key{name: name, typ: typ}
	if existing, ok := r.byKey[k]; ok {
		if existing != id {
			return fmt.Errorf("%w: %s %q already bound to %s", ErrRegistrationConflict, typ, name, existing)
		}
		return nil
	}
	r.record(k, id)
	return nil
}

func (r *Registry) record(k key, id string) {
	r.byKey[k] = id
	r.entries = append(r.entries, Entry{Name: k.name, Type: k.typ, ID: id})
}

// Lookup returns the identifier bound to (name, type), if any.
func (r *Registry) Lookup(name string, typ graph.ObjectType) (string, bool) {
	id, ok := r.byKey[key{name: name, typ: typ}]
	return id, ok
}

// Len returns the number of registered entries.
func (r *Registry) Len() int { return len(r.entries) }

// Resolve maps a bare name reference to an identifier.
//
// Sentinel root spellings resolve to RootID for either role. For
// AsTarget the name must identify exactly one registered object. For
// AsParent, container-typed candidates take precedence over leaves:
// a single container wins outright; with no containers, a single leaf
// wins. Two or more candidates of the deciding class is an ambiguity
// error carrying the candidate list.
func (r *Registry) Resolve(name string, role Role) (string, error) {
	if IsRootName(name) {
		return RootID, nil
	}

	var candidates []Entry
	for _, e := range r.entries {
		if e.Name == name {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if role == AsTarget {
		if len(candidates) > 1 {
			return "", &AmbiguityError{Name: name, Role: role, Candidates: candidates}
		}
		return candidates[0].ID, nil
	}

	var containers []Entry
	for _, e := range candidates {
		if e.Type.IsContainer() {
			containers = append(containers, e)
		}
	}
	switch {
	case len(containers) == 1:
		return containers[0].ID, nil
	case len(containers) > 1:
		// Precedence among same-named containers is undefined;
		// refuse to guess.
		return "", &AmbiguityError{Name: name, Role: role, Candidates: containers}
	}

	if len(candidates) > 1 {
		return "", &AmbiguityError{Name: name, Role: role, Candidates: candidates}
	}
	return candidates[0].ID, nil
}

// AmbiguityError reports a name that matched more than one candidate.
// It unwraps to ErrAmbiguousParent or ErrAmbiguousTarget so callers can
// branch with errors.Is while still inspecting the candidate list.
type AmbiguityError struct {
	Name       string
	Role       Role
	Candidates []Entry
}

func (e *AmbiguityError) Error() string {
	types := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		types = append(types, string(c.Type))
	}
	return fmt.Sprintf("%v: %q matches %s", e.Unwrap(), e.Name, strings.Join(types, ", "))
}

func (e *AmbiguityError) Unwrap() error {
	if e.Role == AsParent {
		return ErrAmbiguousParent
	}
	return ErrAmbiguousTarget
}

// NewID mints a GUID-style identifier in the backend's brace-wrapped
// uppercase format.
func NewID() string {
	return "{" + strings.ToUpper(uuid.New().String()) + "}"
}
