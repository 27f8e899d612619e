// Package session wires the parser, registry and planner together for
// one compile-or-replay invocation. Each session owns its registry;
// nothing is shared process-wide, so independent sessions can run side
// by side.
package session

import (
	"log/slog"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/planner"
	"github.com/soundgraph-xyz/go-soundgraph/registry"
)

// Options configures one session.
type Options struct {
	// Strict aborts compilation on the first parse error instead of
	// skipping rejected lines.
	Strict bool
	// Logger receives per-statement failure logs. Nil means the
	// process default.
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{}
}

// Session is the per-invocation compile context.
type Session struct {
	id      string
	reg     *registry.Registry
	planner *planner.Planner
	strict  bool
	log     *slog.Logger
}

// New creates a session executing against backend.
func New(backend planner.Backend, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	reg := registry.New()
	id := registry.NewID()
	return &Session{
		id:      id,
		reg:     reg,
		planner: planner.New(reg, backend),
		strict:  opts.Strict,
		log:     log.With("session", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Registry exposes the session registry, mainly for tests and callers
// that pre-bind existing backend objects.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Report aggregates one compile invocation. The applied prefix is never
// discarded: Results covers every statement with its individual
// outcome.
type Report struct {
	SessionID   string
	Statements  int
	Applied     int
	Failed      int
	ParseErrors []dsl.ParseError
	Results     []planner.Result
}

// OK reports whether every line parsed and every statement applied.
func (r Report) OK() bool {
	return r.Failed == 0 && len(r.ParseErrors) == 0
}

// Compile parses input and executes the statements against the
// session's backend. In strict mode a parse error aborts before any
// backend call; otherwise rejected lines are reported and skipped.
func (s *Session) Compile(input string) (Report, error) {
	rep := Report{SessionID: s.id}

	if s.strict {
		stmts, err := dsl.ParseStrict(input)
		if err != nil {
			return rep, err
		}
		return s.run(stmts, rep), nil
	}

	stmts, perrs := dsl.Parse(input)
	rep.ParseErrors = perrs
	for _, pe := range perrs {
		s.log.Warn("rejected line", "line", pe.Line, "err", pe.Err)
	}
	return s.run(stmts, rep), nil
}

func (s *Session) run(stmts []dsl.Statement, rep Report) Report {
	rep.Statements = len(stmts)
	rep.Results = s.planner.Execute(stmts)
	for _, res := range rep.Results {
		if res.Status == planner.StatusApplied {
			rep.Applied++
			continue
		}
		rep.Failed++
		s.log.Warn("statement failed",
			"line", res.Statement.Line,
			"kind", res.Statement.Kind.String(),
			"status", res.Status.String(),
			"err", res.Err)
	}
	s.log.Info("compile finished",
		"statements", rep.Statements,
		"applied", rep.Applied,
		"failed", rep.Failed,
		"rejected_lines", len(rep.ParseErrors))
	return rep
}
