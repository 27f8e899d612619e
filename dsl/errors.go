package dsl

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedStatement = errors.New("dsl: malformed statement")
	ErrUnbalancedQuoting  = errors.New("dsl: unbalanced quoting")
	ErrUnknownCommand     = errors.New("dsl: unknown command")
)

// ParseError records one rejected source line. Best-effort parsing
// collects these and continues; strict parsing stops at the first one.
type ParseError struct {
	Line int    // 1-based line number
	Text string // offending source line, trimmed
	Err  error  // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }
