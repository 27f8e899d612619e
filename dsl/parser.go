package dsl

import (
	"strings"

	"github.com/soundgraph-xyz/go-soundgraph/graph"
)

// Parse tokenizes DSL text into an ordered statement sequence, one
// statement per line. Blank lines and comment lines (# or //) are
// ignored. Parsing is best-effort: rejected lines are reported in the
// returned slice and skipped, the rest of the input still parses.
func Parse(input string) ([]Statement, []ParseError) {
	var stmts []Statement
	var errs []ParseError

	for i, line := range strings.Split(input, "\n") {
		num := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		trimmed = stripLinePrefix(trimmed)

		stmt, perr := parseLine(trimmed, num)
		if perr != nil {
			errs = append(errs, *perr)
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, errs
}

// ParseStrict parses like Parse but fails on the first rejected line.
func ParseStrict(input string) ([]Statement, error) {
	stmts, errs := Parse(input)
	if len(errs) > 0 {
		first := errs[0]
		return nil, &first
	}
	return stmts, nil
}

// stripLinePrefix drops a leading "12. " numbering prefix, which shows
// up in machine-generated listings.
func stripLinePrefix(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return line
	}
	return strings.TrimSpace(line[i+1:])
}

func parseLine(line string, num int) (Statement, *ParseError) {
	fail := func(err error) (Statement, *ParseError) {
		return Statement{}, &ParseError{Line: num, Text: line, Err: err}
	}

	if strings.Count(line, `"`)%2 != 0 {
		return fail(ErrUnbalancedQuoting)
	}

	sc := &lineScanner{s: line}
	cmd := strings.ToUpper(sc.readWord())

	switch cmd {
	case "CREATE":
		rawType := sc.readUntilQuote()
		typ, ok := graph.Normalize(rawType)
		if !ok {
			return fail(ErrMalformedStatement)
		}
		name, ok := sc.readQuoted()
		if !ok {
			return fail(ErrMalformedStatement)
		}
		if !sc.expectWord("UNDER") {
			return fail(ErrMalformedStatement)
		}
		parent, ok := sc.readQuoted()
		if !ok || !sc.done() {
			return fail(ErrMalformedStatement)
		}
		return Statement{Kind: KindCreate, Type: typ, Name: name, Parent: parent, Line: num}, nil

	case "SET_PROP":
		name, ok := sc.readQuoted()
		if !ok {
			return fail(ErrMalformedStatement)
		}
		prop, ok := sc.readQuoted()
		if !ok {
			return fail(ErrMalformedStatement)
		}
		if !sc.expectWord("=") {
			return fail(ErrMalformedStatement)
		}
		raw := strings.TrimSpace(sc.rest())
		if raw == "" {
			return fail(ErrMalformedStatement)
		}
		return Statement{Kind: KindSetProp, Name: name, Prop: prop, Value: CleanValue(raw), Line: num}, nil

	case "LINK":
		name, ok := sc.readQuoted()
		if !ok {
			return fail(ErrMalformedStatement)
		}
		if !sc.expectWord("TO") {
			return fail(ErrMalformedStatement)
		}
		target, ok := sc.readQuoted()
		if !ok {
			return fail(ErrMalformedStatement)
		}
		if !sc.expectWord("AS") {
			return fail(ErrMalformedStatement)
		}
		rawRel, ok := sc.readQuoted()
		if !ok || !sc.done() {
			return fail(ErrMalformedStatement)
		}
		rel, _ := NormalizeRelation(rawRel)
		return Statement{Kind: KindLink, Name: name, Target: target, Relation: rel, Line: num}, nil

	case "ADD_ACTION":
		event, ok := sc.readQuoted()
		if !ok {
			return fail(ErrMalformedStatement)
		}
		kindWord := sc.readWord()
		kind, ok := ParseActionKind(kindWord)
		if !ok {
			return fail(ErrMalformedStatement)
		}
		target, ok := sc.readQuoted()
		if !ok || !sc.done() {
			return fail(ErrMalformedStatement)
		}
		return Statement{Kind: KindAddAction, Name: event, Action: kind, Target: target, Line: num}, nil

	default:
		if isCommandWord(cmd) {
			return fail(ErrUnknownCommand)
		}
		return fail(ErrMalformedStatement)
	}
}

// isCommandWord reports whether the token has the shape of a statement
// keyword, distinguishing UnknownCommand from generally malformed text.
func isCommandWord(word string) bool {
	if word == "" {
		return false
	}
	for _, ch := range word {
		if (ch < 'A' || ch > 'Z') && ch != '_' {
			return false
		}
	}
	return true
}

// lineScanner walks a single statement line.
type lineScanner struct {
	s   string
	pos int
}

func (sc *lineScanner) skipSpaces() {
	for sc.pos < len(sc.s) && (sc.s[sc.pos] == ' ' || sc.s[sc.pos] == '\t') {
		sc.pos++
	}
}

// readWord returns the next run of non-space characters.
func (sc *lineScanner) readWord() string {
	sc.skipSpaces()
	start := sc.pos
	for sc.pos < len(sc.s) && sc.s[sc.pos] != ' ' && sc.s[sc.pos] != '\t' {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

// readQuoted consumes a double-quoted literal and returns its contents.
func (sc *lineScanner) readQuoted() (string, bool) {
	sc.skipSpaces()
	if sc.pos >= len(sc.s) || sc.s[sc.pos] != '"' {
		return "", false
	}
	sc.pos++
	start := sc.pos
	for sc.pos < len(sc.s) && sc.s[sc.pos] != '"' {
		sc.pos++
	}
	if sc.pos >= len(sc.s) {
		return "", false
	}
	lit := sc.s[start:sc.pos]
	sc.pos++
	return lit, true
}

// readUntilQuote returns everything up to the next double quote,
// trimmed. Used for type names, which may contain spaces and hyphens.
func (sc *lineScanner) readUntilQuote() string {
	sc.skipSpaces()
	start := sc.pos
	for sc.pos < len(sc.s) && sc.s[sc.pos] != '"' {
		sc.pos++
	}
	return strings.TrimSpace(sc.s[start:sc.pos])
}

// expectWord consumes the next word and reports whether it matches,
// case-insensitively.
func (sc *lineScanner) expectWord(word string) bool {
	return strings.EqualFold(sc.readWord(), word)
}

// rest returns the unconsumed remainder of the line.
func (sc *lineScanner) rest() string {
	sc.skipSpaces()
	return sc.s[sc.pos:]
}

// done reports whether only whitespace remains.
func (sc *lineScanner) done() bool {
	sc.skipSpaces()
	return sc.pos >= len(sc.s)
}
