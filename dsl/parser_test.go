package dsl

import (
	"errors"
	"testing"

	"github.com/soundgraph-xyz/go-soundgraph/graph"
)

func parseOne(t *testing.T, line string) Statement {
	t.Helper()
	stmts, errs := Parse(line)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", line, errs[0])
	}
	if len(stmts) != 1 {
		t.Fatalf("parse %q: %d statements", line, len(stmts))
	}
	return stmts[0]
}

func TestParseCreate(t *testing.T) {
	s := parseOne(t, `CREATE RandomSequenceContainer "Footsteps" UNDER "Default Work Unit"`)
	if s.Kind != KindCreate || s.Type != graph.RandomSequenceContainer {
		t.Fatalf("statement = %+v", s)
	}
	if s.Name != "Footsteps" || s.Parent != "Default Work Unit" {
		t.Fatalf("statement = %+v", s)
	}
}

func TestParseCreateTypeSpellings(t *testing.T) {
	cases := []struct {
		raw  string
		want graph.ObjectType
	}{
		{"Random Sequence Container", graph.RandomSequenceContainer},
		{"RandomContainer", graph.RandomSequenceContainer},
		{"Actor-Mixer", graph.ActorMixer},
		{"Switch Container", graph.SwitchContainer},
		{"RTPC", graph.GameParameter},
		{"SoundSFX", graph.Sound},
	}
	for _, tc := range cases {
		s := parseOne(t, `CREATE `+tc.raw+` "X" UNDER "Default Work Unit"`)
		if s.Type != tc.want {
			t.Fatalf("%q normalized to %s, want %s", tc.raw, s.Type, tc.want)
		}
	}
}

func TestParseSetPropValues(t *testing.T) {
	cases := []struct {
		line string
		want any
	}{
		{`SET_PROP "X" "Volume" = -3`, int64(-3)},
		{`SET_PROP "X" "Volume" = -4.5`, -4.5},
		{`SET_PROP "X" "Volume" = -6dB`, int64(-6)},
		{`SET_PROP "X" "Lowpass" = 20%`, int64(20)},
		{`SET_PROP "X" "InitialDelay" = 250ms`, int64(250)},
		{`SET_PROP "X" "IsLoopingEnabled" = True`, true},
		{`SET_PROP "X" "IsLoopingEnabled" = false`, false},
		{`SET_PROP "X" "Color" = "Blue"`, "Blue"},
		{`SET_PROP "X" "Notes" = Boss`, "Boss"},
	}
	for _, tc := range cases {
		s := parseOne(t, tc.line)
		if s.Kind != KindSetProp || s.Value != tc.want {
			t.Fatalf("%q value = %#v, want %#v", tc.line, s.Value, tc.want)
		}
	}
}

func TestParseLinkRelationAliases(t *testing.T) {
	s := parseOne(t, `LINK "Steps" TO "SFX_Bus" AS "Bus"`)
	if s.Kind != KindLink || s.Relation != "OutputBus" {
		t.Fatalf("statement = %+v", s)
	}
	s = parseOne(t, `LINK "Steps" TO "Surface" AS "SwitchGroup"`)
	if s.Relation != "SwitchGroupOrStateGroup" {
		t.Fatalf("relation = %s", s.Relation)
	}
}

func TestParseAddAction(t *testing.T) {
	s := parseOne(t, `ADD_ACTION "Play_Steps" PLAY "Footsteps"`)
	if s.Kind != KindAddAction || s.Action != ActionPlay || s.Target != "Footsteps" {
		t.Fatalf("statement = %+v", s)
	}
	s = parseOne(t, `ADD_ACTION "Evt" setswitch "Surface"`)
	if s.Action != ActionSetSwitch {
		t.Fatalf("action = %s", s.Action)
	}
}

func TestActionCodes(t *testing.T) {
	cases := []struct {
		kind ActionKind
		want int
	}{
		{ActionPlay, 1},
		{ActionStop, 2},
		{ActionUnmute, 8},
		{ActionSetGameParameter, 17},
		{ActionResetGameParameter, 20},
	}
	for _, tc := range cases {
		if got := tc.kind.Code(); got != tc.want {
			t.Fatalf("%s code = %d, want %d", tc.kind, got, tc.want)
		}
	}
	if got := ActionKind("WIBBLE").Code(); got != 1 {
		t.Fatalf("unknown kind code = %d, want Play fallback", got)
	}
}

func TestParseSkipsCommentsAndNumbering(t *testing.T) {
	stmts, errs := Parse(`
# a comment
// another comment

1. CREATE Sound "A" UNDER "Default Work Unit"
2. SET_PROP "A" "Volume" = -1
`)
	if len(errs) > 0 {
		t.Fatalf("errs = %v", errs)
	}
	if len(stmts) != 2 || stmts[0].Name != "A" {
		t.Fatalf("stmts = %+v", stmts)
	}
	if stmts[0].Line != 5 {
		t.Fatalf("line = %d, want 5", stmts[0].Line)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		line string
		want error
	}{
		{`CREATE Sound "A UNDER "Default Work Unit"`, ErrUnbalancedQuoting},
		{`DESTROY "A"`, ErrUnknownCommand},
		{`CREATE Gizmo "A" UNDER "Default Work Unit"`, ErrMalformedStatement},
		{`CREATE Sound "A"`, ErrMalformedStatement},
		{`LINK "A" TO "B"`, ErrMalformedStatement},
		{`SET_PROP "A" "Volume" =`, ErrMalformedStatement},
	}
	for _, tc := range cases {
		_, errs := Parse(tc.line)
		if len(errs) != 1 {
			t.Fatalf("%q: errs = %v", tc.line, errs)
		}
		if !errors.Is(&errs[0], tc.want) {
			t.Fatalf("%q: err = %v, want %v", tc.line, errs[0].Err, tc.want)
		}
	}
}

func TestParseBestEffortContinues(t *testing.T) {
	stmts, errs := Parse(`
CREATE Sound "A" UNDER "Default Work Unit"
GARBAGE LINE here
CREATE Sound "B" UNDER "Default Work Unit"
`)
	if len(stmts) != 2 || len(errs) != 1 {
		t.Fatalf("stmts = %d, errs = %d", len(stmts), len(errs))
	}
	if errs[0].Line != 3 {
		t.Fatalf("error line = %d, want 3", errs[0].Line)
	}
}

func TestParseStrictStopsAtFirstError(t *testing.T) {
	_, err := ParseStrict(`
CREATE Sound "A" UNDER "Default Work Unit"
BROKEN
`)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 3 {
		t.Fatalf("err = %v", err)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	input := []Statement{
		{Kind: KindCreate, Type: graph.RandomSequenceContainer, Name: "Steps", Parent: "Default Work Unit"},
		{Kind: KindSetProp, Name: "Steps", Prop: "Volume", Value: -4.5},
		{Kind: KindSetProp, Name: "Steps", Prop: "IsLoopingEnabled", Value: true},
		{Kind: KindLink, Name: "Steps", Target: "SFX_Bus", Relation: "OutputBus"},
		{Kind: KindAddAction, Name: "Play_Steps", Action: ActionPlay, Target: "Steps"},
	}

	out, errs := Parse(Render(input))
	if len(errs) > 0 {
		t.Fatalf("round trip: %v", errs[0])
	}
	if len(out) != len(input) {
		t.Fatalf("got %d statements, want %d", len(out), len(input))
	}
	for i := range input {
		got, want := out[i], input[i]
		if got.Kind != want.Kind || got.Name != want.Name || got.Parent != want.Parent ||
			got.Prop != want.Prop || got.Value != want.Value ||
			got.Target != want.Target || got.Relation != want.Relation || got.Action != want.Action {
			t.Fatalf("statement %d = %+v, want %+v", i, got, want)
		}
	}
}
