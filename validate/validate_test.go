package validate

import (
	"strings"
	"testing"

	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

func TestValidSample(t *testing.T) {
	res := New().ValidateSample(sample.Sample{Output: `
CREATE RandomSequenceContainer "Steps" UNDER "Default Work Unit"
CREATE Sound "Step_01" UNDER "Steps"
SET_PROP "Steps" "Volume" = -3
LINK "Steps" TO "Master Audio Bus" AS "Bus"
`})
	if !res.Valid() || !res.DependencyOK {
		t.Fatalf("result = %+v", res)
	}
	if res.Commands["CREATE"] != 2 || res.Commands["LINK"] != 1 {
		t.Fatalf("commands = %v", res.Commands)
	}
}

func TestSyntaxError(t *testing.T) {
	res := New().ValidateSample(sample.Sample{Output: `
CREATE Sound "A" UNDER "Default Work Unit"
FROBNICATE "A"
`})
	if res.SyntaxOK || res.Valid() {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestInvalidRelationIsSemanticError(t *testing.T) {
	res := New().ValidateSample(sample.Sample{Output: `
CREATE Sound "A" UNDER "Default Work Unit"
LINK "A" TO "Master Audio Bus" AS "Sidechain"
`})
	if res.SemanticOK {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Errors) == 0 || !strings.Contains(res.Errors[0], "Sidechain") {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestUncommonPropertyWarns(t *testing.T) {
	res := New().ValidateSample(sample.Sample{Output: `
CREATE Sound "A" UNDER "Default Work Unit"
SET_PROP "A" "Wobble" = 3
`})
	if !res.Valid() {
		t.Fatalf("warnings must not invalidate: %+v", res)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "Wobble") {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestCurvePointPropsAccepted(t *testing.T) {
	res := New().ValidateSample(sample.Sample{Output: `
CREATE Attenuation "Att" UNDER "Default Work Unit"
SET_PROP "Att" "CurvePoint0" = "0;0"
`})
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestDependencyWarningForUnknownParent(t *testing.T) {
	res := New().ValidateSample(sample.Sample{Output: `
CREATE Sound "A" UNDER "Ghost"
`})
	if !res.Valid() {
		t.Fatalf("dependency warnings must not invalidate: %+v", res)
	}
	if res.DependencyOK || len(res.Warnings) != 1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestBatchContextCarriesAcrossSamples(t *testing.T) {
	v := New()
	rep := v.ValidateBatch([]sample.Sample{
		{Output: `CREATE ActorMixer "Weapons" UNDER "Default Work Unit"`},
		{Output: `CREATE Sound "Rifle" UNDER "Weapons"`},
	})
	if rep.Valid != 2 || rep.DependencyWarnings != 0 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestBatchAggregation(t *testing.T) {
	rep := New().ValidateBatch([]sample.Sample{
		{Output: `CREATE Sound "A" UNDER "Default Work Unit"`},
		{Output: `NONSENSE`},
		{Output: "CREATE Sound \"B\" UNDER \"Default Work Unit\"\nLINK \"B\" TO \"X\" AS \"Wormhole\""},
	})
	if rep.Total != 3 || rep.Valid != 1 || rep.Invalid != 2 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.SyntaxErrors != 1 || rep.SemanticErrors != 1 {
		t.Fatalf("report = %+v", rep)
	}
}
