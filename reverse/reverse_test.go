package reverse

import (
	"strings"
	"testing"

	"github.com/soundgraph-xyz/go-soundgraph/dsl"
	"github.com/soundgraph-xyz/go-soundgraph/graph"
	"github.com/soundgraph-xyz/go-soundgraph/sample"
)

func scope(children ...*graph.Node) *graph.Node {
	return &graph.Node{Type: graph.WorkUnit, Name: "Default Work Unit", Children: children}
}

func compile(t *testing.T, opts Options, root *graph.Node) []sample.Sample {
	t.Helper()
	samples, err := New(opts).Compile(root, "unit.wwu")
	if err != nil {
		t.Fatal(err)
	}
	return samples
}

func TestPreorderCreateOrdering(t *testing.T) {
	tree := scope(&graph.Node{
		Type: graph.ActorMixer, Name: "Weapons",
		Children: []*graph.Node{
			{Type: graph.RandomSequenceContainer, Name: "Rifle", Children: []*graph.Node{
				{Type: graph.Sound, Name: "Rifle_01"},
				{Type: graph.Sound, Name: "Rifle_02"},
			}},
			{Type: graph.Sound, Name: "Reload"},
		},
	})

	samples := compile(t, DefaultOptions(), tree)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}

	stmts, errs := dsl.Parse(samples[0].Output)
	if len(errs) > 0 {
		t.Fatalf("rendered sample does not parse: %v", errs[0])
	}
	var creates []string
	for _, s := range stmts {
		if s.Kind == dsl.KindCreate {
			creates = append(creates, s.Name)
		}
	}
	want := []string{"Weapons", "Rifle", "Rifle_01", "Rifle_02", "Reload"}
	if len(creates) != len(want) {
		t.Fatalf("creates = %v, want %v", creates, want)
	}
	for i := range want {
		if creates[i] != want[i] {
			t.Fatalf("creates = %v, want %v", creates, want)
		}
	}
	if stmts[0].Parent != "Default Work Unit" {
		t.Fatalf("head parent = %q", stmts[0].Parent)
	}
	if samples[0].Meta.Depth != 2 {
		t.Fatalf("depth = %d, want 2", samples[0].Meta.Depth)
	}
}

func TestDefaultPropertiesSkipped(t *testing.T) {
	tree := scope(&graph.Node{
		Type: graph.Sound, Name: "Shot",
		Properties: []graph.Property{
			{Name: "Volume", Value: int64(0)},  // default, dropped
			{Name: "Pitch", Value: int64(120)}, // non-default, kept
			{Name: "Priority", Value: int64(50)},
		},
	})
	// Wrap in a container so the Sound is not a bare top-level leaf.
	tree = scope(&graph.Node{Type: graph.ActorMixer, Name: "SFX", Children: tree.Children})

	samples := compile(t, DefaultOptions(), tree)
	out := samples[0].Output
	if strings.Contains(out, `"Volume"`) || strings.Contains(out, `"Priority"`) {
		t.Fatalf("default properties not skipped:\n%s", out)
	}
	if !strings.Contains(out, `SET_PROP "Shot" "Pitch" = 120`) {
		t.Fatalf("non-default property missing:\n%s", out)
	}
}

func TestSoundNeverHeadsASample(t *testing.T) {
	tree := scope(
		&graph.Node{Type: graph.Sound, Name: "Stray"},
		&graph.Node{Type: graph.ActorMixer, Name: "Kept"},
	)
	samples := compile(t, DefaultOptions(), tree)
	if len(samples) != 1 || samples[0].Meta.RootName != "Kept" {
		t.Fatalf("samples = %+v", samples)
	}
}

func TestFolderIsTransparent(t *testing.T) {
	tree := scope(&graph.Node{
		Type: graph.Folder, Name: "Grouping",
		Children: []*graph.Node{
			{Type: graph.ActorMixer, Name: "Music"},
		},
	})
	samples := compile(t, DefaultOptions(), tree)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if strings.Contains(samples[0].Output, "Grouping") == false {
		// The folder advances the parent name without being created.
		t.Fatalf("head should be created under the folder name:\n%s", samples[0].Output)
	}
	head, _ := samples[0].HeadParent()
	if head != "Grouping" {
		t.Fatalf("head parent = %q, want Grouping", head)
	}
	if strings.Contains(samples[0].Output, "CREATE Folder") {
		t.Fatalf("folder must not be created:\n%s", samples[0].Output)
	}
}

func TestOversizedSubtreeSplits(t *testing.T) {
	inner := &graph.Node{Type: graph.RandomSequenceContainer, Name: "Layers"}
	for _, n := range []string{"L1", "L2", "L3", "L4"} {
		inner.Children = append(inner.Children, &graph.Node{Type: graph.Sound, Name: n})
	}
	tree := scope(&graph.Node{
		Type: graph.ActorMixer, Name: "Ambience",
		Children: []*graph.Node{
			{Type: graph.Sound, Name: "Wind"},
			inner,
		},
	})

	samples := compile(t, Options{MaxLines: 3, MaxDepth: 4}, tree)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Meta.RootName != "Ambience" || samples[1].Meta.RootName != "Layers" {
		t.Fatalf("roots = %s, %s", samples[0].Meta.RootName, samples[1].Meta.RootName)
	}
	// The split subtree leaves no trace in the parent sample.
	if strings.Contains(samples[0].Output, "Layers") {
		t.Fatalf("split subtree still inlined:\n%s", samples[0].Output)
	}
	// The split head keeps its actual parent name; repair rewrites it.
	head, _ := samples[1].HeadParent()
	if head != "Ambience" {
		t.Fatalf("split head parent = %q, want Ambience", head)
	}
}

func TestEventActionsAndLinks(t *testing.T) {
	tree := scope(
		&graph.Node{
			Type: graph.RandomSequenceContainer, Name: "Steps",
			Relations: []graph.Relation{
				{Name: "Bus", Target: "SFX_Bus"},
				{Name: "Attenuation", Target: "Att_Steps"},
			},
		},
		&graph.Node{
			Type: graph.Event, Name: "Play_Steps",
			Actions: []graph.ActionRef{{Kind: "PLAY", Target: "Steps"}},
		},
	)

	samples := compile(t, DefaultOptions(), tree)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if !strings.Contains(samples[0].Output, `LINK "Steps" TO "SFX_Bus" AS "Bus"`) {
		t.Fatalf("bus link missing:\n%s", samples[0].Output)
	}
	if !strings.Contains(samples[1].Output, `ADD_ACTION "Play_Steps" PLAY "Steps"`) {
		t.Fatalf("action missing:\n%s", samples[1].Output)
	}
	if samples[1].Meta.Commands["ADD_ACTION"] != 1 {
		t.Fatalf("event sample commands = %v", samples[1].Meta.Commands)
	}
}

func TestAttenuationCurvePoints(t *testing.T) {
	tree := scope(&graph.Node{
		Type: graph.Attenuation, Name: "Att_Far",
		Curves: []graph.CurvePoint{{X: 0, Y: 0}, {X: 100, Y: -20.5}},
	})
	samples := compile(t, DefaultOptions(), tree)
	out := samples[0].Output
	if !strings.Contains(out, `SET_PROP "Att_Far" "CurvePoint0" = "0;0"`) ||
		!strings.Contains(out, `SET_PROP "Att_Far" "CurvePoint1" = "100;-20.5"`) {
		t.Fatalf("curve points missing:\n%s", out)
	}
}

func TestCommandHistogram(t *testing.T) {
	tree := scope(&graph.Node{
		Type: graph.ActorMixer, Name: "M",
		Properties: []graph.Property{{Name: "MakeUpGain", Value: int64(3)}},
		Relations:  []graph.Relation{{Name: "Bus", Target: "B"}},
		Children:   []*graph.Node{{Type: graph.Sound, Name: "S"}},
	})
	samples := compile(t, DefaultOptions(), tree)
	cmds := samples[0].Meta.Commands
	if cmds["CREATE"] != 2 || cmds["SET_PROP"] != 1 || cmds["LINK"] != 1 || cmds["ADD_ACTION"] != 0 {
		t.Fatalf("commands = %v", cmds)
	}
	if samples[0].Meta.LineCount != 4 {
		t.Fatalf("line_count = %d, want 4", samples[0].Meta.LineCount)
	}
}
