// Package graph defines the audio-object graph: a closed set of object
// types and the hierarchical node trees decoded from project definitions.
package graph

// ObjectType identifies one of the closed set of authoring-tool object
// types. The zero value is not a valid type.
type ObjectType string

// Container types. Containers may hold children and are preferred when
// resolving parent references by name.
const (
	ActorMixer              ObjectType = "ActorMixer"
	RandomSequenceContainer ObjectType = "RandomSequenceContainer"
	SwitchContainer         ObjectType = "SwitchContainer"
	BlendContainer          ObjectType = "BlendContainer"
	WorkUnit                ObjectType = "WorkUnit"
	Folder                  ObjectType = "Folder"
)

// Leaf types.
const (
	Sound         ObjectType = "Sound"
	Event         ObjectType = "Event"
	Attenuation   ObjectType = "Attenuation"
	SwitchGroup   ObjectType = "SwitchGroup"
	StateGroup    ObjectType = "StateGroup"
	GameParameter ObjectType = "GameParameter"
)

var containerTypes = map[ObjectType]bool{
	ActorMixer:              true,
	RandomSequenceContainer: true,
	SwitchContainer:         true,
	BlendContainer:          true,
	WorkUnit:                true,
	Folder:                  true,
}

// IsContainer reports whether objects of this type may hold children.
func (t ObjectType) IsContainer() bool {
	return containerTypes[t]
}

// Valid reports whether t is a member of the closed enumeration.
func (t ObjectType) Valid() bool {
	_, ok := aliases[string(t)]
	return ok && aliases[string(t)] == t
}

// aliases maps the spellings that appear in project files and generated
// text to canonical types. Multi-word and hyphenated variants come from
// hand-authored projects; the rest are common shorthand.
var aliases = map[string]ObjectType{
	"ActorMixer":  ActorMixer,
	"Actor-Mixer": ActorMixer,

	"RandomSequenceContainer":   RandomSequenceContainer,
	"Random Sequence Container": RandomSequenceContainer,
	"RandomContainer":           RandomSequenceContainer,
	"SequenceContainer":         RandomSequenceContainer,

	"SwitchContainer":  SwitchContainer,
	"Switch Container": SwitchContainer,

	"BlendContainer":  BlendContainer,
	"Blend Container": BlendContainer,

	"WorkUnit":  WorkUnit,
	"Work Unit": WorkUnit,

	"Folder": Folder,

	"Sound":      Sound,
	"SoundSFX":   Sound,
	"SoundVoice": Sound,

	"Event":       Event,
	"Attenuation": Attenuation,

	"SwitchGroup":  SwitchGroup,
	"Switch Group": SwitchGroup,

	"StateGroup":  StateGroup,
	"State Group": StateGroup,

	"GameParameter":  GameParameter,
	"Game Parameter": GameParameter,
	"RTPC":           GameParameter,
}

// Normalize maps a raw type spelling to its canonical ObjectType.
// The second return is false when the spelling is not in the closed set.
func Normalize(raw string) (ObjectType, bool) {
	t, ok := aliases[raw]
	return t, ok
}
