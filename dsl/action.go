package dsl

import "strings"

// ActionKind is the kind of an event action, written uppercase in DSL
// text (ADD_ACTION "Evt" PLAY "Target").
type ActionKind string

const (
	ActionPlay               ActionKind = "PLAY"
	ActionStop               ActionKind = "STOP"
	ActionPause              ActionKind = "PAUSE"
	ActionResume             ActionKind = "RESUME"
	ActionBreak              ActionKind = "BREAK"
	ActionSeek               ActionKind = "SEEK"
	ActionMute               ActionKind = "MUTE"
	ActionUnmute             ActionKind = "UNMUTE"
	ActionSetGameParameter   ActionKind = "SETGAMEPARAMETER"
	ActionSetState           ActionKind = "SETSTATE"
	ActionSetSwitch          ActionKind = "SETSWITCH"
	ActionResetGameParameter ActionKind = "RESETGAMEPARAMETER"
)

// actionCodes are the backend's numeric action type identifiers.
var actionCodes = map[ActionKind]int{
	ActionPlay:               1,
	ActionStop:               2,
	ActionPause:              3,
	ActionResume:             4,
	ActionBreak:              5,
	ActionSeek:               6,
	ActionMute:               7,
	ActionUnmute:             8,
	ActionSetGameParameter:   17,
	ActionSetState:           18,
	ActionSetSwitch:          19,
	ActionResetGameParameter: 20,
}

// Code returns the backend's numeric identifier for the action kind,
// defaulting to the Play code for unknown kinds.
func (k ActionKind) Code() int {
	if code, ok := actionCodes[k]; ok {
		return code
	}
	return actionCodes[ActionPlay]
}

// ParseActionKind normalizes an action keyword. The second return is
// false when the keyword is not a known action kind.
func ParseActionKind(word string) (ActionKind, bool) {
	k := ActionKind(strings.ToUpper(word))
	_, ok := actionCodes[k]
	return k, ok
}
