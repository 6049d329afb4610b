// Package display defines what the game core needs from a presentation
// layer. The terminal UI implements it for play; Recorder implements it
// for tests.
package display

import "github.com/samdwyer/cmdcrafter/internal/state"

// Kind classifies a transcript line so the presentation can style it.
type Kind int

const (
	System Kind = iota
	Voice
	Info
	Error
	Input
)

func (k Kind) String() string {
	switch k {
	case System:
		return "system"
	case Voice:
		return "voice"
	case Info:
		return "info"
	case Error:
		return "error"
	case Input:
		return "input"
	default:
		return "unknown"
	}
}

// Display receives every player-visible effect of the game core.
type Display interface {
	Message(kind Kind, text string)
	UpdateStatus(status state.Status)

	// ShowMinerTypes opens the miner type panel for the given level.
	ShowMinerTypes(level int)
	// RefreshMinerTypes redraws the panel contents if it is open.
	RefreshMinerTypes(level int)
	HideMinerTypes()
	MinerTypesVisible() bool

	ClearTranscript()
	DisableInput()
	EnableInput()
}
