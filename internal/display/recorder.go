package display

import (
	"strings"

	"github.com/samdwyer/cmdcrafter/internal/state"
)

// Line is one recorded transcript message.
type Line struct {
	Kind Kind
	Text string
}

// Recorder is an in-memory Display.
type Recorder struct {
	Lines          []Line
	Status         state.Status
	StatusUpdates  int
	PanelVisible   bool
	PanelLevel     int
	InputDisabled  bool
	TranscriptWipe int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Message(kind Kind, text string) {
	r.Lines = append(r.Lines, Line{Kind: kind, Text: text})
}

func (r *Recorder) UpdateStatus(status state.Status) {
	r.Status = status
	r.StatusUpdates++
}

func (r *Recorder) ShowMinerTypes(level int) {
	r.PanelVisible = true
	r.PanelLevel = level
}

func (r *Recorder) RefreshMinerTypes(level int) {
	if r.PanelVisible {
		r.PanelLevel = level
	}
}

func (r *Recorder) HideMinerTypes()         { r.PanelVisible = false }
func (r *Recorder) MinerTypesVisible() bool { return r.PanelVisible }
func (r *Recorder) DisableInput()           { r.InputDisabled = true }
func (r *Recorder) EnableInput()            { r.InputDisabled = false }

func (r *Recorder) ClearTranscript() {
	r.Lines = nil
	r.TranscriptWipe++
}

// Reset forgets recorded lines without counting a transcript clear.
func (r *Recorder) Reset() {
	r.Lines = nil
}

// Last returns the most recent line, or an empty Line.
func (r *Recorder) Last() Line {
	if len(r.Lines) == 0 {
		return Line{}
	}
	return r.Lines[len(r.Lines)-1]
}

// Contains reports whether any recorded line contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, l := range r.Lines {
		if strings.Contains(l.Text, substr) {
			return true
		}
	}
	return false
}

// Count returns the number of lines of the given kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, l := range r.Lines {
		if l.Kind == kind {
			n++
		}
	}
	return n
}
