package ui

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
)

// transcriptLimit bounds the scrollback kept in memory.
const transcriptLimit = 500

// Terminal is the display.Display for play. It only records what to draw;
// Renderer turns it into cells. It is owned by the game loop goroutine.
type Terminal struct {
	catalog *gamedata.Catalog
	printer *message.Printer

	lines  []display.Line
	status state.Status

	panelVisible bool
	panelLevel   int

	inputEnabled bool
	input        []rune
	predictions  []string
	selected     int // index into predictions, -1 for none
}

var _ display.Display = (*Terminal)(nil)

// NewTerminal creates an empty terminal with input enabled.
func NewTerminal(catalog *gamedata.Catalog) *Terminal {
	return &Terminal{
		catalog:      catalog,
		printer:      message.NewPrinter(language.English),
		inputEnabled: true,
		selected:     -1,
	}
}

func (t *Terminal) Message(kind display.Kind, text string) {
	t.lines = append(t.lines, display.Line{Kind: kind, Text: text})
	if over := len(t.lines) - transcriptLimit; over > 0 {
		t.lines = append([]display.Line(nil), t.lines[over:]...)
	}
}

func (t *Terminal) UpdateStatus(status state.Status) { t.status = status }

func (t *Terminal) ShowMinerTypes(level int) {
	t.panelVisible = true
	t.panelLevel = level
}

func (t *Terminal) RefreshMinerTypes(level int) {
	if t.panelVisible {
		t.panelLevel = level
	}
}

func (t *Terminal) HideMinerTypes()         { t.panelVisible = false }
func (t *Terminal) MinerTypesVisible() bool { return t.panelVisible }
func (t *Terminal) ClearTranscript()        { t.lines = nil }

func (t *Terminal) DisableInput() {
	t.inputEnabled = false
	t.input = nil
	t.ClearPredictions()
}

func (t *Terminal) EnableInput() { t.inputEnabled = true }

// InputEnabled reports whether keystrokes are accepted.
func (t *Terminal) InputEnabled() bool { return t.inputEnabled }

// Input returns the line being edited.
func (t *Terminal) Input() string { return string(t.input) }

// SetPredictions replaces the suggestion list and clears the selection.
func (t *Terminal) SetPredictions(p []string) {
	t.predictions = p
	t.selected = -1
}

// ClearPredictions hides the suggestion list.
func (t *Terminal) ClearPredictions() { t.SetPredictions(nil) }

// Predictions returns the suggestion list and the selected index.
func (t *Terminal) Predictions() ([]string, int) { return t.predictions, t.selected }

// StatusText renders the status bar line.
func (t *Terminal) StatusText() string {
	s := t.status
	var b strings.Builder
	b.WriteString(t.printer.Sprintf("AP: %d | Level: %d | XP: %d/%d", s.AP, s.Level, s.XP, s.XPToNext))

	names := make([]string, 0, len(s.Resources))
	for name := range s.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString(" | ")
	}
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.printer.Sprintf("%s: %d", name, s.Resources[name]))
	}
	return b.String()
}

// PanelRow is one line of the miner type panel.
type PanelRow struct {
	Text     string
	Unlocked bool
}

// PanelRows lists every miner type with its resource, tier and lock status
// at the current panel level.
func (t *Terminal) PanelRows() []PanelRow {
	rows := []PanelRow{{Text: t.printer.Sprintf("Miner Types (Level %d)", t.panelLevel), Unlocked: true}}
	for _, m := range t.catalog.MinerTypes() {
		lock := "unlocked"
		if !m.Unlocked(t.panelLevel) {
			lock = t.printer.Sprintf("requires Lvl %d", m.LevelRequired)
		}
		rows = append(rows, PanelRow{
			Text:     t.printer.Sprintf("%-9s %-12s T%d %s", m.Name, m.Resource, m.Tier, lock),
			Unlocked: m.Unlocked(t.panelLevel),
		})
	}
	return rows
}
