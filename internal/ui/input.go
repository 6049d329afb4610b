package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Action is what the game loop should do after a key press.
type Action int

const (
	ActionNone   Action = iota
	ActionEdit          // input changed; refresh predictions
	ActionSubmit        // a line is ready
	ActionQuit
)

// HandleKey applies one key press to the input line. For ActionSubmit the
// submitted line is returned and the input is cleared.
func (t *Terminal) HandleKey(ev *tcell.EventKey) (Action, string) {
	if ev.Key() == tcell.KeyCtrlC {
		return ActionQuit, ""
	}
	if !t.inputEnabled {
		return ActionNone, ""
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		line := string(t.input)
		if p, ok := t.selectedPrediction(); ok && concrete(p) {
			line = p
		}
		t.input = nil
		t.ClearPredictions()
		if strings.TrimSpace(line) == "" {
			return ActionNone, ""
		}
		return ActionSubmit, line

	case tcell.KeyTab:
		if len(t.predictions) == 0 {
			return ActionNone, ""
		}
		p, ok := t.selectedPrediction()
		if !ok {
			p = t.predictions[0]
		}
		t.input = []rune(completion(p))
		return ActionEdit, ""

	case tcell.KeyUp:
		t.moveSelection(-1)
		return ActionNone, ""
	case tcell.KeyDown:
		t.moveSelection(1)
		return ActionNone, ""

	case tcell.KeyEscape:
		t.ClearPredictions()
		return ActionNone, ""

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.input) == 0 {
			return ActionNone, ""
		}
		t.input = t.input[:len(t.input)-1]
		return ActionEdit, ""

	case tcell.KeyRune:
		t.input = append(t.input, ev.Rune())
		return ActionEdit, ""
	}
	return ActionNone, ""
}

func (t *Terminal) selectedPrediction() (string, bool) {
	if t.selected < 0 || t.selected >= len(t.predictions) {
		return "", false
	}
	return t.predictions[t.selected], true
}

// moveSelection cycles through the predictions, wrapping at both ends.
func (t *Terminal) moveSelection(delta int) {
	n := len(t.predictions)
	if n == 0 {
		return
	}
	if t.selected < 0 {
		if delta > 0 {
			t.selected = 0
		} else {
			t.selected = n - 1
		}
		return
	}
	t.selected = (t.selected + delta + n) % n
}

// concrete reports whether a prediction is a full command rather than a
// template with <placeholders>.
func concrete(p string) bool {
	return !strings.Contains(p, "<")
}

// completion is the text Tab puts on the input line: templates are cut
// at their first placeholder.
func completion(p string) string {
	if i := strings.Index(p, "<"); i >= 0 {
		return p[:i]
	}
	return p
}
