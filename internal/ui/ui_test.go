package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
)

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	return NewTerminal(gamedata.MustLoadCatalog())
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(term *Terminal, s string) {
	for _, r := range s {
		term.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestHandleKeySubmit(t *testing.T) {
	term := newTestTerminal(t)
	typeText(term, "HELPX")
	term.HandleKey(key(tcell.KeyBackspace2))

	action, line := term.HandleKey(key(tcell.KeyEnter))
	if action != ActionSubmit || line != "HELP" {
		t.Errorf("Enter = %v, %q; want submit HELP", action, line)
	}
	if term.Input() != "" {
		t.Errorf("input not cleared: %q", term.Input())
	}

	if action, _ := term.HandleKey(key(tcell.KeyEnter)); action != ActionNone {
		t.Error("an empty line should not be submitted")
	}
}

func TestHandleKeyPredictions(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tcell.Key
		wantAction Action
		wantLine   string
		wantInput  string
	}{
		{"enter takes concrete selection", []tcell.Key{tcell.KeyDown, tcell.KeyDown, tcell.KeyEnter}, ActionSubmit, "OBSERVE DATA_SEA", ""},
		{"template selection submits typed line", []tcell.Key{tcell.KeyUp, tcell.KeyEnter}, ActionSubmit, "OBS", ""},
		{"tab completes first", []tcell.Key{tcell.KeyTab}, ActionEdit, "", "OBSERVE CORE_NEXUS"},
		{"tab cuts template", []tcell.Key{tcell.KeyUp, tcell.KeyTab}, ActionEdit, "", "OBSERVE "},
		{"escape clears", []tcell.Key{tcell.KeyDown, tcell.KeyEscape, tcell.KeyEnter}, ActionSubmit, "OBS", ""},
	}

	for _, tt := range tests {
		term := newTestTerminal(t)
		typeText(term, "OBS")
		term.SetPredictions([]string{"OBSERVE CORE_NEXUS", "OBSERVE DATA_SEA", "OBSERVE <TargetArea>"})

		var action Action
		var line string
		for _, k := range tt.keys {
			action, line = term.HandleKey(key(k))
		}
		if action != tt.wantAction || line != tt.wantLine {
			t.Errorf("%s: got %v %q, want %v %q", tt.name, action, line, tt.wantAction, tt.wantLine)
		}
		if term.Input() != tt.wantInput {
			t.Errorf("%s: input = %q, want %q", tt.name, term.Input(), tt.wantInput)
		}
	}
}

func TestHandleKeyDisabled(t *testing.T) {
	term := newTestTerminal(t)
	typeText(term, "abc")
	term.DisableInput()

	typeText(term, "xyz")
	if term.Input() != "" {
		t.Errorf("disabled input accepted keys: %q", term.Input())
	}
	if action, _ := term.HandleKey(key(tcell.KeyCtrlC)); action != ActionQuit {
		t.Error("Ctrl-C should quit even with input disabled")
	}

	term.EnableInput()
	typeText(term, "ok")
	if term.Input() != "ok" {
		t.Errorf("Input() = %q, want ok", term.Input())
	}
}

func TestStatusText(t *testing.T) {
	term := newTestTerminal(t)
	term.UpdateStatus(state.Status{
		AP: 12, Level: 2, XP: 40, XPToNext: 200,
		Resources: map[string]int{"Iron": 3, "Coal": 1500},
	})

	want := "AP: 12 | Level: 2 | XP: 40/200 | Coal: 1,500, Iron: 3"
	if got := term.StatusText(); got != want {
		t.Errorf("StatusText() = %q, want %q", got, want)
	}
}

func TestPanelRows(t *testing.T) {
	term := newTestTerminal(t)
	term.ShowMinerTypes(3)

	rows := term.PanelRows()
	if len(rows) != len(gamedata.MustLoadCatalog().MinerTypes())+1 {
		t.Fatalf("len(PanelRows()) = %d", len(rows))
	}
	lock := map[string]bool{}
	for _, r := range rows[1:] {
		lock[strings.Fields(r.Text)[0]] = r.Unlocked
	}
	if !lock["Coal"] || !lock["Diamond"] || lock["Big64"] {
		t.Errorf("lock status at level 3 = %v", lock)
	}

	term.HideMinerTypes()
	term.RefreshMinerTypes(7)
	term.ShowMinerTypes(term.panelLevel)
	if term.panelLevel != 3 {
		t.Error("RefreshMinerTypes should not change a hidden panel")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"short", 10, []string{"short"}},
		{"hello brave new world", 11, []string{"hello brave", "new world"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}

	for _, tt := range tests {
		if got := wrap(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func rowText(sim tcell.SimulationScreen, y int) string {
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRender(t *testing.T) {
	screen, sim, err := NewSimulationScreen(100, 12)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error: %v", err)
	}
	defer screen.Close()

	term := newTestTerminal(t)
	term.UpdateStatus(state.Status{AP: 10, Level: 1, XPToNext: 100})
	term.Message(display.System, "Initializing Genesis Protocol...")
	typeText(term, "hel")
	term.SetPredictions([]string{"HELP"})

	NewRenderer(screen, gamedata.MustLoadTheme()).Render(term)

	if got := rowText(sim, 0); !strings.HasPrefix(got, "AP: 10 | Level: 1") {
		t.Errorf("status row = %q", got)
	}
	if got := rowText(sim, 1); got != "Initializing Genesis Protocol..." {
		t.Errorf("transcript row = %q", got)
	}
	if got := rowText(sim, 10); got != "  HELP" {
		t.Errorf("prediction row = %q", got)
	}
	if got := rowText(sim, 11); got != "> hel" {
		t.Errorf("input row = %q", got)
	}
}
