package game

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cmdcrafter/internal/narration"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/storage"
	"github.com/samdwyer/cmdcrafter/internal/ui"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	screen, _, err := ui.NewSimulationScreen(100, 30)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error: %v", err)
	}
	slot, err := storage.NewFileSlot(filepath.Join(t.TempDir(), "save.json"))
	if err != nil {
		t.Fatalf("NewFileSlot() error: %v", err)
	}
	return newGame(screen, Config{Seed: 1, Narration: narration.Config{Enabled: false}}, slot, nil)
}

// start runs the loop in the background and returns a channel that
// receives Run's result.
func start(g *Game, ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- g.Run(ctx) }()
	return errc
}

func wait(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("game loop did not exit")
	}
}

func (g *Game) typeLine(s string) {
	for _, r := range s {
		g.events <- tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
	}
	g.events <- tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func TestRunProcessesTypedCommands(t *testing.T) {
	g := newTestGame(t)
	errc := start(g, context.Background())

	g.typeLine("skip_intro")
	g.events <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	wait(t, errc)

	if g.session.Store().Phase() != state.PhaseGameplay {
		t.Errorf("phase = %v, want GAMEPLAY", g.session.Store().Phase())
	}
	if g.session.Ticks() != nil {
		t.Error("generation should stop when the loop exits")
	}
}

func TestRunDeliversScheduledTasks(t *testing.T) {
	g := newTestGame(t)
	errc := start(g, context.Background())

	ran := make(chan struct{})
	g.After(time.Millisecond, func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled task never ran")
	}
	g.events <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	wait(t, errc)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	g := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	errc := start(g, ctx)

	cancel()
	wait(t, errc)
}

func TestSubmitRefreshesPredictions(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"craft the end", []string{"ALLOCATE_AP <amount> FOR MINER_TEMPLATE"}},
		{"skip_intro", nil},
	}
	for _, tt := range tests {
		g := newTestGame(t)
		errc := start(g, context.Background())

		g.typeLine(tt.line)
		g.events <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
		wait(t, errc)

		got, _ := g.terminal.Predictions()
		if len(got) != len(tt.want) {
			t.Fatalf("%s: Predictions() = %v, want %v", tt.line, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: Predictions()[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCloseAfterRun(t *testing.T) {
	g := newTestGame(t)
	errc := start(g, context.Background())
	g.events <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	wait(t, errc)

	g.Close()
	g.Close()
}
