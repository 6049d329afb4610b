package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/narration"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/storage"
	"github.com/samdwyer/cmdcrafter/internal/telemetry"
	"github.com/samdwyer/cmdcrafter/internal/ui"
)

// Game is the terminal front end. Run's goroutine is the only one that
// touches the session; timers and the tcell poller hand work to it over
// channels.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	terminal *ui.Terminal
	session  *Session
	saves    storage.Slot

	events  chan tcell.Event
	tasks   chan func()
	done    chan struct{}
	running bool

	closeOnce sync.Once
}

// New creates a game on the real terminal.
func New(cfg Config, saves storage.Slot, completer narration.Completer) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(screen, cfg, saves, completer), nil
}

func newGame(screen *ui.Screen, cfg Config, saves storage.Slot, completer narration.Completer) *Game {
	catalog := gamedata.MustLoadCatalog()
	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, gamedata.MustLoadTheme()),
		terminal: ui.NewTerminal(catalog),
		saves:    saves,
		events:   make(chan tcell.Event),
		tasks:    make(chan func()),
		done:     make(chan struct{}),
		running:  true,
	}
	g.session = NewSession(cfg, catalog, g.terminal, g, saves, completer)
	return g
}

// After runs fn on the game loop once d has elapsed. Tasks still pending
// when the loop exits are dropped.
func (g *Game) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		select {
		case g.tasks <- fn:
		case <-g.done:
		}
	})
}

// Run executes the main game loop until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(g.done)

	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		telemetry.SessionAttr(),
		attribute.String("save.slot", g.saves.Name()),
	)
	go g.poll(ctx)
	g.session.Start()
	initSpan.End()

	for g.running {
		g.renderer.Render(g.terminal)

		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-g.events:
			g.handleEvent(ctx, ev)
		case <-g.session.Ticks():
			g.session.Tick(ctx)
		case fn := <-g.tasks:
			fn()
		}
	}

	g.session.Stop()
	g.Close()
	return nil
}

// poll forwards terminal events to the loop. PollEvent returns nil once
// the screen is closed.
func (g *Game) poll(ctx context.Context) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case g.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	action, line := g.terminal.HandleKey(ev)
	switch action {
	case ui.ActionQuit:
		g.running = false
	case ui.ActionSubmit:
		g.session.Submit(ctx, line)
		g.refreshPredictions()
	case ui.ActionEdit:
		g.refreshPredictions()
	}
}

// refreshPredictions recomputes completions for the current input. Empty
// input shows nothing except the allocation template during SETUP_ALLOCATE.
func (g *Game) refreshPredictions() {
	input := g.terminal.Input()
	if strings.TrimSpace(input) == "" && g.session.Store().Phase() != state.PhaseSetupAllocate {
		g.terminal.ClearPredictions()
		return
	}
	g.terminal.SetPredictions(g.session.Suggest(input))
}

// Close releases the terminal. It is safe to call more than once.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		if g.screen != nil {
			g.screen.Close()
		}
	})
}
