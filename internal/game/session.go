// Package game wires the game core together and runs the terminal event
// loop that owns it.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/samdwyer/cmdcrafter/internal/command"
	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/narration"
	"github.com/samdwyer/cmdcrafter/internal/progression"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/storage"
)

// IntroDelay separates the boot message from the opening choice.
const IntroDelay = 1500 * time.Millisecond

// Session is one game: the store plus everything that acts on it. All
// methods must be called from the goroutine that owns the session.
type Session struct {
	store       *state.Store
	engine      *progression.Engine
	generator   *progression.Generator
	interpreter *command.Interpreter
	display     display.Display
	scheduler   command.Scheduler
}

// NewSession creates a session in the AWAITING_CHOICE phase.
func NewSession(cfg Config, catalog *gamedata.Catalog, d display.Display, sched command.Scheduler, saves storage.Slot, completer narration.Completer) *Session {
	store := state.NewStore(catalog)
	engine := progression.NewEngine(store, d)
	generator := progression.NewGenerator(cfg.GenerationInterval)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Session{
		store:     store,
		engine:    engine,
		generator: generator,
		interpreter: command.New(command.Deps{
			Store:     store,
			Engine:    engine,
			Generator: generator,
			Narrator:  narration.NewNarrator(cfg.Narration, store, d, completer),
			Saves:     saves,
			Display:   d,
			Scheduler: sched,
			Rand:      rand.New(rand.NewSource(seed)),
		}),
		display:   d,
		scheduler: sched,
	}
}

// Start shows the intro and, after IntroDelay, the opening choice.
func (s *Session) Start() {
	s.display.UpdateStatus(s.store.Status())
	s.display.Message(display.System, "Initializing Genesis Protocol... Entity detected.")
	s.scheduler.After(IntroDelay, func() {
		if s.store.Phase() != state.PhaseAwaitingChoice {
			return
		}
		s.display.Message(display.Voice, "What will you do... craft the end or.... delete system32?")
		s.display.Message(display.Info, "Type 'craft the end' or 'delete system32'. You can also 'LOAD_GAME'.")
	})
}

// Submit processes one command line.
func (s *Session) Submit(ctx context.Context, line string) {
	s.interpreter.Process(ctx, line)
}

// Tick runs one resource generation pass.
func (s *Session) Tick(ctx context.Context) {
	s.engine.GenerateResources(ctx)
}

// Ticks delivers generation ticks; it is nil while generation is stopped.
func (s *Session) Ticks() <-chan time.Time {
	return s.generator.C()
}

// Suggest returns completions for partially typed input.
func (s *Session) Suggest(input string) []string {
	return s.interpreter.Suggest(input)
}

// Store exposes the session state.
func (s *Session) Store() *state.Store {
	return s.store
}

// Stop halts resource generation.
func (s *Session) Stop() {
	s.generator.Stop()
}
