package command

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/progression"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/storage"
)

// fixedSource makes every Float64 draw return the same value.
type fixedSource float64

func (f fixedSource) Int63() int64 { return int64(float64(f) * (1 << 63)) }
func (fixedSource) Seed(int64)     {}

type fakeGenerator struct {
	running bool
	starts  int
	stops   int
}

func (g *fakeGenerator) Start() bool {
	if g.running {
		return false
	}
	g.running = true
	g.starts++
	return true
}

func (g *fakeGenerator) Stop() {
	g.running = false
	g.stops++
}

type fakeNarrator struct {
	enabled  bool
	observed []string
}

func (n *fakeNarrator) Observe(_ context.Context, area string) { n.observed = append(n.observed, area) }
func (n *fakeNarrator) Enabled() bool                          { return n.enabled }

// queueScheduler holds delayed tasks until run is called.
type queueScheduler struct {
	tasks []func()
	delay []time.Duration
}

func (q *queueScheduler) After(d time.Duration, fn func()) {
	q.tasks = append(q.tasks, fn)
	q.delay = append(q.delay, d)
}

func (q *queueScheduler) run() {
	tasks := q.tasks
	q.tasks = nil
	for _, fn := range tasks {
		fn()
	}
}

type memSlot struct {
	data     []byte
	writeErr error
}

func (m *memSlot) Name() string { return "memory" }

func (m *memSlot) Write(_ context.Context, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memSlot) Read(context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, storage.ErrNotFound
	}
	return m.data, nil
}

type harness struct {
	in    *Interpreter
	store *state.Store
	rec   *display.Recorder
	gen   *fakeGenerator
	narr  *fakeNarrator
	sched *queueScheduler
	slot  *memSlot
	now   time.Time
}

func newHarness(t *testing.T, roll float64) *harness {
	t.Helper()
	store := state.NewStore(gamedata.MustLoadCatalog())
	rec := display.NewRecorder()
	h := &harness{
		store: store,
		rec:   rec,
		gen:   &fakeGenerator{},
		narr:  &fakeNarrator{enabled: true},
		sched: &queueScheduler{},
		slot:  &memSlot{},
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	h.in = New(Deps{
		Store:     store,
		Engine:    progression.NewEngine(store, rec),
		Generator: h.gen,
		Narrator:  h.narr,
		Saves:     h.slot,
		Display:   rec,
		Scheduler: h.sched,
		Rand:      rand.New(fixedSource(roll)),
		Now:       func() time.Time { return h.now },
	})
	return h
}

// newGameplay returns a harness already in GAMEPLAY with no miners.
func newGameplay(t *testing.T, roll float64) *harness {
	h := newHarness(t, roll)
	h.store.SetPhase(state.PhaseGameplay)
	return h
}

func (h *harness) run(lines ...string) {
	for _, l := range lines {
		h.in.Process(context.Background(), l)
	}
}
