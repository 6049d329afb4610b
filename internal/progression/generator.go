package progression

import (
	"time"

	"github.com/samdwyer/cmdcrafter/internal/gamedata"
)

// Generator is the resource generation timer. It does not run callbacks
// itself: the owner of the store selects on C and calls
// Engine.GenerateResources. Ticks that are not received in time are
// dropped, so at most one tick is ever pending.
type Generator struct {
	interval time.Duration
	ticker   *time.Ticker
}

// NewGenerator creates a stopped generator. A non-positive interval uses
// the default generation interval.
func NewGenerator(interval time.Duration) *Generator {
	if interval <= 0 {
		interval = gamedata.GenerationInterval
	}
	return &Generator{interval: interval}
}

// Start begins ticking. It reports false if the generator was already
// running, in which case nothing changes.
func (g *Generator) Start() bool {
	if g.ticker != nil {
		return false
	}
	g.ticker = time.NewTicker(g.interval)
	return true
}

// Stop cancels the timer. Stopping a stopped generator is a no-op.
func (g *Generator) Stop() {
	if g.ticker == nil {
		return
	}
	g.ticker.Stop()
	g.ticker = nil
}

// Running reports whether the generator is ticking.
func (g *Generator) Running() bool {
	return g.ticker != nil
}

// C returns the tick channel, or nil while stopped so that a select case
// on it never fires.
func (g *Generator) C() <-chan time.Time {
	if g.ticker == nil {
		return nil
	}
	return g.ticker.C
}
