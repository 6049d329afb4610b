// Package progression implements XP, leveling and periodic resource
// generation from active miners.
package progression

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/telemetry"
)

// Engine applies XP gains and generation ticks to a store.
type Engine struct {
	store   *state.Store
	display display.Display
	tracer  trace.Tracer
}

// NewEngine creates an engine for the store.
func NewEngine(store *state.Store, d display.Display) *Engine {
	return &Engine{
		store:   store,
		display: d,
		tracer:  telemetry.Tracer("progression"),
	}
}

// Threshold returns the XP needed to leave the given level.
func Threshold(level int) int {
	return level * gamedata.XPPerLevel
}

// RecomputeThreshold derives the XP threshold from the current level.
func (e *Engine) RecomputeThreshold() {
	e.store.SetXPToNextLevel(Threshold(e.store.Level()))
}

// GainXP adds XP and applies every level-up it pays for.
func (e *Engine) GainXP(amount int) {
	e.store.AddXP(amount)
	for e.store.XP() >= e.store.XPToNextLevel() {
		e.store.SetXP(e.store.XP() - e.store.XPToNextLevel())
		e.store.IncrementLevel()
		e.RecomputeThreshold()

		level := e.store.Level()
		e.display.Message(display.Voice, fmt.Sprintf("Level up! Reached Level %d. New capabilities may be unlocked.", level))
		e.display.Message(display.Info, fmt.Sprintf("Congratulations! You've reached Level %d!", level))
		e.display.RefreshMinerTypes(level)
	}
	e.display.UpdateStatus(e.store.Status())
}

// GenerateResources runs one generation tick over every active miner.
// XP fragments are converted into XP as soon as they are produced and
// never stay in the resource ledger.
func (e *Engine) GenerateResources(ctx context.Context) {
	miners := e.store.Miners()
	if len(miners) == 0 {
		return
	}

	_, span := e.tracer.Start(ctx, "progression.generate")
	defer span.End()

	xp := 0
	for _, m := range miners {
		e.store.AddResource(m.Resource, m.Rate)
		if m.Resource == gamedata.ResourceXPFragment {
			e.store.RemoveResource(m.Resource, m.Rate)
			xp += m.Rate
			e.GainXP(m.Rate)
		}
	}

	span.SetAttributes(
		attribute.Int("miners", len(miners)),
		attribute.Int("xp.converted", xp),
	)
	e.display.UpdateStatus(e.store.Status())
}
