// Package command interprets player command lines. Routing is gated in a
// fixed order: the game-over gate, then the commands valid across phases
// (LOAD_GAME, SAVE_GAME, ALLOCATE_AP), then the per-phase dispatch table.
// Each handler validates its own grammar.
package command

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/progression"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/storage"
	"github.com/samdwyer/cmdcrafter/internal/telemetry"
)

// Generator controls the resource generation timer.
type Generator interface {
	Start() bool
	Stop()
}

// Narrator describes observed areas.
type Narrator interface {
	Observe(ctx context.Context, area string)
	// Enabled reports the global AI feature flag.
	Enabled() bool
}

// Scheduler runs fn on the store's owner after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Deps are the collaborators an Interpreter mutates and reports to.
type Deps struct {
	Store     *state.Store
	Engine    *progression.Engine
	Generator Generator
	Narrator  Narrator
	Saves     storage.Slot
	Display   display.Display
	Scheduler Scheduler
	Rand      *rand.Rand
	Now       func() time.Time
}

type handler func(ctx context.Context, line string)

// route is the dispatch table of one phase. Commands not in the table go
// to fallback.
type route struct {
	commands map[string]handler
	fallback handler
}

// Interpreter processes command lines against the store.
type Interpreter struct {
	Deps
	routes map[state.Phase]route
	tracer trace.Tracer
}

// New creates an interpreter. A nil Rand is seeded from the clock and a
// nil Now uses time.Now.
func New(deps Deps) *Interpreter {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	in := &Interpreter{
		Deps:   deps,
		tracer: telemetry.Tracer("command"),
	}
	in.routes = map[state.Phase]route{
		state.PhaseAwaitingChoice: {
			commands: map[string]handler{
				"save_game": in.rejectWith("Cannot save game before starting."),
			},
			fallback: in.handleInitialChoice,
		},
		state.PhaseSetupAllocate: {
			fallback: in.rejectWith("Invalid command for current state. Use ALLOCATE_AP or LOAD/SAVE."),
		},
		state.PhaseSetupDefineType: {
			commands: map[string]handler{
				"define_miner_type": in.handleDefineMinerType,
			},
			fallback: in.rejectWith("Invalid command for current state. Use DEFINE_MINER_TYPE or LOAD/SAVE."),
		},
		state.PhaseSetupDeployScript: {
			commands: map[string]handler{
				"deploy_miner_script": in.handleDeployMinerScript,
				"done_setup":          in.handleDoneSetup,
			},
			fallback: in.rejectWith("Invalid command for current state. Use DEPLOY_MINER_SCRIPT, DEPLOY_MINER_SCRIPT AUTO, done_setup or LOAD/SAVE."),
		},
		state.PhaseGameplay: {
			commands: map[string]handler{
				"help":              in.handleHelp,
				"synthesize":        in.handleSynthesize,
				"inject":            in.handleInject,
				"observe":           in.handleObserve,
				"sell":              in.handleSell,
				"list_miners":       in.handleListMiners,
				"list_modules":      in.handleListModules,
				"list_resources":    in.handleListResources,
				"list_target_areas": in.handleListTargetAreas,
				"miner_types":       in.handleMinerTypes,
				"craft_the_end":     in.handleCraftTheEnd,
				"toggle_observe_ai": in.handleToggleObserveAI,
				"clear":             in.handleClear,
			},
			fallback: in.handleUnknown,
		},
	}
	return in
}

// Process echoes and executes one command line. Blank lines are ignored.
func (in *Interpreter) Process(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	in.Display.Message(display.Input, "> "+line)
	name := strings.ToLower(fields[0])
	phase := in.Store.Phase()

	ctx, span := in.tracer.Start(ctx, "command.process")
	defer span.End()
	span.SetAttributes(
		telemetry.SessionAttr(),
		attribute.String("command", name),
		attribute.String("phase.before", phase.String()),
	)
	defer func() {
		span.SetAttributes(attribute.String("phase.after", in.Store.Phase().String()))
	}()

	if phase == state.PhaseGameOver && name != "load_game" {
		in.Display.Message(display.Error, "Program terminated. No commands accepted except 'LOAD_GAME'.")
		return
	}

	switch {
	case name == "load_game":
		in.handleLoadGame(ctx, line)
		return
	case name == "save_game" && (phase == state.PhaseGameplay || phase.IsSetup()):
		in.handleSaveGame(ctx, line)
		return
	case name == "allocate_ap" && (phase == state.PhaseSetupAllocate || phase == state.PhaseGameplay):
		in.handleAllocateAP(ctx, line)
		return
	}

	r, ok := in.routes[phase]
	if !ok {
		in.Display.Message(display.Error, "Error: Unknown game state "+phase.String())
		return
	}
	if h, ok := r.commands[name]; ok {
		h(ctx, line)
		return
	}
	r.fallback(ctx, line)
}

func (in *Interpreter) rejectWith(msg string) handler {
	return func(context.Context, string) {
		in.Display.Message(display.Error, msg)
	}
}

func (in *Interpreter) updateStatus() {
	in.Display.UpdateStatus(in.Store.Status())
}
