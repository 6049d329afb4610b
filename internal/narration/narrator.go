package narration

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/telemetry"
)

// Config controls the narrator.
type Config struct {
	// Enabled is the global AI feature flag. When false the per-session
	// toggle has no effect.
	Enabled  bool
	Endpoint string
	Model    string
	// Timeout bounds a single completion call. Zero means no extra bound.
	Timeout time.Duration
}

// Narrator appends observation prompts to the conversation history and,
// when enabled, asks the completer to describe the scene.
type Narrator struct {
	cfg       Config
	store     *state.Store
	display   display.Display
	completer Completer
	tracer    trace.Tracer
}

// NewNarrator creates a narrator.
func NewNarrator(cfg Config, store *state.Store, d display.Display, completer Completer) *Narrator {
	return &Narrator{
		cfg:       cfg,
		store:     store,
		display:   d,
		completer: completer,
		tracer:    telemetry.Tracer("narration"),
	}
}

// Enabled reports the global AI feature flag.
func (n *Narrator) Enabled() bool {
	return n.cfg.Enabled
}

// Prompt builds the user turn describing an observed area.
func Prompt(areaName string, area state.Area) string {
	components := strings.Join(area.Components, ", ")
	if components == "" {
		components = "none"
	}
	return fmt.Sprintf("The player observes %s. Its base description is \"%s\". It currently contains the following components: %s. Describe what they see.",
		areaName, area.Description, components)
}

// Observe narrates an observation of areaName. Failures are reported to
// the display and never returned; the caller continues regardless.
func (n *Narrator) Observe(ctx context.Context, areaName string) {
	area, ok := n.store.Area(areaName)
	if !ok {
		return
	}
	n.store.AppendHistory(state.Message{Role: "user", Content: Prompt(areaName, area)})

	if !n.cfg.Enabled {
		n.display.Message(display.Voice, "Local AI system is disabled (system config). Observation conduit provides raw data only.")
		return
	}
	if !n.store.UseAIForObserve() {
		n.display.Message(display.Voice, "Observe AI is currently disabled (user toggle). Observation conduit provides raw data only.")
		return
	}

	n.display.Message(display.Voice, "AI analyzing observations (via local service)...")

	ctx, span := n.tracer.Start(ctx, "narration.observe")
	defer span.End()
	span.SetAttributes(
		attribute.String("area", areaName),
		attribute.String("model", n.cfg.Model),
		attribute.Int("history.length", len(n.store.History())),
	)

	if n.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.Timeout)
		defer cancel()
	}

	text, err := n.completer.Complete(ctx, n.store.History())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("narration: %v", err)
		n.display.Message(display.Voice, "Observation conduits are... fuzzy. Connection to local analysis unit failed or returned an error.")
		n.display.Message(display.Error, fmt.Sprintf("Error: %v. Ensure your local AI service (model '%s') is running and accessible at '%s'.",
			err, n.cfg.Model, n.cfg.Endpoint))
		return
	}

	n.display.Message(display.Voice, text)
	n.store.AppendHistory(state.Message{Role: "assistant", Content: text})
}
