// Package state provides the Game State Store: every mutable player and
// world value, owned by a single Store and mutated through its methods.
package state

import "fmt"

// Phase represents the current top-level game state.
type Phase int

const (
	// PhaseAwaitingChoice is the intro, waiting for "craft the end", "delete system32" or SKIP_INTRO.
	PhaseAwaitingChoice Phase = iota
	// PhaseSetupAllocate waits for ALLOCATE_AP.
	PhaseSetupAllocate
	// PhaseSetupDefineType waits for DEFINE_MINER_TYPE.
	PhaseSetupDefineType
	// PhaseSetupDeployScript waits for DEPLOY_MINER_SCRIPT or done_setup.
	PhaseSetupDeployScript
	// PhaseGameplay is open-ended play.
	PhaseGameplay
	// PhaseGameOver is terminal; only LOAD_GAME leaves it.
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseAwaitingChoice:    "AWAITING_CHOICE",
	PhaseSetupAllocate:     "SETUP_ALLOCATE",
	PhaseSetupDefineType:   "SETUP_DEFINE_TYPE",
	PhaseSetupDeployScript: "SETUP_DEPLOY_SCRIPT",
	PhaseGameplay:          "GAMEPLAY",
	PhaseGameOver:          "GAME_OVER",
}

// String returns the persisted name of the phase.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// IsSetup reports whether p is one of the miner setup sub-states.
func (p Phase) IsSetup() bool {
	return p == PhaseSetupAllocate || p == PhaseSetupDefineType || p == PhaseSetupDeployScript
}

// ParsePhase converts a persisted phase name back into a Phase.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return PhaseAwaitingChoice, fmt.Errorf("unknown game state %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// AreaStatus tracks whether observing an area can still yield items.
type AreaStatus string

const (
	StatusCanFindItems  AreaStatus = "can_find_items"
	StatusNothingToFind AreaStatus = "nothing_pending_inject"
)
