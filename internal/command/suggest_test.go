package command

import (
	"reflect"
	"testing"

	"github.com/samdwyer/cmdcrafter/internal/state"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		phase state.Phase
		held  []string
		input string
		want  []string
	}{
		{"initial all", state.PhaseAwaitingChoice, nil, "", []string{"craft the end", "delete system32", "LOAD_GAME", "SKIP_INTRO"}},
		{"initial prefix", state.PhaseAwaitingChoice, nil, "cr", []string{"craft the end"}},
		{"game over", state.PhaseGameOver, nil, "", []string{"LOAD_GAME"}},
		{"game over other", state.PhaseGameOver, nil, "S", nil},
		{"allocate template", state.PhaseSetupAllocate, nil, "", []string{"ALLOCATE_AP <amount> FOR MINER_TEMPLATE"}},
		{"allocate amount", state.PhaseSetupAllocate, nil, "ALLOCATE_AP 5 ", []string{"ALLOCATE_AP 5 FOR MINER_TEMPLATE"}},
		{"allocate for", state.PhaseSetupAllocate, nil, "ALLOCATE_AP 5 FOR ", []string{"ALLOCATE_AP 5 FOR MINER_TEMPLATE"}},
		{"define opens quote", state.PhaseSetupDefineType, nil, "DEFINE_MINER_TYPE ", []string{`DEFINE_MINER_TYPE "`}},
		{"define type", state.PhaseSetupDefineType, nil, `DEFINE_MINER_TYPE "Co`, []string{`DEFINE_MINER_TYPE "Coal"`, `DEFINE_MINER_TYPE "Copper"`}},
		{"define locked", state.PhaseSetupDefineType, nil, `DEFINE_MINER_TYPE "Dia`, nil},
		{"setup done", state.PhaseSetupDeployScript, nil, "do", []string{"done_setup"}},
		{"deploy auto", state.PhaseSetupDeployScript, nil, "DEPLOY_MINER_SCRIPT a", []string{"DEPLOY_MINER_SCRIPT AUTO"}},
		{"list prefix", state.PhaseGameplay, nil, "LIST_", []string{"LIST_MINERS", "LIST_MODULES", "LIST_RESOURCES", "LIST_TARGET_AREAS"}},
		{"observe areas", state.PhaseGameplay, nil, "OBSERVE ", []string{"OBSERVE CORE_NEXUS", "OBSERVE DATA_SEA", "OBSERVE LOGIC_MATRIX"}},
		{"observe partial", state.PhaseGameplay, nil, "observe d", []string{"OBSERVE DATA_SEA"}},
		{"sell lot", state.PhaseGameplay, nil, "SELL Coal ", []string{"SELL Coal 10"}},
		{"sell name", state.PhaseGameplay, nil, "SELL glim", []string{"SELL GlimmeringDust"}},
		{"synthesize held", state.PhaseGameplay, []string{"Coal", "Copper", "Iron"}, "SYNTHESIZE Co", []string{"SYNTHESIZE Coal", "SYNTHESIZE Copper"}},
		{"inject template", state.PhaseGameplay, nil, "INJECT ", []string{"INJECT <Module> INTO <TargetArea>"}},
		{"unknown command", state.PhaseGameplay, nil, "FOO bar", nil},
	}

	for _, tt := range tests {
		h := newHarness(t, 0.5)
		h.store.SetPhase(tt.phase)
		for _, r := range tt.held {
			h.store.AddResource(r, 1)
		}

		got := h.in.Suggest(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: Suggest(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestSuggestLimit(t *testing.T) {
	h := newGameplay(t, 0.5)
	if got := h.in.Suggest(""); len(got) != MaxSuggestions {
		t.Errorf("len(Suggest(\"\")) = %d, want %d", len(got), MaxSuggestions)
	}
}
