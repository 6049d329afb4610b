package save

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
)

func newStore() *state.Store {
	return state.NewStore(gamedata.MustLoadCatalog())
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newStore()
	s.SetPhase(state.PhaseGameplay)
	s.SetAP(7)
	s.SetLevel(2)
	s.SetXP(55)
	s.SetXPToNextLevel(200)
	s.AddResource("Coal", 30)
	s.AddResource("NexusCrystal", 1)
	s.AddMiner(state.Miner{Name: "coal_miner_1.sh", Type: "Coal", Resource: "Coal", Rate: 1})
	s.PutModule(state.Module{R1: "Coal", R2: "Iron", Name: "bridge"})
	s.AddComponent("LOGIC_MATRIX", "bridge")
	s.SetLastObserved("LOGIC_MATRIX", time.UnixMilli(1_700_000_123_456))
	s.SetAreaStatus("CORE_NEXUS", state.StatusNothingToFind)
	s.SetUseAIForObserve(false)
	s.AppendHistory(state.Message{Role: "user", Content: "observe"})
	s.AppendHistory(state.Message{Role: "assistant", Content: "you see static"})

	data, err := Encode(Export(s))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	loaded := newStore()
	Apply(loaded, doc)

	if !reflect.DeepEqual(s.Snapshot(), loaded.Snapshot()) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded.Snapshot(), s.Snapshot())
	}
}

func TestExportFieldNames(t *testing.T) {
	data, err := Encode(Export(newStore()))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	fields := []string{
		"ap", "playerLevel", "currentXP", "xpToNextLevel", "resources",
		"activeMiners", "synthesizedModules", "digitalCanvas", "gameState",
		"conversationHistory", "observeCooldowns", "areaObservationStatus",
		"useAIForObserve",
	}
	for _, f := range fields {
		if !strings.Contains(string(data), `"`+f+`"`) {
			t.Errorf("encoded save is missing field %q", f)
		}
	}
	if !strings.Contains(string(data), `"AWAITING_CHOICE"`) {
		t.Error("gameState should be encoded by name")
	}
}

func TestImportDefaults(t *testing.T) {
	doc, err := Decode([]byte(`{"resources": {"Coal": 3}}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	s := newStore()
	s.SetAP(99)
	s.AddResource("Tin", 8)
	s.SetUseAIForObserve(false)
	Apply(s, doc)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"ap", s.AP(), 10},
		{"level", s.Level(), 1},
		{"xp", s.XP(), 0},
		{"threshold", s.XPToNextLevel(), 100},
		{"phase", s.Phase(), state.PhaseAwaitingChoice},
		{"coal", s.Resource("Coal"), 3},
		{"tin", s.Resource("Tin"), 0},
		{"miners", len(s.Miners()), 0},
		{"modules", len(s.Modules()), 0},
		{"ai toggle", s.UseAIForObserve(), true},
		{"history", len(s.History()), 1},
		{"area status", s.AreaStatus("DATA_SEA"), state.StatusCanFindItems},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	a, ok := s.Area("CORE_NEXUS")
	if !ok || a.Description == "" || len(a.Components) != 0 {
		t.Errorf("CORE_NEXUS = %+v, want the initial layout", a)
	}
}

func TestImportKeepsPresentZero(t *testing.T) {
	doc, err := Decode([]byte(`{"ap": 0, "useAIForObserve": false}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	s := newStore()
	Apply(s, doc)

	if s.AP() != 0 {
		t.Errorf("AP() = %d, want 0", s.AP())
	}
	if s.UseAIForObserve() {
		t.Error("UseAIForObserve() = true, want false")
	}
}

func TestImportInvalidHistoryFallsBackToSeed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not an array", `{"conversationHistory": "oops"}`},
		{"null", `{"conversationHistory": null}`},
		{"empty", `{"conversationHistory": []}`},
		{"missing role", `{"conversationHistory": [{"content": "x"}]}`},
	}

	for _, tt := range tests {
		doc, err := Decode([]byte(tt.json))
		if err != nil {
			t.Fatalf("%s: Decode() error: %v", tt.name, err)
		}
		h := doc.Snapshot().History
		if len(h) != 1 || h[0].Content != gamedata.NarratorSeed {
			t.Errorf("%s: history = %v, want the seed turn", tt.name, h)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"not json", "not a save"},
		{"truncated", `{"ap": 3`},
		{"unknown state", `{"gameState": "DANCING"}`},
	}

	for _, tt := range tests {
		if _, err := Decode([]byte(tt.data)); err == nil {
			t.Errorf("%s: Decode() should fail", tt.name)
		}
	}
}

func TestMinerOrderPersistence(t *testing.T) {
	tests := []struct {
		phase state.Phase
		want  bool
	}{
		{state.PhaseSetupDefineType, true},
		{state.PhaseSetupDeployScript, true},
		{state.PhaseGameplay, false},
	}
	for _, tt := range tests {
		s := newStore()
		s.SetPhase(tt.phase)
		s.SetMinerOrder(state.MinerOrder{APAllocated: 10, Type: "Iron"})

		data, err := Encode(Export(s))
		if err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		if !strings.Contains(string(data), `"tempMinerOrder"`) {
			t.Errorf("%v: encoded save is missing tempMinerOrder", tt.phase)
		}
		doc, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}

		loaded := newStore()
		Apply(loaded, doc)
		o, ok := loaded.MinerOrder()
		if ok != tt.want {
			t.Errorf("%v: MinerOrder() present = %v, want %v", tt.phase, ok, tt.want)
		}
		if ok && (o.APAllocated != 10 || o.Type != "Iron") {
			t.Errorf("%v: MinerOrder() = %+v, want 10 AP for Iron", tt.phase, o)
		}
	}
}
