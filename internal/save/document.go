// Package save implements the persisted game document: exporting a
// state.Store to JSON and importing it back with defaults for missing
// fields.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
)

// Document is the on-disk save format. Pointer and nil-able fields mark
// values that may be absent from an older or hand-edited save.
type Document struct {
	AP                    *int                        `json:"ap"`
	PlayerLevel           *int                        `json:"playerLevel"`
	CurrentXP             *int                        `json:"currentXP"`
	XPToNextLevel         *int                        `json:"xpToNextLevel"`
	Resources             map[string]int              `json:"resources"`
	ActiveMiners          []state.Miner               `json:"activeMiners"`
	SynthesizedModules    map[string]state.Module     `json:"synthesizedModules"`
	DigitalCanvas         map[string]state.Area       `json:"digitalCanvas"`
	GameState             *state.Phase                `json:"gameState"`
	ConversationHistory   json.RawMessage             `json:"conversationHistory"`
	ObserveCooldowns      map[string]int64            `json:"observeCooldowns"`
	AreaObservationStatus map[string]state.AreaStatus `json:"areaObservationStatus"`
	UseAIForObserve       *bool                       `json:"useAIForObserve"`
	TempMinerOrder        *state.MinerOrder           `json:"tempMinerOrder,omitempty"`
}

// Export copies every persisted field of the store into a document.
func Export(s *state.Store) *Document {
	snap := s.Snapshot()

	history, _ := json.Marshal(snap.History)
	cooldowns := make(map[string]int64, len(snap.Cooldowns))
	for area, at := range snap.Cooldowns {
		cooldowns[area] = at.UnixMilli()
	}

	miners := snap.Miners
	if miners == nil {
		miners = []state.Miner{}
	}

	return &Document{
		AP:                    intPtr(snap.AP),
		PlayerLevel:           intPtr(snap.Level),
		CurrentXP:             intPtr(snap.XP),
		XPToNextLevel:         intPtr(snap.XPToNextLevel),
		Resources:             snap.Resources,
		ActiveMiners:          miners,
		SynthesizedModules:    snap.Modules,
		DigitalCanvas:         snap.Canvas,
		GameState:             &snap.Phase,
		ConversationHistory:   history,
		ObserveCooldowns:      cooldowns,
		AreaObservationStatus: snap.AreaStatus,
		UseAIForObserve:       &snap.UseAIForObserve,
		TempMinerOrder:        snap.Order,
	}
}

// Encode renders a document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// Decode parses a save document. Unknown fields are ignored.
func Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("decode save: empty document")
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	return &doc, nil
}

// Snapshot converts the document into a full state snapshot, applying the
// new-game default for every absent field. A present zero is kept.
func (d *Document) Snapshot() state.Snapshot {
	snap := state.Snapshot{
		Phase:           state.PhaseAwaitingChoice,
		AP:              intOr(d.AP, gamedata.StartingAP),
		Level:           intOr(d.PlayerLevel, 1),
		XP:              intOr(d.CurrentXP, 0),
		XPToNextLevel:   intOr(d.XPToNextLevel, gamedata.XPPerLevel),
		Resources:       make(map[string]int, len(d.Resources)),
		Miners:          append([]state.Miner(nil), d.ActiveMiners...),
		Modules:         make(map[string]state.Module, len(d.SynthesizedModules)),
		Canvas:          make(map[string]state.Area, len(d.DigitalCanvas)),
		Cooldowns:       make(map[string]time.Time, len(d.ObserveCooldowns)),
		AreaStatus:      make(map[string]state.AreaStatus, len(d.AreaObservationStatus)),
		UseAIForObserve: true,
		History:         decodeHistory(d.ConversationHistory),
	}
	if d.GameState != nil {
		snap.Phase = *d.GameState
	}
	if d.UseAIForObserve != nil {
		snap.UseAIForObserve = *d.UseAIForObserve
	}
	if d.TempMinerOrder != nil {
		o := *d.TempMinerOrder
		snap.Order = &o
	}
	for k, v := range d.Resources {
		snap.Resources[k] = v
	}
	for k, v := range d.SynthesizedModules {
		if v.Name == "" {
			v.Name = k
		}
		snap.Modules[k] = v
	}
	for k, v := range d.DigitalCanvas {
		snap.Canvas[k] = state.Area{Description: v.Description, Components: append([]string{}, v.Components...)}
	}
	for k, ms := range d.ObserveCooldowns {
		snap.Cooldowns[k] = time.UnixMilli(ms)
	}
	for k, v := range d.AreaObservationStatus {
		snap.AreaStatus[k] = v
	}
	return snap
}

// decodeHistory accepts any well-formed array of turns; anything else
// falls back to the narrator seed.
func decodeHistory(raw json.RawMessage) []state.Message {
	if len(raw) == 0 {
		return state.SeedHistory()
	}
	var history []state.Message
	if err := json.Unmarshal(raw, &history); err != nil || len(history) == 0 {
		return state.SeedHistory()
	}
	for _, m := range history {
		if m.Role == "" {
			return state.SeedHistory()
		}
	}
	return history
}

// Apply replaces the live store with the document's contents.
func Apply(s *state.Store, d *Document) {
	s.Restore(d.Snapshot())
}

func intPtr(v int) *int { return &v }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
