package state

import (
	"time"
)

// Snapshot is a detached copy of every persisted field of a Store.
type Snapshot struct {
	Phase           Phase
	AP              int
	Level           int
	XP              int
	XPToNextLevel   int
	Resources       map[string]int
	Miners          []Miner
	Modules         map[string]Module
	Canvas          map[string]Area
	Cooldowns       map[string]time.Time
	AreaStatus      map[string]AreaStatus
	UseAIForObserve bool
	History         []Message
	Order           *MinerOrder
}

// Snapshot copies the persisted fields out of the store.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:           s.phase,
		AP:              s.ap,
		Level:           s.level,
		XP:              s.xp,
		XPToNextLevel:   s.xpToNextLevel,
		Resources:       s.Resources(),
		Miners:          s.Miners(),
		Modules:         s.Modules(),
		Canvas:          make(map[string]Area, len(s.canvas)),
		Cooldowns:       make(map[string]time.Time, len(s.cooldowns)),
		AreaStatus:      make(map[string]AreaStatus, len(s.areaStatus)),
		UseAIForObserve: s.useAIObserve,
		History:         s.History(),
	}
	for name, a := range s.canvas {
		snap.Canvas[name] = a.clone()
	}
	for name, ms := range s.cooldowns {
		snap.Cooldowns[name] = time.UnixMilli(ms)
	}
	for name, st := range s.areaStatus {
		snap.AreaStatus[name] = st
	}
	if s.order != nil {
		o := *s.order
		snap.Order = &o
	}
	return snap
}

// Restore replaces the store's persisted fields with snap. Nothing is
// merged with the previous values. Canvas areas are rebuilt from the
// catalog layout; saved components are kept only for known areas.
// Missing area statuses default to StatusCanFindItems. The miner setup
// scratch record survives only when the restored phase is a setup phase.
func (s *Store) Restore(snap Snapshot) {
	s.phase = snap.Phase
	s.ap = snap.AP
	s.level = snap.Level
	s.xp = snap.XP
	s.xpToNextLevel = snap.XPToNextLevel

	s.resources = make(map[string]int, len(snap.Resources))
	for k, v := range snap.Resources {
		if v > 0 {
			s.resources[k] = v
		}
	}

	s.miners = append([]Miner(nil), snap.Miners...)

	s.modules = make(map[string]Module, len(snap.Modules))
	for k, v := range snap.Modules {
		s.modules[k] = v
	}

	s.canvas = InitialCanvas(s.catalog)
	for name, saved := range snap.Canvas {
		a, ok := s.canvas[name]
		if !ok {
			continue
		}
		a.Components = append([]string{}, saved.Components...)
	}

	s.cooldowns = make(map[string]int64, len(snap.Cooldowns))
	for name, at := range snap.Cooldowns {
		s.cooldowns[name] = at.UnixMilli()
	}

	s.areaStatus = make(map[string]AreaStatus, len(s.canvas))
	for _, name := range s.catalog.AreaNames() {
		s.areaStatus[name] = StatusCanFindItems
	}
	for name, st := range snap.AreaStatus {
		s.areaStatus[name] = st
	}

	s.useAIObserve = snap.UseAIForObserve

	if len(snap.History) == 0 {
		s.history = SeedHistory()
	} else {
		s.history = nil
		for _, m := range snap.History {
			s.AppendHistory(m)
		}
	}

	s.order = nil
	if snap.Order != nil && snap.Phase.IsSetup() {
		o := *snap.Order
		s.order = &o
	}
}
