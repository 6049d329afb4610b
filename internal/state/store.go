package state

import (
	"sort"
	"time"

	"github.com/samdwyer/cmdcrafter/internal/gamedata"
)

// Miner is a deployed resource generator.
type Miner struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Resource string `json:"resource"`
	Rate     int    `json:"rate"`
}

// Module is a synthesized combination of two resources.
type Module struct {
	R1   string `json:"R1"`
	R2   string `json:"R2"`
	Name string `json:"name"`
}

// Area is the live state of a canvas area.
type Area struct {
	Description string   `json:"description"`
	Components  []string `json:"components"`
}

func (a Area) clone() Area {
	return Area{Description: a.Description, Components: append([]string{}, a.Components...)}
}

// Message is one narration conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MinerOrder is the scratch record of the miner setup flow.
type MinerOrder struct {
	APAllocated int    `json:"apAllocated"`
	Type        string `json:"type"`
}

// Status is the summary the presentation layer shows at all times.
type Status struct {
	AP        int
	Level     int
	XP        int
	XPToNext  int
	Resources map[string]int
}

// Store holds all mutable game data. It is not safe for concurrent use;
// a single owner goroutine performs every mutation.
type Store struct {
	catalog *gamedata.Catalog

	phase         Phase
	ap            int
	level         int
	xp            int
	xpToNextLevel int
	resources     map[string]int
	miners        []Miner
	modules       map[string]Module
	canvas        map[string]*Area
	cooldowns     map[string]int64 // area -> last observation, Unix milliseconds
	areaStatus    map[string]AreaStatus
	useAIObserve  bool
	order         *MinerOrder
	history       []Message
}

// NewStore creates a store initialized for a new game.
func NewStore(catalog *gamedata.Catalog) *Store {
	s := &Store{catalog: catalog}
	s.Initialize()
	return s
}

// Initialize resets every field to the new-game values.
func (s *Store) Initialize() {
	s.phase = PhaseAwaitingChoice
	s.ap = gamedata.StartingAP
	s.level = 1
	s.xp = 0
	s.xpToNextLevel = gamedata.XPPerLevel
	s.resources = make(map[string]int)
	s.miners = nil
	s.modules = make(map[string]Module)
	s.canvas = InitialCanvas(s.catalog)
	s.cooldowns = make(map[string]int64)
	s.areaStatus = make(map[string]AreaStatus)
	for _, name := range s.catalog.AreaNames() {
		s.areaStatus[name] = StatusCanFindItems
	}
	s.useAIObserve = true
	s.order = nil
	s.history = SeedHistory()
}

// InitialCanvas returns a fresh copy of the static canvas layout.
func InitialCanvas(catalog *gamedata.Catalog) map[string]*Area {
	canvas := make(map[string]*Area, len(catalog.Areas()))
	for _, a := range catalog.Areas() {
		canvas[a.Name] = &Area{Description: a.Description, Components: []string{}}
	}
	return canvas
}

// SeedHistory returns a conversation history holding only the narrator seed.
func SeedHistory() []Message {
	return []Message{{Role: "system", Content: gamedata.NarratorSeed}}
}

// Catalog returns the static catalog the store was built with.
func (s *Store) Catalog() *gamedata.Catalog { return s.catalog }

func (s *Store) Phase() Phase     { return s.phase }
func (s *Store) SetPhase(p Phase) { s.phase = p }
func (s *Store) IsGameOver() bool { return s.phase == PhaseGameOver }

func (s *Store) AP() int            { return s.ap }
func (s *Store) SetAP(v int)        { s.ap = v }
func (s *Store) AddAP(amount int)   { s.ap += amount }
func (s *Store) SpendAP(amount int) { s.ap -= amount }

func (s *Store) Level() int      { return s.level }
func (s *Store) SetLevel(v int)  { s.level = v }
func (s *Store) IncrementLevel() { s.level++ }

func (s *Store) XP() int                { return s.xp }
func (s *Store) SetXP(v int)            { s.xp = v }
func (s *Store) AddXP(amount int)       { s.xp += amount }
func (s *Store) XPToNextLevel() int     { return s.xpToNextLevel }
func (s *Store) SetXPToNextLevel(v int) { s.xpToNextLevel = v }

// Resource returns the held count of a resource; absence means zero.
func (s *Store) Resource(name string) int {
	return s.resources[name]
}

// Resources returns a copy of all held resources.
func (s *Store) Resources() map[string]int {
	out := make(map[string]int, len(s.resources))
	for k, v := range s.resources {
		out[k] = v
	}
	return out
}

// AddResource increases a resource count.
func (s *Store) AddResource(name string, amount int) {
	s.resources[name] += amount
}

// RemoveResource decreases a resource count, deleting the entry once it
// reaches zero. Removing an absent resource is a no-op.
func (s *Store) RemoveResource(name string, amount int) {
	held, ok := s.resources[name]
	if !ok {
		return
	}
	held -= amount
	if held <= 0 {
		delete(s.resources, name)
		return
	}
	s.resources[name] = held
}

// Miners returns a copy of the active miners in deployment order.
func (s *Store) Miners() []Miner {
	return append([]Miner(nil), s.miners...)
}

// AddMiner appends a miner.
func (s *Store) AddMiner(m Miner) {
	s.miners = append(s.miners, m)
}

// HasMiner reports whether a miner with the given name exists.
func (s *Store) HasMiner(name string) bool {
	for _, m := range s.miners {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Module returns the synthesized module with the given name.
func (s *Store) Module(name string) (Module, bool) {
	m, ok := s.modules[name]
	return m, ok
}

// Modules returns a copy of all synthesized modules.
func (s *Store) Modules() map[string]Module {
	out := make(map[string]Module, len(s.modules))
	for k, v := range s.modules {
		out[k] = v
	}
	return out
}

// ModuleNames returns the synthesized module names, sorted.
func (s *Store) ModuleNames() []string {
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PutModule creates or overwrites a module.
func (s *Store) PutModule(m Module) {
	s.modules[m.Name] = m
}

// Area returns a copy of a canvas area.
func (s *Store) Area(name string) (Area, bool) {
	a, ok := s.canvas[name]
	if !ok {
		return Area{}, false
	}
	return a.clone(), true
}

// AddComponent appends a module name to an area's component list.
func (s *Store) AddComponent(area, module string) bool {
	a, ok := s.canvas[area]
	if !ok {
		return false
	}
	a.Components = append(a.Components, module)
	return true
}

// LastObserved returns when an area was last observed.
func (s *Store) LastObserved(area string) (time.Time, bool) {
	ms, ok := s.cooldowns[area]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// SetLastObserved records an observation, at millisecond precision.
func (s *Store) SetLastObserved(area string, at time.Time) {
	s.cooldowns[area] = at.UnixMilli()
}

// AreaStatus returns the observation status of an area.
func (s *Store) AreaStatus(area string) AreaStatus {
	return s.areaStatus[area]
}

// SetAreaStatus updates the observation status of an area.
func (s *Store) SetAreaStatus(area string, status AreaStatus) {
	s.areaStatus[area] = status
}

// ResetAreaStatus marks an area as able to yield items again.
func (s *Store) ResetAreaStatus(area string) {
	s.areaStatus[area] = StatusCanFindItems
}

func (s *Store) UseAIForObserve() bool     { return s.useAIObserve }
func (s *Store) SetUseAIForObserve(v bool) { s.useAIObserve = v }

// MinerOrder returns the scratch setup record, if one is active.
func (s *Store) MinerOrder() (MinerOrder, bool) {
	if s.order == nil {
		return MinerOrder{}, false
	}
	return *s.order, true
}

// SetMinerOrder replaces the scratch setup record.
func (s *Store) SetMinerOrder(o MinerOrder) {
	s.order = &o
}

// ClearMinerOrder discards the scratch setup record.
func (s *Store) ClearMinerOrder() {
	s.order = nil
}

// History returns a copy of the narration conversation.
func (s *Store) History() []Message {
	return append([]Message(nil), s.history...)
}

// AppendHistory adds a turn, keeping only the most recent entries.
func (s *Store) AppendHistory(m Message) {
	s.history = append(s.history, m)
	if over := len(s.history) - gamedata.HistoryCapacity; over > 0 {
		s.history = append([]Message(nil), s.history[over:]...)
	}
}

// Status returns the values shown on the status bar.
func (s *Store) Status() Status {
	return Status{
		AP:        s.ap,
		Level:     s.level,
		XP:        s.xp,
		XPToNext:  s.xpToNextLevel,
		Resources: s.Resources(),
	}
}
