package gamedata

import (
	"testing"
)

func TestLoadMinerTypes(t *testing.T) {
	miners, err := LoadMinerTypes()
	if err != nil {
		t.Fatalf("Failed to load miner types: %v", err)
	}

	if len(miners) != 16 {
		t.Errorf("Expected 16 miner types, got %d", len(miners))
	}

	// Verify the types the game logic names directly exist
	expected := map[string]bool{MinerCoal: false, MinerXP: false}
	for _, m := range miners {
		if _, ok := expected[m.Name]; ok {
			expected[m.Name] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("Expected miner type %q not found", name)
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	coal := c.MinerType("Coal")
	if coal == nil {
		t.Fatal("Coal not found by name")
	}
	if coal.Resource != "Coal" {
		t.Errorf("Expected Coal to produce Coal, got %q", coal.Resource)
	}
	if c.MinerType("coal") != nil {
		t.Error("MinerType lookup should be case-sensitive")
	}

	if xp := c.MinerType(MinerXP); xp == nil || xp.Resource != ResourceXPFragment {
		t.Errorf("XPMiner should produce %s", ResourceXPFragment)
	}

	if got := c.AreaNames(); len(got) != 3 || got[0] != "CORE_NEXUS" {
		t.Errorf("AreaNames() = %v, want CORE_NEXUS first of 3", got)
	}
	if c.Area("DATA_SEA") == nil {
		t.Error("DATA_SEA not found")
	}
	if c.Area("NOWHERE") != nil {
		t.Error("unknown area should be nil")
	}

	if len(c.EndGameItems()) != 5 {
		t.Errorf("Expected 5 end-game items, got %d", len(c.EndGameItems()))
	}
	if len(c.ObservationFinds()) != 2 {
		t.Errorf("Expected 2 observation finds, got %d", len(c.ObservationFinds()))
	}
}

func TestUnlockedMinerTypes(t *testing.T) {
	c := MustLoadCatalog()

	tests := []struct {
		level    int
		expected int
	}{
		{1, 7},
		{3, 9},
		{4, 11},
		{5, 13},
		{6, 15},
		{7, 16},
	}

	for _, tt := range tests {
		got := len(c.UnlockedMinerTypes(tt.level))
		if got != tt.expected {
			t.Errorf("UnlockedMinerTypes(%d) has %d types, want %d", tt.level, got, tt.expected)
		}
	}
}

func TestMineableResourcesExcludeXPFragment(t *testing.T) {
	c := MustLoadCatalog()

	resources := c.MineableResources()
	if len(resources) != 15 {
		t.Errorf("Expected 15 mineable resources, got %d", len(resources))
	}
	seen := make(map[string]bool)
	for _, r := range resources {
		if r == ResourceXPFragment {
			t.Error("MineableResources should not include the XP fragment")
		}
		if seen[r] {
			t.Errorf("duplicate resource %q", r)
		}
		seen[r] = true
	}
}

func TestSellableQuote(t *testing.T) {
	c := MustLoadCatalog()

	tests := []struct {
		resource string
		amount   int
		ap       int
		sold     int
	}{
		{"Coal", 10, 1, 10},
		{"Coal", 9, 0, 0},
		{"Coal", 25, 2, 20},
		{"GlimmeringDust", 3, 15, 3},
		{"CorruptedDataChunk", 1, 2, 1},
	}

	for _, tt := range tests {
		s := c.Sellable(tt.resource)
		if s == nil {
			t.Fatalf("%s should be sellable", tt.resource)
		}
		ap, sold := s.Quote(tt.amount)
		if ap != tt.ap || sold != tt.sold {
			t.Errorf("Quote(%s, %d) = (%d, %d), want (%d, %d)", tt.resource, tt.amount, ap, sold, tt.ap, tt.sold)
		}
	}

	if c.Sellable("Diamond") != nil {
		t.Error("Diamond should not be sellable")
	}
}

func TestMinerTypesFileValidate(t *testing.T) {
	tests := []struct {
		name  string
		file  MinerTypesFile
		valid bool
	}{
		{"empty", MinerTypesFile{}, false},
		{"ok", MinerTypesFile{MinerTypes: []MinerTypeDef{{Name: "A", Resource: "A", LevelRequired: 1}}}, true},
		{"no resource", MinerTypesFile{MinerTypes: []MinerTypeDef{{Name: "A", LevelRequired: 1}}}, false},
		{"level zero", MinerTypesFile{MinerTypes: []MinerTypeDef{{Name: "A", Resource: "A"}}}, false},
		{"duplicate", MinerTypesFile{MinerTypes: []MinerTypeDef{
			{Name: "A", Resource: "A", LevelRequired: 1},
			{Name: "A", Resource: "B", LevelRequired: 1},
		}}, false},
	}

	for _, tt := range tests {
		err := tt.file.validate()
		if tt.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex   string
		valid bool
	}{
		{"#FF0000", true},
		{"00e5ff", true},
		{"#FFF", false},
		{"#GG0000", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.hex)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) unexpected error: %v", tt.hex, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) expected an error", tt.hex)
		}
	}

	c, _ := ParseHexColor("#FF8000")
	if r, g, b := c.RGB(); r != 0xFF || g != 0x80 || b != 0x00 {
		t.Errorf("ParseHexColor(#FF8000).RGB() = %d,%d,%d", r, g, b)
	}
}

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme()
	if err != nil {
		t.Fatalf("Failed to load theme: %v", err)
	}
	for _, kind := range []string{"system", "voice", "info", "error", "input"} {
		if _, ok := theme.Transcript[kind]; !ok {
			t.Errorf("theme has no transcript colour for %q", kind)
		}
	}
	if theme.Style("nonsense") != theme.Base {
		t.Error("unknown kinds should fall back to the base style")
	}
}
