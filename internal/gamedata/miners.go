package gamedata

import (
	"errors"
	"fmt"
)

// Names of catalog entries the game logic refers to directly.
const (
	MinerCoal          = "Coal"
	MinerXP            = "XPMiner"
	ResourceXPFragment = "_XPFragment"
)

// MinerTypeDef defines a kind of miner the player can deploy.
type MinerTypeDef struct {
	Name          string `json:"name"`          // Catalog key used by DEFINE_MINER_TYPE
	Resource      string `json:"resource"`      // Resource produced every generation tick
	Description   string `json:"description"`   // Short flavor text
	Tier          int    `json:"tier"`          // Display grouping, 1 (basic) to 4
	LevelRequired int    `json:"levelRequired"` // Minimum player level to define this type
}

// Unlocked reports whether a player at level can define this miner type.
func (m *MinerTypeDef) Unlocked(level int) bool {
	return level >= m.LevelRequired
}

// MinerTypesFile represents the structure of miner_types.json.
type MinerTypesFile struct {
	MinerTypes []MinerTypeDef `json:"minerTypes"`
}

func (f *MinerTypesFile) validate() error {
	if len(f.MinerTypes) == 0 {
		return errors.New("no miner types defined")
	}
	seen := make(map[string]bool, len(f.MinerTypes))
	for _, m := range f.MinerTypes {
		if m.Name == "" || m.Resource == "" {
			return fmt.Errorf("miner type %q is missing a name or resource", m.Name)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate miner type %q", m.Name)
		}
		if m.LevelRequired < 1 {
			return fmt.Errorf("miner type %q requires level %d", m.Name, m.LevelRequired)
		}
		seen[m.Name] = true
	}
	return nil
}

// LoadMinerTypes loads miner type definitions from the embedded miner_types.json file.
func LoadMinerTypes() ([]MinerTypeDef, error) {
	file, err := Load[MinerTypesFile]("miner_types.json")
	if err != nil {
		return nil, err
	}
	return file.MinerTypes, nil
}
