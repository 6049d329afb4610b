package gamedata

// Catalog bundles every static table the game consults. Slices keep the
// declaration order of the JSON files so listings are stable.
type Catalog struct {
	minerTypes []MinerTypeDef
	minerIndex map[string]*MinerTypeDef

	sellables []SellableDef
	sellIndex map[string]*SellableDef

	areas     []AreaDef
	areaIndex map[string]*AreaDef

	endGameItems     []string
	observationFinds []string
}

// NewCatalog creates a catalog from already loaded definitions.
func NewCatalog(miners []MinerTypeDef, sellables []SellableDef, areas []AreaDef, artifacts ArtifactsFile) *Catalog {
	c := &Catalog{
		minerTypes:       miners,
		minerIndex:       make(map[string]*MinerTypeDef, len(miners)),
		sellables:        sellables,
		sellIndex:        make(map[string]*SellableDef, len(sellables)),
		areas:            areas,
		areaIndex:        make(map[string]*AreaDef, len(areas)),
		endGameItems:     artifacts.EndGameItems,
		observationFinds: artifacts.ObservationFinds,
	}
	for i := range miners {
		c.minerIndex[miners[i].Name] = &miners[i]
	}
	for i := range sellables {
		c.sellIndex[sellables[i].Name] = &sellables[i]
	}
	for i := range areas {
		c.areaIndex[areas[i].Name] = &areas[i]
	}
	return c
}

// LoadCatalog loads all embedded catalog files.
func LoadCatalog() (*Catalog, error) {
	miners, err := LoadMinerTypes()
	if err != nil {
		return nil, err
	}
	sellables, err := LoadMarket()
	if err != nil {
		return nil, err
	}
	areas, err := LoadCanvas()
	if err != nil {
		return nil, err
	}
	artifacts, err := LoadArtifacts()
	if err != nil {
		return nil, err
	}
	return NewCatalog(miners, sellables, areas, artifacts), nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// MinerType returns the miner type with the given name, or nil if not found.
// Lookups are case-sensitive.
func (c *Catalog) MinerType(name string) *MinerTypeDef {
	return c.minerIndex[name]
}

// MinerTypes returns all miner type definitions.
func (c *Catalog) MinerTypes() []MinerTypeDef {
	return c.minerTypes
}

// UnlockedMinerTypes returns the names of miner types available at level.
func (c *Catalog) UnlockedMinerTypes(level int) []string {
	var names []string
	for i := range c.minerTypes {
		if c.minerTypes[i].Unlocked(level) {
			names = append(names, c.minerTypes[i].Name)
		}
	}
	return names
}

// MineableResources returns every distinct resource a miner can produce,
// excluding the XP fragment pseudo-resource.
func (c *Catalog) MineableResources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range c.minerTypes {
		if m.Resource == ResourceXPFragment || seen[m.Resource] {
			continue
		}
		seen[m.Resource] = true
		out = append(out, m.Resource)
	}
	return out
}

// Sellable returns the market entry for a resource, or nil if it cannot be sold.
func (c *Catalog) Sellable(name string) *SellableDef {
	return c.sellIndex[name]
}

// Sellables returns the whole market table.
func (c *Catalog) Sellables() []SellableDef {
	return c.sellables
}

// Area returns the canvas area with the given name, or nil if not found.
func (c *Catalog) Area(name string) *AreaDef {
	return c.areaIndex[name]
}

// Areas returns the canvas areas in layout order.
func (c *Catalog) Areas() []AreaDef {
	return c.areas
}

// AreaNames returns the canvas area names in layout order.
func (c *Catalog) AreaNames() []string {
	names := make([]string, len(c.areas))
	for i, a := range c.areas {
		names[i] = a.Name
	}
	return names
}

// EndGameItems returns the items required by CRAFT_THE_END.
func (c *Catalog) EndGameItems() []string {
	return c.endGameItems
}

// ObservationFinds returns the common sellable items observation can yield.
func (c *Catalog) ObservationFinds() []string {
	return c.observationFinds
}
