package gamedata

import "fmt"

// SellableDef describes how a resource converts into AP.
// Resources are sold in whole lots; any remainder below one lot stays unsold.
type SellableDef struct {
	Name        string `json:"name"`
	ValuePerLot int    `json:"valuePerLot"`
	LotSize     int    `json:"lotSize"`
}

// Quote returns the AP earned and the units consumed when selling amount units.
func (s *SellableDef) Quote(amount int) (ap, sold int) {
	lots := amount / s.LotSize
	return lots * s.ValuePerLot, lots * s.LotSize
}

// MarketFile represents the structure of market.json.
type MarketFile struct {
	Sellables []SellableDef `json:"sellables"`
}

func (f *MarketFile) validate() error {
	for _, s := range f.Sellables {
		if s.LotSize < 1 || s.ValuePerLot < 1 {
			return fmt.Errorf("sellable %q needs a positive lot size and value", s.Name)
		}
	}
	return nil
}

// LoadMarket loads the sellable resource table from the embedded market.json file.
func LoadMarket() ([]SellableDef, error) {
	file, err := Load[MarketFile]("market.json")
	if err != nil {
		return nil, err
	}
	return file.Sellables, nil
}
