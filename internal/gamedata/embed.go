// Package gamedata holds the static catalogs of Cmd Crafter: miner types,
// the resource market, the digital canvas layout and the observation
// artifacts, plus the terminal palette. All of it is embedded JSON and
// never changes at runtime.
package gamedata

import "embed"

//go:embed *.json
var dataFS embed.FS
