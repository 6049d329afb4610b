package gamedata

import "time"

// Tuning constants shared by the setup flow and the gameplay handlers.
const (
	MinerCost = 5 // AP taken from an allocation per miner defined
	MinerRate = 1 // Units produced per generation tick by a newly deployed miner

	StartingAP      = 10
	XPPerLevel      = 100 // Threshold to the next level is level * XPPerLevel
	HistoryCapacity = 10  // Narration turns kept, seed included

	ObserveCooldown      = 30 * time.Second
	GenerationInterval   = 5 * time.Second
	EndGameItemChance    = 0.20 // Rolls below this find an end-game item
	CommonFindChance     = 0.75 // Rolls below this (and above the former) find a sellable
	EndGameResourceQuota = 100  // Units of each mineable resource consumed by CRAFT_THE_END

	XPSynthesize  = 20
	XPInject      = 30
	XPEndGameFind = 50
	XPCommonFind  = 5
	XPDeployMiner = 10
	XPQuickStart  = 20
)

// NarratorSeed is the system turn every conversation history starts with.
const NarratorSeed = "You are the disembodied voice in the Cmd Crafter game. The player is a nascent AI crafting a new digital reality. When they OBSERVE an area, describe what they see based on the components injected into it. Be descriptive, slightly ominous, and hint at future possibilities. The ultimate goal is 'The End' - a new digital reality. Keep responses concise, 2-3 sentences max."
