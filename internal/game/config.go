package game

import (
	"time"

	"github.com/samdwyer/cmdcrafter/internal/narration"
)

// Config holds session options.
type Config struct {
	// Seed for the observation RNG. A seed of 0 means a time-based seed.
	Seed int64

	// GenerationInterval is the miner tick period. Zero uses the default.
	GenerationInterval time.Duration

	Narration narration.Config
}
