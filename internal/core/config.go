package core

import "github.com/vovakirdan/mining-tycoon/internal/economy"

// RuntimeConfig contains configuration passed to a front-end at startup.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Production ticks per second
	Player   string // Display name; the SSH user or the local slot
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: economy.TicksPerSecond,
	}
}
