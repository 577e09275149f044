package economy

import (
	"math"
	"time"
)

// Scheduler cadence: ten ticks per second, each delivering a tenth of the
// per-second passive yield.
const (
	TickInterval   = 100 * time.Millisecond
	TicksPerSecond = 10
)

// ClickYield is the integer number of coins one manual mine produces.
func ClickYield(s *State) float64 {
	return math.Floor(1 * s.HashPower * s.ClickMultiplier)
}

// PassiveYield is the passive income per second from owned assets.
func PassiveYield(s *State, c Catalog) float64 {
	var base float64
	for _, a := range c.Assets {
		base += float64(s.AssetCounts[a.Kind]) * a.YieldPerSecond
	}
	return base * s.AutoMultiplier * s.HashPower
}

// TickYield is the income delivered by a single tick.
func TickYield(s *State, c Catalog) float64 {
	return PassiveYield(s, c) / TicksPerSecond
}
