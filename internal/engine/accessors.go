package engine

import (
	"time"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

// Catalog returns the balance catalog the engine runs on.
func (e *Engine) Catalog() economy.Catalog { return e.catalog }

// Snapshot returns a deep copy of the Economy State.
func (e *Engine) Snapshot() *economy.State { return e.state.Clone() }

func (e *Engine) Currency() float64        { return e.state.Currency }
func (e *Engine) HashPower() float64       { return e.state.HashPower }
func (e *Engine) ClickMultiplier() float64 { return e.state.ClickMultiplier }
func (e *Engine) AutoMultiplier() float64  { return e.state.AutoMultiplier }

// Count returns the owned units of kind.
func (e *Engine) Count(kind economy.AssetKind) int { return e.state.Count(kind) }

// Level returns the level of upgrade key.
func (e *Engine) Level(key economy.UpgradeKey) int { return e.state.Level(key) }

// Achievements returns the unlocked names in unlock order.
func (e *Engine) Achievements() []string {
	return append([]string(nil), e.state.Achievements...)
}

// ClickYield is the coins a Mine would add right now.
func (e *Engine) ClickYield() float64 { return economy.ClickYield(e.state) }

// PassiveYieldPerSecond is the current passive income per second.
func (e *Engine) PassiveYieldPerSecond() float64 {
	return economy.PassiveYield(e.state, e.catalog)
}

// AssetPrice is the price of the next unit of kind.
func (e *Engine) AssetPrice(kind economy.AssetKind) float64 {
	price, _ := e.catalog.AssetPrice(kind, e.state.Count(kind))
	return price
}

// UpgradePrice is the price of the next level of key.
func (e *Engine) UpgradePrice(key economy.UpgradeKey) float64 {
	up, ok := e.state.Upgrades[key]
	if !ok {
		price, _ := e.catalog.UpgradePrice(key, 0)
		return price
	}
	return economy.UpgradePrice(up.BaseCost, e.catalog.UpgradeGrowth, up.Level)
}

// CanAfford reports whether price is within the balance.
func (e *Engine) CanAfford(price float64) bool { return e.state.Currency >= price }

// Elapsed is the session clock advanced by ticks. It is display-only and not persisted.
func (e *Engine) Elapsed() time.Duration { return e.elapsed }

// Ticks is the number of ticks this session.
func (e *Engine) Ticks() uint64 { return e.ticks }

// PeakCurrency is the highest balance seen this session.
func (e *Engine) PeakCurrency() float64 { return e.peak }
