package config

import (
	_ "embed"

	"github.com/vovakirdan/mining-tycoon/internal/achievement"
	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

//go:embed defaults/tycoon.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Balance: BalanceFrom(economy.DefaultCatalog(), achievement.DefaultRules()),
		Save: SaveConfig{
			Slot:          "default",
			AutosaveTicks: economy.TicksPerSecond,
		},
		UI: UIConfig{
			ToastSeconds: 2.5,
		},
	}
}

// BalanceFrom builds a balance section from a catalog and rule table.
func BalanceFrom(c economy.Catalog, rules achievement.Rules) BalanceConfig {
	b := BalanceConfig{
		PriceGrowth:   c.PriceGrowth,
		UpgradeGrowth: c.UpgradeGrowth,
	}
	for _, a := range c.Assets {
		b.Assets = append(b.Assets, AssetConfig{
			Kind:           string(a.Kind),
			Name:           a.Name,
			BasePrice:      a.BasePrice,
			YieldPerSecond: a.YieldPerSecond,
			Description:    a.Description,
		})
	}
	for _, u := range c.Upgrades {
		b.Upgrades = append(b.Upgrades, UpgradeConfig{
			Key:         string(u.Key),
			BaseCost:    u.BaseCost,
			Description: u.Description,
			Effect: EffectConfig{
				ClickMultiplier: u.Effect.ClickMultiplier,
				HashPower:       u.Effect.HashPower,
				AutoMultiplier:  u.Effect.AutoMultiplier,
			},
		})
	}
	for _, r := range rules {
		b.Achievements = append(b.Achievements, AchievementConfig{
			Name:      r.Name,
			Metric:    string(r.Metric),
			Threshold: r.Threshold,
		})
	}
	return b
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
