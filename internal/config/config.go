// Package config provides YAML-based configuration loading for the game:
// the balance catalog, achievement table, save slot and UI settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/mining-tycoon/internal/achievement"
	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

// Config is the full game configuration.
type Config struct {
	Balance BalanceConfig `yaml:"balance"`
	Save    SaveConfig    `yaml:"save"`
	UI      UIConfig      `yaml:"ui"`
}

// BalanceConfig defines prices, yields, upgrades and achievements.
type BalanceConfig struct {
	PriceGrowth   float64             `yaml:"price_growth"`
	UpgradeGrowth float64             `yaml:"upgrade_growth"`
	Assets        []AssetConfig       `yaml:"assets"`
	Upgrades      []UpgradeConfig     `yaml:"upgrades"`
	Achievements  []AchievementConfig `yaml:"achievements"`
}

// AssetConfig defines one purchasable asset.
type AssetConfig struct {
	Kind           string  `yaml:"kind"`
	Name           string  `yaml:"name"`
	BasePrice      float64 `yaml:"base_price"`
	YieldPerSecond float64 `yaml:"yield_per_second"`
	Description    string  `yaml:"description"`
}

// UpgradeConfig defines one leveled upgrade.
type UpgradeConfig struct {
	Key         string       `yaml:"key"`
	BaseCost    float64      `yaml:"base_cost"`
	Description string       `yaml:"description"`
	Effect      EffectConfig `yaml:"effect"`
}

// EffectConfig lists per-level multiplier factors. Omitted factors mean 1.
type EffectConfig struct {
	ClickMultiplier float64 `yaml:"click_multiplier"`
	HashPower       float64 `yaml:"hash_power"`
	AutoMultiplier  float64 `yaml:"auto_multiplier"`
}

// AchievementConfig defines one achievement rule.
type AchievementConfig struct {
	Name      string  `yaml:"name"`
	Metric    string  `yaml:"metric"` // "currency" or "asset:<kind>"
	Threshold float64 `yaml:"threshold"`
}

// SaveConfig controls where and how often the game is persisted.
type SaveConfig struct {
	Slot          string `yaml:"slot"`
	AutosaveTicks int    `yaml:"autosave_ticks"` // ticks between passive-income saves
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ToastSeconds float64 `yaml:"toast_seconds"`
}

// ToastDuration returns how long a toast stays visible.
func (u UIConfig) ToastDuration() time.Duration {
	return time.Duration(u.ToastSeconds * float64(time.Second))
}

// Catalog converts the balance section to an economy.Catalog.
func (b BalanceConfig) Catalog() economy.Catalog {
	c := economy.Catalog{
		PriceGrowth:   b.PriceGrowth,
		UpgradeGrowth: b.UpgradeGrowth,
		Assets:        make([]economy.AssetSpec, 0, len(b.Assets)),
		Upgrades:      make([]economy.UpgradeSpec, 0, len(b.Upgrades)),
	}
	for _, a := range b.Assets {
		c.Assets = append(c.Assets, economy.AssetSpec{
			Kind:           economy.AssetKind(a.Kind),
			Name:           a.Name,
			BasePrice:      a.BasePrice,
			YieldPerSecond: a.YieldPerSecond,
			Description:    a.Description,
		})
	}
	for _, u := range b.Upgrades {
		c.Upgrades = append(c.Upgrades, economy.UpgradeSpec{
			Key:         economy.UpgradeKey(u.Key),
			BaseCost:    u.BaseCost,
			Description: u.Description,
			Effect: economy.Effect{
				ClickMultiplier: factor(u.Effect.ClickMultiplier),
				HashPower:       factor(u.Effect.HashPower),
				AutoMultiplier:  factor(u.Effect.AutoMultiplier),
			},
		})
	}
	return c
}

// Rules converts the achievement list to an achievement.Rules table.
func (b BalanceConfig) Rules() achievement.Rules {
	rules := make(achievement.Rules, 0, len(b.Achievements))
	for _, a := range b.Achievements {
		rules = append(rules, achievement.Rule{
			Name:      a.Name,
			Metric:    achievement.Metric(a.Metric),
			Threshold: a.Threshold,
		})
	}
	return rules
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	var errs []error
	catalog := c.Balance.Catalog()
	if err := catalog.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("balance: %w", err))
	} else if err := c.Balance.Rules().Validate(catalog); err != nil {
		errs = append(errs, fmt.Errorf("achievements: %w", err))
	}
	if c.Save.Slot == "" {
		errs = append(errs, errors.New("save: slot must not be empty"))
	}
	if c.Save.AutosaveTicks < 0 {
		errs = append(errs, errors.New("save: autosave_ticks must not be negative"))
	}
	if c.UI.ToastSeconds < 0 {
		errs = append(errs, errors.New("ui: toast_seconds must not be negative"))
	}
	return errors.Join(errs...)
}

// factor maps an omitted (zero) effect factor to 1.
func factor(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
