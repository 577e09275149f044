// Package economy holds the mining economy: the balance catalog, pricing curves,
// the Economy State ledger and the pure operations that mutate it.
// It has no I/O and no dependency on the UI, so every rule is unit-testable.
package economy

import (
	"errors"
	"fmt"
)

// AssetKind identifies a purchasable asset that produces passive income.
type AssetKind string

const (
	AssetMiner AssetKind = "miner"
	AssetRig   AssetKind = "rig"
	AssetFarm  AssetKind = "farm"
)

// UpgradeKey identifies a leveled upgrade in the catalog.
type UpgradeKey string

const (
	UpgradeBetterChip UpgradeKey = "better-chip"
	UpgradeCooling    UpgradeKey = "cooling"
)

// Effect is the multiplicative effect of buying one upgrade level.
// A factor of 1 leaves the corresponding multiplier unchanged.
type Effect struct {
	ClickMultiplier float64
	HashPower       float64
	AutoMultiplier  float64
}

// AssetSpec describes one asset kind.
type AssetSpec struct {
	Kind           AssetKind
	Name           string
	BasePrice      float64
	YieldPerSecond float64 // passive income per owned unit before multipliers
	Description    string
}

// UpgradeSpec describes one upgrade. BaseCost and Description are fixed;
// only the level changes at runtime.
type UpgradeSpec struct {
	Key         UpgradeKey
	BaseCost    float64
	Description string
	Effect      Effect
}

// Catalog is the fixed balance data of the game. Assets and Upgrades are
// ordered; the order is used for display and serialization.
type Catalog struct {
	PriceGrowth   float64 // per-unit asset price growth
	UpgradeGrowth float64 // per-level upgrade price growth
	Assets        []AssetSpec
	Upgrades      []UpgradeSpec
}

// DefaultCatalog returns the stock balance: three assets and two upgrades.
func DefaultCatalog() Catalog {
	return Catalog{
		PriceGrowth:   1.15,
		UpgradeGrowth: 2,
		Assets: []AssetSpec{
			{Kind: AssetMiner, Name: "Miner", BasePrice: 10, YieldPerSecond: 0.5, Description: "Low-level worker"},
			{Kind: AssetRig, Name: "Rig", BasePrice: 200, YieldPerSecond: 5, Description: "GPU rig"},
			{Kind: AssetFarm, Name: "Farm", BasePrice: 2000, YieldPerSecond: 30, Description: "Mining farm"},
		},
		Upgrades: []UpgradeSpec{
			{
				Key:         UpgradeBetterChip,
				BaseCost:    50,
				Description: "Increase hash per click",
				Effect:      Effect{ClickMultiplier: 1.5, HashPower: 1.2, AutoMultiplier: 1},
			},
			{
				Key:         UpgradeCooling,
				BaseCost:    250,
				Description: "Increase auto mining efficiency",
				Effect:      Effect{ClickMultiplier: 1, HashPower: 1, AutoMultiplier: 1.4},
			},
		},
	}
}

// Asset looks up an asset spec by kind.
func (c Catalog) Asset(kind AssetKind) (AssetSpec, bool) {
	for _, a := range c.Assets {
		if a.Kind == kind {
			return a, true
		}
	}
	return AssetSpec{}, false
}

// Upgrade looks up an upgrade spec by key.
func (c Catalog) Upgrade(key UpgradeKey) (UpgradeSpec, bool) {
	for _, u := range c.Upgrades {
		if u.Key == key {
			return u, true
		}
	}
	return UpgradeSpec{}, false
}

// AssetKinds returns the asset kinds in catalog order.
func (c Catalog) AssetKinds() []AssetKind {
	kinds := make([]AssetKind, len(c.Assets))
	for i, a := range c.Assets {
		kinds[i] = a.Kind
	}
	return kinds
}

// UpgradeKeys returns the upgrade keys in catalog order.
func (c Catalog) UpgradeKeys() []UpgradeKey {
	keys := make([]UpgradeKey, len(c.Upgrades))
	for i, u := range c.Upgrades {
		keys[i] = u.Key
	}
	return keys
}

// Validate checks that the catalog is usable: non-empty, unique keys,
// positive prices and growth factors, and effects that never shrink a multiplier.
func (c Catalog) Validate() error {
	var errs []error

	if c.PriceGrowth < 1 {
		errs = append(errs, fmt.Errorf("price growth %v must be >= 1", c.PriceGrowth))
	}
	if c.UpgradeGrowth < 1 {
		errs = append(errs, fmt.Errorf("upgrade growth %v must be >= 1", c.UpgradeGrowth))
	}
	if len(c.Assets) == 0 {
		errs = append(errs, errors.New("no assets defined"))
	}

	seenAssets := make(map[AssetKind]bool, len(c.Assets))
	for _, a := range c.Assets {
		switch {
		case a.Kind == "":
			errs = append(errs, errors.New("asset with empty kind"))
		case seenAssets[a.Kind]:
			errs = append(errs, fmt.Errorf("duplicate asset %q", a.Kind))
		}
		seenAssets[a.Kind] = true
		if a.BasePrice <= 0 {
			errs = append(errs, fmt.Errorf("asset %q: base price must be positive", a.Kind))
		}
		if a.YieldPerSecond < 0 {
			errs = append(errs, fmt.Errorf("asset %q: yield must not be negative", a.Kind))
		}
	}

	seenUpgrades := make(map[UpgradeKey]bool, len(c.Upgrades))
	for _, u := range c.Upgrades {
		switch {
		case u.Key == "":
			errs = append(errs, errors.New("upgrade with empty key"))
		case seenUpgrades[u.Key]:
			errs = append(errs, fmt.Errorf("duplicate upgrade %q", u.Key))
		}
		seenUpgrades[u.Key] = true
		if u.BaseCost <= 0 {
			errs = append(errs, fmt.Errorf("upgrade %q: base cost must be positive", u.Key))
		}
		if u.Effect.ClickMultiplier < 1 || u.Effect.HashPower < 1 || u.Effect.AutoMultiplier < 1 {
			errs = append(errs, fmt.Errorf("upgrade %q: effect factors must be >= 1", u.Key))
		}
	}

	return errors.Join(errs...)
}
