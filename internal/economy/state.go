package economy

import (
	"maps"
	"slices"
)

// Upgrade is the runtime view of a catalog upgrade.
type Upgrade struct {
	Level       int
	BaseCost    float64
	Description string
}

// State is the Economy State ledger. Currency is the only field that moves
// both ways; counts, levels and achievements only grow during a session.
type State struct {
	Currency        float64
	HashPower       float64
	AssetCounts     map[AssetKind]int
	ClickMultiplier float64
	AutoMultiplier  float64
	Upgrades        map[UpgradeKey]Upgrade
	Achievements    []string
}

// NewState returns the default state for the catalog: zero balance, unit
// multipliers, nothing owned, every upgrade at level 0.
func NewState(c Catalog) *State {
	s := &State{
		HashPower:       1,
		ClickMultiplier: 1,
		AutoMultiplier:  1,
		AssetCounts:     make(map[AssetKind]int, len(c.Assets)),
		Achievements:    []string{},
	}
	for _, a := range c.Assets {
		s.AssetCounts[a.Kind] = 0
	}
	s.Upgrades = DefaultUpgrades(c)
	return s
}

// DefaultUpgrades returns the full upgrade catalog with every level at 0.
func DefaultUpgrades(c Catalog) map[UpgradeKey]Upgrade {
	ups := make(map[UpgradeKey]Upgrade, len(c.Upgrades))
	for _, u := range c.Upgrades {
		ups[u.Key] = Upgrade{BaseCost: u.BaseCost, Description: u.Description}
	}
	return ups
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.AssetCounts = maps.Clone(s.AssetCounts)
	c.Upgrades = maps.Clone(s.Upgrades)
	c.Achievements = slices.Clone(s.Achievements)
	if c.Achievements == nil {
		c.Achievements = []string{}
	}
	return &c
}

// Equal reports whether two states hold the same values.
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Currency == o.Currency &&
		s.HashPower == o.HashPower &&
		s.ClickMultiplier == o.ClickMultiplier &&
		s.AutoMultiplier == o.AutoMultiplier &&
		maps.Equal(s.AssetCounts, o.AssetCounts) &&
		maps.Equal(s.Upgrades, o.Upgrades) &&
		slices.Equal(s.Achievements, o.Achievements)
}

// Count returns the owned units of kind.
func (s *State) Count(kind AssetKind) int {
	return s.AssetCounts[kind]
}

// Level returns the current level of key.
func (s *State) Level(key UpgradeKey) int {
	return s.Upgrades[key].Level
}

// HasAchievement reports whether name is already unlocked.
func (s *State) HasAchievement(name string) bool {
	return slices.Contains(s.Achievements, name)
}
