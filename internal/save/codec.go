// Package save is the persistence codec for the economy and the key-value
// port the engine persists through.
package save

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

// ExportFileName is the default name of an exported save.
const ExportFileName = "web-mining-tycoon-save.json"

// Record is the persisted layout of an economy.State.
type Record struct {
	Currency        float64                  `json:"currency"`
	HashPower       float64                  `json:"hashPower"`
	AssetCounts     map[string]int           `json:"assetCounts"`
	ClickMultiplier float64                  `json:"clickMultiplier"`
	AutoMultiplier  float64                  `json:"autoMultiplier"`
	Upgrades        map[string]UpgradeRecord `json:"upgrades"`
	Achievements    []string                 `json:"achievements"`
}

// UpgradeRecord is the persisted layout of one upgrade.
type UpgradeRecord struct {
	Level       int     `json:"level"`
	BaseCost    float64 `json:"baseCost"`
	Description string  `json:"description"`
}

// partialRecord mirrors Record with pointers so absent fields can be told
// apart from zero values. Coins/miners/rigs/farms are the flat layout written
// by the browser version of the game.
type partialRecord struct {
	Currency        *float64                   `json:"currency"`
	HashPower       *float64                   `json:"hashPower"`
	AssetCounts     map[string]*int            `json:"assetCounts"`
	ClickMultiplier *float64                   `json:"clickMultiplier"`
	AutoMultiplier  *float64                   `json:"autoMultiplier"`
	Upgrades        map[string]*partialUpgrade `json:"upgrades"`
	Achievements    []string                   `json:"achievements"`

	Coins  *float64 `json:"coins"`
	Miners *int     `json:"miners"`
	Rigs   *int     `json:"rigs"`
	Farms  *int     `json:"farms"`
}

type partialUpgrade struct {
	Level *int `json:"level"`
}

// Codec converts between economy.State and its persisted form for a catalog.
type Codec struct {
	catalog economy.Catalog
}

// NewCodec returns a codec for the given catalog.
func NewCodec(c economy.Catalog) *Codec {
	return &Codec{catalog: c}
}

// Serialize builds the persisted record for s. Every catalog asset and
// upgrade is present even when s lacks an entry.
func (c *Codec) Serialize(s *economy.State) Record {
	rec := Record{
		Currency:        s.Currency,
		HashPower:       s.HashPower,
		AssetCounts:     make(map[string]int, len(c.catalog.Assets)),
		ClickMultiplier: s.ClickMultiplier,
		AutoMultiplier:  s.AutoMultiplier,
		Upgrades:        make(map[string]UpgradeRecord, len(c.catalog.Upgrades)),
		Achievements:    append([]string{}, s.Achievements...),
	}
	for _, a := range c.catalog.Assets {
		rec.AssetCounts[string(a.Kind)] = s.Count(a.Kind)
	}
	for _, u := range c.catalog.Upgrades {
		up, ok := s.Upgrades[u.Key]
		if !ok {
			up = economy.Upgrade{BaseCost: u.BaseCost, Description: u.Description}
		}
		rec.Upgrades[string(u.Key)] = UpgradeRecord{
			Level:       up.Level,
			BaseCost:    up.BaseCost,
			Description: up.Description,
		}
	}
	return rec
}

// Encode serializes s to indented JSON.
func (c *Codec) Encode(s *economy.State) ([]byte, error) {
	data, err := json.MarshalIndent(c.Serialize(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// Decode parses data into a fresh state. Absent fields take the catalog
// default. An upgrades object missing any catalog key is treated as absent
// as a whole. Anything that is not a valid save yields ErrCorruptSave and
// no state.
func (c *Codec) Decode(data []byte) (*economy.State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, corrupt("expected a JSON object")
	}

	var rec partialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, corrupt(err.Error())
	}

	s := economy.NewState(c.catalog)

	switch {
	case rec.Currency != nil:
		s.Currency = *rec.Currency
	case rec.Coins != nil:
		s.Currency = *rec.Coins
	}
	if rec.HashPower != nil {
		s.HashPower = *rec.HashPower
	}
	if rec.ClickMultiplier != nil {
		s.ClickMultiplier = *rec.ClickMultiplier
	}
	if rec.AutoMultiplier != nil {
		s.AutoMultiplier = *rec.AutoMultiplier
	}

	if rec.AssetCounts != nil {
		for _, a := range c.catalog.Assets {
			if n := rec.AssetCounts[string(a.Kind)]; n != nil {
				s.AssetCounts[a.Kind] = *n
			}
		}
	} else {
		legacy := map[economy.AssetKind]*int{
			economy.AssetMiner: rec.Miners,
			economy.AssetRig:   rec.Rigs,
			economy.AssetFarm:  rec.Farms,
		}
		for kind, n := range legacy {
			if _, ok := c.catalog.Asset(kind); ok && n != nil {
				s.AssetCounts[kind] = *n
			}
		}
	}

	if levels, ok := c.upgradeLevels(rec.Upgrades); ok {
		for key, level := range levels {
			up := s.Upgrades[key]
			up.Level = level
			s.Upgrades[key] = up
		}
	}

	if rec.Achievements != nil {
		s.Achievements = rec.Achievements
	}

	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// upgradeLevels extracts saved levels. ok is false when the saved object is
// absent or does not cover the whole catalog.
func (c *Codec) upgradeLevels(saved map[string]*partialUpgrade) (map[economy.UpgradeKey]int, bool) {
	if saved == nil {
		return nil, false
	}
	levels := make(map[economy.UpgradeKey]int, len(c.catalog.Upgrades))
	for _, u := range c.catalog.Upgrades {
		entry := saved[string(u.Key)]
		if entry == nil || entry.Level == nil {
			return nil, false
		}
		levels[u.Key] = *entry.Level
	}
	return levels, true
}

func validate(s *economy.State) error {
	if s.Currency < 0 {
		return corrupt(fmt.Sprintf("negative currency %v", s.Currency))
	}
	if s.HashPower < 1 || s.ClickMultiplier < 1 || s.AutoMultiplier < 1 {
		return corrupt("multipliers must be >= 1")
	}
	for kind, n := range s.AssetCounts {
		if n < 0 {
			return corrupt(fmt.Sprintf("negative %s count", kind))
		}
	}
	for key, up := range s.Upgrades {
		if up.Level < 0 {
			return corrupt(fmt.Sprintf("negative %s level", key))
		}
	}
	seen := make(map[string]bool, len(s.Achievements))
	for _, name := range s.Achievements {
		if name == "" || seen[name] {
			return corrupt(fmt.Sprintf("invalid achievement list %q", s.Achievements))
		}
		seen[name] = true
	}
	return nil
}

func corrupt(reason string) error {
	return fmt.Errorf("%w: %s", economy.ErrCorruptSave, reason)
}
