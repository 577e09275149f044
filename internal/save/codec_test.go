package save

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

func playedState(c economy.Catalog) *economy.State {
	s := economy.NewState(c)
	s.Currency = 1234.5
	s.AssetCounts[economy.AssetMiner] = 11
	s.AssetCounts[economy.AssetRig] = 2
	s.Achievements = []string{"10 miners"}
	s.Currency += 50 + 250
	economy.BuyUpgrade(s, c, economy.UpgradeBetterChip) //nolint:errcheck
	economy.BuyUpgrade(s, c, economy.UpgradeCooling)    //nolint:errcheck
	s.Currency += 0.1 // a fractional tick remainder
	return s
}

func TestRoundTrip(t *testing.T) {
	c := economy.DefaultCatalog()
	codec := NewCodec(c)

	for name, s := range map[string]*economy.State{
		"fresh":  economy.NewState(c),
		"played": playedState(c),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := codec.Encode(s)
			require.NoError(t, err)

			got, err := codec.Decode(data)
			require.NoError(t, err)
			assert.True(t, s.Equal(got), "round trip changed state:\n%+v\n%+v", s, got)
		})
	}
}

func TestSerializeLayout(t *testing.T) {
	c := economy.DefaultCatalog()
	data, err := NewCodec(c).Encode(playedState(c))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{
		"currency", "hashPower", "assetCounts", "clickMultiplier",
		"autoMultiplier", "upgrades", "achievements",
	} {
		assert.Contains(t, raw, field)
	}

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, map[string]int{"miner": 11, "rig": 2, "farm": 0}, rec.AssetCounts)
	assert.Equal(t, UpgradeRecord{Level: 1, BaseCost: 50, Description: "Increase hash per click"},
		rec.Upgrades["better-chip"])
	assert.Equal(t, []string{"10 miners"}, rec.Achievements)
}

func TestDecodeMissingFieldsUseDefaults(t *testing.T) {
	c := economy.DefaultCatalog()
	codec := NewCodec(c)

	s, err := codec.Decode([]byte(`{"currency": 42, "assetCounts": {"rig": 3}}`))
	require.NoError(t, err)

	assert.Equal(t, 42.0, s.Currency)
	assert.Equal(t, 1.0, s.HashPower)
	assert.Equal(t, 1.0, s.ClickMultiplier)
	assert.Equal(t, 1.0, s.AutoMultiplier)
	assert.Equal(t, 0, s.Count(economy.AssetMiner))
	assert.Equal(t, 3, s.Count(economy.AssetRig))
	assert.Equal(t, economy.DefaultUpgrades(c), s.Upgrades)
	assert.Empty(t, s.Achievements)
}

func TestDecodeEmptyObject(t *testing.T) {
	c := economy.DefaultCatalog()
	s, err := NewCodec(c).Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, s.Equal(economy.NewState(c)))
}

func TestDecodePartialUpgradesFallBackWholesale(t *testing.T) {
	c := economy.DefaultCatalog()
	codec := NewCodec(c)

	// cooling is missing, so the saved better-chip level is discarded too.
	s, err := codec.Decode([]byte(`{"upgrades": {"better-chip": {"level": 4, "baseCost": 50, "description": "x"}}}`))
	require.NoError(t, err)
	assert.Equal(t, economy.DefaultUpgrades(c), s.Upgrades)

	s, err = codec.Decode([]byte(`{"upgrades": {"better-chip": {"level": 4}, "cooling": {"level": 2}}}`))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Level(economy.UpgradeBetterChip))
	assert.Equal(t, 2, s.Level(economy.UpgradeCooling))
	assert.Equal(t, 250.0, s.Upgrades[economy.UpgradeCooling].BaseCost)
}

func TestDecodeBrowserLayout(t *testing.T) {
	c := economy.DefaultCatalog()
	legacy := `{
		"coins": 321.7, "hashPower": 1.2, "miners": 12, "rigs": 5, "farms": 1,
		"clickMultiplier": 1.5, "autoMultiplier": 1,
		"upgrades": {
			"better-chip": {"level": 1, "baseCost": 50, "desc": "Increase hash per click"},
			"cooling": {"level": 0, "baseCost": 250, "desc": "Increase auto mining efficiency"}
		},
		"achievements": ["10 miners", "5 rigs"]
	}`

	s, err := NewCodec(c).Decode([]byte(legacy))
	require.NoError(t, err)

	assert.Equal(t, 321.7, s.Currency)
	assert.Equal(t, 12, s.Count(economy.AssetMiner))
	assert.Equal(t, 5, s.Count(economy.AssetRig))
	assert.Equal(t, 1, s.Count(economy.AssetFarm))
	assert.Equal(t, 1, s.Level(economy.UpgradeBetterChip))
	assert.Equal(t, []string{"10 miners", "5 rigs"}, s.Achievements)
}

func TestDecodeCorrupt(t *testing.T) {
	codec := NewCodec(economy.DefaultCatalog())

	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"not json", `this is not a save`},
		{"truncated", `{"currency": 10, "hashPower"`},
		{"array", `[1, 2, 3]`},
		{"null", `null`},
		{"string", `"save"`},
		{"wrong type", `{"currency": "lots"}`},
		{"wrong upgrades type", `{"upgrades": ["better-chip"]}`},
		{"negative currency", `{"currency": -5}`},
		{"zero hash power", `{"hashPower": 0}`},
		{"negative count", `{"assetCounts": {"miner": -1}}`},
		{"fractional count", `{"assetCounts": {"miner": 1.5}}`},
		{"negative level", `{"upgrades": {"better-chip": {"level": -1}, "cooling": {"level": 0}}}`},
		{"duplicate achievement", `{"achievements": ["10 miners", "10 miners"]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := codec.Decode([]byte(tc.data))
			require.ErrorIs(t, err, economy.ErrCorruptSave)
			assert.Nil(t, s)
		})
	}
}
