package economy

import (
	"errors"
	"testing"
)

func TestMineFreshState(t *testing.T) {
	s := NewState(DefaultCatalog())

	gain := Mine(s)

	if gain != 1 {
		t.Errorf("Mine() gain = %v, want 1", gain)
	}
	if s.Currency != 1 {
		t.Errorf("Currency = %v, want 1", s.Currency)
	}
}

func TestMineFloorsYield(t *testing.T) {
	s := NewState(DefaultCatalog())
	s.HashPower = 1.2
	s.ClickMultiplier = 1.5 // 1.8 -> 1

	if gain := Mine(s); gain != 1 {
		t.Errorf("Mine() gain = %v, want 1", gain)
	}

	s.ClickMultiplier = 2.25 // 2.7 -> 2
	if gain := Mine(s); gain != 2 {
		t.Errorf("Mine() gain = %v, want 2", gain)
	}
}

func TestBuyAssetExactBalance(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 10

	price, err := BuyAsset(s, c, AssetMiner)
	if err != nil {
		t.Fatalf("BuyAsset() error: %v", err)
	}
	if price != 10 {
		t.Errorf("price = %v, want 10", price)
	}
	if s.Currency != 0 {
		t.Errorf("Currency = %v, want 0", s.Currency)
	}
	if s.Count(AssetMiner) != 1 {
		t.Errorf("miners = %d, want 1", s.Count(AssetMiner))
	}
}

func TestBuyAssetInsufficientFunds(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 9
	before := s.Clone()

	_, err := BuyAsset(s, c, AssetMiner)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("BuyAsset() error = %v, want ErrInsufficientFunds", err)
	}

	var pe *PurchaseError
	if !errors.As(err, &pe) || pe.Price != 10 {
		t.Errorf("PurchaseError = %+v, want price 10", pe)
	}
	if !s.Equal(before) {
		t.Errorf("state changed on failed purchase: %+v", s)
	}
}

func TestBuyAssetUnknownKind(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 1e9
	before := s.Clone()

	if _, err := BuyAsset(s, c, "quarry"); !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("BuyAsset(quarry) error = %v, want ErrUnknownAsset", err)
	}
	if !s.Equal(before) {
		t.Error("state changed on unknown asset")
	}
}

func TestBuyUpgradeBetterChip(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 50

	cost, err := BuyUpgrade(s, c, UpgradeBetterChip)
	if err != nil {
		t.Fatalf("BuyUpgrade() error: %v", err)
	}
	if cost != 50 {
		t.Errorf("cost = %v, want 50", cost)
	}
	if s.Currency != 0 {
		t.Errorf("Currency = %v, want 0", s.Currency)
	}
	if s.Level(UpgradeBetterChip) != 1 {
		t.Errorf("level = %d, want 1", s.Level(UpgradeBetterChip))
	}
	if s.ClickMultiplier != 1.5 {
		t.Errorf("ClickMultiplier = %v, want 1.5", s.ClickMultiplier)
	}
	if s.HashPower != 1.2 {
		t.Errorf("HashPower = %v, want 1.2", s.HashPower)
	}
	if s.AutoMultiplier != 1 {
		t.Errorf("AutoMultiplier = %v, want 1", s.AutoMultiplier)
	}
}

func TestBuyUpgradeEffectsCompose(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 50 + 100 + 250

	for _, key := range []UpgradeKey{UpgradeBetterChip, UpgradeBetterChip, UpgradeCooling} {
		if _, err := BuyUpgrade(s, c, key); err != nil {
			t.Fatalf("BuyUpgrade(%s) error: %v", key, err)
		}
	}

	if s.Currency != 0 {
		t.Errorf("Currency = %v, want 0", s.Currency)
	}
	if s.ClickMultiplier != 1.5*1.5 {
		t.Errorf("ClickMultiplier = %v, want %v", s.ClickMultiplier, 1.5*1.5)
	}
	wantHash := 1.2
	wantHash *= 1.2
	if s.HashPower != wantHash {
		t.Errorf("HashPower = %v, want %v", s.HashPower, wantHash)
	}
	if s.AutoMultiplier != 1.4 {
		t.Errorf("AutoMultiplier = %v, want 1.4", s.AutoMultiplier)
	}
}

func TestBuyUpgradeInsufficientFunds(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 249.9
	before := s.Clone()

	if _, err := BuyUpgrade(s, c, UpgradeCooling); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("BuyUpgrade() error = %v, want ErrInsufficientFunds", err)
	}
	if !s.Equal(before) {
		t.Errorf("state changed on failed upgrade: %+v", s)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.Currency = 5000
	s.AssetCounts[AssetRig] = 3
	s.Achievements = append(s.Achievements, "5 rigs")
	if _, err := BuyUpgrade(s, c, UpgradeCooling); err != nil {
		t.Fatalf("BuyUpgrade() error: %v", err)
	}

	Reset(s, c)

	if !s.Equal(NewState(c)) {
		t.Errorf("Reset() left %+v", s)
	}
}

func TestPassiveYield(t *testing.T) {
	c := DefaultCatalog()
	s := NewState(c)
	s.AssetCounts[AssetMiner] = 4
	s.AssetCounts[AssetRig] = 2
	s.AssetCounts[AssetFarm] = 1

	// (4*0.5 + 2*5 + 1*30) = 42
	if got := PassiveYield(s, c); got != 42 {
		t.Errorf("PassiveYield() = %v, want 42", got)
	}

	s.AutoMultiplier = 2
	s.HashPower = 1.5
	if got := PassiveYield(s, c); got != 126 {
		t.Errorf("PassiveYield() = %v, want 126", got)
	}
	if got := TickYield(s, c); got != 12.6 {
		t.Errorf("TickYield() = %v, want 12.6", got)
	}
}
