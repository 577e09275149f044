package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/mining-tycoon/internal/achievement"
	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}

	if got, want := cfg.Balance.Catalog(), economy.DefaultCatalog(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded catalog = %+v, want %+v", got, want)
	}
	if got, want := cfg.Balance.Rules(), achievement.DefaultRules(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded rules = %+v, want %+v", got, want)
	}
	if cfg.Save != DefaultConfig().Save {
		t.Errorf("embedded save = %+v, want %+v", cfg.Save, DefaultConfig().Save)
	}
	if cfg.UI.ToastDuration() != 2500*time.Millisecond {
		t.Errorf("ToastDuration() = %v, want 2.5s", cfg.UI.ToastDuration())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestParsePartialOverridesOnlyNamedFields(t *testing.T) {
	cfg, err := Parse([]byte("save:\n  slot: alt\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Save.Slot != "alt" {
		t.Errorf("Save.Slot = %q, want %q", cfg.Save.Slot, "alt")
	}
	if cfg.Save.AutosaveTicks != economy.TicksPerSecond {
		t.Errorf("Save.AutosaveTicks = %d, want %d", cfg.Save.AutosaveTicks, economy.TicksPerSecond)
	}
	if len(cfg.Balance.Assets) != 3 {
		t.Errorf("len(Balance.Assets) = %d, want 3", len(cfg.Balance.Assets))
	}
}

func TestOmittedEffectFactorsAreOne(t *testing.T) {
	b := BalanceConfig{
		PriceGrowth:   1.15,
		UpgradeGrowth: 2,
		Upgrades: []UpgradeConfig{
			{Key: "cooling", BaseCost: 250, Effect: EffectConfig{AutoMultiplier: 1.4}},
		},
	}
	got := b.Catalog().Upgrades[0].Effect
	want := economy.Effect{ClickMultiplier: 1, HashPower: 1, AutoMultiplier: 1.4}
	if got != want {
		t.Errorf("Effect = %+v, want %+v", got, want)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "balance: [\n"},
		{"empty slot", "save:\n  slot: \"\"\n"},
		{"negative autosave", "save:\n  autosave_ticks: -1\n"},
		{"negative toast", "ui:\n  toast_seconds: -1\n"},
		{"unknown achievement asset", "balance:\n  achievements:\n    - name: x\n      metric: asset:boat\n      threshold: 1\n"},
		{"growth below one", "balance:\n  price_growth: 0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Parse(%q) error = nil, want error", tt.yaml)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tycoon.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  toast_seconds: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.ToastSeconds != 1 {
		t.Errorf("UI.ToastSeconds = %v, want 1", cfg.UI.ToastSeconds)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Save.Slot != "default" {
		t.Errorf("Save.Slot = %q, want %q", cfg.Save.Slot, "default")
	}
}
