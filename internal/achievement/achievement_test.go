package achievement

import (
	"slices"
	"testing"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

func TestEvaluateTenMinersOnce(t *testing.T) {
	s := economy.NewState(economy.DefaultCatalog())
	s.AssetCounts[economy.AssetMiner] = 10
	rules := DefaultRules()

	got := rules.Evaluate(s)
	if !slices.Equal(got, []string{"10 miners"}) {
		t.Fatalf("Evaluate() = %v, want [10 miners]", got)
	}

	for i := 0; i < 3; i++ {
		if again := rules.Evaluate(s); len(again) != 0 {
			t.Errorf("Evaluate() pass %d = %v, want nothing", i+2, again)
		}
	}
	if !slices.Equal(s.Achievements, []string{"10 miners"}) {
		t.Errorf("Achievements = %v", s.Achievements)
	}
}

func TestEvaluateBatchKeepsTableOrder(t *testing.T) {
	s := economy.NewState(economy.DefaultCatalog())
	s.AssetCounts[economy.AssetRig] = 5
	s.Currency = 10000
	s.AssetCounts[economy.AssetMiner] = 12

	got := DefaultRules().Evaluate(s)

	want := []string{"10 miners", "10k coins", "5 rigs"}
	if !slices.Equal(got, want) {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
	if !slices.Equal(s.Achievements, want) {
		t.Errorf("Achievements = %v, want %v", s.Achievements, want)
	}
}

func TestEvaluateAppendsAfterExisting(t *testing.T) {
	s := economy.NewState(economy.DefaultCatalog())
	s.Achievements = []string{"5 rigs"}
	s.AssetCounts[economy.AssetRig] = 6
	s.Currency = 20000

	got := DefaultRules().Evaluate(s)

	if !slices.Equal(got, []string{"10k coins"}) {
		t.Errorf("Evaluate() = %v, want [10k coins]", got)
	}
	if !slices.Equal(s.Achievements, []string{"5 rigs", "10k coins"}) {
		t.Errorf("Achievements = %v", s.Achievements)
	}
}

func TestEvaluateBelowThresholds(t *testing.T) {
	s := economy.NewState(economy.DefaultCatalog())
	s.AssetCounts[economy.AssetMiner] = 9
	s.AssetCounts[economy.AssetRig] = 4
	s.Currency = 9999.99

	if got := DefaultRules().Evaluate(s); len(got) != 0 {
		t.Errorf("Evaluate() = %v, want nothing", got)
	}
}

func TestAchievementsSurviveSpending(t *testing.T) {
	c := economy.DefaultCatalog()
	s := economy.NewState(c)
	s.Currency = 10000
	rules := DefaultRules()
	rules.Evaluate(s)

	if _, err := economy.BuyAsset(s, c, economy.AssetFarm); err != nil {
		t.Fatalf("BuyAsset() error: %v", err)
	}
	rules.Evaluate(s)

	if !slices.Equal(s.Achievements, []string{"10k coins"}) {
		t.Errorf("Achievements = %v, want [10k coins]", s.Achievements)
	}
}

func TestRulesValidate(t *testing.T) {
	c := economy.DefaultCatalog()
	if err := DefaultRules().Validate(c); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}

	tests := []struct {
		name  string
		rules Rules
	}{
		{"duplicate", Rules{{Name: "a", Metric: MetricCurrency}, {Name: "a", Metric: MetricCurrency}}},
		{"empty name", Rules{{Metric: MetricCurrency}}},
		{"unknown metric", Rules{{Name: "a", Metric: "hashes"}}},
		{"unknown asset", Rules{{Name: "a", Metric: AssetMetric("quarry")}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.rules.Validate(c); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
