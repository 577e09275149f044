// Package achievement evaluates the achievement rule table against an
// economy.State. Rules are stateless; the unlocked list lives in the state.
package achievement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

// Metric names the state value a rule compares against its threshold.
// "currency" reads the balance, "asset:<kind>" reads an owned count.
type Metric string

const (
	MetricCurrency Metric = "currency"

	assetPrefix = "asset:"
)

// AssetMetric returns the metric for the owned count of kind.
func AssetMetric(kind economy.AssetKind) Metric {
	return Metric(assetPrefix + string(kind))
}

// Value reads the metric from s.
func (m Metric) Value(s *economy.State) float64 {
	if m == MetricCurrency {
		return s.Currency
	}
	if kind, ok := strings.CutPrefix(string(m), assetPrefix); ok {
		return float64(s.Count(economy.AssetKind(kind)))
	}
	return 0
}

// Rule unlocks Name once Metric reaches Threshold.
type Rule struct {
	Name      string
	Metric    Metric
	Threshold float64
}

// Satisfied reports whether the rule's condition holds for s.
func (r Rule) Satisfied(s *economy.State) bool {
	return r.Metric.Value(s) >= r.Threshold
}

// Rules is an ordered rule table. Evaluation order is table order.
type Rules []Rule

// DefaultRules returns the stock achievement table.
func DefaultRules() Rules {
	return Rules{
		{Name: "10 miners", Metric: AssetMetric(economy.AssetMiner), Threshold: 10},
		{Name: "10k coins", Metric: MetricCurrency, Threshold: 10000},
		{Name: "5 rigs", Metric: AssetMetric(economy.AssetRig), Threshold: 5},
	}
}

// Evaluate appends every newly satisfied achievement to s.Achievements in
// table order and returns the names it appended. Running it again without a
// state change appends nothing.
func (rs Rules) Evaluate(s *economy.State) []string {
	var unlocked []string
	for _, r := range rs {
		if !r.Satisfied(s) || s.HasAchievement(r.Name) {
			continue
		}
		unlocked = append(unlocked, r.Name)
	}
	s.Achievements = append(s.Achievements, unlocked...)
	return unlocked
}

// Validate checks names are unique and metrics refer to the catalog.
func (rs Rules) Validate(c economy.Catalog) error {
	var errs []error
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		if r.Name == "" {
			errs = append(errs, errors.New("achievement with empty name"))
		}
		if seen[r.Name] {
			errs = append(errs, fmt.Errorf("duplicate achievement %q", r.Name))
		}
		seen[r.Name] = true

		if r.Metric == MetricCurrency {
			continue
		}
		kind, ok := strings.CutPrefix(string(r.Metric), assetPrefix)
		if !ok {
			errs = append(errs, fmt.Errorf("achievement %q: unknown metric %q", r.Name, r.Metric))
			continue
		}
		if _, ok := c.Asset(economy.AssetKind(kind)); !ok {
			errs = append(errs, fmt.Errorf("achievement %q: unknown asset %q", r.Name, kind))
		}
	}
	return errors.Join(errs...)
}
