package economy

import "fmt"

// Mine performs one manual mine and returns the coins gained.
func Mine(s *State) float64 {
	gain := ClickYield(s)
	s.Currency += gain
	return gain
}

// BuyAsset buys one unit of kind. On failure the state is untouched.
func BuyAsset(s *State, c Catalog, kind AssetKind) (float64, error) {
	price, err := c.AssetPrice(kind, s.Count(kind))
	if err != nil {
		return 0, err
	}
	if s.Currency < price {
		return price, &PurchaseError{Item: string(kind), Price: price, Balance: s.Currency}
	}

	s.Currency -= price
	s.AssetCounts[kind]++
	return price, nil
}

// BuyUpgrade buys the next level of key and applies its effect once.
// On failure the state is untouched.
func BuyUpgrade(s *State, c Catalog, key UpgradeKey) (float64, error) {
	spec, ok := c.Upgrade(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUpgrade, key)
	}
	up, ok := s.Upgrades[key]
	if !ok {
		// State loaded without this entry; fall back to catalog data.
		up = Upgrade{BaseCost: spec.BaseCost, Description: spec.Description}
	}

	cost := UpgradePrice(up.BaseCost, c.UpgradeGrowth, up.Level)
	if s.Currency < cost {
		return cost, &PurchaseError{Item: string(key), Price: cost, Balance: s.Currency}
	}

	s.Currency -= cost
	up.Level++
	s.Upgrades[key] = up
	Apply(s, spec.Effect)
	return cost, nil
}

// Apply multiplies the state's multipliers by one application of e.
func Apply(s *State, e Effect) {
	s.ClickMultiplier *= e.ClickMultiplier
	s.HashPower *= e.HashPower
	s.AutoMultiplier *= e.AutoMultiplier
}

// Reset restores every field of s to the catalog defaults in place.
func Reset(s *State, c Catalog) {
	*s = *NewState(c)
}
