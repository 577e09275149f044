package economy

import (
	"fmt"
	"math"
)

// AssetPrice returns the price of the next unit when owned units are already held:
// floor(basePrice * growth^owned).
func AssetPrice(basePrice, growth float64, owned int) float64 {
	return math.Floor(basePrice * math.Pow(growth, float64(owned)))
}

// UpgradePrice returns the price of the next level: floor(baseCost * growth^level).
func UpgradePrice(baseCost, growth float64, level int) float64 {
	return math.Floor(baseCost * math.Pow(growth, float64(level)))
}

// AssetPrice prices the next unit of kind given the owned count.
func (c Catalog) AssetPrice(kind AssetKind, owned int) (float64, error) {
	spec, ok := c.Asset(kind)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, kind)
	}
	return AssetPrice(spec.BasePrice, c.PriceGrowth, owned), nil
}

// UpgradePrice prices the next level of key given the current level.
func (c Catalog) UpgradePrice(key UpgradeKey, level int) (float64, error) {
	spec, ok := c.Upgrade(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUpgrade, key)
	}
	return UpgradePrice(spec.BaseCost, c.UpgradeGrowth, level), nil
}
