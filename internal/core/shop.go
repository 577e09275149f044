package core

import "github.com/vovakirdan/mining-tycoon/internal/economy"

// ShopItem is one row of the shop: an asset or an upgrade.
type ShopItem struct {
	Asset   economy.AssetKind
	Upgrade economy.UpgradeKey
}

// IsUpgrade reports whether the item is an upgrade.
func (s ShopItem) IsUpgrade() bool { return s.Upgrade != "" }

// Shop lists the catalog's assets followed by its upgrades, in catalog order.
func Shop(c economy.Catalog) []ShopItem {
	items := make([]ShopItem, 0, len(c.Assets)+len(c.Upgrades))
	for _, a := range c.Assets {
		items = append(items, ShopItem{Asset: a.Kind})
	}
	for _, u := range c.Upgrades {
		items = append(items, ShopItem{Upgrade: u.Key})
	}
	return items
}
