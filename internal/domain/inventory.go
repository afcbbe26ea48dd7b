package domain

// Drop is the transient result of one resolution. It is never persisted directly.
type Drop struct {
	Identity    string    `json:"identity"`
	Description string    `json:"description,omitempty"`
	RarityID    RarityID  `json:"rarityId"`
	VariantID   VariantID `json:"variantId"`
	Timestamp   int64     `json:"timestamp"`
	RollNumber  int64     `json:"rollNumber"`
}

// LootKey is the dedup key of the general loot inventory.
type LootKey struct {
	Text      string
	RarityID  RarityID
	VariantID VariantID
}

// LootItem is one persisted row of the general loot inventory.
type LootItem struct {
	Text         string    `json:"text"`
	Description  string    `json:"description"`
	RarityID     RarityID  `json:"rarityId"`
	VariantID    VariantID `json:"variantId"`
	Count        int       `json:"count"`
	DiscoveredAt int64     `json:"discoveredAt"`
	Locked       bool      `json:"locked"`
}

// Key returns the row's dedup key.
func (i LootItem) Key() LootKey {
	return LootKey{Text: i.Text, RarityID: i.RarityID, VariantID: i.VariantID}
}

// Key returns the inventory key this drop folds into.
func (d Drop) Key() LootKey {
	return LootKey{Text: d.Identity, RarityID: d.RarityID, VariantID: d.VariantID}
}

// ResourceSlot is one persisted row of a resource inventory (ores, fish, plants, moon items).
// Resource inventories have no variant axis.
type ResourceSlot struct {
	ID           int   `json:"id"`
	Count        int   `json:"count"`
	DiscoveredAt int64 `json:"discoveredAt"`
	Locked       bool  `json:"locked"`
}
