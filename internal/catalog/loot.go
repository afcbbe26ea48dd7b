package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// LootText is one flavour line a loot drop can carry.
type LootText struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// LootPool maps each rarity to its text pool.
type LootPool struct {
	byRarity map[domain.RarityID][]LootText
	moon     []LootText
}

type lootFile struct {
	Pools []struct {
		Rarity string     `json:"rarity"`
		Items  []LootText `json:"items"`
	} `json:"pools"`
	Moon []LootText `json:"moon"`
}

// ParseLootPool decodes a loot pool document. Every ladder rarity must have a pool.
func ParseLootPool(raw []byte) (*LootPool, error) {
	var file lootFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode loot pools: %w", err)
	}

	pool := &LootPool{byRarity: make(map[domain.RarityID][]LootText, len(file.Pools)), moon: file.Moon}
	for _, p := range file.Pools {
		tier, ok := domain.RarityByName(p.Rarity)
		if !ok || tier.IsMoonTier() {
			return nil, fmt.Errorf("%w: unknown rarity %q in loot pools", domain.ErrInvalidInput, p.Rarity)
		}
		pool.byRarity[tier.ID] = append(pool.byRarity[tier.ID], p.Items...)
	}
	for _, tier := range domain.RarityLadder() {
		if len(pool.byRarity[tier.ID]) == 0 {
			return nil, fmt.Errorf("%w: no loot text for %s", domain.ErrInvalidInput, tier.Name)
		}
	}
	if len(pool.moon) == 0 {
		return nil, fmt.Errorf("%w: no moon loot text", domain.ErrInvalidInput)
	}
	return pool, nil
}

// Pick returns the entry at r in [0,1) of the rarity's pool.
func (p *LootPool) Pick(rarity domain.RarityID, r float64) LootText {
	if rarity.IsMoon() {
		return p.PickMoon(r)
	}
	return pick(p.byRarity[rarity], r)
}

// PickMoon uniformly picks from the Moon pool.
func (p *LootPool) PickMoon(r float64) LootText {
	return pick(p.moon, r)
}

// Size reports how many lines a rarity's pool holds.
func (p *LootPool) Size(rarity domain.RarityID) int {
	if rarity.IsMoon() {
		return len(p.moon)
	}
	return len(p.byRarity[rarity])
}

func pick(items []LootText, r float64) LootText {
	if len(items) == 0 {
		return LootText{Text: "Unknown Trinket"}
	}
	i := int(r * float64(len(items)))
	if i < 0 {
		i = 0
	}
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i]
}
