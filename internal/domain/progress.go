package domain

import (
	"fmt"
	"slices"
)

// Progress is the whole per-player aggregate. Its JSON form is the persisted
// shape: one array per resource inventory, the loot array and flat stats.
type Progress struct {
	Stats     PlayerStats    `json:"stats"`
	Loot      []LootItem     `json:"inventory"`
	Ores      []ResourceSlot `json:"ores"`
	GoldOres  []ResourceSlot `json:"goldOres"`
	PrismOres []ResourceSlot `json:"prismOres"`
	Fish      []ResourceSlot `json:"fish"`
	Plants    []ResourceSlot `json:"plants"`
	MoonItems []ResourceSlot `json:"moonItems"`
}

// NewProgress returns an empty aggregate with non-nil collections so it
// serializes as arrays rather than null.
func NewProgress() Progress {
	return Progress{
		Stats:     PlayerStats{Levels: map[string]int{}},
		Loot:      []LootItem{},
		Ores:      []ResourceSlot{},
		GoldOres:  []ResourceSlot{},
		PrismOres: []ResourceSlot{},
		Fish:      []ResourceSlot{},
		Plants:    []ResourceSlot{},
		MoonItems: []ResourceSlot{},
	}
}

// Resources returns the inventory a sub-game writes to.
func (p Progress) Resources(subGame SubGame) ([]ResourceSlot, error) {
	switch subGame {
	case SubGameMining:
		return p.Ores, nil
	case SubGameGoldMining:
		return p.GoldOres, nil
	case SubGamePrismMining:
		return p.PrismOres, nil
	case SubGameFishing:
		return p.Fish, nil
	case SubGameHarvesting:
		return p.Plants, nil
	case SubGameMoon:
		return p.MoonItems, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSubGame, subGame)
}

// SetResources replaces a sub-game's inventory.
func (p *Progress) SetResources(subGame SubGame, inv []ResourceSlot) error {
	switch subGame {
	case SubGameMining:
		p.Ores = inv
	case SubGameGoldMining:
		p.GoldOres = inv
	case SubGamePrismMining:
		p.PrismOres = inv
	case SubGameFishing:
		p.Fish = inv
	case SubGameHarvesting:
		p.Plants = inv
	case SubGameMoon:
		p.MoonItems = inv
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSubGame, subGame)
	}
	return nil
}

// Clone deep-copies the aggregate.
func (p Progress) Clone() Progress {
	return Progress{
		Stats:     p.Stats.Clone(),
		Loot:      slices.Clone(p.Loot),
		Ores:      slices.Clone(p.Ores),
		GoldOres:  slices.Clone(p.GoldOres),
		PrismOres: slices.Clone(p.PrismOres),
		Fish:      slices.Clone(p.Fish),
		Plants:    slices.Clone(p.Plants),
		MoonItems: slices.Clone(p.MoonItems),
	}
}
