package inventory

import (
	"fmt"
	"slices"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// MoonItemValue is the flat sale price of a Moon-track item.
const MoonItemValue int64 = 10000

// LootValue is the sale price of one unit: base rarity odds times the variant multiplier.
func LootValue(item domain.LootItem) int64 {
	if item.RarityID.IsMoon() {
		return MoonItemValue
	}
	tier, ok := domain.RarityByID(item.RarityID)
	if !ok {
		return 0
	}
	mult := 1.0
	if v, ok := domain.VariantByID(item.VariantID); ok {
		mult = v.Multiplier
	}
	return int64(tier.Probability * mult)
}

// SellLoot removes qty units of one row and returns the coins earned.
func SellLoot(inv []domain.LootItem, key domain.LootKey, qty int) ([]domain.LootItem, int64, error) {
	if qty <= 0 {
		return inv, 0, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, qty)
	}
	pos := FindLootItem(inv, key)
	if pos < 0 {
		return inv, 0, fmt.Errorf("%w: %s", domain.ErrItemNotFound, key.Text)
	}
	if inv[pos].Locked {
		return inv, 0, fmt.Errorf("%w: %s", domain.ErrItemLocked, key.Text)
	}
	if inv[pos].Count < qty {
		return inv, 0, fmt.Errorf("%w: have %d, want %d", domain.ErrInsufficientQuantity, inv[pos].Count, qty)
	}

	out := slices.Clone(inv)
	earned := LootValue(out[pos]) * int64(qty)
	out[pos].Count -= qty
	if out[pos].Count == 0 {
		out = slices.Delete(out, pos, pos+1)
	}
	return out, earned, nil
}

// SellAllLoot sells every unlocked ladder row below the given rarity.
// Moon rows are never bulk-sold.
func SellAllLoot(inv []domain.LootItem, below domain.RarityID) ([]domain.LootItem, int64, int) {
	out := make([]domain.LootItem, 0, len(inv))
	var earned int64
	sold := 0
	for _, item := range inv {
		if item.Locked || item.RarityID.IsMoon() || item.RarityID >= below {
			out = append(out, item)
			continue
		}
		earned += LootValue(item) * int64(item.Count)
		sold += item.Count
	}
	return out, earned, sold
}

// ConsumeResource spends qty units of a resource, removing the row at zero.
func ConsumeResource(inv []domain.ResourceSlot, id, qty int) ([]domain.ResourceSlot, error) {
	if qty <= 0 {
		return inv, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, qty)
	}
	pos, have := FindResourceSlot(inv, id)
	if pos < 0 {
		return inv, fmt.Errorf("%w: resource %d", domain.ErrItemNotFound, id)
	}
	if have < qty {
		return inv, fmt.Errorf("%w: have %d, want %d", domain.ErrInsufficientQuantity, have, qty)
	}

	out := slices.Clone(inv)
	out[pos].Count -= qty
	if out[pos].Count == 0 {
		out = slices.Delete(out, pos, pos+1)
	}
	return out, nil
}

// SetLootLocked toggles bulk-sell protection on one loot row.
func SetLootLocked(inv []domain.LootItem, key domain.LootKey, locked bool) ([]domain.LootItem, error) {
	pos := FindLootItem(inv, key)
	if pos < 0 {
		return inv, fmt.Errorf("%w: %s", domain.ErrItemNotFound, key.Text)
	}
	out := slices.Clone(inv)
	out[pos].Locked = locked
	return out, nil
}

// SetResourceLocked toggles protection on one resource row.
func SetResourceLocked(inv []domain.ResourceSlot, id int, locked bool) ([]domain.ResourceSlot, error) {
	pos, _ := FindResourceSlot(inv, id)
	if pos < 0 {
		return inv, fmt.Errorf("%w: resource %d", domain.ErrItemNotFound, id)
	}
	out := slices.Clone(inv)
	out[pos].Locked = locked
	return out, nil
}
