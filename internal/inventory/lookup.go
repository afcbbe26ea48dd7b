package inventory

import "github.com/osse101/LootLoop_Go/internal/domain"

// LookupLinearScanThreshold defines when to switch from linear scan to map-based lookup.
// Linear scan is faster for small batches even against large inventories.
const LookupLinearScanThreshold = 10

// FindResourceSlot returns the index and count of the slot with id, or -1, 0.
func FindResourceSlot(inv []domain.ResourceSlot, id int) (int, int) {
	for i, slot := range inv {
		if slot.ID == id {
			return i, slot.Count
		}
	}
	return -1, 0
}

// FindLootItem returns the index of the row with key, or -1.
func FindLootItem(inv []domain.LootItem, key domain.LootKey) int {
	for i, item := range inv {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func buildResourceIndex(inv []domain.ResourceSlot) map[int]int {
	idx := make(map[int]int, len(inv))
	for i, slot := range inv {
		idx[slot.ID] = i
	}
	return idx
}

func buildLootIndex(inv []domain.LootItem) map[domain.LootKey]int {
	idx := make(map[domain.LootKey]int, len(inv))
	for i, item := range inv {
		idx[item.Key()] = i
	}
	return idx
}
