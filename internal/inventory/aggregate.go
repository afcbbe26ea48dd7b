// Package inventory folds batches of drops into the persisted inventories.
// Every function returns a new slice and leaves its input untouched.
package inventory

import (
	"slices"
	"time"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// LootDelta is the outcome of folding one batch into the loot inventory.
type LootDelta struct {
	Inventory []domain.LootItem
	Kept      int
	Consumed  int
	NewRows   int
}

// AggregateLoot merges drops at or above the keep floor (and Moon drops) by
// (text, rarity, variant). Lower drops are only counted as consumed.
func AggregateLoot(inv []domain.LootItem, drops []domain.Drop, now time.Time) (LootDelta, *domain.Drop) {
	out := slices.Clone(inv)
	delta := LootDelta{}

	var index map[domain.LootKey]int
	if len(drops) >= LookupLinearScanThreshold {
		index = buildLootIndex(out)
	}

	for _, d := range drops {
		if !d.RarityID.Kept() {
			delta.Consumed++
			continue
		}
		delta.Kept++

		key := d.Key()
		pos := -1
		if index != nil {
			if i, ok := index[key]; ok {
				pos = i
			}
		} else {
			pos = FindLootItem(out, key)
		}

		if pos >= 0 {
			out[pos].Count++
			continue
		}

		out = append(out, domain.LootItem{
			Text:         d.Identity,
			Description:  d.Description,
			RarityID:     d.RarityID,
			VariantID:    d.VariantID,
			Count:        1,
			DiscoveredAt: now.UnixMilli(),
		})
		delta.NewRows++
		if index != nil {
			index[key] = len(out) - 1
		}
	}

	delta.Inventory = out
	return delta, BestDrop(drops)
}

// BestDrop returns the first drop of the highest rarity. Moon drops live on a
// parallel track and are ignored unless the whole batch is Moon.
func BestDrop(drops []domain.Drop) *domain.Drop {
	var best *domain.Drop
	allMoon := len(drops) > 0
	for i := range drops {
		if drops[i].RarityID.IsMoon() {
			continue
		}
		allMoon = false
		if best == nil || drops[i].RarityID > best.RarityID {
			best = &drops[i]
		}
	}
	if allMoon {
		return &drops[0]
	}
	return best
}

// MergeResources adds counts into a resource inventory. Resource drops have
// no floor. New rows are appended in ascending id order.
func MergeResources(inv []domain.ResourceSlot, counts map[int]int, now time.Time) []domain.ResourceSlot {
	out := slices.Clone(inv)
	if len(counts) == 0 {
		return out
	}

	ids := make([]int, 0, len(counts))
	for id, n := range counts {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var index map[int]int
	if len(ids) >= LookupLinearScanThreshold {
		index = buildResourceIndex(out)
	}

	for _, id := range ids {
		pos := -1
		if index != nil {
			if i, ok := index[id]; ok {
				pos = i
			}
		} else {
			pos, _ = FindResourceSlot(out, id)
		}

		if pos >= 0 {
			out[pos].Count += counts[id]
			continue
		}
		out = append(out, domain.ResourceSlot{ID: id, Count: counts[id], DiscoveredAt: now.UnixMilli()})
		if index != nil {
			index[id] = len(out) - 1
		}
	}
	return out
}

// CountByID folds a batch of resource drops into a per-id count in one pass.
func CountByID[T domain.Weighted](drops []T) map[int]int {
	counts := make(map[int]int, len(drops))
	for _, d := range drops {
		counts[d.WeightID()]++
	}
	return counts
}
