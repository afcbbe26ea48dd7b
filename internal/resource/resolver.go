// Package resource resolves sub-game drops (ores, fish, plants, moon items)
// against arbitrary weighted catalogs.
package resource

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/luck"
	"github.com/osse101/LootLoop_Go/internal/rng"
	"github.com/osse101/LootLoop_Go/internal/script"
)

// Resolver runs the rarest-first threshold scan over a catalog of T.
type Resolver[T domain.Weighted] struct {
	src     rng.Source
	checker script.Checker
	cache   *sortedCache[T]
}

// NewResolver creates a resolver. checker may be nil; cacheSize <= 0 uses DefaultCacheSize.
func NewResolver[T domain.Weighted](src rng.Source, checker script.Checker, cacheSize int) (*Resolver[T], error) {
	if src == nil {
		src = rng.Default()
	}
	cache, err := newSortedCache[T](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver[T]{src: src, checker: checker, cache: cache}, nil
}

// Resolve returns one entry. A scripted override for the catalog's category is
// honoured before any draw. Entries with probability <= 0 never match.
// When nothing matches the lowest-id entry is returned, and an empty catalog
// yields catalog.Fallback.
func (r *Resolver[T]) Resolve(catalog domain.Catalog[T], effectiveLuck float64) T {
	if len(catalog.Entries) == 0 {
		slog.Debug("Empty catalog, using fallback", "catalog", catalog.Name)
		return catalog.Fallback
	}

	if item, ok := r.scripted(catalog); ok {
		return item
	}

	effectiveLuck = luck.Sanitize(effectiveLuck)
	roll := r.src.Float64()
	for _, entry := range r.sorted(catalog) {
		p := entry.WeightProbability()
		if p <= 0 {
			continue
		}
		if roll < (1/p)*effectiveLuck {
			return entry
		}
	}

	slog.Debug("No catalog entry matched, using lowest id", "catalog", catalog.Name, "roll", roll)
	return lowestID(catalog.Entries)
}

// Invalidate forgets a cached ordering.
func (r *Resolver[T]) Invalidate(catalogName string) {
	r.cache.Invalidate(catalogName)
}

func (r *Resolver[T]) scripted(catalog domain.Catalog[T]) (T, bool) {
	var zero T
	if r.checker == nil {
		return zero, false
	}
	name, ok := r.checker.CheckScript(catalog.Category)
	if !ok {
		return zero, false
	}
	for _, entry := range catalog.Entries {
		if entry.WeightName() == name {
			return entry, true
		}
	}
	slog.Debug("Scripted item not in catalog, rolling normally", "catalog", catalog.Name, "target", name)
	return zero, false
}

func (r *Resolver[T]) sorted(catalog domain.Catalog[T]) []T {
	if catalog.Name != "" {
		if s, ok := r.cache.Get(catalog.Name); ok && len(s) == len(catalog.Entries) {
			return s
		}
	}
	s := SortRarestFirst(catalog.Entries)
	if catalog.Name != "" {
		r.cache.Set(catalog.Name, s)
	}
	return s
}

// SortRarestFirst returns a copy ordered by descending probability, ties by ascending id.
func SortRarestFirst[T domain.Weighted](entries []T) []T {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b T) int {
		if c := cmp.Compare(b.WeightProbability(), a.WeightProbability()); c != 0 {
			return c
		}
		return cmp.Compare(a.WeightID(), b.WeightID())
	})
	return out
}

func lowestID[T domain.Weighted](entries []T) T {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.WeightID() < best.WeightID() {
			best = e
		}
	}
	return best
}
