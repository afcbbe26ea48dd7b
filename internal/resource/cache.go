package resource

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize covers every catalog the service ships with plenty of headroom.
const DefaultCacheSize = 32

// sortedCache keeps each catalog's rarest-first ordering keyed by catalog name.
// Catalogs are static, so an entry never needs refreshing unless a catalog is replaced.
type sortedCache[T any] struct {
	lru *lru.Cache[string, []T]
}

func newSortedCache[T any](size int) (*sortedCache[T], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []T](size)
	if err != nil {
		return nil, err
	}
	return &sortedCache[T]{lru: c}, nil
}

func (c *sortedCache[T]) Get(name string) ([]T, bool) {
	return c.lru.Get(name)
}

func (c *sortedCache[T]) Set(name string, sorted []T) {
	c.lru.Add(name, sorted)
}

// Invalidate drops one catalog, e.g. after a hot reload.
func (c *sortedCache[T]) Invalidate(name string) {
	c.lru.Remove(name)
}
