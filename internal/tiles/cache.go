package tiles

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded, concurrency-safe LRU over raw tile bytes keyed by tile
// coordinate. Tile content for a coordinate is immutable, so last-writer-wins
// on concurrent population is fine. One cache is normally shared across all
// render calls in the process.
type Cache struct {
	lru *lru.Cache[Coordinate, []byte]
}

// NewCache creates a cache holding at most capacity tiles. Capacity must be
// positive.
func NewCache(capacity int) (*Cache, error) {
	inner, err := lru.New[Coordinate, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: inner}, nil
}

// Get returns the cached bytes for a coordinate.
func (c *Cache) Get(coord Coordinate) ([]byte, bool) {
	return c.lru.Get(coord)
}

// Put stores tile bytes, evicting the least recently used entry when full.
func (c *Cache) Put(coord Coordinate, data []byte) {
	c.lru.Add(coord, data)
}

// Len reports the number of cached tiles.
func (c *Cache) Len() int {
	return c.lru.Len()
}
