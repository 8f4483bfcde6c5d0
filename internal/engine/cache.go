package engine

import (
	"sync"

	"chessmove/internal/chess"
)

// Cache remembers finished searches by (placement, side). Any cached result
// is a move some completed pass chose, so serving it again is always valid.
type Cache struct {
	mu    sync.Mutex
	limit int
	items map[uint64]cacheEntry
}

type cacheEntry struct {
	grid [chess.Size][chess.Size]chess.Piece
	side chess.Side
	res  SearchResult
}

// NewCache holds up to limit results; a full cache is dropped wholesale.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		return nil
	}
	return &Cache{limit: limit, items: make(map[uint64]cacheEntry)}
}

// FNV-1a over the grid and the side to move.
func hashPosition(p *chess.Position, side chess.Side) uint64 {
	const (
		offset64 = 1469598103934665603
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for r := 0; r < chess.Size; r++ {
		for c := 0; c < chess.Size; c++ {
			h ^= uint64(byte(p.Grid[r][c]))
			h *= prime64
		}
	}
	h ^= uint64(side)
	h *= prime64
	return h
}

// Get is safe on a nil cache.
func (c *Cache) Get(p *chess.Position, side chess.Side) (SearchResult, bool) {
	if c == nil {
		return SearchResult{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[hashPosition(p, side)]
	if !ok || e.grid != p.Grid || e.side != side {
		return SearchResult{}, false
	}
	return e.res, true
}

func (c *Cache) Put(p *chess.Position, side chess.Side, res SearchResult) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= c.limit {
		c.items = make(map[uint64]cacheEntry, c.limit)
	}
	c.items[hashPosition(p, side)] = cacheEntry{grid: p.Grid, side: side, res: res}
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
