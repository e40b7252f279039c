// Package cache holds the process-local like-count memo. The original
// memo grew without bound; this one is a fixed-capacity LRU so repeat
// reads stay O(1) without leaking memory.
package cache

import (
	"fmt"

	"github.com/clipstream/backend/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"
)

type countKey struct {
	kind domain.LikeTarget
	id   uuid.UUID
}

// Counts maps a like target to its last-known total. Entries are
// invalidated on every toggle and repopulated on the next read, so a
// stored value is never more than one completed toggle old.
type Counts struct {
	lru *lru.Cache[countKey, int64]
}

func NewCounts(capacity int) (*Counts, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("count cache: capacity must be positive, got %d", capacity)
	}
	c, err := lru.New[countKey, int64](capacity)
	if err != nil {
		return nil, err
	}
	return &Counts{lru: c}, nil
}

func (c *Counts) Get(kind domain.LikeTarget, id uuid.UUID) (int64, bool) {
	return c.lru.Get(countKey{kind: kind, id: id})
}

func (c *Counts) Set(kind domain.LikeTarget, id uuid.UUID, total int64) {
	c.lru.Add(countKey{kind: kind, id: id}, total)
}

func (c *Counts) Invalidate(kind domain.LikeTarget, id uuid.UUID) {
	c.lru.Remove(countKey{kind: kind, id: id})
}

// Len reports how many targets currently have a memoized count.
func (c *Counts) Len() int {
	return c.lru.Len()
}
