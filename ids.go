package main

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out card ids. Implementations must never return the same
// id twice for the lifetime of a store.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator returns increasing decimal ids.
type SequenceGenerator struct {
	mu   sync.Mutex
	last uint64
}

// NewSequenceGenerator starts after the highest numeric id in seed, so
// generated ids never collide with seeded ones.
func NewSequenceGenerator(seed []Card) *SequenceGenerator {
	g := &SequenceGenerator{}
	for _, c := range seed {
		if n, err := strconv.ParseUint(c.ID, 10, 64); err == nil && n > g.last {
			g.last = n
		}
	}
	return g
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	return strconv.FormatUint(g.last, 10)
}

func newIDGenerator(strategy string, seed []Card) IDGenerator {
	if strategy == idStrategySequence {
		return NewSequenceGenerator(seed)
	}
	return UUIDGenerator{}
}
