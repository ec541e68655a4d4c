package auxcrdt

import "sync"

// GCounter is a state-based grow-only counter CRDT. In this package it
// backs the "operations applied" and "operations discarded" tallies
// the metrics package exports: each replica increments only its own
// slot, and merging two counters takes the per-actor maximum, so the
// total can be folded across any subset of replicas without
// double-counting.
type GCounter struct {
	mu sync.RWMutex
	// actorID is the slot this counter's local Increment calls write to.
	actorID string
	// slots maps actor id -> highest count observed for that actor.
	slots map[string]int
}

// NewGCounter initializes a GCounter that increments the given actor's
// slot. The actorID must be unique across the whole replica set so
// that increments from different replicas never collide.
func NewGCounter(actorID string) *GCounter {
	return &GCounter{
		actorID: actorID,
		slots:   make(map[string]int),
	}
}

// Increment adds n to the local actor's slot. n must be non-negative;
// callers counting events pass 1.
func (c *GCounter) Increment(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[c.actorID] += n
}

// Value returns the sum of all slots: the total count across every
// actor this counter has observed, whether by local increment or by
// merge.
func (c *GCounter) Value() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total()
}

func (c *GCounter) total() int {
	sum := 0
	for _, v := range c.slots {
		sum += v
	}
	return sum
}

// Merge folds another counter's slots into this one, taking the
// per-actor maximum. This is the join operation of the underlying
// join-semilattice: commutative, associative, and idempotent.
func (c *GCounter) Merge(other *GCounter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	for actor, v := range other.slots {
		if v > c.slots[actor] {
			c.slots[actor] = v
		}
	}
}
