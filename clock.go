package movetree

// OrderedID is the constraint every ActorId must satisfy: comparable so
// it can be used as a map key and compared for equality, plus Less so
// two actors from different replicas can be totally ordered as a
// tie-break on otherwise-equal counters.
type OrderedID[A any] interface {
	comparable
	Less(other A) bool
}

// Timestamp is a Lamport-style (counter, actor) pair. Two distinct
// replicas never produce equal timestamps because their actor ids
// differ, which gives the pair a total order across the whole system:
// compare Counter first, then break ties on Actor.
type Timestamp[A OrderedID[A]] struct {
	Counter uint64
	Actor   A
}

// Less reports whether t sorts strictly before other.
func (t Timestamp[A]) Less(other Timestamp[A]) bool {
	if t.Counter != other.Counter {
		return t.Counter < other.Counter
	}
	return t.Actor.Less(other.Actor)
}

// Equal reports whether t and other identify the same logical event.
func (t Timestamp[A]) Equal(other Timestamp[A]) bool {
	return t.Counter == other.Counter && t.Actor == other.Actor
}

// Clock is a per-replica Lamport clock. It is not internally
// synchronized; callers that share a Clock across goroutines must
// serialize their own access, matching the single-threaded-per-replica
// model described in the package docs.
type Clock[A OrderedID[A]] struct {
	actor   A
	counter uint64
}

// NewClock creates a Clock for the given actor, starting at counter 0.
func NewClock[A OrderedID[A]](actor A) *Clock[A] {
	return &Clock[A]{actor: actor}
}

// Tick increments the local counter and returns a fresh Timestamp. Two
// calls to Tick on the same Clock never return equal timestamps, and
// every timestamp it returns sorts after anything previously merged or
// ticked.
func (c *Clock[A]) Tick() Timestamp[A] {
	c.counter++
	return Timestamp[A]{Counter: c.counter, Actor: c.actor}
}

// Merge folds a remote timestamp into the clock without ticking. Per
// spec, merging only raises the counter to the observed maximum; it
// does not increment, so a subsequent Tick is still needed before the
// next locally-stamped operation is produced.
func (c *Clock[A]) Merge(t Timestamp[A]) {
	if t.Counter > c.counter {
		c.counter = t.Counter
	}
}

// Observed returns the current counter, for diagnostics and tests.
func (c *Clock[A]) Observed() uint64 {
	return c.counter
}

// Actor returns the actor id this clock stamps timestamps with.
func (c *Clock[A]) Actor() A {
	return c.actor
}
