package auxcrdt

// OperationBalance is a Positive-Negative Counter CRDT specialized to
// the one accounting question the metrics package cares about: across
// every replica, how many move operations have landed net-applied
// versus net-discarded? It tracks "applied" as the positive GCounter
// and "discarded" as the negative one, so the balance falls (and goes
// negative) when a replica's incoming operation stream is mostly
// cycles or self-parents and grows when most operations land.
type OperationBalance struct {
	applied   *GCounter
	discarded *GCounter
}

// NewOperationBalance initializes a balance that attributes its local
// increments to actorID.
func NewOperationBalance(actorID string) *OperationBalance {
	return &OperationBalance{
		applied:   NewGCounter(actorID),
		discarded: NewGCounter(actorID),
	}
}

// RecordApplied marks n more operations as having been applied to the
// tree.
func (b *OperationBalance) RecordApplied(n int) {
	b.applied.Increment(n)
}

// RecordDiscarded marks n more operations as having been discarded
// (self-parent or cycle).
func (b *OperationBalance) RecordDiscarded(n int) {
	b.discarded.Increment(n)
}

// Value returns applied-total minus discarded-total across every actor
// this balance has observed, whether by local recording or by merge.
func (b *OperationBalance) Value() any {
	return b.Applied() - b.Discarded()
}

// Applied returns the applied-total across every observed actor.
func (b *OperationBalance) Applied() int {
	return b.applied.Value().(int)
}

// Discarded returns the discarded-total across every observed actor.
func (b *OperationBalance) Discarded() int {
	return b.discarded.Value().(int)
}

// Merge combines another balance's state into this one by merging the
// underlying applied/discarded GCounters independently. Since both
// satisfy the join-semilattice laws, the combined OperationBalance
// does too: commutative, associative, idempotent.
func (b *OperationBalance) Merge(other *OperationBalance) {
	b.applied.Merge(other.applied)
	b.discarded.Merge(other.discarded)
}
