package movetree

// Replica is the facade callers hold: one Clock and one State, tied
// together to an actor id chosen once at creation. It never synthesizes
// operations on its own beyond stamping; everything else is State's
// job.
type Replica[N comparable, M comparable, A OrderedID[A]] struct {
	actor A
	clock *Clock[A]
	state *State[N, M, A]
}

// NewReplica creates an empty Replica for the given actor id: a fresh
// Clock at counter 0 and an empty State.
func NewReplica[N comparable, M comparable, A OrderedID[A]](actor A) *Replica[N, M, A] {
	return &Replica[N, M, A]{
		actor: actor,
		clock: NewClock[A](actor),
		state: NewState[N, M, A](),
	}
}

// Opmove stamps a move request via the Clock and returns the resulting
// Operation without applying it. Callers choose when (and whether) to
// broadcast it and when to apply it locally via ApplyOpLocal; this
// split lets a caller show a speculative edit in a UI before the
// transport has accepted it.
func (r *Replica[N, M, A]) Opmove(child, parent N, metadata M) Operation[N, M, A] {
	return Operation[N, M, A]{
		Timestamp: r.clock.Tick(),
		Child:     child,
		Parent:    parent,
		Metadata:  metadata,
	}
}

// ApplyOpLocal is a convenience that feeds a just-stamped local
// operation straight into State, without touching the Clock (it was
// already advanced by Opmove).
func (r *Replica[N, M, A]) ApplyOpLocal(op Operation[N, M, A]) {
	r.state.ApplyOp(op)
}

// ApplyOp integrates a remote operation: merge its timestamp into the
// Clock first (so the replica's own next Tick sorts after anything
// it's seen), then delegate to State.
func (r *Replica[N, M, A]) ApplyOp(op Operation[N, M, A]) {
	r.clock.Merge(op.Timestamp)
	r.state.ApplyOp(op)
}

// ApplyOps applies each remote operation in the order supplied.
func (r *Replica[N, M, A]) ApplyOps(ops []Operation[N, M, A]) {
	for _, op := range ops {
		r.ApplyOp(op)
	}
}

// State returns the underlying State, for inspection and for attaching
// WithLogger/WithMetrics.
func (r *Replica[N, M, A]) State() *State[N, M, A] {
	return r.state
}

// Clock returns the underlying Clock, for inspection.
func (r *Replica[N, M, A]) Clock() *Clock[A] {
	return r.clock
}

// Actor returns the actor id this replica was created with.
func (r *Replica[N, M, A]) Actor() A {
	return r.actor
}

// Fork snapshots this replica's State and Clock into a new,
// independent Replica under a different actor id. The new replica
// shares no mutable state with the original; it's a convenience for
// simulations and tests that want many independent copies of the same
// starting point.
func (r *Replica[N, M, A]) Fork(actor A) *Replica[N, M, A] {
	fork := NewReplica[N, M, A](actor)
	fork.clock.Merge(Timestamp[A]{Counter: r.clock.Observed(), Actor: actor})

	tree, log := r.state.Snapshot()
	fork.state.tree = tree
	fork.state.log = log
	return fork
}
