package movetree

// Operation is an immutable request to move child under parent and set
// its metadata, stamped with the timestamp that gives it a place in the
// total order across every replica. Deletion has no separate
// representation: a caller models it by moving the child under a
// well-known trash node of its own choosing.
type Operation[N comparable, M comparable, A OrderedID[A]] struct {
	Timestamp Timestamp[A]
	Child     N
	Parent    N
	Metadata  M
}

// LogOperation is the journal entry State produces when it applies an
// Operation. It carries everything needed to invert the mutation
// without re-reading the tree: the old parent/metadata the operation
// overwrote, or their absence if child did not exist in the tree
// beforehand.
type LogOperation[N comparable, M comparable, A OrderedID[A]] struct {
	Timestamp    Timestamp[A]
	Child        N
	OldParent    N
	OldMetadata  M
	HadOldParent bool
	NewParent    N
	NewMetadata  M
}

// Operation reconstructs the Operation this log entry was produced
// from, the form State needs to redo it against a different pre-state.
func (l LogOperation[N, M, A]) Operation() Operation[N, M, A] {
	return Operation[N, M, A]{
		Timestamp: l.Timestamp,
		Child:     l.Child,
		Parent:    l.NewParent,
		Metadata:  l.NewMetadata,
	}
}
