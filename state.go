package movetree

import (
	"fmt"
	"sort"

	"github.com/cshekharsharma/movetree/telemetry"
)

// Recorder is the small surface State reports move activity to. It
// exists so the optional metrics package can attach Prometheus
// collectors without State importing it directly; any type with this
// shape works, including a hand-rolled test double.
type Recorder interface {
	ObserveApplied()
	ObserveDiscarded(reason string)
	ObserveDuplicate()
	ObserveReplay(tailLen int)
	ObserveTruncate(n int)
}

// State owns a Tree and the timestamp-ordered log of LogOperations
// that produced it. It is the move engine: ApplyOp is the only way the
// tree is mutated, and it is responsible for the undo/redo replay that
// makes delivery order irrelevant to the final result.
//
// State is not internally synchronized; a single State is only ever
// touched from one goroutine at a time, the same single-threaded-per-
// replica model the rest of the package assumes.
type State[N comparable, M comparable, A OrderedID[A]] struct {
	tree *Tree[N, M]
	log  []LogOperation[N, M, A]

	logger   *telemetry.Logger
	recorder Recorder
}

// NewState returns an empty State: an empty Tree and an empty log.
func NewState[N comparable, M comparable, A OrderedID[A]]() *State[N, M, A] {
	return &State[N, M, A]{
		tree:   NewTree[N, M](),
		logger: telemetry.Discard(),
	}
}

// WithLogger attaches a telemetry logger and returns the same State
// for chaining. Passing nil restores the discarding default.
func (s *State[N, M, A]) WithLogger(logger *telemetry.Logger) *State[N, M, A] {
	if logger == nil {
		logger = telemetry.Discard()
	}
	s.logger = logger
	return s
}

// WithMetrics attaches a Recorder and returns the same State for
// chaining.
func (s *State[N, M, A]) WithMetrics(recorder Recorder) *State[N, M, A] {
	s.recorder = recorder
	return s
}

// Tree returns the read-only view of the current tree.
func (s *State[N, M, A]) Tree() *Tree[N, M] {
	return s.tree
}

// Log returns a copy of the current log, ascending by timestamp.
func (s *State[N, M, A]) Log() []LogOperation[N, M, A] {
	out := make([]LogOperation[N, M, A], len(s.log))
	copy(out, s.log)
	return out
}

// ApplyOps applies each operation in the order supplied. It is a
// convenience over calling ApplyOp in a loop.
func (s *State[N, M, A]) ApplyOps(ops []Operation[N, M, A]) {
	for _, op := range ops {
		s.ApplyOp(op)
	}
}

// ApplyOp integrates a single Operation, local or remote.
//
// Duplicate timestamps are a no-op; log entries with a timestamp
// greater than op's are undone newest-first, op is applied, and that
// tail is redone oldest-first against the new pre-state, since the
// pre-state each of those operations sees may have changed. A redone
// operation that no longer passes do_op's checks is simply omitted
// from the rebuilt tail; discards carry no record, since do_op's
// checks are pure functions of the pre-state and every replica that
// reaches the same pre-state makes the same discard decision anyway.
func (s *State[N, M, A]) ApplyOp(op Operation[N, M, A]) {
	if idx := s.indexOfTimestamp(op.Timestamp); idx >= 0 {
		s.logger.Duplicate(fmt.Sprint(op.Timestamp))
		if s.recorder != nil {
			s.recorder.ObserveDuplicate()
		}
		return
	}

	splitAt := sort.Search(len(s.log), func(i int) bool {
		return op.Timestamp.Less(s.log[i].Timestamp)
	})
	head := s.log[:splitAt]
	tail := s.log[splitAt:]

	for i := len(tail) - 1; i >= 0; i-- {
		s.undo(tail[i])
	}

	newLop, applied := s.doOp(op)

	rebuiltTail := make([]LogOperation[N, M, A], 0, len(tail))
	for _, old := range tail {
		if redone, ok := s.doOp(old.Operation()); ok {
			rebuiltTail = append(rebuiltTail, redone)
		}
	}

	newLog := make([]LogOperation[N, M, A], 0, len(head)+1+len(rebuiltTail))
	newLog = append(newLog, head...)
	if applied {
		newLog = append(newLog, newLop)
	}
	newLog = append(newLog, rebuiltTail...)
	s.log = newLog

	if s.recorder != nil {
		s.recorder.ObserveReplay(len(tail))
	}
	s.logger.Replayed(fmt.Sprint(op.Timestamp), len(tail))
}

// TruncateLogBefore discards the log prefix with timestamp strictly
// less than t. It is a liveness optimization only: after truncation
// the State cannot correctly integrate any later-arriving operation
// timestamped before t. The tree is never touched.
func (s *State[N, M, A]) TruncateLogBefore(t Timestamp[A]) {
	cut := sort.Search(len(s.log), func(i int) bool {
		return !s.log[i].Timestamp.Less(t)
	})
	if cut == 0 {
		return
	}
	s.log = s.log[cut:]
	if s.recorder != nil {
		s.recorder.ObserveTruncate(cut)
	}
	s.logger.Truncated(fmt.Sprint(t), cut)
}

// indexOfTimestamp returns the log index whose timestamp equals ts, or
// -1. The log is ascending, so this is a binary search.
func (s *State[N, M, A]) indexOfTimestamp(ts Timestamp[A]) int {
	i := sort.Search(len(s.log), func(i int) bool {
		return !s.log[i].Timestamp.Less(ts)
	})
	if i < len(s.log) && s.log[i].Timestamp.Equal(ts) {
		return i
	}
	return -1
}

// undo inverts a single log entry against the tree: restore the old
// parent/metadata, or remove the node entirely if it didn't exist
// before the operation it recorded.
func (s *State[N, M, A]) undo(l LogOperation[N, M, A]) {
	if l.HadOldParent {
		s.tree.upsert(l.Child, l.OldParent, l.OldMetadata)
	} else {
		s.tree.remove(l.Child)
	}
}

// doOp applies one operation to the tree and returns the LogOperation
// that records it, or false if the operation was discarded.
//
// Discard rules, checked against the tree's current pre-state:
//   - child == parent: self-parent is ill-formed.
//   - parent is already a descendant of child: would create a cycle.
//
// Both checks are pure functions of the pre-state, so every replica
// that reaches the same pre-state (guaranteed by the undo/redo replay
// around this call) makes the same discard decision.
func (s *State[N, M, A]) doOp(op Operation[N, M, A]) (LogOperation[N, M, A], bool) {
	if op.Child == op.Parent {
		s.discard(op, "self-parent")
		return LogOperation[N, M, A]{}, false
	}
	if s.tree.IsAncestor(op.Child, op.Parent) {
		s.discard(op, "cycle")
		return LogOperation[N, M, A]{}, false
	}

	oldParent, hadOldParent := s.tree.GetParent(op.Child)
	oldMetadata, _ := s.tree.GetMetadata(op.Child)

	s.tree.upsert(op.Child, op.Parent, op.Metadata)

	if s.recorder != nil {
		s.recorder.ObserveApplied()
	}
	s.logger.Applied(fmt.Sprint(op.Timestamp), fmt.Sprint(op.Child))

	return LogOperation[N, M, A]{
		Timestamp:    op.Timestamp,
		Child:        op.Child,
		OldParent:    oldParent,
		OldMetadata:  oldMetadata,
		HadOldParent: hadOldParent,
		NewParent:    op.Parent,
		NewMetadata:  op.Metadata,
	}, true
}

func (s *State[N, M, A]) discard(op Operation[N, M, A], reason string) {
	if s.recorder != nil {
		s.recorder.ObserveDiscarded(reason)
	}
	s.logger.Discarded(fmt.Sprint(op.Timestamp), fmt.Sprint(op.Child), reason)
}

// Snapshot returns a deep copy of the current tree and log, for
// callers doing point-in-time persistence. It defines no wire format;
// round-trip equality of the returned values is the only contract.
func (s *State[N, M, A]) Snapshot() (*Tree[N, M], []LogOperation[N, M, A]) {
	treeCopy := NewTree[N, M]()
	for child, e := range s.tree.nodes {
		treeCopy.upsert(child, e.parent, e.metadata)
	}
	return treeCopy, s.Log()
}
