// Package movetree implements the replicated move operation for trees
// described by Kleppmann et al., "A highly-available move operation for
// replicated trees and distributed filesystems".
//
// A Replica holds a Clock and a State. Local edits are stamped through
// the Clock into an Operation and handed to the State; remote edits
// arrive as Operations in any order, possibly duplicated, possibly
// delayed, and are integrated by undoing the tail of the local log,
// applying the new operation, and redoing the tail against the new
// pre-state. Any two replicas that have observed the same set of
// operations converge on byte-identical trees.
//
// The package has no transport, no persistence format, and no notion
// of access control; it is a pure, synchronous, single-threaded-per-
// replica data structure.
package movetree
