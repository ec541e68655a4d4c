// Package auxcrdt provides small state-based CRDTs (CvRDTs) used to
// account for move-tree activity across replicas, independent of the
// operation-based move-tree core in the parent package. Where the core
// converges by replaying a total-ordered log of operations, these
// types converge by merging summaries: each metrics.Recorder keeps
// one, exposed through its Balance method. The metrics package does
// not merge balances across replicas itself; a caller folds them
// together with Merge.
package auxcrdt

// CRDT is the interface shared by the convergent accounting types in
// this package.
//
// Implementations must ensure that merging is:
//
//  1. Commutative: A.Merge(B) results in the same state as B.Merge(A).
//  2. Associative: (A.Merge(B)).Merge(C) == A.Merge(B.Merge(C)).
//  3. Idempotent: merging the same state twice has no effect beyond
//     the first merge.
type CRDT interface {
	// Value returns the current consolidated state.
	Value() any
}
