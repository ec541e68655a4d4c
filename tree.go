package movetree

// entry is the per-node record kept in the primary map: its current
// parent and metadata.
type entry[N comparable, M comparable] struct {
	parent   N
	metadata M
}

// Tree is the mutable in-memory forest: a primary map from node to
// (parent, metadata) plus a secondary index from parent to children,
// maintained in lock-step so Children stays O(1). The root, and any
// other "orphan" parent a caller never upserts as a child, is never a
// key of the primary map; it's simply a value other nodes point at.
//
// Tree exposes no cycle protection of its own; State is responsible
// for calling IsAncestor before every upsert.
type Tree[N comparable, M comparable] struct {
	nodes    map[N]entry[N, M]
	children map[N]map[N]struct{}
}

// NewTree returns an empty Tree.
func NewTree[N comparable, M comparable]() *Tree[N, M] {
	return &Tree[N, M]{
		nodes:    make(map[N]entry[N, M]),
		children: make(map[N]map[N]struct{}),
	}
}

// GetParent returns child's current parent and whether child is known
// to the tree at all.
func (t *Tree[N, M]) GetParent(child N) (N, bool) {
	e, ok := t.nodes[child]
	return e.parent, ok
}

// GetMetadata returns child's current metadata and whether child is
// known to the tree at all.
func (t *Tree[N, M]) GetMetadata(child N) (M, bool) {
	e, ok := t.nodes[child]
	return e.metadata, ok
}

// Children returns the current children of parent. The returned slice
// is a fresh copy; mutating it has no effect on the tree.
func (t *Tree[N, M]) Children(parent N) []N {
	set := t.children[parent]
	if len(set) == 0 {
		return nil
	}
	out := make([]N, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// IsAncestor reports whether candidate lies on descendant's parent
// chain toward the root. It walks via GetParent and terminates in
// O(depth) because the tree is acyclic and single-parent on entry.
// A node is never its own ancestor under this definition unless it
// appears on its own chain, which invariant 2 forbids outside of the
// very call that would introduce the cycle, the check State performs
// before every mutation.
func (t *Tree[N, M]) IsAncestor(candidate, descendant N) bool {
	current := descendant
	for {
		parent, ok := t.GetParent(current)
		if !ok {
			return false
		}
		if parent == candidate {
			return true
		}
		current = parent
	}
}

// Ancestors returns the chain from child up to and including the first
// orphan parent (a parent that is not itself a node of the tree, such
// as the root), nearest ancestor first. It's a read-only helper built
// on the same walk IsAncestor performs.
func (t *Tree[N, M]) Ancestors(child N) []N {
	var out []N
	current := child
	for {
		parent, ok := t.GetParent(current)
		if !ok {
			return out
		}
		out = append(out, parent)
		current = parent
	}
}

// Walk calls fn for every node reachable as a descendant of root,
// including root's direct and indirect children but not root itself.
// Traversal order is unspecified beyond "parents before their
// children" (a pre-order walk), which is all any caller needs for
// rendering a tree.
func (t *Tree[N, M]) Walk(root N, fn func(node N, parent N, metadata M)) {
	for _, child := range t.Children(root) {
		e := t.nodes[child]
		fn(child, e.parent, e.metadata)
		t.Walk(child, fn)
	}
}

// upsert writes or overwrites child's mapping and keeps the children
// index consistent. Invariant (3), child is in children(parent) iff
// parent(child) == parent, is preserved because this is the only
// mutating entry point into the tree. Unexported: mutation is internal
// to State's invariants (State calls IsAncestor before every upsert);
// callers outside this package integrate changes through State.ApplyOp.
func (t *Tree[N, M]) upsert(child, parent N, metadata M) {
	if old, existed := t.nodes[child]; existed {
		t.unindex(old.parent, child)
	}
	t.nodes[child] = entry[N, M]{parent: parent, metadata: metadata}
	t.index(parent, child)
}

// remove deletes child's mapping and index entry. It is idempotent: a
// missing child is a no-op. Unexported for the same reason as upsert.
func (t *Tree[N, M]) remove(child N) {
	old, existed := t.nodes[child]
	if !existed {
		return
	}
	t.unindex(old.parent, child)
	delete(t.nodes, child)
}

func (t *Tree[N, M]) index(parent, child N) {
	set, ok := t.children[parent]
	if !ok {
		set = make(map[N]struct{})
		t.children[parent] = set
	}
	set[child] = struct{}{}
}

func (t *Tree[N, M]) unindex(parent, child N) {
	set, ok := t.children[parent]
	if !ok {
		return
	}
	delete(set, child)
	if len(set) == 0 {
		delete(t.children, parent)
	}
}

// Len returns the number of nodes currently tracked by the tree
// (excluding orphan parents that are never themselves a child).
func (t *Tree[N, M]) Len() int {
	return len(t.nodes)
}

// Equal reports whether two trees hold identical (node -> parent,
// metadata) mappings. Used by tests checking convergence.
func (t *Tree[N, M]) Equal(other *Tree[N, M]) bool {
	if len(t.nodes) != len(other.nodes) {
		return false
	}
	for k, v := range t.nodes {
		ov, ok := other.nodes[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
