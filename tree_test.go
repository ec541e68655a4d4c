package movetree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cshekharsharma/movetree"
	"github.com/cshekharsharma/movetree/ids"
)

func newIntStringReplica(t *testing.T) *movetree.Replica[int, string, ids.ActorID] {
	t.Helper()
	return movetree.NewReplica[int, string, ids.ActorID](ids.NewActorID())
}

func TestTree_IsAncestor_WalksToRoot(t *testing.T) {
	r := newIntStringReplica(t)
	r.ApplyOpLocal(r.Opmove(10, 0, "a"))
	r.ApplyOpLocal(r.Opmove(20, 10, "b"))
	r.ApplyOpLocal(r.Opmove(30, 20, "c"))

	tree := r.State().Tree()
	assert.True(t, tree.IsAncestor(10, 30))
	assert.True(t, tree.IsAncestor(20, 30))
	assert.False(t, tree.IsAncestor(30, 10))
	assert.False(t, tree.IsAncestor(99, 30))
}

func TestTree_ChildrenReflectsIndex(t *testing.T) {
	r := newIntStringReplica(t)
	r.ApplyOpLocal(r.Opmove(1, 0, "a"))
	r.ApplyOpLocal(r.Opmove(2, 0, "b"))
	r.ApplyOpLocal(r.Opmove(3, 1, "c"))

	tree := r.State().Tree()
	children := tree.Children(0)
	assert.ElementsMatch(t, []int{1, 2}, children)
	assert.ElementsMatch(t, []int{3}, tree.Children(1))
	assert.Empty(t, tree.Children(2))
}

func TestTree_MovingAChildUpdatesBothParentsChildren(t *testing.T) {
	r := newIntStringReplica(t)
	r.ApplyOpLocal(r.Opmove(1, 0, "a"))
	r.ApplyOpLocal(r.Opmove(2, 0, "b"))

	r.ApplyOpLocal(r.Opmove(1, 2, "a"))

	tree := r.State().Tree()
	assert.ElementsMatch(t, []int{2}, tree.Children(0))
	assert.ElementsMatch(t, []int{1}, tree.Children(2))
	parent, ok := tree.GetParent(1)
	assert.True(t, ok)
	assert.Equal(t, 2, parent)
}

func TestTree_WalkVisitsDescendantsPreOrder(t *testing.T) {
	r := newIntStringReplica(t)
	r.ApplyOpLocal(r.Opmove(1, 0, "a"))
	r.ApplyOpLocal(r.Opmove(2, 1, "b"))
	r.ApplyOpLocal(r.Opmove(3, 1, "c"))

	var visited []int
	r.State().Tree().Walk(0, func(node, parent int, metadata string) {
		visited = append(visited, node)
	})

	assert.Len(t, visited, 3)
	assert.Equal(t, 1, visited[0], "parent 1 must be visited before its children 2 and 3")
	assert.Contains(t, visited, 1)
	assert.Contains(t, visited, 2)
	assert.Contains(t, visited, 3)
}
