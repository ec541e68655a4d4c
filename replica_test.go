package movetree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cshekharsharma/movetree"
	"github.com/cshekharsharma/movetree/ids"
)

func TestReplica_OpmoveStampsWithoutApplying(t *testing.T) {
	replica := newIntStringReplica(t)

	op := replica.Opmove(1, 0, "a")
	assert.Equal(t, uint64(1), op.Timestamp.Counter)

	_, ok := replica.State().Tree().GetParent(1)
	assert.False(t, ok, "Opmove must not apply the operation")
}

func TestReplica_ApplyOpMergesClockBeforeIntegrating(t *testing.T) {
	replica := newIntStringReplica(t)

	remoteActor := ids.NewActorID()
	remoteOp := movetree.Operation[int, string, ids.ActorID]{
		Timestamp: movetree.Timestamp[ids.ActorID]{Counter: 50, Actor: remoteActor},
		Child:     1, Parent: 0, Metadata: "a",
	}
	replica.ApplyOp(remoteOp)

	assert.Equal(t, uint64(50), replica.Clock().Observed())

	nextLocal := replica.Opmove(2, 0, "b")
	assert.Equal(t, uint64(51), nextLocal.Timestamp.Counter)
}

func TestReplica_ForkIsIndependent(t *testing.T) {
	replica := newIntStringReplica(t)
	replica.ApplyOpLocal(replica.Opmove(1, 0, "a"))

	fork := replica.Fork(ids.NewActorID())
	require.True(t, replica.State().Tree().Equal(fork.State().Tree()))

	fork.ApplyOpLocal(fork.Opmove(2, 1, "b"))

	_, ok := replica.State().Tree().GetParent(2)
	assert.False(t, ok, "mutating the fork must not affect the original")
}

func TestReplica_ApplyOpsAppliesInOrder(t *testing.T) {
	replica := newIntStringReplica(t)
	ops := []movetree.Operation[int, string, ids.ActorID]{
		replica.Opmove(1, 0, "a"),
		replica.Opmove(2, 1, "b"),
	}

	fresh := newIntStringReplica(t)
	fresh.ApplyOps(ops)

	parent, ok := fresh.State().Tree().GetParent(2)
	require.True(t, ok)
	assert.Equal(t, 1, parent)
}
