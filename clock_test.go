package movetree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cshekharsharma/movetree"
	"github.com/cshekharsharma/movetree/ids"
)

func TestClock_TickIncrementsAndIsStrictlyIncreasing(t *testing.T) {
	actor := ids.NewActorID()
	clock := movetree.NewClock[ids.ActorID](actor)

	first := clock.Tick()
	second := clock.Tick()

	assert.Equal(t, uint64(1), first.Counter)
	assert.Equal(t, uint64(2), second.Counter)
	assert.True(t, first.Less(second))
}

func TestClock_MergeDoesNotIncrement(t *testing.T) {
	actor := ids.NewActorID()
	clock := movetree.NewClock[ids.ActorID](actor)

	remote := movetree.Timestamp[ids.ActorID]{Counter: 10, Actor: ids.NewActorID()}
	clock.Merge(remote)

	assert.Equal(t, uint64(10), clock.Observed())

	next := clock.Tick()
	assert.Equal(t, uint64(11), next.Counter)
}

func TestClock_MergeNeverLowersCounter(t *testing.T) {
	actor := ids.NewActorID()
	clock := movetree.NewClock[ids.ActorID](actor)
	clock.Tick()
	clock.Tick()
	clock.Tick()

	clock.Merge(movetree.Timestamp[ids.ActorID]{Counter: 1, Actor: ids.NewActorID()})
	assert.Equal(t, uint64(3), clock.Observed())
}

func TestTimestamp_TotalOrderTieBreaksOnActor(t *testing.T) {
	a1 := ids.NewActorID()
	a2 := ids.NewActorID()
	if a2.Less(a1) {
		a1, a2 = a2, a1
	}

	ts1 := movetree.Timestamp[ids.ActorID]{Counter: 5, Actor: a1}
	ts2 := movetree.Timestamp[ids.ActorID]{Counter: 5, Actor: a2}

	assert.True(t, ts1.Less(ts2))
	assert.False(t, ts2.Less(ts1))
}
