package auxcrdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCounter_Convergence(t *testing.T) {
	replicaA := NewGCounter("replica-a")
	replicaB := NewGCounter("replica-b")

	replicaA.Increment(1)
	replicaA.Increment(1)
	replicaB.Increment(1)

	replicaA.Merge(replicaB)
	replicaB.Merge(replicaA)

	assert.Equal(t, 3, replicaA.Value())
	assert.Equal(t, 3, replicaB.Value())

	replicaA.Merge(replicaB)
	assert.Equal(t, 3, replicaA.Value(), "merging twice must be idempotent")
}

func TestGCounter_IncrementByN(t *testing.T) {
	c := NewGCounter("replica-a")
	c.Increment(5)
	c.Increment(2)
	assert.Equal(t, 7, c.Value())
}
