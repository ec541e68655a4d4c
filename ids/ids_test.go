package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorID_ParseRoundTrip(t *testing.T) {
	original := NewActorID()
	parsed, err := ParseActorID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestActorID_ParseInvalid(t *testing.T) {
	_, err := ParseActorID("not-a-uuid")
	require.Error(t, err)
}

func TestNodeID_DistinctAndOrdered(t *testing.T) {
	a := NewNodeID()
	b := NewNodeID()
	assert.NotEqual(t, a, b)
	// exactly one direction of Less should hold for distinct ids.
	assert.True(t, a.Less(b) != b.Less(a))
}

func TestSentinels_AreStable(t *testing.T) {
	assert.Equal(t, Root, Root)
	assert.NotEqual(t, Root, Trash)
}
