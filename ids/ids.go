// Package ids provides ready-to-use identifier types satisfying the
// constraints movetree's generic core requires, so a caller who
// doesn't want to design their own NodeId/ActorId scheme can reach for
// a UUID-backed one instead. This mirrors the id schemes used
// throughout the corpus's other tree/CRDT implementations (causal
// trees, collaboration state CRDTs), which lean on google/uuid for
// exactly this purpose.
package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// ActorID is a UUID-backed implementation of movetree.OrderedID,
// suitable as the ActorId type parameter. Comparing by string form of
// the UUID gives a stable, if arbitrary, total order, all the
// timestamp tie-break needs.
type ActorID struct {
	id uuid.UUID
}

// NewActorID generates a fresh, random ActorID. Two calls never
// collide in practice, which is all the total-order requirement needs:
// distinctness, not any particular meaning to the ordering.
func NewActorID() ActorID {
	return ActorID{id: uuid.New()}
}

// ParseActorID parses a UUID string into an ActorID.
func ParseActorID(s string) (ActorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ActorID{}, fmt.Errorf("parsing actor id %q: %w", s, err)
	}
	return ActorID{id: id}, nil
}

// Less implements movetree.OrderedID.
func (a ActorID) Less(other ActorID) bool {
	return a.id.String() < other.id.String()
}

// String returns the canonical UUID form.
func (a ActorID) String() string {
	return a.id.String()
}

// NodeID is a UUID-backed NodeId. It only needs to be comparable, but
// total order is provided too so callers that want deterministic
// iteration (e.g. rendering a sorted child list) can get it without
// writing their own comparator.
type NodeID struct {
	id uuid.UUID
}

// NewNodeID generates a fresh, random NodeID.
func NewNodeID() NodeID {
	return NodeID{id: uuid.New()}
}

// ParseNodeID parses a UUID string into a NodeID.
func ParseNodeID(s string) (NodeID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NodeID{}, fmt.Errorf("parsing node id %q: %w", s, err)
	}
	return NodeID{id: id}, nil
}

// Less gives NodeID a total order over its string form.
func (n NodeID) Less(other NodeID) bool {
	return n.id.String() < other.id.String()
}

// String returns the canonical UUID form.
func (n NodeID) String() string {
	return n.id.String()
}

// Root and Trash are well-known sentinel node ids every movetree user
// needs at least one of: Root as the implicit top of the forest (never
// itself a key in the tree), and Trash as a ready-made destination for
// modeling deletion. The core has no explicit delete operation; a
// caller removes a node from its visible tree by moving it under
// Trash, and Trash saves them from having to invent and agree on a
// node id for that purpose themselves.
var (
	Root  = NodeID{id: uuid.Nil}
	Trash = NodeID{id: uuid.Must(uuid.Parse("00000000-0000-0000-0000-000000000001"))}
)
