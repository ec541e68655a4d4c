// Package sim drives a handful of in-process movetree replicas for the
// treedemo CLI: it stamps moves locally, buffers them per replica, and
// lets the caller decide when (and in what order) each replica's
// pending operations reach the others, so the TUI and the replay
// subcommand can both demonstrate convergence under reordering.
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cshekharsharma/movetree"
	"github.com/cshekharsharma/movetree/ids"
	"github.com/cshekharsharma/movetree/metrics"
	"github.com/cshekharsharma/movetree/telemetry"
)

// Op is a recorded move, in the shape treedemo reads from a replay file.
type Op struct {
	Actor  string `yaml:"actor" json:"actor"`
	Child  string `yaml:"child" json:"child"`
	Parent string `yaml:"parent" json:"parent"`
	Label  string `yaml:"label" json:"label"`
}

// Root is the well-known node every simulated tree hangs from.
const Root = "root"

// Replica bundles a movetree replica with the outbox of operations it
// has stamped locally but not yet broadcast to its peers.
type Replica struct {
	Name    string
	Core    *movetree.Replica[string, string, ids.ActorID]
	Metrics *metrics.Recorder
	outbox  []movetree.Operation[string, string, ids.ActorID]
}

// Move stamps a local move and queues it for delivery.
func (r *Replica) Move(child, parent, label string) movetree.Operation[string, string, ids.ActorID] {
	op := r.Core.Opmove(child, parent, label)
	r.Core.ApplyOpLocal(op)
	r.outbox = append(r.outbox, op)
	return op
}

// Drain empties and returns the replica's outbox.
func (r *Replica) Drain() []movetree.Operation[string, string, ids.ActorID] {
	pending := r.outbox
	r.outbox = nil
	return pending
}

// Pending reports how many locally stamped operations are waiting to
// be broadcast, without draining the outbox.
func (r *Replica) Pending() int {
	return len(r.outbox)
}

// Simulation is a fixed set of named replicas sharing a move-tree.
type Simulation struct {
	names    []string
	replicas map[string]*Replica
	log      *logrus.Logger
}

// New builds a Simulation with the given replica names, each seeded
// with its own actor id and metrics recorder, logging through log
// (nil is accepted and becomes a discard logger).
func New(names []string, log *logrus.Logger) *Simulation {
	s := &Simulation{
		names:    append([]string{}, names...),
		replicas: make(map[string]*Replica, len(names)),
		log:      log,
	}
	for _, name := range names {
		actor := ids.NewActorID()
		recorder := metrics.NewRecorder(actor.String())
		core := movetree.NewReplica[string, string, ids.ActorID](actor)
		core.State().WithLogger(telemetry.New(log)).WithMetrics(recorder)
		s.replicas[name] = &Replica{Name: name, Core: core, Metrics: recorder}
	}
	return s
}

// Names returns the replica names in a stable order.
func (s *Simulation) Names() []string {
	out := append([]string{}, s.names...)
	sort.Strings(out)
	return out
}

// Replica looks up a named replica.
func (s *Simulation) Replica(name string) (*Replica, bool) {
	r, ok := s.replicas[name]
	return r, ok
}

// Broadcast drains every replica's outbox and delivers each operation
// to every replica (the author ignores its own as a duplicate). The
// outboxes are taken in the order the replicas were passed to New, and
// each outbox in the order its replica stamped the operations.
func (s *Simulation) Broadcast() {
	var all []movetree.Operation[string, string, ids.ActorID]
	for _, name := range s.names {
		all = append(all, s.replicas[name].Drain()...)
	}
	for _, name := range s.names {
		r := s.replicas[name]
		for _, op := range all {
			r.Core.ApplyOp(op)
		}
	}
}

// Converged reports whether every replica's tree is identical.
func (s *Simulation) Converged() bool {
	if len(s.names) == 0 {
		return true
	}
	first := s.replicas[s.names[0]].Core.State().Tree()
	for _, name := range s.names[1:] {
		if !first.Equal(s.replicas[name].Core.State().Tree()) {
			return false
		}
	}
	return true
}

// Replay applies a recorded operation set to a fresh Simulation built
// from the distinct actor names it references, delivering each op to
// every replica immediately (as if broadcast one at a time), and
// returns the Simulation; call Converged on it to check agreement.
func Replay(ops []Op, log *logrus.Logger) (*Simulation, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, op := range ops {
		if _, ok := seen[op.Actor]; !ok {
			seen[op.Actor] = struct{}{}
			names = append(names, op.Actor)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("replay: no operations to replay")
	}

	sim := New(names, log)
	for _, op := range ops {
		author, ok := sim.Replica(op.Actor)
		if !ok {
			return nil, fmt.Errorf("replay: unknown actor %q", op.Actor)
		}
		author.Move(op.Child, op.Parent, op.Label)
		sim.Broadcast()
	}
	return sim, nil
}
