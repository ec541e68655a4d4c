// Package metrics attaches optional Prometheus instrumentation to a
// movetree Replica. Nothing here is consulted by the move-tree
// algorithm; a Replica built without a Recorder behaves identically.
//
// Each Recorder keeps an auxcrdt.OperationBalance so that the
// applied/discarded counts it exports are themselves mergeable across
// replicas: an operator collecting metrics from several replicas can
// fold their balances together and get an accurate system-wide total
// without double-counting, the same convergence guarantee the core
// tree gives the data itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cshekharsharma/movetree/auxcrdt"
)

// Recorder records move-tree activity for one replica and exposes it
// through Prometheus collectors.
type Recorder struct {
	actorID string
	balance *auxcrdt.OperationBalance

	appliedTotal    prometheus.Counter
	discardedTotal  *prometheus.CounterVec
	duplicateTotal  prometheus.Counter
	replayTailSize  prometheus.Histogram
	truncatedTotal  prometheus.Counter
}

// NewRecorder builds a Recorder for the given actor id. Register it
// with a prometheus.Registerer to export its collectors.
func NewRecorder(actorID string) *Recorder {
	return &Recorder{
		actorID: actorID,
		balance: auxcrdt.NewOperationBalance(actorID),
		appliedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "movetree",
			Name:        "operations_applied_total",
			Help:        "Move operations integrated into the tree.",
			ConstLabels: prometheus.Labels{"actor": actorID},
		}),
		discardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "movetree",
			Name:        "operations_discarded_total",
			Help:        "Move operations discarded by do_op, by reason.",
			ConstLabels: prometheus.Labels{"actor": actorID},
		}, []string{"reason"}),
		duplicateTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "movetree",
			Name:        "operations_duplicate_total",
			Help:        "Operations ignored because their timestamp was already in the log.",
			ConstLabels: prometheus.Labels{"actor": actorID},
		}),
		replayTailSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "movetree",
			Name:        "undo_redo_tail_length",
			Help:        "Number of log entries undone and redone per integration.",
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
			ConstLabels: prometheus.Labels{"actor": actorID},
		}),
		truncatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "movetree",
			Name:        "log_truncated_entries_total",
			Help:        "Log entries dropped by truncate_log_before.",
			ConstLabels: prometheus.Labels{"actor": actorID},
		}),
	}
}

// Collectors returns every Prometheus collector this Recorder owns, for
// bulk registration: registry.MustRegister(recorder.Collectors()...).
func (r *Recorder) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.appliedTotal,
		r.discardedTotal,
		r.duplicateTotal,
		r.replayTailSize,
		r.truncatedTotal,
	}
}

// ObserveApplied records one operation landing in the tree.
func (r *Recorder) ObserveApplied() {
	r.appliedTotal.Inc()
	r.balance.RecordApplied(1)
}

// ObserveDiscarded records one operation rejected for the given reason
// ("self-parent" or "cycle").
func (r *Recorder) ObserveDiscarded(reason string) {
	r.discardedTotal.WithLabelValues(reason).Inc()
	r.balance.RecordDiscarded(1)
}

// ObserveDuplicate records one operation ignored as already-seen.
func (r *Recorder) ObserveDuplicate() {
	r.duplicateTotal.Inc()
}

// ObserveReplay records the size of an undo/redo tail.
func (r *Recorder) ObserveReplay(tailLen int) {
	r.replayTailSize.Observe(float64(tailLen))
}

// ObserveTruncate records a truncation removing n entries.
func (r *Recorder) ObserveTruncate(n int) {
	if n <= 0 {
		return
	}
	r.truncatedTotal.Add(float64(n))
}

// Balance returns the mergeable applied/discarded accounting CRDT
// backing this recorder, for operators folding several replicas'
// activity together before exporting a system-wide view.
func (r *Recorder) Balance() *auxcrdt.OperationBalance {
	return r.balance
}
