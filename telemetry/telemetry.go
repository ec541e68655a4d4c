// Package telemetry wraps logrus so State can emit structured,
// debug-level visibility into the replay engine's decisions without
// ever influencing them. Nothing in this package is consulted by the
// move-tree algorithm; removing the logger entirely changes no
// observable behavior.
package telemetry

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the subset of *logrus.Logger that State depends on. A nil
// *Logger is valid and every method becomes a no-op, so instrumenting a
// Replica is opt-in.
type Logger struct {
	log *logrus.Logger
}

// New wraps an existing logrus logger.
func New(log *logrus.Logger) *Logger {
	return &Logger{log: log}
}

// Discard returns a Logger that drops everything, the default when a
// State is built without WithLogger.
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{log: log}
}

func (l *Logger) entry() *logrus.Entry {
	if l == nil || l.log == nil {
		return logrus.NewEntry(discardLogger)
	}
	return logrus.NewEntry(l.log)
}

var discardLogger = func() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}()

// Applied logs that an operation was integrated into the tree.
func (l *Logger) Applied(timestampStr string, childStr string) {
	l.entry().WithFields(logrus.Fields{
		"event":     "operation_applied",
		"timestamp": timestampStr,
		"child":     childStr,
	}).Debug("move operation applied")
}

// Discarded logs that an operation was rejected by do_op.
func (l *Logger) Discarded(timestampStr, childStr, reason string) {
	l.entry().WithFields(logrus.Fields{
		"event":     "operation_discarded",
		"timestamp": timestampStr,
		"child":     childStr,
		"reason":    reason,
	}).Debug("move operation discarded")
}

// Duplicate logs that an already-seen timestamp was ignored.
func (l *Logger) Duplicate(timestampStr string) {
	l.entry().WithFields(logrus.Fields{
		"event":     "operation_duplicate",
		"timestamp": timestampStr,
	}).Debug("duplicate operation ignored")
}

// Replayed logs the size of the undo/redo tail an integration touched.
func (l *Logger) Replayed(timestampStr string, tailLen int) {
	l.entry().WithFields(logrus.Fields{
		"event":     "tail_replayed",
		"timestamp": timestampStr,
		"tail_len":  tailLen,
	}).Debug("undo/redo tail replayed")
}

// Truncated logs a log truncation boundary.
func (l *Logger) Truncated(beforeStr string, removed int) {
	l.entry().WithFields(logrus.Fields{
		"event":   "log_truncated",
		"before":  beforeStr,
		"removed": removed,
	}).Info("log truncated")
}
