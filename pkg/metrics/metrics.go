// Package metrics counts lock operations in-process. Counters are exposed
// through `fslease status --json`; the doctor report does not include them.
package metrics

import "sync/atomic"

// Registry holds all fslease counters.
type Registry struct {
	attempts   atomic.Int64
	successes  atomic.Int64
	conflicts  atomic.Int64
	timedWaits atomic.Int64
	refreshes  atomic.Int64
}

// NewRegistry creates an empty metrics registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// RecordAttempt counts one immediate acquire attempt.
func (r *Registry) RecordAttempt() { r.attempts.Add(1) }

// RecordSuccess counts one successful acquisition.
func (r *Registry) RecordSuccess() { r.successes.Add(1) }

// RecordConflict counts one acquire attempt rejected by a live lock.
func (r *Registry) RecordConflict() { r.conflicts.Add(1) }

// RecordTimedWait counts one bounded-wait acquisition that found a lock file
// present, including one that gives up at once because the holder outlives
// the deadline. The no-file fast path is not counted.
func (r *Registry) RecordTimedWait() { r.timedWaits.Add(1) }

// RecordRefresh counts one background lease extension.
func (r *Registry) RecordRefresh() { r.refreshes.Add(1) }

// Snapshot returns the current counter values.
func (r *Registry) Snapshot() map[string]int64 {
	return map[string]int64{
		"acquire_attempts":  r.attempts.Load(),
		"acquire_successes": r.successes.Load(),
		"acquire_conflicts": r.conflicts.Load(),
		"timed_waits":       r.timedWaits.Load(),
		"refreshes":         r.refreshes.Load(),
	}
}
