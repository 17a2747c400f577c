package fslease

import (
	"time"

	"github.com/fslease-project/fslease/internal/lock"
	"github.com/fslease-project/fslease/pkg/ticks"
)

// MinGranularity is the minimum permitted timeout and retry interval for
// timed acquisition.
const MinGranularity = lock.MinGranularity

// FarFuture is the sentinel ReleaseDate returns when no lock file exists.
var FarFuture = ticks.FarFuture

// Lease is an advisory lease lock on one target resource.
type Lease struct {
	h *lock.TimedHandle
}

// New creates a lease handle for the given target path. The lock file is
// derived by replacing the target's extension with ".lock".
func New(target string) (*Lease, error) {
	h, err := lock.NewTimed(target)
	if err != nil {
		return nil, err
	}
	return &Lease{h: h}, nil
}

// LockPath returns the derived lock-file path.
func (l *Lease) LockPath() string {
	return l.h.LockPath()
}

// TryAcquireUntil attempts to acquire the lock without waiting, claiming it
// until the given instant. Contention is reported as false, never as an error.
func (l *Lease) TryAcquireUntil(until time.Time) bool {
	return l.h.TryAcquireUntil(until)
}

// TryAcquireFor attempts to acquire the lock without waiting, claiming it
// for the given duration. With refresh set, a background task keeps
// extending the claim until Close.
func (l *Lease) TryAcquireFor(d time.Duration, refresh bool) bool {
	return l.h.TryAcquireFor(d, refresh)
}

// TryAcquireOrTimeout waits up to timeout for a conflicting lock to be
// released or to expire, then acquires for the lease duration. It returns
// errclass.ErrInvalidArgument when timeout is below MinGranularity.
func (l *Lease) TryAcquireOrTimeout(d, timeout time.Duration) (bool, error) {
	return l.h.TryAcquireOrTimeout(d, timeout)
}

// TryAcquireOrTimeoutRetry is TryAcquireOrTimeout with an explicit polling
// interval between MinGranularity and the timeout.
func (l *Lease) TryAcquireOrTimeoutRetry(d, timeout, retry time.Duration) (bool, error) {
	return l.h.TryAcquireOrTimeoutRetry(d, timeout, retry)
}

// AddTime extends the current claim by d. Best-effort; failures are swallowed.
func (l *Lease) AddTime(d time.Duration) {
	l.h.AddTime(d)
}

// ReleaseDate returns the on-disk release instant, or the far-future
// sentinel when no lock file exists.
func (l *Lease) ReleaseDate() time.Time {
	return l.h.ReleaseDate()
}

// Close releases the handle: it fires the cancellation signal for any
// background tasks and deletes the lock file if this handle still owns it.
// Idempotent; never fails.
func (l *Lease) Close() {
	l.h.Close()
}
