package lock

import (
	"context"
	"sync/atomic"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/fslease-project/fslease/pkg/errclass"
	"github.com/fslease-project/fslease/pkg/logging"
	"github.com/fslease-project/fslease/pkg/metrics"
	"github.com/fslease-project/fslease/pkg/ticks"
)

// TimedHandle extends Handle with bounded-wait acquisition and careful
// release. Every release instant it successfully writes is cached, and on
// Close the lock file is deleted only if the on-disk value still matches the
// cache, so a lock re-acquired by another handle is never deleted from under
// its new holder.
type TimedHandle struct {
	*Handle

	// cachedTicks holds the tick count of the last release instant this
	// handle wrote. Zero is the far-past sentinel: never acquired.
	cachedTicks atomic.Int64
}

// NewTimed creates a timed handle for the given target resource.
func NewTimed(target string) (*TimedHandle, error) {
	base, err := New(target)
	if err != nil {
		return nil, err
	}
	t := &TimedHandle{Handle: base}
	base.setRelease = t.writeThrough
	return t, nil
}

// TryAcquireOrTimeout waits up to timeout for a conflicting lock to be
// released or to expire, then acquires for the lease duration. The retry
// interval defaults to the timeout, which disables early polling.
func (t *TimedHandle) TryAcquireOrTimeout(lease, timeout time.Duration) (bool, error) {
	return t.TryAcquireOrTimeoutRetry(lease, timeout, timeout)
}

// TryAcquireOrTimeoutRetry is TryAcquireOrTimeout with an explicit polling
// interval. Constraints: timeout >= MinGranularity and
// MinGranularity <= retry <= timeout; violations fail with
// errclass.ErrInvalidArgument.
func (t *TimedHandle) TryAcquireOrTimeoutRetry(lease, timeout, retry time.Duration) (bool, error) {
	if timeout < MinGranularity {
		return false, errclass.ErrInvalidArgument.WithMessagef(
			"timeout %v is below the minimum granularity %v", timeout, MinGranularity)
	}
	if retry < MinGranularity || retry > timeout {
		return false, errclass.ErrInvalidArgument.WithMessagef(
			"retry %v must be between %v and the timeout %v", retry, MinGranularity, timeout)
	}

	// Fast path: no lock file, acquire immediately.
	if !t.rec.Exists() {
		return t.TryAcquireFor(lease, false), nil
	}

	metrics.Default().RecordTimedWait()
	now := time.Now().UTC()
	deadline := now.Add(timeout)
	release := t.rec.Release()
	if release.After(deadline) {
		// The conflicting lock outlives our deadline.
		logging.Debug("timed acquire aborted, holder outlives deadline", map[string]any{
			"handle": t.id, "path": t.rec.Path(), "release": release, "deadline": deadline,
		})
		return false, nil
	}

	raceCtx, cancel := context.WithDeadline(t.ctx, deadline)
	defer cancel()

	results := make(chan raceResult, 2)
	go func() { results <- t.waitTillRelease(raceCtx, release, lease) }()
	go func() { results <- t.retryBeforeRelease(raceCtx, release, retry, lease) }()

	// Await both racers after cancelling the siblings so an unexpected
	// failure is propagated exactly once instead of being swallowed.
	acquired := false
	var firstErr error
	for i := 0; i < 2; i++ {
		res := <-results
		if res.acquired && !acquired {
			acquired = true
			cancel()
		}
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			cancel()
		}
	}
	if acquired {
		return true, nil
	}
	return false, firstErr
}

// Close fires the cancellation signal, then deletes the lock file only when
// this handle's last written release instant still matches the on-disk
// value. Idempotent; never fails.
func (t *TimedHandle) Close() {
	t.closeOnce.Do(func() {
		t.cancel()
		cached := t.cachedTicks.Load()
		if cached == 0 {
			// Never acquired through this handle.
			return
		}
		if !t.rec.Exists() {
			return
		}
		if ticks.FromTime(t.rec.Release()) != cached {
			// Another handle has re-acquired; leave its lock alone.
			return
		}
		if err := t.rec.Remove(); err != nil {
			logging.Debug("lock file delete failed", map[string]any{
				"handle": t.id, "path": t.rec.Path(), "error": err.Error(),
			})
		}
	})
}

// writeThrough persists the release instant and caches it on success.
func (t *TimedHandle) writeThrough(instant time.Time) bool {
	if !t.rec.TrySetRelease(instant) {
		return false
	}
	t.cachedTicks.Store(ticks.FromTime(instant))
	return true
}

type raceResult struct {
	acquired bool
	err      error
}

// waitTillRelease sleeps until the observed release instant, then polls at
// the minimum granularity until the race deadline.
func (t *TimedHandle) waitTillRelease(ctx context.Context, release time.Time, lease time.Duration) raceResult {
	if delay := millisecondCeil(time.Until(release)); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return raceResult{}
		case <-timer.C:
		}
	}
	return t.pollAcquire(ctx, MinGranularity, lease)
}

// retryBeforeRelease polls every retry interval until the observed release
// instant, then keeps polling at the minimum granularity until the race
// deadline. This catches holders that release before their stated instant.
func (t *TimedHandle) retryBeforeRelease(ctx context.Context, release time.Time, retry, lease time.Duration) raceResult {
	if time.Now().Before(release) {
		relCtx, cancel := context.WithDeadline(ctx, release)
		res := t.pollAcquire(relCtx, retry, lease)
		cancel()
		if res.acquired || res.err != nil {
			return res
		}
		if ctx.Err() != nil {
			return raceResult{}
		}
	}
	return t.pollAcquire(ctx, MinGranularity, lease)
}

// pollAcquire attempts an immediate acquire, then retries at the given
// interval until the context is done.
func (t *TimedHandle) pollAcquire(ctx context.Context, interval, lease time.Duration) raceResult {
	err := wait.PollUntilContextCancel(ctx, interval, true, func(context.Context) (bool, error) {
		return t.TryAcquireFor(lease, false), nil
	})
	if err == nil {
		return raceResult{acquired: true}
	}
	if wait.Interrupted(err) {
		return raceResult{}
	}
	return raceResult{err: errclass.ErrInternal.WithMessagef("acquire poll: %v", err)}
}

// millisecondCeil rounds a delay up to whole milliseconds, never negative.
func millisecondCeil(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	ms := (d + time.Millisecond - 1) / time.Millisecond
	return ms * time.Millisecond
}
