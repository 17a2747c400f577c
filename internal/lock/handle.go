// Package lock implements advisory lease locks over sidecar lock files.
//
// A Handle is this process's interest in one lock file. Handles in different
// processes (or two handles in the same process) compete only through the
// file; there is no shared in-process state between them.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/fslease-project/fslease/internal/lockfile"
	"github.com/fslease-project/fslease/pkg/logging"
	"github.com/fslease-project/fslease/pkg/metrics"
	"github.com/fslease-project/fslease/pkg/pathutil"
	"github.com/fslease-project/fslease/pkg/ticks"
	"github.com/fslease-project/fslease/pkg/uuidutil"
)

const (
	// MinGranularity is the minimum permitted retry interval and timeout for
	// timed acquisition. Shorter intervals degrade into busy-waiting below
	// the timer resolution of commodity platforms.
	MinGranularity = 15 * time.Millisecond

	// refreshFactor leaves slack so one missed refresh cycle does not let
	// the lock lapse.
	refreshFactor = 0.9
)

// Handle is a process-local lease lock bound to one lock-file path.
// Public operations on a single Handle are serialized by the caller;
// background tasks it spawns observe its cancellation signal.
type Handle struct {
	id     string
	target string
	rec    *lockfile.Record

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// setRelease is the write path for release instants. Timed handles
	// replace it with a write-through that caches the last written value.
	setRelease func(time.Time) bool
}

// New creates a handle for the given target resource. The lock file lives
// next to the target, with the target's extension replaced by ".lock".
func New(target string) (*Handle, error) {
	if err := pathutil.ValidateTarget(target); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		id:     uuidutil.NewV4(),
		target: target,
		rec:    lockfile.NewRecord(pathutil.LockPath(target)),
		ctx:    ctx,
		cancel: cancel,
	}
	h.setRelease = h.rec.TrySetRelease
	return h, nil
}

// LockPath returns the derived lock-file path.
func (h *Handle) LockPath() string {
	return h.rec.Path()
}

// TryAcquireUntil attempts to acquire the lock without waiting, claiming it
// until the given instant. It succeeds only after a successful write of a
// release instant strictly in the future.
func (h *Handle) TryAcquireUntil(until time.Time) bool {
	metrics.Default().RecordAttempt()
	now := time.Now().UTC()
	if !until.After(now) {
		return false
	}
	if h.rec.Exists() {
		if release := h.rec.Release(); release.After(now) {
			metrics.Default().RecordConflict()
			logging.Debug("acquire conflict", map[string]any{
				"handle": h.id, "path": h.rec.Path(), "release": release,
			})
			return false
		}
	}
	if !h.setRelease(until) {
		return false
	}
	metrics.Default().RecordSuccess()
	logging.Debug("lock acquired", map[string]any{
		"handle": h.id, "path": h.rec.Path(), "release": until,
	})
	return true
}

// TryAcquireFor attempts to acquire the lock without waiting, claiming it
// for the given duration from now. With refresh set, a background task keeps
// extending the claim until the handle is closed.
func (h *Handle) TryAcquireFor(d time.Duration, refresh bool) bool {
	if !h.TryAcquireUntil(time.Now().UTC().Add(d)) {
		return false
	}
	if refresh {
		go h.refreshLoop(d)
	}
	return true
}

// AddTime extends the current release instant by d. Best-effort: failures
// are swallowed, and a missing lock file is left alone.
func (h *Handle) AddTime(d time.Duration) {
	release := h.rec.Release()
	if release.Equal(ticks.FarFuture) {
		return
	}
	h.setRelease(release.Add(d))
}

// ReleaseDate returns the on-disk release instant, or the far-future
// sentinel when no lock file exists.
func (h *Handle) ReleaseDate() time.Time {
	return h.rec.Release()
}

// Close fires the handle's cancellation signal and deletes the lock file if
// it still exists. Idempotent; never fails.
func (h *Handle) Close() {
	h.closeOnce.Do(func() {
		h.cancel()
		if err := h.rec.Remove(); err != nil {
			logging.Debug("lock file delete failed", map[string]any{
				"handle": h.id, "path": h.rec.Path(), "error": err.Error(),
			})
		}
	})
}

// refreshLoop extends the release by refreshFactor*d, then sleeps the same
// interval, until the handle's cancellation signal fires.
func (h *Handle) refreshLoop(d time.Duration) {
	interval := time.Duration(float64(d) * refreshFactor)
	logging.Debug("refresh loop started", map[string]any{
		"handle": h.id, "path": h.rec.Path(), "interval": interval.String(),
	})
	for {
		select {
		case <-h.ctx.Done():
			return
		default:
		}
		h.AddTime(interval)
		metrics.Default().RecordRefresh()

		select {
		case <-h.ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
