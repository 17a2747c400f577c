// Package lockfile is the sole component that touches the on-disk lock file.
//
// A lock file holds one line: the decimal 100-nanosecond tick count of the
// instant at which the lock is released. Presence of the file means "a lock
// may be held"; the instant compared to now decides whether it is live.
package lockfile

import (
	"os"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"

	"github.com/fslease-project/fslease/pkg/logging"
	"github.com/fslease-project/fslease/pkg/ticks"
)

// readBackoff bounds the re-reads attempted when a lock file is readable but
// momentarily torn by a concurrent writer.
var readBackoff = wait.Backoff{
	Steps:    3,
	Duration: 2 * time.Millisecond,
	Factor:   2.0,
	Jitter:   0.1,
}

// Record reads and writes the release instant of one lock file.
type Record struct {
	path string
}

// NewRecord binds a record to a lock-file path.
func NewRecord(path string) *Record {
	return &Record{path: path}
}

// Path returns the lock-file path this record is bound to.
func (r *Record) Path() string {
	return r.path
}

// Exists reports whether the lock file is currently present.
func (r *Record) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Release returns the release instant stored in the lock file. A missing
// file maps to the far-future sentinel. An unreadable file or unparseable
// content maps to the far-past sentinel after a bounded re-read, so a torn
// concurrent write is never misinterpreted as a live lock and the next
// successful write restores canonical state.
func (r *Record) Release() time.Time {
	var n int64
	err := retry.OnError(readBackoff, transientRead, func() error {
		data, err := os.ReadFile(r.path)
		if err != nil {
			return err
		}
		n, err = ticks.Parse(string(data))
		return err
	})
	if err != nil {
		if os.IsNotExist(err) {
			return ticks.FarFuture
		}
		logging.Debug("lock file unreadable, treating as released",
			map[string]any{"path": r.path, "error": err.Error()})
		return ticks.FarPast
	}
	return ticks.ToTime(n)
}

// TrySetRelease writes the release instant, creating or truncating the lock
// file. It reports false on any I/O failure; callers must not consider the
// lock acquired in that case.
func (r *Record) TrySetRelease(t time.Time) bool {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		logging.Debug("lock file open for write failed",
			map[string]any{"path": r.path, "error": err.Error()})
		return false
	}
	_, werr := f.WriteString(ticks.Format(ticks.FromTime(t)))
	cerr := f.Close()
	if werr != nil || cerr != nil {
		return false
	}
	return true
}

// Remove deletes the lock file. Absence is not an error.
func (r *Record) Remove() error {
	err := os.Remove(r.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// transientRead reports whether a read failure is worth retrying. Missing
// files are terminal (mapped to the sentinel by the caller); everything else
// may be a torn concurrent write.
func transientRead(err error) bool {
	return !os.IsNotExist(err)
}
