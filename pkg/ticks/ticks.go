// Package ticks converts between time.Time and 100-nanosecond tick counts
// measured from 0001-01-01 00:00:00 UTC. This is the on-disk representation
// used by lock files, kept byte-compatible with files written by .NET's
// DateTime.Ticks.
package ticks

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fslease-project/fslease/pkg/errclass"
)

const (
	// NanosPerTick is the duration of one tick.
	NanosPerTick = 100

	// TicksPerSecond is the number of ticks in one second.
	TicksPerSecond = int64(time.Second) / NanosPerTick

	// unixEpochTicks is the tick count at 1970-01-01 00:00:00 UTC.
	unixEpochTicks = 621355968000000000
)

// FarPast is the minimum representable instant (tick zero,
// 0001-01-01 00:00:00 UTC). Handles use it as the "never acquired" sentinel.
var FarPast = ToTime(0)

// FarFuture is the maximum representable instant. Readers return it when no
// lock file exists.
var FarFuture = ToTime(math.MaxInt64)

// FromTime converts t to a tick count. Instants outside the representable
// range clamp to the nearest sentinel.
func FromTime(t time.Time) int64 {
	sec := t.Unix() + unixEpochTicks/TicksPerSecond
	if sec < 0 {
		return 0
	}
	if sec > math.MaxInt64/TicksPerSecond-1 {
		return math.MaxInt64
	}
	return sec*TicksPerSecond + int64(t.Nanosecond())/NanosPerTick
}

// ToTime converts a tick count to a UTC instant. Negative counts clamp to
// tick zero.
func ToTime(n int64) time.Time {
	if n < 0 {
		n = 0
	}
	sec := n/TicksPerSecond - unixEpochTicks/TicksPerSecond
	rem := n % TicksPerSecond
	return time.Unix(sec, rem*NanosPerTick).UTC()
}

// Parse reads a decimal tick count as written to a lock file.
func Parse(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errclass.ErrRecordCorrupt.WithMessagef("not a tick count: %q", s)
	}
	return n, nil
}

// Format renders a tick count the way lock files store it: one decimal
// integer, no trailing newline.
func Format(n int64) string {
	return strconv.FormatInt(n, 10)
}
