package ticks_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslease-project/fslease/pkg/errclass"
	"github.com/fslease-project/fslease/pkg/ticks"
)

func TestUnixEpoch(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	assert.Equal(t, int64(621355968000000000), ticks.FromTime(epoch))
	assert.True(t, ticks.ToTime(621355968000000000).Equal(epoch))
}

func TestRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC),
		time.Date(2024, 6, 1, 12, 30, 45, 123400000, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 12, 31, 23, 59, 59, 999999900, time.UTC),
	}
	for _, want := range instants {
		got := ticks.ToTime(ticks.FromTime(want))
		assert.True(t, got.Equal(want), "round trip of %s gave %s", want, got)
	}
}

func TestRoundTrip_TruncatesSubTick(t *testing.T) {
	// 150ns is below the tick resolution; the odd 50ns must be dropped.
	in := time.Date(2024, 6, 1, 0, 0, 0, 150, time.UTC)
	got := ticks.ToTime(ticks.FromTime(in))
	assert.Equal(t, 100, got.Nanosecond())
}

func TestSentinels(t *testing.T) {
	assert.Equal(t, int64(0), ticks.FromTime(ticks.FarPast))
	assert.Equal(t, int64(math.MaxInt64), ticks.FromTime(ticks.FarFuture))
	assert.True(t, ticks.FarFuture.After(time.Now().Add(1000*24*time.Hour)))
}

func TestFromTime_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, int64(0), ticks.FromTime(time.Date(-5000, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(math.MaxInt64), ticks.FromTime(time.Date(30000, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestToTime_ClampsNegative(t *testing.T) {
	assert.True(t, ticks.ToTime(-1).Equal(ticks.FarPast))
}

func TestParse(t *testing.T) {
	n, err := ticks.Parse("638500000000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(638500000000000000), n)
}

func TestParse_TrimsWhitespace(t *testing.T) {
	n, err := ticks.Parse(" 42\n")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestParse_Corrupt(t *testing.T) {
	for _, in := range []string{"", "not-a-number", "12.5", "99999999999999999999999999"} {
		_, err := ticks.Parse(in)
		require.ErrorIs(t, err, errclass.ErrRecordCorrupt, "input %q", in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "638500000000000000", ticks.Format(638500000000000000))
	assert.Equal(t, "0", ticks.Format(0))
}
