package aggregation

import (
	"testing"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/stretchr/testify/require"
)

func TestParseWindowSize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSize  time.Duration
		wantError bool
	}{
		{name: "minute", input: "1m", wantSize: time.Minute},
		{name: "hour", input: "2h", wantSize: 2 * time.Hour},
		{name: "days suffix", input: "3d", wantSize: 72 * time.Hour},
		{name: "empty invalid", input: "", wantError: true},
		{name: "negative invalid", input: "-1m", wantError: true},
		{name: "zero invalid", input: "0m", wantError: true},
		{name: "bad day format invalid", input: "xd", wantError: true},
		{name: "unknown unit invalid", input: "10x", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ws, err := ParseWindowSize(tc.input)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantSize, ws.Size)
		})
	}
}

func TestBucketFor(t *testing.T) {
	ts := time.Date(2026, 2, 11, 10, 35, 42, 123456789, time.UTC)

	require.Equal(t,
		time.Date(2026, 2, 11, 10, 35, 0, 0, time.UTC),
		BucketFor(ts, time.Minute),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC),
		BucketFor(ts, time.Hour),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		BucketFor(ts, 24*time.Hour),
	)
}

func TestMovingWindow_MatchesFreshAccumulation(t *testing.T) {
	values := []duration.NullDuration{
		duration.Some(duration.Hour),
		duration.Some(2 * duration.Hour),
		{},
		duration.Some(duration.NoEnd),
		duration.Some(4 * duration.Hour),
		duration.Some(5 * duration.Hour),
		duration.Some(6 * duration.Hour),
	}
	const size = 3

	w, err := NewMovingWindow(size)
	require.NoError(t, err)

	for i, v := range values {
		require.NoError(t, w.Push(v))

		var fresh *State
		for _, row := range values[max(0, i-size+1) : i+1] {
			fresh, err = Transition(fresh, row)
			require.NoError(t, err)
		}
		require.Equal(t, *fresh, *w.State(), "row %d", i)
	}
	require.Equal(t, size, w.Len())

	avg, err := w.Result(OpAvg)
	require.NoError(t, err)
	require.Equal(t, duration.Some(5*duration.Hour), avg)

	_, err = w.Result("median")
	require.Error(t, err)
}

func TestMovingWindow_OverflowLeavesFrameUnchanged(t *testing.T) {
	w, err := NewMovingWindow(2)
	require.NoError(t, err)
	require.NoError(t, w.Push(duration.Some(duration.NoEnd-10)))
	require.NoError(t, w.Push(duration.Some(1)))
	// Evicting NoEnd-10 and adding NoEnd-5 is fine; adding it on top of 1 is not.
	require.NoError(t, w.Push(duration.Some(duration.NoEnd-5)))
	err = w.Push(duration.Some(duration.NoEnd - 5))
	require.ErrorIs(t, err, duration.ErrOutOfRange)
	require.Equal(t, State{Count: 2, Sum: duration.NoEnd - 4}, *w.State())
}

func TestNewMovingWindow_InvalidSize(t *testing.T) {
	_, err := NewMovingWindow(0)
	require.Error(t, err)
}
