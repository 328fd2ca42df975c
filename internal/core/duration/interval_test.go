package duration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntervalInterop(t *testing.T) {
	for _, d := range []Duration{NoBegin, NoEnd, 0, Hour, -Minute} {
		got, err := FromInterval(ToInterval(d))
		require.NoError(t, err)
		require.Equal(t, d, got)
	}

	require.True(t, ToInterval(NoEnd).IsNoEnd())
	require.True(t, ToInterval(NoBegin).IsNoBegin())
	require.Equal(t, Interval{Microseconds: int64(Hour)}, ToInterval(Hour))

	_, err := FromInterval(Interval{Days: 1})
	require.ErrorIs(t, err, ErrInvalidUnits)
	_, err = FromInterval(Interval{Months: -1, Microseconds: 5})
	require.ErrorIs(t, err, ErrInvalidUnits)
	// Only the full sentinel interval maps to an infinity; a bare extreme
	// microsecond field would otherwise smuggle a sentinel in.
	_, err = FromInterval(Interval{Microseconds: int64(NoEnd)})
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = FromInterval(Interval{Microseconds: int64(NoBegin)})
	require.ErrorIs(t, err, ErrOutOfRange)
}
