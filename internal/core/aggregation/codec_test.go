package aggregation

import (
	"testing"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Layout(t *testing.T) {
	state := &State{Count: 1, Sum: 2, PosInfCount: 3, NegInfCount: 4}
	require.Equal(t, []byte{
		0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 0, 0, 0, 0, 2,
		0, 0, 0, 0, 0, 0, 0, 3,
		0, 0, 0, 0, 0, 0, 0, 4,
	}, Serialize(state))
}

func TestSerialize_RoundTrip(t *testing.T) {
	states := []*State{
		{},
		accumulate(t, duration.Hour, -duration.Minute, duration.NoEnd),
		accumulate(t, duration.NoBegin, duration.NoBegin),
		accumulate(t, duration.NoEnd-1),
		accumulate(t, duration.NoBegin+1),
	}
	for _, s := range states {
		got, err := Deserialize(Serialize(s))
		require.NoError(t, err)
		require.Equal(t, *s, *got)

		b, err := s.MarshalBinary()
		require.NoError(t, err)
		var decoded State
		require.NoError(t, decoded.UnmarshalBinary(b))
		require.Equal(t, *s, decoded)
	}
}

func TestDeserialize_Corrupt(t *testing.T) {
	_, err := Deserialize([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrCorruptState)

	_, err = Deserialize(Serialize(&State{Sum: duration.NoEnd}))
	require.ErrorIs(t, err, ErrCorruptState)

	_, err = Deserialize(Serialize(&State{Count: -1}))
	require.ErrorIs(t, err, ErrCorruptState)
}
