package aggregation

import (
	"testing"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/stretchr/testify/require"
)

func TestOperators_Finalize(t *testing.T) {
	state := accumulate(t, duration.Hour, 2*duration.Hour, 3*duration.Hour)

	tests := []struct {
		op   string
		want duration.Duration
	}{
		{op: OpSum, want: 6 * duration.Hour},
		{op: OpAvg, want: 2 * duration.Hour},
	}
	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			fin, ok := Operators[tc.op]
			require.True(t, ok)
			got, err := fin.Finalize(state)
			require.NoError(t, err)
			require.Equal(t, duration.Some(tc.want), got)
		})
	}
}

func TestValidOperator(t *testing.T) {
	require.True(t, ValidOperator(OpSum))
	require.True(t, ValidOperator(OpAvg))
	require.False(t, ValidOperator("count"))
	require.False(t, ValidOperator(""))
}

func TestAggregateState_Result(t *testing.T) {
	agg := AggregateState{Operator: OpAvg, State: *accumulate(t, duration.Hour, duration.NoEnd)}
	res, err := agg.Result()
	require.NoError(t, err)
	require.Equal(t, duration.Some(duration.NoEnd), res.Value)
	require.Equal(t, int64(2), res.Observations)

	_, err = AggregateState{Operator: "median"}.Result()
	require.Error(t, err)
}
