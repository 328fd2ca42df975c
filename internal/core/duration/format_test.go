package duration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Duration
		wantErr error
	}{
		{in: "infinity", want: NoEnd},
		{in: "+Infinity", want: NoEnd},
		{in: "-infinity", want: NoBegin},
		{in: "1:30:00.5", want: 90*Minute + 500*Millisecond},
		{in: "01:23", want: Hour + 23*Minute},
		{in: "-1:00:00", want: -Hour},
		{in: "100:00:00", want: 100 * Hour},
		{in: "1 hour 30 minutes", want: 90 * Minute},
		{in: "90s", want: 90 * Second},
		{in: "1.5h", want: 90 * Minute},
		{in: "250 ms 3 us", want: 250*Millisecond + 3},
		{in: "@ 2 hours ago", want: -2 * Hour},
		{in: "0 days 01:00:00", want: Hour},
		{in: "42", want: 42 * Second},
		{in: "PT1H30M", want: 90 * Minute},
		{in: "P0DT2H0.25S", want: 2*Hour + 250*Millisecond},
		{in: "1 day", wantErr: ErrInvalidUnits},
		{in: "P1M", wantErr: ErrInvalidUnits},
		{in: "2 years 1 hour", wantErr: ErrInvalidUnits},
		{in: "", wantErr: ErrInvalidSyntax},
		{in: "soon", wantErr: ErrInvalidSyntax},
		{in: "1 fortnight", wantErr: ErrInvalidSyntax},
		{in: "1:3", wantErr: ErrInvalidSyntax},
		{in: "P", wantErr: ErrInvalidSyntax},
		{in: "PT", wantErr: ErrInvalidSyntax},
		{in: "3000000000 hours", wantErr: ErrOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestString(t *testing.T) {
	require.Equal(t, "infinity", NoEnd.String())
	require.Equal(t, "-infinity", NoBegin.String())
	require.Equal(t, "00:00:00", Duration(0).String())
	require.Equal(t, "01:23:45.678912", (Hour + 23*Minute + 45*Second + 678912).String())
	require.Equal(t, "-01:30:00.5", (-90*Minute - 500*Millisecond).String())
	require.Equal(t, "-00:00:00.000001", Duration(-1).String())
	require.Equal(t, "36:00:00", (36 * Hour).String())
}

func TestStringParseRoundTrip(t *testing.T) {
	values := append(sampleFinite(200), NoBegin, NoEnd)
	for _, d := range values {
		got, err := Parse(d.String())
		require.NoError(t, err, d.String())
		require.Equal(t, d, got)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	b, err := (Hour + 1).MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0xd6, 0x93, 0xa4, 0x01}, b)

	for _, d := range []Duration{NoBegin, NoEnd, 0, -1, Hour} {
		b, err := d.MarshalBinary()
		require.NoError(t, err)
		var got Duration
		require.NoError(t, got.UnmarshalBinary(b))
		require.Equal(t, d, got)
	}

	var d Duration
	require.Error(t, d.UnmarshalBinary([]byte{1, 2, 3}))
}

func TestJSON(t *testing.T) {
	type payload struct {
		Value Duration     `json:"value"`
		Avg   NullDuration `json:"avg"`
		Sum   NullDuration `json:"sum"`
	}

	b, err := json.Marshal(payload{Value: 90 * Minute, Avg: Some(NoEnd)})
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"01:30:00","avg":"infinity","sum":null}`, string(b))

	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"value":"PT2H","avg":"-infinity","sum":null}`), &got))
	require.Equal(t, 2*Hour, got.Value)
	require.Equal(t, Some(NoBegin), got.Avg)
	require.False(t, got.Sum.Valid)

	require.Error(t, json.Unmarshal([]byte(`{"value":"1 day"}`), &got))
}

func TestScanValue(t *testing.T) {
	var d Duration
	require.NoError(t, d.Scan(int64(Hour)))
	require.Equal(t, Hour, d)
	require.NoError(t, d.Scan([]byte("01:00:01")))
	require.Equal(t, Hour+Second, d)
	require.Error(t, d.Scan(nil))

	v, err := NoEnd.Value()
	require.NoError(t, err)
	require.Equal(t, int64(NoEnd), v)

	var n NullDuration
	require.NoError(t, n.Scan(nil))
	require.False(t, n.Valid)
	require.NoError(t, n.Scan(int64(5)))
	require.Equal(t, Some(5), n)
}

func TestHash(t *testing.T) {
	require.Equal(t, Hour.Hash(), (60 * Minute).Hash())
	require.NotEqual(t, Hour.Hash(), Minute.Hash())
}
