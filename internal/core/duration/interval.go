package duration

import "math"

// Interval is the calendar interval representation exchanged with systems
// that do not know about Duration. Both infinities set every field to the
// matching extreme.
type Interval struct {
	Months       int32
	Days         int32
	Microseconds int64
}

var (
	intervalNoBegin = Interval{Months: math.MinInt32, Days: math.MinInt32, Microseconds: math.MinInt64}
	intervalNoEnd   = Interval{Months: math.MaxInt32, Days: math.MaxInt32, Microseconds: math.MaxInt64}
)

func (i Interval) IsNoBegin() bool { return i == intervalNoBegin }
func (i Interval) IsNoEnd() bool   { return i == intervalNoEnd }

// ToInterval converts d to an Interval with zero months and days.
func ToInterval(d Duration) Interval {
	switch d {
	case NoBegin:
		return intervalNoBegin
	case NoEnd:
		return intervalNoEnd
	}
	return Interval{Microseconds: int64(d)}
}

// FromInterval converts i back to a Duration. Any month or day component is
// rejected with ErrInvalidUnits; sentinel microseconds outside the sentinel
// intervals fail with ErrOutOfRange.
func FromInterval(i Interval) (Duration, error) {
	switch {
	case i.IsNoBegin():
		return NoBegin, nil
	case i.IsNoEnd():
		return NoEnd, nil
	case i.Months != 0 || i.Days != 0:
		return 0, ErrInvalidUnits
	}
	return checkFinite(Duration(i.Microseconds))
}
