package duration

import (
	"math"

	"github.com/shopspring/decimal"
)

// Fields is a finite duration broken down by unit. Fields carry the sign of
// the duration; Hours is unbounded.
type Fields struct {
	Hours        int64
	Minutes      int
	Seconds      int
	Microseconds int
}

// Decompose splits d into hours, minutes, seconds and microseconds using
// truncating division. It cannot overflow.
func Decompose(d Duration) Fields {
	t := int64(d)
	var f Fields

	f.Hours = t / int64(Hour)
	t -= f.Hours * int64(Hour)
	f.Minutes = int(t / int64(Minute))
	t -= int64(f.Minutes) * int64(Minute)
	f.Seconds = int(t / int64(Second))
	t -= int64(f.Seconds) * int64(Second)
	f.Microseconds = int(t)

	return f
}

// Recompose is the inverse of Decompose. It only yields finite values.
func Recompose(f Fields) (Duration, error) {
	var d Duration
	for _, term := range [...]struct {
		n    int64
		unit Duration
	}{
		{f.Hours, Hour},
		{int64(f.Minutes), Minute},
		{int64(f.Seconds), Second},
		{int64(f.Microseconds), Microsecond},
	} {
		v, err := mulFinite(Duration(term.n), term.unit)
		if err != nil {
			return 0, err
		}
		if d, err = addFinite(d, v); err != nil {
			return 0, err
		}
	}
	return d, nil
}

// Truncate zeroes every field below unit. Infinities pass through.
func Truncate(d Duration, unit Unit) (Duration, error) {
	if !d.IsFinite() {
		return d, nil
	}

	f := Decompose(d)
	switch unit {
	case UnitHour:
		f.Minutes = 0
		fallthrough
	case UnitMinute:
		f.Seconds = 0
		fallthrough
	case UnitSecond:
		f.Microseconds = 0
	case UnitMillisecond:
		f.Microseconds = (f.Microseconds / 1000) * 1000
	case UnitMicrosecond:
	default:
		return 0, unsupported(unit)
	}
	return Recompose(f)
}

// Part is an extracted field value. A Part is either a number, a signed
// infinity, or null (Valid false).
type Part struct {
	Value    decimal.Decimal
	Infinite int
	Valid    bool
}

// IsInf reports whether the part is a signed infinity.
func (p Part) IsInf() bool { return p.Valid && p.Infinite != 0 }

// Float64 returns the part as a float; null is NaN.
func (p Part) Float64() float64 {
	switch {
	case !p.Valid:
		return math.NaN()
	case p.Infinite != 0:
		return math.Inf(p.Infinite)
	}
	f, _ := p.Value.Float64()
	return f
}

func (p Part) String() string {
	switch {
	case !p.Valid:
		return "null"
	case p.Infinite < 0:
		return "-Infinity"
	case p.Infinite > 0:
		return "Infinity"
	}
	return p.Value.String()
}

// ExtractPart returns the value of unit within d.
//
// Sub-hour units include the finer fields as a fraction ("second" of
// 1:23:45.5 is 45.5). For infinite d those units are null, while hour and
// epoch are the infinity of d's sign.
func ExtractPart(d Duration, unit Unit) (Part, error) {
	switch unit {
	case UnitMicrosecond, UnitMillisecond, UnitSecond, UnitMinute, UnitHour, UnitEpoch:
	default:
		if _, ok := unitNames[unit]; !ok {
			return Part{}, ErrUnrecognizedUnit
		}
		return Part{}, unsupported(unit)
	}

	if !d.IsFinite() {
		if unit.oscillating() {
			return Part{}, nil
		}
		return Part{Infinite: d.Sign(), Valid: true}, nil
	}

	f := Decompose(d)
	subMinute := int64(f.Seconds)*int64(Second) + int64(f.Microseconds)

	var v decimal.Decimal
	switch unit {
	case UnitMicrosecond:
		v = decimal.NewFromInt(subMinute)
	case UnitMillisecond:
		v = decimal.New(subMinute, -3)
	case UnitSecond:
		v = decimal.New(subMinute, -6)
	case UnitMinute:
		v = decimal.NewFromInt(int64(f.Minutes))
	case UnitHour:
		v = decimal.NewFromInt(f.Hours)
	case UnitEpoch:
		v = decimal.New(int64(d), -6)
	}
	return Part{Value: v, Valid: true}, nil
}
