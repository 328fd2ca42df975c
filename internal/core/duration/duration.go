package duration

import (
	"cmp"
	"math"
)

// Duration is an elapsed time in microseconds.
// The two extreme int64 values are reserved as infinity sentinels; finite
// arithmetic never produces them.
type Duration int64

const (
	// NoBegin is the unbounded-past sentinel ("-infinity").
	NoBegin Duration = math.MinInt64
	// NoEnd is the unbounded-future sentinel ("infinity").
	NoEnd Duration = math.MaxInt64

	Microsecond Duration = 1
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
)

// IsFinite reports whether d is neither NoBegin nor NoEnd.
func (d Duration) IsFinite() bool { return d != NoBegin && d != NoEnd }

func (d Duration) IsNoBegin() bool { return d == NoBegin }
func (d Duration) IsNoEnd() bool   { return d == NoEnd }

// Sign returns -1, 0 or 1. Sentinels carry the sign of the infinity they denote.
func (d Duration) Sign() int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// Microseconds returns the raw representation.
func (d Duration) Microseconds() int64 { return int64(d) }

// Compare orders durations by their integer representation, so NoBegin sorts
// first and NoEnd sorts last.
func Compare(a, b Duration) int { return cmp.Compare(a, b) }

func (d Duration) Equal(o Duration) bool     { return Compare(d, o) == 0 }
func (d Duration) NotEqual(o Duration) bool  { return Compare(d, o) != 0 }
func (d Duration) Less(o Duration) bool      { return Compare(d, o) < 0 }
func (d Duration) LessEq(o Duration) bool    { return Compare(d, o) <= 0 }
func (d Duration) Greater(o Duration) bool   { return Compare(d, o) > 0 }
func (d Duration) GreaterEq(o Duration) bool { return Compare(d, o) >= 0 }

// Min returns the smaller of a and b.
func Min(a, b Duration) Duration {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Duration) Duration {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Negate returns -d, swapping the sentinels. Negating the most negative
// finite value would land on NoEnd and fails with ErrOutOfRange.
func Negate(d Duration) (Duration, error) {
	switch d {
	case NoBegin:
		return NoEnd, nil
	case NoEnd:
		return NoBegin, nil
	}
	return checkFinite(-d)
}

// Add returns a + b.
// Opposite infinities have no representable sum and fail with ErrOutOfRange.
func Add(a, b Duration) (Duration, error) {
	switch {
	case a == NoBegin && b == NoEnd, a == NoEnd && b == NoBegin:
		return 0, ErrOutOfRange
	case a == NoBegin || b == NoBegin:
		return NoBegin, nil
	case a == NoEnd || b == NoEnd:
		return NoEnd, nil
	}
	return addFinite(a, b)
}

// Sub returns a - b.
// Subtracting an infinity from itself fails with ErrOutOfRange.
func Sub(a, b Duration) (Duration, error) {
	switch {
	case a == NoBegin && b == NoBegin, a == NoEnd && b == NoEnd:
		return 0, ErrOutOfRange
	case b == NoBegin, a == NoEnd:
		return NoEnd, nil
	case b == NoEnd, a == NoBegin:
		return NoBegin, nil
	}
	return subFinite(a, b)
}

func addFinite(a, b Duration) (Duration, error) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, ErrOutOfRange
	}
	return checkFinite(r)
}

func subFinite(a, b Duration) (Duration, error) {
	r := a - b
	if (b > 0 && r > a) || (b < 0 && r < a) {
		return 0, ErrOutOfRange
	}
	return checkFinite(r)
}

func mulFinite(a, b Duration) (Duration, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOutOfRange
	}
	return checkFinite(r)
}

// checkFinite rejects results that collide with a sentinel bit pattern.
func checkFinite(d Duration) (Duration, error) {
	if !d.IsFinite() {
		return 0, ErrOutOfRange
	}
	return d, nil
}
