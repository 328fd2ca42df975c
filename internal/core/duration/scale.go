package duration

import "math"

// int64 bounds as float64. 2^63 itself does not fit.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// Mul scales d by factor, rounding half to even.
//
// Infinite d keeps its infinity, flipped for a negative factor; multiplying
// an infinity by zero is undefined. An infinite factor turns a non-zero
// finite d into the infinity of the product sign.
func Mul(d Duration, factor float64) (Duration, error) {
	if math.IsNaN(factor) {
		return 0, ErrOutOfRange
	}
	if !d.IsFinite() {
		switch {
		case factor == 0:
			return 0, ErrOutOfRange
		case factor < 0:
			return Negate(d)
		}
		return d, nil
	}
	if math.IsInf(factor, 0) {
		return infinityOf(d.Sign() * signOf(factor))
	}
	return fromFloat(float64(d) * factor)
}

// Div divides d by factor, rounding half to even. A finite d divided by an
// infinite factor is zero.
func Div(d Duration, factor float64) (Duration, error) {
	if factor == 0 {
		return 0, ErrDivisionByZero
	}
	if math.IsNaN(factor) {
		return 0, ErrOutOfRange
	}
	if !d.IsFinite() {
		if math.IsInf(factor, 0) {
			return 0, ErrOutOfRange
		}
		if factor < 0 {
			return Negate(d)
		}
		return d, nil
	}
	return fromFloat(float64(d) / factor)
}

func fromFloat(f float64) (Duration, error) {
	r := math.RoundToEven(f)
	if math.IsNaN(r) || r < minInt64Float || r >= maxInt64Float {
		return 0, ErrOutOfRange
	}
	return checkFinite(Duration(r))
}

func infinityOf(sign int) (Duration, error) {
	switch {
	case sign < 0:
		return NoBegin, nil
	case sign > 0:
		return NoEnd, nil
	}
	return 0, ErrOutOfRange
}

func signOf(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}
