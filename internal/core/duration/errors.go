package duration

import "errors"

var (
	// ErrOutOfRange is returned when a result overflows, is non-finite or
	// collides with an infinity sentinel.
	ErrOutOfRange = errors.New("duration out of range")

	// ErrDivisionByZero is returned by Div for a zero factor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidUnits is returned when a calendar component (years, months,
	// days) is present where only elapsed time is allowed.
	ErrInvalidUnits = errors.New("invalid units for duration")

	// ErrUnrecognizedUnit is returned for a unit name that is not known at all.
	ErrUnrecognizedUnit = errors.New("unit not recognized")

	// ErrUnsupportedUnit is returned for a known unit that does not apply to durations.
	ErrUnsupportedUnit = errors.New("unit not supported for type duration")

	// ErrInvalidSyntax is returned by Parse for malformed input.
	ErrInvalidSyntax = errors.New("invalid input syntax for type duration")
)
