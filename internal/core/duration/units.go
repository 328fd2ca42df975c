package duration

import (
	"fmt"
	"strings"
)

// Unit is a resolved unit keyword.
type Unit int

const (
	UnitInvalid Unit = iota
	UnitMicrosecond
	UnitMillisecond
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitYear
	UnitDecade
	UnitCentury
	UnitMillennium
	UnitEpoch
	UnitTimezone
	UnitDayOfWeek
	UnitDayOfYear
	UnitJulian
)

var unitNames = map[Unit]string{
	UnitMicrosecond: "microsecond",
	UnitMillisecond: "millisecond",
	UnitSecond:      "second",
	UnitMinute:      "minute",
	UnitHour:        "hour",
	UnitDay:         "day",
	UnitWeek:        "week",
	UnitMonth:       "month",
	UnitQuarter:     "quarter",
	UnitYear:        "year",
	UnitDecade:      "decade",
	UnitCentury:     "century",
	UnitMillennium:  "millennium",
	UnitEpoch:       "epoch",
	UnitTimezone:    "timezone",
	UnitDayOfWeek:   "dow",
	UnitDayOfYear:   "doy",
	UnitJulian:      "julian",
}

// unitKeywords maps lower-cased spellings to units.
var unitKeywords = map[string]Unit{
	"microsecond": UnitMicrosecond, "microseconds": UnitMicrosecond, "microsecon": UnitMicrosecond,
	"us": UnitMicrosecond, "usec": UnitMicrosecond, "usecs": UnitMicrosecond, "useconds": UnitMicrosecond,

	"millisecond": UnitMillisecond, "milliseconds": UnitMillisecond, "millisecon": UnitMillisecond,
	"ms": UnitMillisecond, "msec": UnitMillisecond, "msecs": UnitMillisecond, "mseconds": UnitMillisecond,

	"second": UnitSecond, "seconds": UnitSecond, "s": UnitSecond, "sec": UnitSecond, "secs": UnitSecond,

	"minute": UnitMinute, "minutes": UnitMinute, "m": UnitMinute, "min": UnitMinute, "mins": UnitMinute,

	"hour": UnitHour, "hours": UnitHour, "h": UnitHour, "hr": UnitHour, "hrs": UnitHour,

	"day": UnitDay, "days": UnitDay, "d": UnitDay,
	"week": UnitWeek, "weeks": UnitWeek, "w": UnitWeek,
	"month": UnitMonth, "months": UnitMonth, "mon": UnitMonth, "mons": UnitMonth,
	"quarter": UnitQuarter, "qtr": UnitQuarter,
	"year": UnitYear, "years": UnitYear, "y": UnitYear, "yr": UnitYear, "yrs": UnitYear,
	"decade": UnitDecade, "decades": UnitDecade, "dec": UnitDecade, "decs": UnitDecade,
	"century": UnitCentury, "centuries": UnitCentury, "cent": UnitCentury, "c": UnitCentury,
	"millennium": UnitMillennium, "millennia": UnitMillennium, "mil": UnitMillennium, "mils": UnitMillennium,

	"epoch":    UnitEpoch,
	"timezone": UnitTimezone,
	"dow":      UnitDayOfWeek,
	"doy":      UnitDayOfYear,
	"julian":   UnitJulian,
}

// ParseUnit resolves a unit keyword case-insensitively.
func ParseUnit(name string) (Unit, error) {
	u, ok := unitKeywords[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return UnitInvalid, fmt.Errorf("%w: %q", ErrUnrecognizedUnit, name)
	}
	return u, nil
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// oscillating units have no defined value for an infinite duration.
func (u Unit) oscillating() bool {
	switch u {
	case UnitMicrosecond, UnitMillisecond, UnitSecond, UnitMinute:
		return true
	}
	return false
}

func unsupported(u Unit) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedUnit, u.String())
}
