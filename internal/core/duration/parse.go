package duration

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	minDecimal = decimal.NewFromInt(int64(NoBegin))
	maxDecimal = decimal.NewFromInt(int64(NoEnd))
)

// Parse decodes the textual forms accepted for a duration:
//
//	infinity, +infinity, -infinity
//	[-]H:MM[:SS[.ffffff]]                 clock syntax
//	1 hour 30 minutes, 90s, @ 2 hours ago verbose syntax
//	PT1H30M, P0DT2H                        ISO-8601
//
// Calendar components (years, months, weeks, days) must be zero.
func Parse(text string) (Duration, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "":
		return 0, syntaxError(text)
	case "infinity", "+infinity":
		return NoEnd, nil
	case "-infinity":
		return NoBegin, nil
	}

	var (
		acc accumulator
		err error
	)
	if strings.HasPrefix(s, "p") {
		err = acc.iso8601(s[1:])
	} else {
		err = acc.verbose(strings.Fields(s))
	}
	if err != nil {
		if err == ErrInvalidSyntax {
			return 0, syntaxError(text)
		}
		return 0, err
	}
	return acc.result()
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Duration {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

func syntaxError(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidSyntax, text)
}

type accumulator struct {
	total    Duration
	calendar bool
	negate   bool
	seen     bool
}

func (a *accumulator) result() (Duration, error) {
	if !a.seen {
		return 0, ErrInvalidSyntax
	}
	if a.calendar {
		return 0, ErrInvalidUnits
	}
	if a.negate {
		return Negate(a.total)
	}
	return a.total, nil
}

// add folds number*unit into the total. Calendar units only record whether
// they were non-zero.
func (a *accumulator) add(number string, unit Unit) error {
	n, err := decimal.NewFromString(strings.TrimPrefix(number, "+"))
	if err != nil {
		return ErrInvalidSyntax
	}
	a.seen = true

	var scale Duration
	switch unit {
	case UnitMicrosecond:
		scale = Microsecond
	case UnitMillisecond:
		scale = Millisecond
	case UnitSecond:
		scale = Second
	case UnitMinute:
		scale = Minute
	case UnitHour:
		scale = Hour
	case UnitDay, UnitWeek, UnitMonth, UnitQuarter, UnitYear, UnitDecade, UnitCentury, UnitMillennium:
		if !n.IsZero() {
			a.calendar = true
		}
		return nil
	default:
		return ErrInvalidSyntax
	}

	v := n.Mul(decimal.NewFromInt(int64(scale))).RoundBank(0)
	if v.LessThanOrEqual(minDecimal) || v.GreaterThanOrEqual(maxDecimal) {
		return ErrOutOfRange
	}
	a.total, err = addFinite(a.total, Duration(v.IntPart()))
	return err
}

func (a *accumulator) verbose(tokens []string) error {
	if len(tokens) > 0 && tokens[0] == "@" {
		tokens = tokens[1:]
	}
	if len(tokens) > 1 && tokens[len(tokens)-1] == "ago" {
		a.negate = true
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return ErrInvalidSyntax
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if strings.Contains(tok, ":") {
			if err := a.clock(tok); err != nil {
				return err
			}
			continue
		}

		number, unitName := splitNumber(tok)
		if number == "" {
			return ErrInvalidSyntax
		}
		if unitName == "" {
			if i+1 < len(tokens) && !startsNumeric(tokens[i+1]) {
				i++
				unitName = tokens[i]
			} else {
				unitName = "second"
			}
		}
		unit, ok := unitKeywords[unitName]
		if !ok {
			return ErrInvalidSyntax
		}
		if err := a.add(number, unit); err != nil {
			return err
		}
	}
	return nil
}

// clock parses [-+]H:MM[:SS[.ffffff]].
func (a *accumulator) clock(tok string) error {
	sign := ""
	if tok[0] == '-' || tok[0] == '+' {
		sign, tok = tok[:1], tok[1:]
	}
	parts := strings.Split(tok, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ErrInvalidSyntax
	}
	for i, p := range parts {
		if p == "" || !isDigits(strings.Replace(p, ".", "", 1)) {
			return ErrInvalidSyntax
		}
		if i < len(parts)-1 && strings.Contains(p, ".") {
			return ErrInvalidSyntax
		}
	}
	if len(parts[1]) != 2 || (len(parts) == 3 && len(strings.SplitN(parts[2], ".", 2)[0]) != 2) {
		return ErrInvalidSyntax
	}

	if sign == "+" {
		sign = ""
	}
	units := []Unit{UnitHour, UnitMinute, UnitSecond}
	for i, p := range parts {
		if err := a.add(sign+p, units[i]); err != nil {
			return err
		}
	}
	return nil
}

// iso8601 parses the body after the leading "P".
func (a *accumulator) iso8601(body string) error {
	if body == "" {
		return ErrInvalidSyntax
	}
	datePart, timePart, hasTime := strings.Cut(body, "t")
	if hasTime && timePart == "" {
		return ErrInvalidSyntax
	}
	dateUnits := map[byte]Unit{'y': UnitYear, 'm': UnitMonth, 'w': UnitWeek, 'd': UnitDay}
	timeUnits := map[byte]Unit{'h': UnitHour, 'm': UnitMinute, 's': UnitSecond}

	for _, section := range []struct {
		text  string
		units map[byte]Unit
	}{{datePart, dateUnits}, {timePart, timeUnits}} {
		rest := section.text
		for rest != "" {
			number, tail := splitNumber(rest)
			if number == "" || tail == "" {
				return ErrInvalidSyntax
			}
			unit, ok := section.units[tail[0]]
			if !ok {
				return ErrInvalidSyntax
			}
			if err := a.add(number, unit); err != nil {
				return err
			}
			rest = tail[1:]
		}
	}
	return nil
}

// splitNumber splits a leading signed decimal number from the rest of s.
func splitNumber(s string) (number, rest string) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits, dot := 0, false
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			digits++
			continue
		}
		if c == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	if digits == 0 {
		return "", s
	}
	return s[:i], s[i:]
}

func startsNumeric(s string) bool {
	n, _ := splitNumber(s)
	return n != ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
