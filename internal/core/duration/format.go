package duration

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// EncodedLen is the size of the binary encoding.
const EncodedLen = 8

// String renders d as [-]HH:MM:SS[.ffffff], or infinity / -infinity.
func (d Duration) String() string {
	switch d {
	case NoBegin:
		return "-infinity"
	case NoEnd:
		return "infinity"
	}
	return Format(Decompose(d))
}

// Format renders broken-down fields. Negative fields render with a single
// leading minus sign.
func Format(f Fields) string {
	neg := f.Hours < 0 || f.Minutes < 0 || f.Seconds < 0 || f.Microseconds < 0

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", abs64(f.Hours), abs(f.Minutes), abs(f.Seconds))
	if f.Microseconds != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%06d", abs(f.Microseconds)), "0")
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// AppendBinary appends the 8-byte big-endian encoding of d.
func (d Duration) AppendBinary(b []byte) ([]byte, error) {
	return binary.BigEndian.AppendUint64(b, uint64(d)), nil
}

func (d Duration) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, EncodedLen))
}

func (d *Duration) UnmarshalBinary(data []byte) error {
	if len(data) != EncodedLen {
		return fmt.Errorf("duration: binary encoding must be %d bytes, got %d", EncodedLen, len(data))
	}
	*d = Duration(binary.BigEndian.Uint64(data))
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Hash is a 64-bit FNV-1a hash of the binary encoding.
func (d Duration) Hash() uint64 {
	h := fnv.New64a()
	b, _ := d.MarshalBinary()
	h.Write(b)
	return h.Sum64()
}

// Value stores d as an int8 column.
func (d Duration) Value() (driver.Value, error) {
	return int64(d), nil
}

// Scan reads an int8 column or a textual duration.
func (d *Duration) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*d = Duration(v)
		return nil
	case []byte:
		return d.scanText(string(v))
	case string:
		return d.scanText(v)
	case nil:
		return fmt.Errorf("duration: cannot scan NULL into Duration")
	}
	return fmt.Errorf("duration: cannot scan %T", src)
}

func (d *Duration) scanText(s string) error {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(n)
		return nil
	}
	return d.UnmarshalText([]byte(s))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func abs64(n int64) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}
