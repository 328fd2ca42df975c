package aggregation

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
)

// SerializedStateLen is the size of a serialized State: four big-endian int64
// fields in the order count, sum, positive infinities, negative infinities.
const SerializedStateLen = 4 * 8

// ErrCorruptState is returned when a serialized state cannot be decoded.
var ErrCorruptState = errors.New("corrupt aggregate state")

// Serialize encodes s in its fixed byte layout.
func Serialize(s *State) []byte {
	return s.AppendBinary(make([]byte, 0, SerializedStateLen))
}

// AppendBinary appends the serialized form of s to b.
func (s *State) AppendBinary(b []byte) []byte {
	b = binary.BigEndian.AppendUint64(b, uint64(s.Count))
	b = binary.BigEndian.AppendUint64(b, uint64(s.Sum))
	b = binary.BigEndian.AppendUint64(b, uint64(s.PosInfCount))
	b = binary.BigEndian.AppendUint64(b, uint64(s.NegInfCount))
	return b
}

// Deserialize decodes a state produced by Serialize into a new State.
func Deserialize(data []byte) (*State, error) {
	if len(data) != SerializedStateLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrCorruptState, SerializedStateLen, len(data))
	}
	s := &State{
		Count:       int64(binary.BigEndian.Uint64(data[0:8])),
		Sum:         duration.Duration(binary.BigEndian.Uint64(data[8:16])),
		PosInfCount: int64(binary.BigEndian.Uint64(data[16:24])),
		NegInfCount: int64(binary.BigEndian.Uint64(data[24:32])),
	}
	if !s.Sum.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite sum", ErrCorruptState)
	}
	if s.Count < 0 || s.PosInfCount < 0 || s.NegInfCount < 0 {
		return nil, fmt.Errorf("%w: negative counter", ErrCorruptState)
	}
	return s, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *State) MarshalBinary() ([]byte, error) {
	return Serialize(s), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *State) UnmarshalBinary(data []byte) error {
	d, err := Deserialize(data)
	if err != nil {
		return err
	}
	*s = *d
	return nil
}
