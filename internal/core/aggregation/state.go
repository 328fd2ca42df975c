package aggregation

import (
	"fmt"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
)

// State is the running sum/average accumulator for durations.
// Infinite inputs never enter Sum; they are only counted.
//
// A State is owned by one evaluation context. Partial states built
// elsewhere are folded in with Combine, never shared.
type State struct {
	Count       int64             // finite values accumulated
	Sum         duration.Duration // always finite
	PosInfCount int64             // NoEnd inputs
	NegInfCount int64             // NoBegin inputs
}

// Observations is the total number of accumulated inputs.
func (s *State) Observations() int64 {
	return s.Count + s.PosInfCount + s.NegInfCount
}

// Accumulate folds v into s. On error s is unchanged.
func (s *State) Accumulate(v duration.Duration) error {
	switch v {
	case duration.NoBegin:
		s.NegInfCount++
	case duration.NoEnd:
		s.PosInfCount++
	default:
		sum, err := duration.Add(s.Sum, v)
		if err != nil {
			return err
		}
		s.Sum = sum
		s.Count++
	}
	return nil
}

// Remove is the inverse of Accumulate, used when v leaves a sliding frame.
// Once the last finite value is removed Sum is reset to zero.
func (s *State) Remove(v duration.Duration) error {
	switch v {
	case duration.NoBegin:
		s.NegInfCount--
	case duration.NoEnd:
		s.PosInfCount--
	default:
		if s.Count <= 1 {
			s.Count = 0
			s.Sum = 0
			return nil
		}
		sum, err := duration.Sub(s.Sum, v)
		if err != nil {
			return err
		}
		s.Sum = sum
		s.Count--
	}
	return nil
}

// Merge adds every counter of o into s. On error s is unchanged.
func (s *State) Merge(o *State) error {
	sum := s.Sum
	if o.Count > 0 {
		var err error
		if sum, err = duration.Add(s.Sum, o.Sum); err != nil {
			return err
		}
	}
	s.Sum = sum
	s.Count += o.Count
	s.PosInfCount += o.PosInfCount
	s.NegInfCount += o.NegInfCount
	return nil
}

// FinalSum finalizes s as a sum. Null when s is nil or nothing was observed.
func (s *State) FinalSum() (duration.NullDuration, error) {
	if s == nil || s.Observations() == 0 {
		return duration.NullDuration{}, nil
	}
	if inf, ok, err := s.infinity(); ok || err != nil {
		return inf, err
	}
	return duration.Some(s.Sum), nil
}

// FinalAvg finalizes s as an average. Any infinity dominates the finite
// values, mirroring FinalSum.
func (s *State) FinalAvg() (duration.NullDuration, error) {
	if s == nil || s.Observations() == 0 {
		return duration.NullDuration{}, nil
	}
	if inf, ok, err := s.infinity(); ok || err != nil {
		return inf, err
	}
	avg, err := duration.Div(s.Sum, float64(s.Count))
	if err != nil {
		return duration.NullDuration{}, err
	}
	return duration.Some(avg), nil
}

func (s *State) infinity() (duration.NullDuration, bool, error) {
	switch {
	case s.PosInfCount > 0 && s.NegInfCount > 0:
		return duration.NullDuration{}, false, fmt.Errorf("%w: infinity minus infinity", duration.ErrOutOfRange)
	case s.PosInfCount > 0:
		return duration.Some(duration.NoEnd), true, nil
	case s.NegInfCount > 0:
		return duration.Some(duration.NoBegin), true, nil
	}
	return duration.NullDuration{}, false, nil
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Transition accumulates v into state, allocating the state on first use.
// A null v leaves the state untouched.
func Transition(state *State, v duration.NullDuration) (*State, error) {
	if state == nil {
		state = &State{}
	}
	if !v.Valid {
		return state, nil
	}
	if err := state.Accumulate(v.Duration); err != nil {
		return nil, err
	}
	return state, nil
}

// InverseTransition removes v from state. The caller guarantees a matching
// Transition happened earlier, so a nil state is a programming error.
func InverseTransition(state *State, v duration.NullDuration) (*State, error) {
	if state == nil {
		panic("aggregation: inverse transition on absent state")
	}
	if !v.Valid {
		return state, nil
	}
	if err := state.Remove(v.Duration); err != nil {
		return nil, err
	}
	return state, nil
}

// Combine merges two partial states. A nil a yields a copy of b.
func Combine(a, b *State) (*State, error) {
	switch {
	case b == nil:
		return a, nil
	case a == nil:
		return b.Clone(), nil
	}
	if err := a.Merge(b); err != nil {
		return nil, err
	}
	return a, nil
}

// FinalizeSum is FinalSum on a possibly absent state.
func FinalizeSum(state *State) (duration.NullDuration, error) { return state.FinalSum() }

// FinalizeAverage is FinalAvg on a possibly absent state.
func FinalizeAverage(state *State) (duration.NullDuration, error) { return state.FinalAvg() }
