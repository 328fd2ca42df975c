package aggregation

import (
	"fmt"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
)

// WindowSpec represents a parsed and validated window size.
type WindowSpec struct {
	Size time.Duration
}

// ParseWindowSize parses a duration string into a WindowSpec.
// Supports Go duration syntax (e.g., "10s", "1m", "1h") plus "Xd" for days.
func ParseWindowSize(s string) (WindowSpec, error) {
	if s == "" {
		return WindowSpec{}, fmt.Errorf("window_size must not be empty")
	}

	// Handle "d" suffix (days); time.ParseDuration lacks it.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
		}
		if days <= 0 {
			return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
		}
		return WindowSpec{Size: time.Duration(days) * 24 * time.Hour}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
	}
	if d <= 0 {
		return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
	}
	return WindowSpec{Size: d}, nil
}

// BucketFor truncates a timestamp to the nearest granularity boundary.
// Example: BucketFor(10:35:42, 1*time.Minute) → 10:35:00
func BucketFor(t time.Time, granularity time.Duration) time.Time {
	return t.Truncate(granularity)
}

// MovingWindow is a row-count sliding frame. Each Push accumulates the new
// row and removes the row that fell out of the frame, so the State always
// equals a fresh accumulation of the current frame.
type MovingWindow struct {
	rows  []duration.NullDuration // ring buffer
	head  int
	size  int
	state *State
}

// NewMovingWindow creates a frame holding the last size rows.
func NewMovingWindow(size int) (*MovingWindow, error) {
	if size <= 0 {
		return nil, fmt.Errorf("moving window frame must be positive, got %d", size)
	}
	return &MovingWindow{
		rows:  make([]duration.NullDuration, 0, size),
		size:  size,
		state: &State{},
	}, nil
}

// Push adds a row, evicting the oldest one once the frame is full.
// On error the window is unchanged.
func (w *MovingWindow) Push(v duration.NullDuration) error {
	if len(w.rows) < w.size {
		if _, err := Transition(w.state, v); err != nil {
			return err
		}
		w.rows = append(w.rows, v)
		return nil
	}

	oldest := w.rows[w.head]
	if _, err := InverseTransition(w.state, oldest); err != nil {
		return err
	}
	if _, err := Transition(w.state, v); err != nil {
		if _, restoreErr := Transition(w.state, oldest); restoreErr != nil {
			panic(fmt.Sprintf("aggregation: moving window restore failed: %v", restoreErr))
		}
		return err
	}
	w.rows[w.head] = v
	w.head = (w.head + 1) % w.size
	return nil
}

// Len is the number of rows currently in the frame.
func (w *MovingWindow) Len() int { return len(w.rows) }

// State returns a snapshot of the frame's accumulator.
func (w *MovingWindow) State() *State { return w.state.Clone() }

// Result finalizes the frame with operator op.
func (w *MovingWindow) Result(op string) (duration.NullDuration, error) {
	fin, ok := Operators[op]
	if !ok {
		return duration.NullDuration{}, fmt.Errorf("unknown operator %q", op)
	}
	return fin.Finalize(w.state)
}
