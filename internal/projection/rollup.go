package projection

import (
	"fmt"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
)

// rollupTotal combines every bucket into a single value covering [start, end).
func (s *Service) rollupTotal(
	aggregates []aggregation.AggregateState,
	operator string,
	start, end time.Time,
) ([]AggregateValue, error) {
	var total *aggregation.State
	for i := range aggregates {
		var err error
		if total, err = aggregation.Combine(total, &aggregates[i].State); err != nil {
			return nil, fmt.Errorf("rollup total: %w", err)
		}
	}

	value, err := finalizeWindow(operator, total, start, end)
	if err != nil {
		return nil, err
	}
	return []AggregateValue{value}, nil
}

// convertToValues emits one value per stored bucket.
func (s *Service) convertToValues(aggregates []aggregation.AggregateState, bucketDuration time.Duration) ([]AggregateValue, error) {
	if bucketDuration <= 0 {
		bucketDuration = time.Minute
	}

	values := make([]AggregateValue, 0, len(aggregates))
	for _, agg := range aggregates {
		res, err := agg.Result()
		if err != nil {
			return nil, fmt.Errorf("finalize bucket %s: %w", agg.WindowStart.Format(time.RFC3339), err)
		}
		values = append(values, AggregateValue{
			WindowStart:  agg.WindowStart,
			WindowEnd:    agg.WindowStart.Add(bucketDuration),
			Value:        res.Value,
			Seconds:      secondsOf(res.Value),
			Observations: res.Observations,
		})
	}

	return values, nil
}

// rollupWindows groups buckets into step-sized windows and emits every window
// in the range, including empty ones.
func (s *Service) rollupWindows(
	aggregates []aggregation.AggregateState,
	operator string,
	step time.Duration,
	start, end time.Time,
) ([]AggregateValue, error) {
	grouped := make(map[time.Time]*aggregation.State)
	for i := range aggregates {
		windowStart := aggregation.BucketFor(aggregates[i].WindowStart, step)
		combined, err := aggregation.Combine(grouped[windowStart], &aggregates[i].State)
		if err != nil {
			return nil, fmt.Errorf("rollup window %s: %w", windowStart.Format(time.RFC3339), err)
		}
		grouped[windowStart] = combined
	}

	var results []AggregateValue
	for current := aggregation.BucketFor(start, step); current.Before(end); current = current.Add(step) {
		value, err := finalizeWindow(operator, grouped[current], current, current.Add(step))
		if err != nil {
			return nil, err
		}
		results = append(results, value)
	}

	return results, nil
}

func finalizeWindow(operator string, state *aggregation.State, start, end time.Time) (AggregateValue, error) {
	fin, ok := aggregation.Operators[operator]
	if !ok {
		return AggregateValue{}, fmt.Errorf("unknown rule operator: %s", operator)
	}
	value, err := fin.Finalize(state)
	if err != nil {
		return AggregateValue{}, fmt.Errorf("finalize window %s: %w", start.Format(time.RFC3339), err)
	}

	var observations int64
	if state != nil {
		observations = state.Observations()
	}
	return AggregateValue{
		WindowStart:  start,
		WindowEnd:    end,
		Value:        value,
		Seconds:      secondsOf(value),
		Observations: observations,
	}, nil
}
