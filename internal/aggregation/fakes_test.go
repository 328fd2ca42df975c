package aggregation

import (
	"context"
	"errors"
	"sync"
	"time"

	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
)

// fakeSampleStore serves samples from memory in ingest_seq order.
type fakeSampleStore struct {
	samples []*v1.Sample
}

func (m *fakeSampleStore) SaveSample(_ context.Context, sample *v1.Sample) error {
	sample.IngestSeq = int64(len(m.samples) + 1)
	m.samples = append(m.samples, sample)
	return nil
}

func (m *fakeSampleStore) RetrieveSamplesAfterCursor(_ context.Context, cursor int64, limit int) ([]*v1.Sample, error) {
	var result []*v1.Sample
	for _, s := range m.samples {
		if s.IngestSeq > cursor {
			result = append(result, s)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *fakeSampleStore) RetrieveScopedSamplesAfterCursor(
	_ context.Context, cursor int64, series string, start, end time.Time, limit int,
) ([]*v1.Sample, error) {
	return nil, nil
}

func (m *fakeSampleStore) RetrieveSeriesRange(
	_ context.Context, series string, start, end time.Time, limit int,
) ([]*v1.Sample, error) {
	return nil, nil
}

// fakePreAggStore mimics the postgres store: Flush combines partials into the
// durable state, skips stale cursors, and applies nothing on error.
type fakePreAggStore struct {
	mu          sync.Mutex
	checkpoints map[string]int64
	aggregates  map[aggregation.AggregateKey]aggregation.AggregateState
	flushes     int
}

func newFakePreAggStore() *fakePreAggStore {
	return &fakePreAggStore{
		checkpoints: make(map[string]int64),
		aggregates:  make(map[aggregation.AggregateKey]aggregation.AggregateState),
	}
}

func (m *fakePreAggStore) ReadCheckpoint(_ context.Context, bucketSize string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if bucketSize == "" {
		bucketSize = "1m"
	}
	return m.checkpoints[bucketSize], nil
}

func (m *fakePreAggStore) Flush(
	_ context.Context,
	aggregates map[aggregation.AggregateKey]aggregation.AggregateState,
	cursor int64,
	bucketSize string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if bucketSize == "" {
		bucketSize = "1m"
	}
	if cursor <= m.checkpoints[bucketSize] {
		return nil
	}

	staged := make(map[aggregation.AggregateKey]aggregation.AggregateState, len(aggregates))
	for k, incoming := range aggregates {
		if k.BucketSize != bucketSize {
			return errors.New("aggregate bucket mismatch")
		}
		durable, ok := m.aggregates[k]
		if ok {
			merged, err := aggregation.Combine(durable.State.Clone(), &incoming.State)
			if err != nil {
				return err
			}
			incoming.State = *merged
		}
		staged[k] = incoming
	}
	for k, v := range staged {
		m.aggregates[k] = v
	}
	m.checkpoints[bucketSize] = cursor
	m.flushes++
	return nil
}

func (m *fakePreAggStore) LoadAggregates(context.Context) (map[aggregation.AggregateKey]aggregation.AggregateState, error) {
	return m.aggregates, nil
}

func (m *fakePreAggStore) QueryRange(
	_ context.Context, series, ruleName, bucketSize string, start, end time.Time,
) ([]aggregation.AggregateState, error) {
	var results []aggregation.AggregateState
	for k, v := range m.aggregates {
		if k.Series != series || k.RuleName != ruleName || k.BucketSize != bucketSize {
			continue
		}
		if !k.WindowStart.Before(start) && k.WindowStart.Before(end) {
			results = append(results, v)
		}
	}
	return results, nil
}
