package aggregation

import (
	"context"
	"testing"
	"time"

	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeries = "checkout.latency"

var latencyRules = []aggregation.AggregationRule{
	{Name: "total_latency", Series: testSeries, Operator: aggregation.OpSum, Fingerprint: "fp-sum"},
	{Name: "avg_latency", Series: testSeries, Operator: aggregation.OpAvg, Fingerprint: "fp-avg"},
}

func newSamples(at time.Time, values ...duration.Duration) []*v1.Sample {
	samples := make([]*v1.Sample, len(values))
	for i, v := range values {
		samples[i] = &v1.Sample{
			ID:         "s-" + string(rune('a'+i)),
			Series:     testSeries,
			Value:      v,
			ObservedAt: at,
			IngestSeq:  int64(i + 1),
		}
	}
	return samples
}

func resultFor(t *testing.T, store *fakePreAggStore, rule string) aggregation.Result {
	t.Helper()
	for k, state := range store.aggregates {
		if k.RuleName == rule {
			res, err := state.Result()
			require.NoError(t, err)
			return res
		}
	}
	t.Fatalf("no aggregate for rule %s", rule)
	return aggregation.Result{}
}

func TestBatchJob_NoSamples(t *testing.T) {
	ctx := context.Background()
	preAggStore := newFakePreAggStore()

	err := RunBatchAggregation(ctx, &fakeSampleStore{}, preAggStore, latencyRules)
	require.NoError(t, err)

	assert.Equal(t, int64(0), preAggStore.checkpoints["1m"])
	assert.Empty(t, preAggStore.aggregates)
	assert.Zero(t, preAggStore.flushes)
}

func TestBatchJob_SumAndAverage(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	sampleStore := &fakeSampleStore{samples: newSamples(now, duration.Hour, 2*duration.Hour, 3*duration.Hour)}
	preAggStore := newFakePreAggStore()

	err := RunBatchAggregation(ctx, sampleStore, preAggStore, latencyRules)
	require.NoError(t, err)

	assert.Equal(t, int64(3), preAggStore.checkpoints["1m"])
	require.Len(t, preAggStore.aggregates, 2)

	sum := resultFor(t, preAggStore, "total_latency")
	assert.Equal(t, duration.Some(6*duration.Hour), sum.Value)
	assert.Equal(t, int64(3), sum.Observations)

	avg := resultFor(t, preAggStore, "avg_latency")
	assert.Equal(t, duration.Some(2*duration.Hour), avg.Value)

	for k, state := range preAggStore.aggregates {
		assert.Equal(t, now, k.WindowStart)
		assert.Equal(t, "s-c", state.LastSampleID)
	}
}

func TestBatchJob_InfinitiesAreCounted(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	sampleStore := &fakeSampleStore{samples: newSamples(now, duration.NoEnd, duration.Hour)}
	preAggStore := newFakePreAggStore()

	require.NoError(t, RunBatchAggregation(ctx, sampleStore, preAggStore, latencyRules))

	for _, state := range preAggStore.aggregates {
		assert.Equal(t, aggregation.State{Count: 1, Sum: duration.Hour, PosInfCount: 1}, state.State)
	}
	assert.Equal(t, duration.Some(duration.NoEnd), resultFor(t, preAggStore, "avg_latency").Value)
}

func TestBatchJob_MultipleWindows(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	samples := newSamples(now, duration.Second, 3*duration.Second)
	samples[1].ObservedAt = now.Add(2 * time.Minute)

	preAggStore := newFakePreAggStore()
	rules := latencyRules[:1]
	require.NoError(t, RunBatchAggregation(ctx, &fakeSampleStore{samples: samples}, preAggStore, rules))

	require.Len(t, preAggStore.aggregates, 2)
	for k, state := range preAggStore.aggregates {
		assert.Equal(t, int64(1), state.State.Count)
		if k.WindowStart.Equal(now) {
			assert.Equal(t, duration.Second, state.State.Sum)
		} else {
			assert.Equal(t, 3*duration.Second, state.State.Sum)
		}
	}
}

func TestBatchJob_IgnoresSeriesWithoutRules(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	samples := newSamples(now, duration.Second, duration.Second)
	samples[1].Series = "unrelated.series"

	preAggStore := newFakePreAggStore()
	require.NoError(t, RunBatchAggregation(ctx, &fakeSampleStore{samples: samples}, preAggStore, latencyRules))

	assert.Equal(t, int64(2), preAggStore.checkpoints["1m"], "checkpoint passes unmatched samples")
	for k, state := range preAggStore.aggregates {
		assert.Equal(t, testSeries, k.Series)
		assert.Equal(t, int64(1), state.State.Count)
	}
}

func TestBatchJob_IncrementalMatchesSingleBatch(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	values := []duration.Duration{duration.Minute, duration.NoBegin, 5 * duration.Second, duration.Hour, -duration.Second}

	single := newFakePreAggStore()
	require.NoError(t, RunBatchAggregation(ctx, &fakeSampleStore{samples: newSamples(now, values...)}, single, latencyRules))

	incremental := newFakePreAggStore()
	opts := DefaultBatchJobOptions()
	opts.BatchSize = 2
	opts.WorkerCount = 3
	sched := NewScheduler(time.Minute, &fakeSampleStore{samples: newSamples(now, values...)}, incremental, latencyRules, opts)
	require.NoError(t, sched.Drain(ctx))

	assert.Equal(t, 3, incremental.flushes)
	assert.Equal(t, int64(5), incremental.checkpoints["1m"])
	require.Equal(t, len(single.aggregates), len(incremental.aggregates))
	for k, want := range single.aggregates {
		got, ok := incremental.aggregates[k]
		require.True(t, ok, "missing %v", k)
		assert.Equal(t, want.State, got.State)
	}
}

func TestBatchJob_ReplayAfterCheckpointIsSkipped(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	sampleStore := &fakeSampleStore{samples: newSamples(now, duration.Second)}
	preAggStore := newFakePreAggStore()

	require.NoError(t, RunBatchAggregation(ctx, sampleStore, preAggStore, latencyRules))
	require.NoError(t, RunBatchAggregation(ctx, sampleStore, preAggStore, latencyRules))

	assert.Equal(t, 1, preAggStore.flushes)
	assert.Equal(t, duration.Some(duration.Second), resultFor(t, preAggStore, "total_latency").Value)
}

func TestBatchJob_OverflowHoldsCheckpoint(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	sampleStore := &fakeSampleStore{samples: newSamples(now, duration.NoEnd-10, 20)}
	preAggStore := newFakePreAggStore()

	_, err := RunBatchAggregationWithOptionsReturningCount(ctx, sampleStore, preAggStore, latencyRules, DefaultBatchJobOptions())
	require.ErrorIs(t, err, duration.ErrOutOfRange)

	assert.Equal(t, int64(0), preAggStore.checkpoints["1m"])
	assert.Empty(t, preAggStore.aggregates)
}

func TestBatchJob_OverflowAgainstDurableState(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	sampleStore := &fakeSampleStore{samples: newSamples(now, duration.NoEnd-10)}
	preAggStore := newFakePreAggStore()
	rules := latencyRules[:1]

	require.NoError(t, RunBatchAggregation(ctx, sampleStore, preAggStore, rules))
	before := resultFor(t, preAggStore, "total_latency")

	sampleStore.samples = append(sampleStore.samples, &v1.Sample{
		ID: "s-late", Series: testSeries, Value: 20, ObservedAt: now, IngestSeq: 2,
	})
	err := RunBatchAggregation(ctx, sampleStore, preAggStore, rules)
	require.ErrorIs(t, err, duration.ErrOutOfRange)

	assert.Equal(t, int64(1), preAggStore.checkpoints["1m"])
	assert.Equal(t, before, resultFor(t, preAggStore, "total_latency"))
}

func TestBatchJob_BucketScopedCheckpoint(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Hour)
	samples := newSamples(now, duration.Second, duration.Second)
	samples[1].ObservedAt = now.Add(30 * time.Second)
	sampleStore := &fakeSampleStore{samples: samples}
	preAggStore := newFakePreAggStore()
	rules := latencyRules[:1]

	err := RunBatchAggregationWithOptions(ctx, sampleStore, preAggStore, rules, BatchJobParameter{
		BucketSize:  time.Minute,
		BucketLabel: "1m",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), preAggStore.checkpoints["1m"])

	err = RunBatchAggregationWithOptions(ctx, sampleStore, preAggStore, rules, BatchJobParameter{
		BucketSize: time.Hour,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), preAggStore.checkpoints["1h"])

	var has1m, has1h bool
	for key := range preAggStore.aggregates {
		has1m = has1m || key.BucketSize == "1m"
		has1h = has1h || key.BucketSize == "1h"
	}
	require.True(t, has1m)
	require.True(t, has1h)
}

func TestSplitChunks(t *testing.T) {
	samples := newSamples(time.Now().UTC(), 1, 2, 3, 4, 5)

	chunks := splitChunks(samples, 2)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[1], 3)

	assert.Len(t, splitChunks(samples, 10), 5, "never more chunks than samples")
	assert.Empty(t, splitChunks(nil, 3))
}

func TestBuildPreAggregates_CombinesPartialsAcrossWorkers(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Minute)
	values := []duration.Duration{duration.Hour, duration.NoEnd, 2 * duration.Second, -duration.Minute, duration.NoBegin, 30 * duration.Second}
	samples := newSamples(now, values...)
	ruleMap := toRuleMap(latencyRules[:1])

	opts := DefaultBatchJobOptions()
	opts.WorkerCount = 3

	// Every chunk holds the same series and bucket, so each contributes a partial for one key.
	for _, chunk := range splitChunks(samples, opts.WorkerCount) {
		local, err := buildChunkPartials(chunk, ruleMap, opts)
		require.NoError(t, err)
		require.Len(t, local, 1)
	}

	merged, err := buildPreAggregatesConcurrently(ctx, samples, ruleMap, opts)
	require.NoError(t, err)
	require.Len(t, merged, 1)

	var want aggregation.State
	for _, v := range values {
		require.NoError(t, want.Accumulate(v))
	}
	for _, got := range merged {
		assert.Equal(t, want, got.State)
		assert.Equal(t, "s-f", got.LastSampleID)
	}
}

func TestWindowSizeLabel(t *testing.T) {
	assert.Equal(t, "1m", windowSizeLabel(time.Minute))
	assert.Equal(t, "10m", windowSizeLabel(10*time.Minute))
	assert.Equal(t, "1h", windowSizeLabel(time.Hour))
	assert.Equal(t, "1d", windowSizeLabel(24*time.Hour))
	assert.Equal(t, "30s", windowSizeLabel(30*time.Second))
}
