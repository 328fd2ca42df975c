package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/aevon-lab/aevon-duration/internal/core/partition"
	"github.com/aevon-lab/aevon-duration/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 50000
	defaultWorkerCount = 10
)

// BatchJobParameter controls throughput and aggregation behavior for a batch run.
type BatchJobParameter struct {
	BatchSize   int
	WorkerCount int
	BucketSize  time.Duration
	BucketLabel string
}

// DefaultBatchJobOptions returns safe defaults for cron-based processing.
func DefaultBatchJobOptions() BatchJobParameter {
	return BatchJobParameter{
		BatchSize:   defaultBatchSize,
		WorkerCount: defaultWorkerCount,
		BucketSize:  time.Minute,
		BucketLabel: "1m",
	}
}

func (o BatchJobParameter) normalized() BatchJobParameter {
	n := o
	if n.BatchSize <= 0 {
		n.BatchSize = defaultBatchSize
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.BucketSize <= 0 {
		n.BucketSize = time.Minute
	}
	if n.BucketLabel == "" {
		n.BucketLabel = windowSizeLabel(n.BucketSize)
	}
	return n
}

// RunBatchAggregation processes samples since last checkpoint and updates aggregates.
// Uses default options: 50K batch size, 10 workers, 1-minute buckets.
func RunBatchAggregation(
	ctx context.Context,
	sampleStore storage.SampleStore,
	preAggStore PreAggregateStore,
	rules []aggregation.AggregationRule,
) error {
	_, err := RunBatchAggregationWithOptionsReturningCount(ctx, sampleStore, preAggStore, rules, DefaultBatchJobOptions())
	return err
}

// RunBatchAggregationWithOptions processes samples since last checkpoint with configurable
// batch size, worker count and bucket duration.
func RunBatchAggregationWithOptions(
	ctx context.Context,
	sampleStore storage.SampleStore,
	preAggStore PreAggregateStore,
	rules []aggregation.AggregationRule,
	jobParameter BatchJobParameter,
) error {
	_, err := RunBatchAggregationWithOptionsReturningCount(ctx, sampleStore, preAggStore, rules, jobParameter)
	return err
}

// RunBatchAggregationWithOptionsReturningCount runs one batch and returns the
// number of samples processed. The scheduler uses the count to decide whether
// there is more backlog to drain.
//
// If any bucket overflows the duration range the whole batch fails and the
// checkpoint stays where it was.
func RunBatchAggregationWithOptionsReturningCount(
	ctx context.Context,
	sampleStore storage.SampleStore,
	preAggStore PreAggregateStore,
	rules []aggregation.AggregationRule,
	opts BatchJobParameter,
) (int, error) {
	opts = opts.normalized()

	cursor, err := preAggStore.ReadCheckpoint(ctx, opts.BucketLabel)
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}

	slog.Debug("[BatchJob] Starting batch aggregation",
		"cursor", cursor,
		"bucket_size", opts.BucketLabel,
		"batch_size", opts.BatchSize,
		"workers", opts.WorkerCount,
	)

	samples, err := sampleStore.RetrieveSamplesAfterCursor(ctx, cursor, opts.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("query samples: %w", err)
	}

	if len(samples) == 0 {
		slog.Debug("[BatchJob] No new samples to process", "bucket_size", opts.BucketLabel)
		return 0, nil
	}

	ruleMap := toRuleMap(rules)
	aggregates, err := buildPreAggregatesConcurrently(ctx, samples, ruleMap, opts)
	if err != nil {
		return 0, fmt.Errorf("build aggregates: %w", err)
	}

	newCursor := samples[len(samples)-1].IngestSeq
	if err := preAggStore.Flush(ctx, aggregates, newCursor, opts.BucketLabel); err != nil {
		return 0, fmt.Errorf("flush aggregates: %w", err)
	}

	slog.Info("[BatchJob] Batch complete",
		"samples_processed", len(samples),
		"aggregates_computed", len(aggregates),
		"cursor_advanced", fmt.Sprintf("%d -> %d", cursor, newCursor),
		"bucket_size", opts.BucketLabel,
	)

	return len(samples), nil
}

func toRuleMap(rules []aggregation.AggregationRule) map[string][]aggregation.AggregationRule {
	ruleMap := make(map[string][]aggregation.AggregationRule)
	for _, r := range rules {
		if !aggregation.ValidOperator(r.Operator) {
			slog.Warn("[BatchJob] Skip rule with unknown operator", "rule", r.Name, "operator", r.Operator)
			continue
		}
		ruleMap[r.Series] = append(ruleMap[r.Series], r)
	}
	return ruleMap
}

// partial is a worker's contribution to one bucket. The state travels in its
// serialized form, the same bytes that are persisted.
type partial struct {
	key          aggregation.AggregateKey
	operator     string
	fingerprint  string
	lastSampleID string
	lastSeq      int64
	state        []byte
}

// buildPreAggregatesConcurrently splits the batch into contiguous ingest_seq
// chunks, one per worker. A busy series spans several chunks, so the same
// bucket gets partial states from different workers; the coordinator
// decodes them and combines them into one aggregate per bucket.
func buildPreAggregatesConcurrently(
	ctx context.Context,
	samples []*v1.Sample,
	ruleMap map[string][]aggregation.AggregationRule,
	opts BatchJobParameter,
) (map[aggregation.AggregateKey]aggregation.AggregateState, error) {
	chunks := splitChunks(samples, opts.WorkerCount)
	perChunk := make([][]partial, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.WorkerCount)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local, err := buildChunkPartials(chunk, ruleMap, opts)
			if err != nil {
				return err
			}
			perChunk[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Combine in chunk order so results do not depend on worker scheduling.
	var partials []partial
	for _, local := range perChunk {
		partials = append(partials, local...)
	}

	now := time.Now().UTC()
	merged := make(map[aggregation.AggregateKey]aggregation.AggregateState, len(partials))
	latest := make(map[aggregation.AggregateKey]int64, len(partials))
	for _, p := range partials {
		state, err := aggregation.Deserialize(p.state)
		if err != nil {
			return nil, fmt.Errorf("decode partial %v: %w", p.key, err)
		}

		existing, ok := merged[p.key]
		if !ok {
			merged[p.key] = aggregation.AggregateState{
				Operator:        p.operator,
				State:           *state,
				LastSampleID:    p.lastSampleID,
				RuleFingerprint: p.fingerprint,
				WindowStart:     p.key.WindowStart,
				UpdatedAt:       now,
			}
			latest[p.key] = p.lastSeq
			continue
		}

		if _, err := aggregation.Combine(&existing.State, state); err != nil {
			return nil, fmt.Errorf("combine %v: %w", p.key, err)
		}
		if p.lastSeq > latest[p.key] {
			existing.LastSampleID = p.lastSampleID
			latest[p.key] = p.lastSeq
		}
		merged[p.key] = existing
	}

	return merged, nil
}

// splitChunks cuts samples into at most n contiguous, near-equal chunks.
func splitChunks(samples []*v1.Sample, n int) [][]*v1.Sample {
	if n > len(samples) {
		n = len(samples)
	}
	chunks := make([][]*v1.Sample, 0, n)
	for i := 0; i < n; i++ {
		lo, hi := i*len(samples)/n, (i+1)*len(samples)/n
		chunks = append(chunks, samples[lo:hi])
	}
	return chunks
}

// buildChunkPartials groups one chunk by series and builds its partials.
func buildChunkPartials(
	samples []*v1.Sample,
	ruleMap map[string][]aggregation.AggregationRule,
	opts BatchJobParameter,
) ([]partial, error) {
	groups := make(map[string][]*v1.Sample)
	order := make([]string, 0)
	for _, s := range samples {
		if _, ok := ruleMap[s.Series]; !ok {
			continue
		}
		if _, seen := groups[s.Series]; !seen {
			order = append(order, s.Series)
		}
		groups[s.Series] = append(groups[s.Series], s)
	}

	var out []partial
	for _, series := range order {
		local, err := buildSeriesPartials(series, groups[series], ruleMap[series], opts)
		if err != nil {
			return nil, err
		}
		out = append(out, local...)
	}
	return out, nil
}

// buildSeriesPartials accumulates one series' samples into per-(rule, bucket) states.
func buildSeriesPartials(
	series string,
	samples []*v1.Sample,
	rules []aggregation.AggregationRule,
	opts BatchJobParameter,
) ([]partial, error) {
	type bucket struct {
		partial
		acc *aggregation.State
	}
	buckets := make(map[aggregation.AggregateKey]*bucket)
	order := make([]aggregation.AggregateKey, 0)
	partitionID := partition.For(series)

	for _, s := range samples {
		windowStart := aggregation.BucketFor(s.ObservedAt.UTC(), opts.BucketSize)
		for _, rule := range rules {
			key := aggregation.AggregateKey{
				PartitionID: partitionID,
				Series:      series,
				RuleName:    rule.Name,
				BucketSize:  opts.BucketLabel,
				WindowStart: windowStart,
			}

			b, ok := buckets[key]
			if !ok {
				b = &bucket{partial: partial{key: key, operator: rule.Operator, fingerprint: rule.Fingerprint}}
				buckets[key] = b
				order = append(order, key)
			}

			var err error
			if b.acc, err = aggregation.Transition(b.acc, duration.Some(s.Value)); err != nil {
				return nil, fmt.Errorf("rule %s series %s bucket %s: %w", rule.Name, series, windowStart, err)
			}
			if s.IngestSeq >= b.lastSeq {
				b.lastSeq = s.IngestSeq
				b.lastSampleID = s.ID
			}
		}
	}

	out := make([]partial, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.state = aggregation.Serialize(b.acc)
		out = append(out, b.partial)
	}
	return out, nil
}

func windowSizeLabel(d time.Duration) string {
	if d%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	}
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", d/time.Hour)
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return d.String()
}
