package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	aggstore "github.com/aevon-lab/aevon-duration/internal/aggregation"
	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
	coreagg "github.com/aevon-lab/aevon-duration/internal/core/aggregation"
	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/aevon-lab/aevon-duration/internal/core/storage"
)

const (
	defaultBucketSize     = "1m"
	rawQueryBatchSize     = 5000
	maxRawQueryIterations = 20 // Limit to prevent timeout/OOM when checkpoint is far behind
	maxMovingSamples      = 50000
)

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid aggregate query")

	granularities = map[string]time.Duration{
		"total": 0,
		"1m":    time.Minute,
		"1h":    time.Hour,
		"1d":    24 * time.Hour,
	}
)

type bucketOption struct {
	label string
	size  time.Duration
}

// Service implements the projection/query layer.
// It serves a hybrid read path: durable pre-aggregates + unflushed raw samples.
type Service struct {
	preAggStore aggstore.PreAggregateStore
	sampleStore storage.SampleStore
	rules       map[string]coreagg.AggregationRule
	buckets     []bucketOption // coarsest first
	nowFn       func() time.Time
}

// checkpointSnapshotReader allows projection reads to fetch checkpoint + aggregates
// from one SQL statement snapshot, eliminating interleaving races with batch flushes.
type checkpointSnapshotReader interface {
	QueryRangeWithCheckpoint(
		ctx context.Context,
		series string,
		ruleName string,
		bucketSize string,
		startTime time.Time,
		endTime time.Time,
	) ([]coreagg.AggregateState, int64, error)
}

// NewService creates a new projection service. bucketSizes lists the
// pre-aggregate bucket labels the batch jobs maintain; it defaults to "1m".
func NewService(
	preAggStore aggstore.PreAggregateStore,
	sampleStore storage.SampleStore,
	rules []coreagg.AggregationRule,
	bucketSizes []string,
) *Service {
	ruleMap := make(map[string]coreagg.AggregationRule, len(rules))
	for _, rule := range rules {
		ruleMap[rule.Name] = rule
	}

	if len(bucketSizes) == 0 {
		bucketSizes = []string{defaultBucketSize}
	}
	buckets := make([]bucketOption, 0, len(bucketSizes))
	for _, label := range bucketSizes {
		ws, err := coreagg.ParseWindowSize(label)
		if err != nil {
			slog.Warn("Ignoring invalid bucket size", "bucket_size", label, "error", err)
			continue
		}
		buckets = append(buckets, bucketOption{label: label, size: ws.Size})
	}
	if len(buckets) == 0 {
		buckets = append(buckets, bucketOption{label: defaultBucketSize, size: time.Minute})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].size > buckets[j].size })

	return &Service{
		preAggStore: preAggStore,
		sampleStore: sampleStore,
		rules:       ruleMap,
		buckets:     buckets,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// QueryAggregates retrieves aggregated durations for a time range.
func (s *Service) QueryAggregates(ctx context.Context, req AggregateQueryRequest) (*AggregateQueryResponse, error) {
	req, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	rule, err := s.ruleFor(req.Rule, req.Series)
	if err != nil {
		return nil, err
	}

	preAggregates, bucket, checkpoint, err := s.loadPreAggregates(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query pre-aggregates: %w", err)
	}

	rawAggregates, err := s.loadRawSamples(ctx, req, rule, bucket.size, checkpoint)
	if err != nil {
		return nil, fmt.Errorf("query raw sample tail: %w", err)
	}

	merged, err := mergeAggregateStates(preAggregates, rawAggregates)
	if err != nil {
		return nil, err
	}

	values, err := s.rollupForGranularity(merged, rule.Operator, req.Granularity, bucket.size, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	// Compute accurate data_through based on actual data
	dataThrough := s.computeDataThrough(req.End, merged, bucket.size)

	// Cap at current time - can't have data from the future
	dataThrough = minTime(dataThrough, s.nowFn())

	staleness := int(s.nowFn().Sub(dataThrough).Seconds())
	if staleness < 0 {
		staleness = 0
	}

	return &AggregateQueryResponse{
		Series:           req.Series,
		Rule:             req.Rule,
		Operator:         rule.Operator,
		Start:            req.Start,
		End:              req.End,
		Granularity:      req.Granularity,
		BucketSize:       bucket.label,
		DataThrough:      dataThrough,
		StalenessSeconds: staleness,
		Values:           values,
	}, nil
}

// QueryMoving evaluates the rule's row frame over every sample of the series
// observed in [start, end). The frame starts empty at start.
func (s *Service) QueryMoving(ctx context.Context, req MovingQueryRequest) (*MovingQueryResponse, error) {
	if req.Series == "" {
		return nil, invalidQueryf("series is required")
	}
	if req.Rule == "" {
		return nil, invalidQueryf("rule is required")
	}
	if !req.End.After(req.Start) {
		return nil, invalidQueryf("end time must be after start time")
	}
	req.Start, req.End = req.Start.UTC(), req.End.UTC()

	rule, err := s.ruleFor(req.Rule, req.Series)
	if err != nil {
		return nil, err
	}
	if rule.Frame <= 0 {
		return nil, invalidQueryf("rule %s has no moving frame", rule.Name)
	}

	samples, err := s.sampleStore.RetrieveSeriesRange(ctx, req.Series, req.Start, req.End, maxMovingSamples+1)
	if err != nil {
		return nil, fmt.Errorf("query series range: %w", err)
	}
	if len(samples) > maxMovingSamples {
		return nil, invalidQueryf("range holds more than %d samples", maxMovingSamples)
	}

	window, err := coreagg.NewMovingWindow(rule.Frame)
	if err != nil {
		return nil, invalidQueryf("%v", err)
	}

	points := make([]MovingPoint, 0, len(samples))
	for _, smp := range samples {
		if err := window.Push(duration.Some(smp.Value)); err != nil {
			return nil, fmt.Errorf("moving frame at sample %s: %w", smp.ID, err)
		}
		value, err := window.Result(rule.Operator)
		if err != nil {
			return nil, fmt.Errorf("moving frame at sample %s: %w", smp.ID, err)
		}
		points = append(points, MovingPoint{
			SampleID:   smp.ID,
			ObservedAt: smp.ObservedAt,
			Sample:     smp.Value,
			Value:      value,
			Rows:       window.Len(),
		})
	}

	return &MovingQueryResponse{
		Series:   req.Series,
		Rule:     rule.Name,
		Operator: rule.Operator,
		Frame:    rule.Frame,
		Points:   points,
	}, nil
}

func (s *Service) ruleFor(name, series string) (coreagg.AggregationRule, error) {
	rule, ok := s.rules[name]
	if !ok {
		return rule, invalidQueryf("unknown rule: %s", name)
	}
	if rule.Series != series {
		return rule, invalidQueryf("rule %s does not aggregate series %s", name, series)
	}
	return rule, nil
}

func (s *Service) normalizeAndValidate(req AggregateQueryRequest) (AggregateQueryRequest, error) {
	if req.Granularity == "" {
		req.Granularity = "total"
	}

	if req.Series == "" {
		return req, invalidQueryf("series is required")
	}
	if req.Rule == "" {
		return req, invalidQueryf("rule is required")
	}
	if !req.End.After(req.Start) {
		return req, invalidQueryf("end time must be after start time")
	}

	if _, ok := granularities[req.Granularity]; !ok {
		return req, invalidQueryf("invalid granularity: %s (must be total, 1m, 1h, or 1d)", req.Granularity)
	}

	req.Start, req.End = req.Start.UTC(), req.End.UTC()
	return req, nil
}

// bucketCandidates returns the maintained bucket sizes usable for req, coarsest
// first. A bucket qualifies when it tiles the granularity and the query range
// is aligned to it. The finest bucket is always the last resort.
func (s *Service) bucketCandidates(req AggregateQueryRequest) []bucketOption {
	step := granularities[req.Granularity]
	finest := s.buckets[len(s.buckets)-1]

	var candidates []bucketOption
	for _, b := range s.buckets {
		if step > 0 && step%b.size != 0 {
			continue
		}
		if !coreagg.BucketFor(req.Start, b.size).Equal(req.Start) || !coreagg.BucketFor(req.End, b.size).Equal(req.End) {
			continue
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 || candidates[len(candidates)-1] != finest {
		candidates = append(candidates, finest)
	}
	return candidates
}

func (s *Service) loadPreAggregates(ctx context.Context, req AggregateQueryRequest) ([]coreagg.AggregateState, bucketOption, int64, error) {
	candidates := s.bucketCandidates(req)
	snapshotReader, hasSnapshotReader := s.preAggStore.(checkpointSnapshotReader)

	for idx, bucket := range candidates {
		var (
			aggregates []coreagg.AggregateState
			checkpoint int64
			err        error
		)

		if hasSnapshotReader {
			aggregates, checkpoint, err = snapshotReader.QueryRangeWithCheckpoint(
				ctx,
				req.Series,
				req.Rule,
				bucket.label,
				req.Start,
				req.End,
			)
			if err != nil {
				return nil, bucket, 0, err
			}
		} else {
			aggregates, err = s.preAggStore.QueryRange(
				ctx,
				req.Series,
				req.Rule,
				bucket.label,
				req.Start,
				req.End,
			)
			if err != nil {
				return nil, bucket, 0, err
			}

			checkpoint, err = s.preAggStore.ReadCheckpoint(ctx, bucket.label)
			if err != nil {
				return nil, bucket, 0, fmt.Errorf("read checkpoint: %w", err)
			}
		}

		if len(aggregates) > 0 || idx == len(candidates)-1 {
			return aggregates, bucket, checkpoint, nil
		}
	}

	return nil, candidates[len(candidates)-1], 0, nil
}

func (s *Service) loadRawSamples(
	ctx context.Context,
	req AggregateQueryRequest,
	rule coreagg.AggregationRule,
	bucketDuration time.Duration,
	checkpoint int64,
) ([]coreagg.AggregateState, error) {
	buckets := make(map[time.Time]*coreagg.AggregateState)
	err := s.scanScopedRawSamples(ctx, checkpoint, req, func(samples []*v1.Sample) error {
		return s.foldRawSamplesIntoBuckets(samples, buckets, rule, bucketDuration)
	})
	if err != nil {
		return nil, err
	}

	results := make([]coreagg.AggregateState, 0, len(buckets))
	for _, state := range buckets {
		results = append(results, *state)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].WindowStart.Before(results[j].WindowStart)
	})

	return results, nil
}

func (s *Service) scanScopedRawSamples(
	ctx context.Context,
	cursor int64,
	req AggregateQueryRequest,
	consume func(samples []*v1.Sample) error,
) error {
	iterations := 0
	totalSamples := 0

	for {
		// Safety limit: prevent unbounded scanning if checkpoint is far behind
		if iterations >= maxRawQueryIterations {
			slog.Warn("Raw sample tail scan reached maximum iteration limit",
				"series", req.Series,
				"iterations", iterations,
				"samples_scanned", totalSamples,
				"max_iterations", maxRawQueryIterations,
			)
			return fmt.Errorf("raw sample scan exceeded maximum iterations (%d batches, %d samples total) - aggregation may be too far behind",
				maxRawQueryIterations, totalSamples)
		}

		samples, queryErr := s.sampleStore.RetrieveScopedSamplesAfterCursor(
			ctx,
			cursor,
			req.Series,
			req.Start,
			req.End,
			rawQueryBatchSize,
		)
		if queryErr != nil {
			return queryErr
		}
		if len(samples) == 0 {
			return nil
		}

		if err := consume(samples); err != nil {
			return err
		}
		totalSamples += len(samples)
		iterations++

		cursor = samples[len(samples)-1].IngestSeq
		if len(samples) < rawQueryBatchSize {
			return nil
		}
	}
}

func (s *Service) foldRawSamplesIntoBuckets(
	samples []*v1.Sample,
	buckets map[time.Time]*coreagg.AggregateState,
	rule coreagg.AggregationRule,
	bucketDuration time.Duration,
) error {
	for _, smp := range samples {
		windowStart := coreagg.BucketFor(smp.ObservedAt.UTC(), bucketDuration)

		bucket, exists := buckets[windowStart]
		if !exists {
			bucket = &coreagg.AggregateState{
				Operator:        rule.Operator,
				RuleFingerprint: rule.Fingerprint,
				WindowStart:     windowStart,
			}
			buckets[windowStart] = bucket
		}

		if _, err := coreagg.Transition(&bucket.State, duration.Some(smp.Value)); err != nil {
			return fmt.Errorf("fold sample %s: %w", smp.ID, err)
		}
		bucket.LastSampleID = smp.ID
		bucket.UpdatedAt = maxTime(bucket.UpdatedAt, resolveSampleUpdatedAt(smp, s.nowFn()))
	}
	return nil
}

func (s *Service) rollupForGranularity(
	aggregates []coreagg.AggregateState,
	operator string,
	granularity string,
	bucketDuration time.Duration,
	start, end time.Time,
) ([]AggregateValue, error) {
	step := granularities[granularity]
	switch {
	case step == 0:
		return s.rollupTotal(aggregates, operator, start, end)
	case step == bucketDuration:
		return s.convertToValues(aggregates, bucketDuration)
	default:
		return s.rollupWindows(aggregates, operator, step, start, end)
	}
}

func (s *Service) computeDataThrough(end time.Time, aggregates []coreagg.AggregateState, bucketDuration time.Duration) time.Time {
	if len(aggregates) == 0 {
		// Empty result still means query is complete up to requested end.
		return end
	}

	var dataThrough time.Time
	for _, agg := range aggregates {
		windowEnd := agg.WindowStart.Add(bucketDuration)
		if windowEnd.After(dataThrough) {
			dataThrough = windowEnd
		}
	}
	if dataThrough.After(end) {
		return end
	}
	return dataThrough
}

// mergeAggregateStates combines the raw tail into the durable buckets.
func mergeAggregateStates(base, tail []coreagg.AggregateState) ([]coreagg.AggregateState, error) {
	merged := make(map[time.Time]coreagg.AggregateState, len(base)+len(tail))
	for _, state := range base {
		merged[state.WindowStart] = state
	}

	for _, incoming := range tail {
		current, exists := merged[incoming.WindowStart]
		if !exists {
			merged[incoming.WindowStart] = incoming
			continue
		}

		if _, err := coreagg.Combine(&current.State, &incoming.State); err != nil {
			return nil, fmt.Errorf("merge bucket %s: %w", incoming.WindowStart.Format(time.RFC3339), err)
		}
		if incoming.LastSampleID != "" {
			current.LastSampleID = incoming.LastSampleID
		}
		if incoming.RuleFingerprint != "" {
			current.RuleFingerprint = incoming.RuleFingerprint
		}
		current.UpdatedAt = maxTime(current.UpdatedAt, incoming.UpdatedAt)
		merged[incoming.WindowStart] = current
	}

	results := make([]coreagg.AggregateState, 0, len(merged))
	for _, state := range merged {
		results = append(results, state)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].WindowStart.Before(results[j].WindowStart)
	})

	return results, nil
}

func resolveSampleUpdatedAt(smp *v1.Sample, fallback time.Time) time.Time {
	if smp != nil && !smp.IngestedAt.IsZero() {
		return smp.IngestedAt.UTC()
	}
	return fallback.UTC()
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
