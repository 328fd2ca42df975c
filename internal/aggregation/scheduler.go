package aggregation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/aevon-lab/aevon-duration/internal/core/storage"
)

const (
	defaultMaxConsecutiveBatches = 100
	defaultShutdownDrainTimeout  = 30 * time.Second
)

// Scheduler runs batch aggregation jobs for one bucket size on a periodic interval.
// It is stateless: each tick independently fetches samples since the last checkpoint.
type Scheduler struct {
	interval    time.Duration
	sampleStore storage.SampleStore
	preAggStore PreAggregateStore
	rules       []aggregation.AggregationRule
	opts        BatchJobParameter

	maxBatches      int
	shutdownTimeout time.Duration
}

// NewScheduler creates a cron scheduler for one bucket_size stream.
func NewScheduler(
	interval time.Duration,
	sampleStore storage.SampleStore,
	preAggStore PreAggregateStore,
	rules []aggregation.AggregationRule,
	opts BatchJobParameter,
) *Scheduler {
	return &Scheduler{
		interval:        interval,
		sampleStore:     sampleStore,
		preAggStore:     preAggStore,
		rules:           rules,
		opts:            opts.normalized(),
		maxBatches:      defaultMaxConsecutiveBatches,
		shutdownTimeout: defaultShutdownDrainTimeout,
	}
}

// BucketLabel is the bucket size this scheduler maintains.
func (s *Scheduler) BucketLabel() string { return s.opts.BucketLabel }

// Start begins periodic batch aggregation and runs until ctx is cancelled.
// A final drain runs on shutdown with its own deadline.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting batch aggregation scheduler",
		"interval", s.interval,
		"bucket_size", s.opts.BucketLabel,
		"batch_size", s.opts.BatchSize,
		"workers", s.opts.WorkerCount,
	)

	// Catch up with any backlog before the first tick.
	s.logDrain(s.Drain(ctx))

	for {
		select {
		case <-ticker.C:
			s.logDrain(s.Drain(ctx))
		case <-ctx.Done():
			slog.Info("[Scheduler] Running final drain before shutdown", "bucket_size", s.opts.BucketLabel)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			s.logDrain(s.Drain(shutdownCtx))

			slog.Info("[Scheduler] Stopped", "bucket_size", s.opts.BucketLabel)
			return nil
		}
	}
}

// Drain processes batches until one comes back short, the context ends, or
// the consecutive batch limit is hit. The first failing batch stops the drain;
// its checkpoint is not advanced, so the next drain retries it.
func (s *Scheduler) Drain(ctx context.Context) error {
	for batch := 1; batch <= s.maxBatches; batch++ {
		if err := ctx.Err(); err != nil {
			slog.Info("[Scheduler] Drain interrupted by context cancellation",
				"bucket_size", s.opts.BucketLabel,
				"batches_processed", batch-1,
			)
			return nil
		}

		processed, err := RunBatchAggregationWithOptionsReturningCount(ctx, s.sampleStore, s.preAggStore, s.rules, s.opts)
		if err != nil {
			return err
		}
		if processed < s.opts.BatchSize {
			if batch > 1 {
				slog.Info("[Scheduler] Backlog drained",
					"bucket_size", s.opts.BucketLabel,
					"total_batches", batch,
				)
			}
			return nil
		}

		slog.Debug("[Scheduler] Backlog detected, continuing to drain",
			"bucket_size", s.opts.BucketLabel,
			"batches_so_far", batch,
		)
	}

	slog.Warn("[Scheduler] Max consecutive batches reached, pausing drain until next tick",
		"bucket_size", s.opts.BucketLabel,
		"max_batches", s.maxBatches,
	)
	return nil
}

func (s *Scheduler) logDrain(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, duration.ErrOutOfRange) {
		// Retrying will overflow again until the offending bucket is repaired.
		slog.Error("[Scheduler] Batch aggregation overflowed the duration range; checkpoint held",
			"error", err,
			"bucket_size", s.opts.BucketLabel,
		)
		return
	}
	slog.Error("[Scheduler] Batch aggregation failed",
		"error", err,
		"bucket_size", s.opts.BucketLabel,
	)
}
