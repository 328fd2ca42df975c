package aggregation

import (
	"context"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
)

// PreAggregateStore is the interface for durable pre-aggregate persistence.
// The batch job flushes combined partial states through this interface.
//
// Contract: Flush and checkpoint write happen in a single database
// transaction. A flush whose checkpoint is lost would double-count on replay.
//
// Checkpoint invariant: cursor N means the durable states include all samples
// up to ingest_seq N, and none after.
//
// Checkpoints are tracked by bucket_size so each aggregation bucket can run independently.
type PreAggregateStore interface {
	// Flush combines every partial state into its durable bucket (Combine, not
	// overwrite) and writes the bucket-scoped checkpoint atomically.
	// cursor is the last ingest_seq included in this state snapshot.
	Flush(
		ctx context.Context,
		aggregates map[aggregation.AggregateKey]aggregation.AggregateState,
		cursor int64,
		bucketSize string,
	) error

	// ReadCheckpoint returns the bucket-scoped checkpoint cursor.
	// Returns 0 if no checkpoint exists yet (meaning "replay from beginning").
	ReadCheckpoint(ctx context.Context, bucketSize string) (int64, error)

	// LoadAggregates loads all durable pre-aggregates from the database.
	LoadAggregates(ctx context.Context) (map[aggregation.AggregateKey]aggregation.AggregateState, error)

	// QueryRange fetches pre-aggregates for a time range.
	// Used by the projection API. Returns aggregates ordered by window_start ASC,
	// filtered by series, rule, and time range.
	QueryRange(
		ctx context.Context,
		series string,
		ruleName string,
		bucketSize string,
		startTime time.Time,
		endTime time.Time,
	) ([]aggregation.AggregateState, error)
}
