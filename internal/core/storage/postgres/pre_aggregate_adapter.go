package postgres

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/aggregation"
	"github.com/aevon-lab/aevon-duration/internal/core/partition"
)

const (
	defaultBucketSize = "1m"

	querySelectCheckpointForUpdate = `
		SELECT checkpoint_cursor
		FROM sweep_checkpoints
		WHERE bucket_size = $1
		FOR UPDATE
	`

	queryInitCheckpointRow = `
		INSERT INTO sweep_checkpoints (bucket_size, checkpoint_cursor, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (bucket_size) DO NOTHING
	`

	// State bytes are opaque to SQL, so the merge happens in Go: the durable
	// row is locked, combined with the incoming partial, and written back.
	querySelectStateForUpdate = `
		SELECT state
		FROM pre_aggregates
		WHERE partition_id = $1
		  AND series = $2
		  AND rule_name = $3
		  AND bucket_size = $4
		  AND window_start = $5
		FOR UPDATE
	`

	queryUpsertPreAggregate = `
		INSERT INTO pre_aggregates (
			partition_id, series, rule_name, rule_fingerprint,
			bucket_size, window_start, operator, state, sample_count, last_sample_id, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (partition_id, series, rule_name, bucket_size, window_start)
		DO UPDATE SET
			state            = EXCLUDED.state,
			sample_count     = EXCLUDED.sample_count,
			last_sample_id   = EXCLUDED.last_sample_id,
			rule_fingerprint = EXCLUDED.rule_fingerprint,
			updated_at       = EXCLUDED.updated_at
	`

	queryUpdateCheckpoint = `
		UPDATE sweep_checkpoints
		SET checkpoint_cursor = $1, updated_at = $2
		WHERE bucket_size = $3
	`

	queryReadCheckpoint = `SELECT checkpoint_cursor FROM sweep_checkpoints WHERE bucket_size = $1`

	queryLoadAggregates = `
		SELECT
			partition_id, series, rule_name, rule_fingerprint,
			bucket_size, window_start, operator, state, last_sample_id, updated_at
		FROM pre_aggregates
	`

	queryRangePreAggregates = `
		SELECT
			window_start,
			operator,
			state,
			last_sample_id,
			rule_fingerprint,
			updated_at
		FROM pre_aggregates
		WHERE partition_id = $1
		  AND series = $2
		  AND rule_name = $3
		  AND bucket_size = $4
		  AND window_start >= $5
		  AND window_start < $6
		ORDER BY window_start ASC
	`

	queryRangePreAggregatesWithCheckpoint = `
		WITH checkpoint AS (
			SELECT COALESCE(
				(SELECT checkpoint_cursor FROM sweep_checkpoints WHERE bucket_size = $4),
				0
			) AS checkpoint_cursor
		),
		scoped AS (
			SELECT
				window_start,
				operator,
				state,
				last_sample_id,
				rule_fingerprint,
				updated_at
			FROM pre_aggregates
			WHERE partition_id = $1
			  AND series = $2
			  AND rule_name = $3
			  AND bucket_size = $4
			  AND window_start >= $5
			  AND window_start < $6
		)
		SELECT
			checkpoint.checkpoint_cursor,
			scoped.window_start,
			scoped.operator,
			scoped.state,
			scoped.last_sample_id,
			scoped.rule_fingerprint,
			scoped.updated_at
		FROM checkpoint
		LEFT JOIN scoped ON TRUE
		ORDER BY scoped.window_start ASC NULLS LAST
	`
)

// PreAggregateAdapter implements the batch job's PreAggregateStore using PostgreSQL.
// Flush and checkpoint writes are in a single transaction, so a crash either
// keeps both or neither.
type PreAggregateAdapter struct {
	db *sql.DB
}

// NewPreAggregateAdapter creates a new PreAggregateAdapter sharing the given connection.
func NewPreAggregateAdapter(db *sql.DB) *PreAggregateAdapter {
	return &PreAggregateAdapter{db: db}
}

// Flush combines every partial state into its durable bucket and writes the
// bucket-scoped checkpoint cursor in one transaction.
// cursor is the last ingest_seq included in this state snapshot.
// An overflow while combining aborts the whole flush.
func (a *PreAggregateAdapter) Flush(
	ctx context.Context,
	aggregates map[aggregation.AggregateKey]aggregation.AggregateState,
	cursor int64,
	bucketSize string,
) error {
	if bucketSize == "" {
		bucketSize = defaultBucketSize
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pre_aggregate flush: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Lock checkpoint row first and enforce monotonic checkpoint writes.
	var durableCursor int64
	err = tx.QueryRowContext(ctx, querySelectCheckpointForUpdate, bucketSize).Scan(&durableCursor)
	if err == sql.ErrNoRows {
		_, err = tx.ExecContext(ctx, queryInitCheckpointRow, bucketSize, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("pre_aggregate flush: init checkpoint row: %w", err)
		}

		err = tx.QueryRowContext(ctx, querySelectCheckpointForUpdate, bucketSize).Scan(&durableCursor)
		if err != nil {
			return fmt.Errorf("pre_aggregate flush: read initialized checkpoint for update: %w", err)
		}
	}
	if err != nil {
		return fmt.Errorf("pre_aggregate flush: read checkpoint for update: %w", err)
	}

	if cursor <= durableCursor {
		slog.Warn("[PreAggregateAdapter] Skipping stale/no-op flush",
			"cursor", cursor,
			"durable_cursor", durableCursor,
			"aggregates", len(aggregates))
		return nil
	}

	selectStmt, err := tx.PrepareContext(ctx, querySelectStateForUpdate)
	if err != nil {
		return fmt.Errorf("pre_aggregate flush: prepare select: %w", err)
	}
	defer selectStmt.Close()

	upsertStmt, err := tx.PrepareContext(ctx, queryUpsertPreAggregate)
	if err != nil {
		return fmt.Errorf("pre_aggregate flush: prepare upsert: %w", err)
	}
	defer upsertStmt.Close()

	// Fixed lock order across concurrent flushes.
	keys := make([]aggregation.AggregateKey, 0, len(aggregates))
	for key := range aggregates {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareKeys)

	for _, key := range keys {
		state := aggregates[key]
		keyBucketSize := key.BucketSize
		if keyBucketSize == "" {
			keyBucketSize = defaultBucketSize
		}
		if keyBucketSize != bucketSize {
			return fmt.Errorf(
				"pre_aggregate flush: aggregate bucket mismatch: expected %s, got %s for key %v",
				bucketSize,
				keyBucketSize,
				key,
			)
		}

		merged := state.State.Clone()
		var durable []byte
		err := selectStmt.QueryRowContext(ctx,
			key.PartitionID, key.Series, key.RuleName, keyBucketSize, key.WindowStart,
		).Scan(&durable)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return fmt.Errorf("pre_aggregate flush: read %v: %w", key, err)
		default:
			existing, decodeErr := aggregation.Deserialize(durable)
			if decodeErr != nil {
				return fmt.Errorf("pre_aggregate flush: decode %v: %w", key, decodeErr)
			}
			if merged, err = aggregation.Combine(existing, merged); err != nil {
				return fmt.Errorf("pre_aggregate flush: combine %v: %w", key, err)
			}
		}

		if _, err := upsertStmt.ExecContext(ctx,
			key.PartitionID,
			key.Series,
			key.RuleName,
			state.RuleFingerprint,
			keyBucketSize,
			key.WindowStart,
			state.Operator,
			aggregation.Serialize(merged),
			merged.Observations(),
			state.LastSampleID,
			state.UpdatedAt,
		); err != nil {
			return fmt.Errorf("pre_aggregate flush: upsert %v: %w", key, err)
		}
	}

	// Checkpoint goes in the same transaction as the upserts.
	result, err := tx.ExecContext(ctx, queryUpdateCheckpoint, cursor, time.Now().UTC(), bucketSize)
	if err != nil {
		return fmt.Errorf("pre_aggregate flush: write checkpoint: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pre_aggregate flush: check checkpoint write: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pre_aggregate flush: checkpoint row missing (bucket=%s)", bucketSize)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pre_aggregate flush: commit: %w", err)
	}

	slog.Info("[PreAggregateAdapter] Flushed",
		"aggregates", len(aggregates),
		"cursor", cursor,
		"bucket_size", bucketSize,
	)
	return nil
}

func compareKeys(a, b aggregation.AggregateKey) int {
	return cmp.Or(
		cmp.Compare(a.PartitionID, b.PartitionID),
		cmp.Compare(a.Series, b.Series),
		cmp.Compare(a.RuleName, b.RuleName),
		a.WindowStart.Compare(b.WindowStart),
	)
}

// ReadCheckpoint returns the bucket-scoped checkpoint cursor.
// Returns 0 if no checkpoint exists yet (meaning "replay from beginning").
func (a *PreAggregateAdapter) ReadCheckpoint(ctx context.Context, bucketSize string) (int64, error) {
	if bucketSize == "" {
		bucketSize = defaultBucketSize
	}

	var cursor int64
	err := a.db.QueryRowContext(ctx, queryReadCheckpoint, bucketSize).Scan(&cursor)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}
	return cursor, nil
}

// LoadAggregates loads all durable pre-aggregates from the database.
func (a *PreAggregateAdapter) LoadAggregates(ctx context.Context) (map[aggregation.AggregateKey]aggregation.AggregateState, error) {
	rows, err := a.db.QueryContext(ctx, queryLoadAggregates)
	if err != nil {
		return nil, fmt.Errorf("load aggregates: %w", err)
	}
	defer rows.Close()

	aggregates := make(map[aggregation.AggregateKey]aggregation.AggregateState)
	for rows.Next() {
		var (
			key   aggregation.AggregateKey
			state aggregation.AggregateState
			raw   []byte
		)
		if err := rows.Scan(
			&key.PartitionID,
			&key.Series,
			&key.RuleName,
			&state.RuleFingerprint,
			&key.BucketSize,
			&key.WindowStart,
			&state.Operator,
			&raw,
			&state.LastSampleID,
			&state.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("load aggregates: scan row: %w", err)
		}
		if err := state.State.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("load aggregates: decode %v: %w", key, err)
		}
		state.WindowStart = key.WindowStart
		aggregates[key] = state
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load aggregates: iterate rows: %w", err)
	}

	slog.Info("[PreAggregateAdapter] Loaded aggregates from database", "count", len(aggregates))
	return aggregates, nil
}

// QueryRange fetches pre-aggregates of one series and rule for a time range,
// ordered by window_start ASC.
func (a *PreAggregateAdapter) QueryRange(
	ctx context.Context,
	series string,
	ruleName string,
	bucketSize string,
	startTime time.Time,
	endTime time.Time,
) ([]aggregation.AggregateState, error) {
	if bucketSize == "" {
		bucketSize = defaultBucketSize
	}

	rows, err := a.db.QueryContext(ctx, queryRangePreAggregates,
		partition.For(series), series, ruleName, bucketSize, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("query pre_aggregates: %w", err)
	}
	defer rows.Close()

	var results []aggregation.AggregateState
	for rows.Next() {
		var (
			state aggregation.AggregateState
			raw   []byte
		)
		if err := rows.Scan(
			&state.WindowStart,
			&state.Operator,
			&raw,
			&state.LastSampleID,
			&state.RuleFingerprint,
			&state.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := state.State.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("decode bucket %s: %w", state.WindowStart, err)
		}
		results = append(results, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return results, nil
}

// QueryRangeWithCheckpoint fetches pre-aggregates and the bucket checkpoint from one
// statement snapshot, so the checkpoint and the buckets come from the same flush.
func (a *PreAggregateAdapter) QueryRangeWithCheckpoint(
	ctx context.Context,
	series string,
	ruleName string,
	bucketSize string,
	startTime time.Time,
	endTime time.Time,
) ([]aggregation.AggregateState, int64, error) {
	if bucketSize == "" {
		bucketSize = defaultBucketSize
	}

	rows, err := a.db.QueryContext(
		ctx,
		queryRangePreAggregatesWithCheckpoint,
		partition.For(series), series, ruleName, bucketSize, startTime, endTime,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query pre_aggregates with checkpoint: %w", err)
	}
	defer rows.Close()

	var (
		results           []aggregation.AggregateState
		checkpoint        int64
		checkpointScanned bool
	)

	for rows.Next() {
		var (
			scannedCheckpoint int64
			windowStart       sql.NullTime
			operator          sql.NullString
			raw               []byte
			lastSampleID      sql.NullString
			ruleFingerprint   sql.NullString
			updatedAt         sql.NullTime
		)

		if err := rows.Scan(
			&scannedCheckpoint,
			&windowStart,
			&operator,
			&raw,
			&lastSampleID,
			&ruleFingerprint,
			&updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan row: %w", err)
		}

		if !checkpointScanned {
			checkpoint = scannedCheckpoint
			checkpointScanned = true
		}

		// LEFT JOIN emits one row with NULL aggregate columns when range is empty.
		if !windowStart.Valid {
			continue
		}
		if raw == nil {
			return nil, 0, fmt.Errorf("scan row: aggregate state is NULL")
		}

		state, decodeErr := aggregation.Deserialize(raw)
		if decodeErr != nil {
			return nil, 0, fmt.Errorf("decode bucket %s: %w", windowStart.Time, decodeErr)
		}

		results = append(results, aggregation.AggregateState{
			WindowStart:     windowStart.Time,
			Operator:        operator.String,
			State:           *state,
			LastSampleID:    lastSampleID.String,
			RuleFingerprint: ruleFingerprint.String,
			UpdatedAt:       updatedAt.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rows: %w", err)
	}

	return results, checkpoint, nil
}
