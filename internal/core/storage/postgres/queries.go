package postgres

// SQL queries for sample storage operations

const (
	// querySaveSample inserts a sample with per-series idempotency.
	// RETURNING clause retrieves auto-generated ingest_seq for cursor tracking.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveSample = `
		INSERT INTO samples (
			id, series, value_us, observed_at, ingested_at, labels
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (series, id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryRetrieveSamplesAfterCursor fetches samples after a cursor (ingest_seq)
	// in strict total order, for ALL series (the batch job processes globally).
	queryRetrieveSamplesAfterCursor = `
		SELECT
			id, series, value_us, observed_at, ingested_at, labels, ingest_seq
		FROM samples
		WHERE ingest_seq > $1
		ORDER BY ingest_seq ASC
		LIMIT $2
	`

	// queryRetrieveScopedSamplesAfterCursor fetches unflushed samples for one query scope.
	// Used by the projection read path to merge pre-aggregates with tail raw samples.
	queryRetrieveScopedSamplesAfterCursor = `
		SELECT
			id, series, value_us, observed_at, ingested_at, labels, ingest_seq
		FROM samples
		WHERE ingest_seq > $1
		  AND series = $2
		  AND observed_at >= $3
		  AND observed_at < $4
		ORDER BY ingest_seq ASC
		LIMIT $5
	`

	// queryRetrieveSeriesRange fetches one series in observation order for moving frames.
	queryRetrieveSeriesRange = `
		SELECT
			id, series, value_us, observed_at, ingested_at, labels, ingest_seq
		FROM samples
		WHERE series = $1
		  AND observed_at >= $2
		  AND observed_at < $3
		ORDER BY observed_at ASC, ingest_seq ASC
		LIMIT $4
	`
)
