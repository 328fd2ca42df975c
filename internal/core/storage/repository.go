package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
)

// ErrDuplicate is returned when a sample with the same (series, id) already exists.
var ErrDuplicate = errors.New("sample already exists")

// SampleStore defines the interface for storing and retrieving duration samples.
type SampleStore interface {
	// SaveSample persists a sample and populates its IngestSeq.
	SaveSample(ctx context.Context, sample *v1.Sample) error

	// RetrieveSamplesAfterCursor fetches samples after a cursor (ingest_seq) in strict total order.
	// cursor=0 means "from the beginning".
	RetrieveSamplesAfterCursor(ctx context.Context, cursor int64, limit int) ([]*v1.Sample, error)

	// RetrieveScopedSamplesAfterCursor fetches samples of one series observed in
	// [start, end) with ingest_seq > cursor, ordered by ingest_seq.
	// Used by the projection read path to merge unflushed raw samples with pre-aggregates.
	RetrieveScopedSamplesAfterCursor(
		ctx context.Context,
		cursor int64,
		series string,
		start time.Time,
		end time.Time,
		limit int,
	) ([]*v1.Sample, error)

	// RetrieveSeriesRange fetches samples of one series observed in [start, end),
	// ordered by observed_at then ingest_seq. Used by moving-window queries.
	RetrieveSeriesRange(
		ctx context.Context,
		series string,
		start time.Time,
		end time.Time,
		limit int,
	) ([]*v1.Sample, error)
}
