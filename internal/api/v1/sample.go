package v1

import (
	"fmt"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
)

// Sample is one observed duration in a named series.
type Sample struct {
	// ID is the unique immutable identifier of the sample within its series.
	// Assigned by the ingestion service when the client omits it.
	ID string `json:"id"`

	// Series names the duration stream this sample belongs to
	// (e.g. "checkout.latency", "build.runtime"). Aggregation rules bind to it.
	Series string `json:"series"`

	// Value is the observed duration. The JSON form is duration text, so
	// "26:00:00", "PT1H30M" and "infinity" are all accepted.
	Value duration.Duration `json:"value"`

	// Labels carries free-form context (host, region, trace_id).
	Labels map[string]string `json:"labels,omitempty"`

	// ObservedAt is when the duration was measured (client-side clock).
	ObservedAt time.Time `json:"observed_at"`

	// IngestedAt is set by the ingestion service, not the client.
	IngestedAt time.Time `json:"ingested_at"`

	// IngestSeq is the monotonic sequence assigned by the database (BIGSERIAL).
	// Batch aggregation checkpoints are expressed in it.
	IngestSeq int64 `json:"-"`
}

// Validate ensures the sample has all required attributes.
func (s *Sample) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}

	if s.Series == "" {
		return fmt.Errorf("series is required")
	}

	if s.ObservedAt.IsZero() {
		return fmt.Errorf("observed_at is required")
	}

	return nil
}
