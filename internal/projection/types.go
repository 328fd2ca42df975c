package projection

import (
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
	"github.com/shopspring/decimal"
)

// AggregateQueryRequest represents the query parameters for fetching aggregates.
type AggregateQueryRequest struct {
	Series      string    `form:"-"`
	Rule        string    `form:"rule" binding:"required"`
	Start       time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End         time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Granularity string    `form:"granularity"` // default: "total"
}

// AggregateValue represents a single aggregate data point in the response.
// Value is null for windows without observations; Seconds is only set for
// finite values.
type AggregateValue struct {
	WindowStart  time.Time             `json:"window_start"`
	WindowEnd    time.Time             `json:"window_end"`
	Value        duration.NullDuration `json:"value"`
	Seconds      *decimal.Decimal      `json:"seconds,omitempty"`
	Observations int64                 `json:"observations"`
}

// AggregateQueryResponse represents the response for an aggregate query.
type AggregateQueryResponse struct {
	Series           string           `json:"series"`
	Rule             string           `json:"rule"`
	Operator         string           `json:"operator"`
	Start            time.Time        `json:"start"`
	End              time.Time        `json:"end"`
	Granularity      string           `json:"granularity"`
	BucketSize       string           `json:"bucket_size"`
	DataThrough      time.Time        `json:"data_through"`
	StalenessSeconds int              `json:"staleness_seconds"`
	Values           []AggregateValue `json:"values"`
}

// MovingQueryRequest asks for a row-framed moving aggregate over the samples
// of one series observed in [Start, End).
type MovingQueryRequest struct {
	Series string    `form:"-"`
	Rule   string    `form:"rule" binding:"required"`
	Start  time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End    time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// MovingPoint is the moving aggregate as of one sample.
type MovingPoint struct {
	SampleID   string                `json:"sample_id"`
	ObservedAt time.Time             `json:"observed_at"`
	Sample     duration.Duration     `json:"sample"`
	Value      duration.NullDuration `json:"value"`
	Rows       int                   `json:"rows"`
}

// MovingQueryResponse represents the response for a moving aggregate query.
type MovingQueryResponse struct {
	Series   string        `json:"series"`
	Rule     string        `json:"rule"`
	Operator string        `json:"operator"`
	Frame    int           `json:"frame"`
	Points   []MovingPoint `json:"points"`
}

// secondsOf renders a finite duration as exact decimal seconds.
func secondsOf(v duration.NullDuration) *decimal.Decimal {
	if !v.Valid || !v.Duration.IsFinite() {
		return nil
	}
	s := decimal.New(v.Duration.Microseconds(), -6)
	return &s
}
