package aggregation

import (
	"fmt"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/core/duration"
)

// Supported aggregation operators. Both share the same State; only the
// finalizer differs.
const (
	OpSum = "sum"
	OpAvg = "avg"
)

// AggregateKey uniquely identifies a pre-aggregate bucket.
// Partition-scoped from day one: PartitionID is always present,
// even when running as a single instance.
type AggregateKey struct {
	PartitionID int
	Series      string
	RuleName    string
	BucketSize  string    // e.g. "1m", "10m", "1h"
	WindowStart time.Time // truncated to bucket boundary
}

// AggregateState is a materialized bucket: the partial State plus the
// bookkeeping needed for staleness detection.
type AggregateState struct {
	Operator        string // sum, avg
	State           State
	LastSampleID    string    // most recent sample folded into this bucket
	RuleFingerprint string    // SHA-256 of the rule definition
	WindowStart     time.Time // bucket timestamp
	UpdatedAt       time.Time
}

// Result is a finalized aggregate.
type Result struct {
	Value        duration.NullDuration
	Observations int64
}

// Result finalizes the bucket with its operator.
func (a AggregateState) Result() (Result, error) {
	fin, ok := Operators[a.Operator]
	if !ok {
		return Result{}, fmt.Errorf("unknown operator %q", a.Operator)
	}
	v, err := fin.Finalize(&a.State)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Observations: a.State.Observations()}, nil
}
