package aggregation

import "github.com/aevon-lab/aevon-duration/internal/core/duration"

// Finalizer turns an accumulated State into a result.
// To add a new operator: implement this interface and register it in Operators.
type Finalizer interface {
	Finalize(state *State) (duration.NullDuration, error)
}

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Finalizer{
	OpSum: sumAgg{},
	OpAvg: avgAgg{},
}

// ValidOperator reports whether op is a registered aggregation operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

type sumAgg struct{}

func (sumAgg) Finalize(s *State) (duration.NullDuration, error) { return FinalizeSum(s) }

type avgAgg struct{}

func (avgAgg) Finalize(s *State) (duration.NullDuration, error) { return FinalizeAverage(s) }
