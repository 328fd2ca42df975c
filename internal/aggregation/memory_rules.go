package aggregation

import (
	"context"
	"fmt"

	coreagg "github.com/aevon-lab/aevon-duration/internal/core/aggregation"
)

var _ RuleRepository = (*InMemoryRuleRepository)(nil)

// InMemoryRuleRepository implements RuleRepository over a fixed rule set.
// Used by tests and by the service when rules are supplied programmatically.
type InMemoryRuleRepository struct {
	rules map[string]*coreagg.AggregationRule
}

// NewInMemoryRuleRepository creates a new in-memory rule repository.
func NewInMemoryRuleRepository(rules []*coreagg.AggregationRule) *InMemoryRuleRepository {
	repo := &InMemoryRuleRepository{
		rules: make(map[string]*coreagg.AggregationRule),
	}
	for _, rule := range rules {
		repo.rules[rule.Name] = rule
	}
	return repo
}

func (r *InMemoryRuleRepository) Get(_ context.Context, name string) (*coreagg.AggregationRule, error) {
	if rule, ok := r.rules[name]; ok {
		return rule, nil
	}
	return nil, fmt.Errorf("%w: %q", coreagg.ErrRuleNotFound, name)
}

func (r *InMemoryRuleRepository) List(_ context.Context, series string) ([]coreagg.AggregationRule, error) {
	var result []coreagg.AggregationRule
	for _, rule := range r.rules {
		if series == "" || rule.Series == series {
			result = append(result, *rule)
		}
	}
	return result, nil
}

func (r *InMemoryRuleRepository) GetRules() []coreagg.AggregationRule {
	result := make([]coreagg.AggregationRule, 0, len(r.rules))
	for _, rule := range r.rules {
		result = append(result, *rule)
	}
	return result
}
