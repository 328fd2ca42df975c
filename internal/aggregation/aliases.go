package aggregation

import core "github.com/aevon-lab/aevon-duration/internal/core/aggregation"

// Rule types re-exported so callers wiring a scheduler need only this package.
type AggregationRule = core.AggregationRule
type RuleRepository = core.RuleRepository

var NewFileSystemRuleRepository = core.NewFileSystemRuleRepository
