package aggregation

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// AggregationRule defines a single aggregation rule over one duration series.
// Rules are loaded at startup from YAML files and fingerprinted for staleness detection.
type AggregationRule struct {
	Name        string `yaml:"name"`
	Series      string `yaml:"series"`
	Operator    string `yaml:"operator"` // sum, avg
	Frame       int    `yaml:"frame"`    // moving window rows; 0 disables moving queries
	Fingerprint string // SHA-256 of the raw YAML file; computed at load time
}

// rawRule is the on-disk YAML shape.
type rawRule struct {
	Name     string `yaml:"name"`
	Series   string `yaml:"series"`
	Operator string `yaml:"operator"`
	Frame    int    `yaml:"frame"`
}

// ErrRuleNotFound is returned by RuleRepository.Get for an unknown name.
var ErrRuleNotFound = errors.New("aggregation rule not found")

// RuleRepository defines the interface for loading aggregation rules.
type RuleRepository interface {
	// Get returns the rule with the given name, or ErrRuleNotFound.
	Get(ctx context.Context, name string) (*AggregationRule, error)

	// List returns all loaded rules, optionally filtered by series.
	List(ctx context.Context, series string) ([]AggregationRule, error)

	// GetRules returns all rules as a slice (for batch processing).
	GetRules() []AggregationRule
}

// FileSystemRuleRepository loads aggregation rules from *.yaml files in a directory.
// Each file contains exactly one rule at the top level. Rules are loaded once at
// startup and cached in memory.
type FileSystemRuleRepository struct {
	dir   string
	rules map[string]AggregationRule // keyed by Name
}

// NewFileSystemRuleRepository creates a new repository and eagerly loads all rules
// from dir. Returns an error if any rule file is malformed or invalid.
func NewFileSystemRuleRepository(dir string) (*FileSystemRuleRepository, error) {
	repo := &FileSystemRuleRepository{
		dir:   dir,
		rules: make(map[string]AggregationRule),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemRuleRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil // no rules directory: zero rules configured
	}
	if err != nil {
		return fmt.Errorf("aggregation rule dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("aggregation rule path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading aggregation rule dir: %w", err)
	}

	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		rule, ok, err := parseRuleFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if prev, exists := r.rules[rule.Name]; exists {
			return fmt.Errorf("rule %q: duplicate rule name (series %q and %q)", rule.Name, prev.Series, rule.Series)
		}
		r.rules[rule.Name] = rule
	}
	return nil
}

// parseRuleFile reads one rule. ok is false for files without a rule name
// (empty or comment-only).
func parseRuleFile(path string) (AggregationRule, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AggregationRule{}, false, fmt.Errorf("reading rule file %s: %w", path, err)
	}

	var raw rawRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return AggregationRule{}, false, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	if raw.Name == "" {
		return AggregationRule{}, false, nil
	}
	if err := raw.validate(); err != nil {
		return AggregationRule{}, false, fmt.Errorf("rule %q: %w", raw.Name, err)
	}

	return AggregationRule{
		Name:        raw.Name,
		Series:      raw.Series,
		Operator:    raw.Operator,
		Frame:       raw.Frame,
		Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
	}, true, nil
}

func (raw rawRule) validate() error {
	switch {
	case raw.Series == "":
		return errors.New("series must not be empty")
	case !ValidOperator(raw.Operator):
		return fmt.Errorf("unsupported operator %q", raw.Operator)
	case raw.Frame < 0:
		return fmt.Errorf("frame must be >= 0, got %d", raw.Frame)
	}
	return nil
}

// Get returns the rule with the given name, or ErrRuleNotFound.
func (r *FileSystemRuleRepository) Get(_ context.Context, name string) (*AggregationRule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	return &rule, nil
}

// List returns the loaded rules ordered by name, optionally filtered by series.
func (r *FileSystemRuleRepository) List(_ context.Context, series string) ([]AggregationRule, error) {
	var out []AggregationRule
	for _, rule := range r.rules {
		if series != "" && rule.Series != series {
			continue
		}
		out = append(out, rule)
	}
	sortRules(out)
	return out, nil
}

// GetRules returns all rules ordered by name.
func (r *FileSystemRuleRepository) GetRules() []AggregationRule {
	rules := make([]AggregationRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sortRules(rules)
	return rules
}

func sortRules(rules []AggregationRule) {
	slices.SortFunc(rules, func(a, b AggregationRule) int { return strings.Compare(a.Name, b.Name) })
}
