// Package rules defines the ordered keyword rule set used to categorize
// bank transactions.
package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/spendtrend/internal/model"
)

// ErrUnknownCategory is returned when a rule names a label outside the known
// categories.
var ErrUnknownCategory = errors.New("unknown category")

// Rule maps a category to its keywords. Exact rules are additionally checked
// by whole-description equality before any substring matching happens.
type Rule struct {
	Category model.Category `yaml:"category"`
	Exact    bool           `yaml:"exact,omitempty"`
	Keywords []string       `yaml:"keywords,omitempty"`
}

// RuleSet is an immutable, ordered list of rules plus the generic food
// keywords consulted when no rule matches. Rule order decides ties.
type RuleSet struct {
	rules       []Rule
	genericFood []string
}

type fileFormat struct {
	Rules       []Rule   `yaml:"rules"`
	GenericFood []string `yaml:"generic_food,omitempty"`
}

// New validates rules and returns a RuleSet holding private copies of them.
func New(rules []Rule, genericFood []string) (RuleSet, error) {
	seen := make(map[model.Category]bool, len(rules))
	out := make([]Rule, len(rules))
	for i, r := range rules {
		if !r.Category.Valid() {
			return RuleSet{}, fmt.Errorf("rule %d: %w %q", i+1, ErrUnknownCategory, r.Category)
		}
		if seen[r.Category] {
			return RuleSet{}, fmt.Errorf("rule %d: duplicate category %q", i+1, r.Category)
		}
		seen[r.Category] = true
		out[i] = Rule{
			Category: r.Category,
			Exact:    r.Exact,
			Keywords: append([]string(nil), r.Keywords...),
		}
	}
	return RuleSet{
		rules:       out,
		genericFood: append([]string(nil), genericFood...),
	}, nil
}

// Rules returns a copy of the rules in match order.
func (s RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// GenericFood returns a copy of the generic food keywords.
func (s RuleSet) GenericFood() []string {
	return append([]string(nil), s.genericFood...)
}

// Load reads a rule set from a YAML file.
func Load(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("reading rules: %w", err)
	}
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return RuleSet{}, fmt.Errorf("parsing rules: %w", err)
	}
	rs, err := New(ff.Rules, ff.GenericFood)
	if err != nil {
		return RuleSet{}, fmt.Errorf("validating rules: %w", err)
	}
	return rs, nil
}

// LoadOrDefault reads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (RuleSet, error) {
	rs, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return rs, err
}

// Save writes a rule set to a YAML file, creating parent directories.
func Save(path string, rs RuleSet) error {
	data, err := yaml.Marshal(fileFormat{Rules: rs.Rules(), GenericFood: rs.GenericFood()})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
