// Package categorize assigns spending categories to transactions using a
// keyword rule set.
package categorize

import (
	"strings"

	"github.com/cleared-dev/spendtrend/internal/model"
	"github.com/cleared-dev/spendtrend/internal/rules"
)

// Classifier maps a transaction description to exactly one category.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	exact       map[string]model.Category
	matchers    []matcher
	genericFood []string
}

type matcher struct {
	category model.Category
	keywords []string // lowercased
}

// NewClassifier builds a Classifier from a rule set.
func NewClassifier(rs rules.RuleSet) *Classifier {
	c := &Classifier{exact: make(map[string]model.Category)}
	for _, r := range rs.Rules() {
		if r.Exact {
			for _, kw := range r.Keywords {
				// First exact rule wins on duplicate keywords.
				if _, ok := c.exact[kw]; !ok {
					c.exact[kw] = r.Category
				}
			}
		}
		if len(r.Keywords) == 0 {
			continue
		}
		c.matchers = append(c.matchers, matcher{category: r.Category, keywords: lowerAll(r.Keywords)})
	}
	c.genericFood = lowerAll(rs.GenericFood())
	return c
}

// Classify returns the category for description. Exact rules are consulted
// first, then each rule's keywords as case-insensitive substrings in rule
// order, then the generic food keywords. Anything else is Other.
func (c *Classifier) Classify(description string) model.Category {
	if cat, ok := c.exact[strings.TrimSpace(description)]; ok {
		return cat
	}

	lower := strings.ToLower(description)
	for _, m := range c.matchers {
		if containsAny(lower, m.keywords) {
			return m.category
		}
	}

	if containsAny(lower, c.genericFood) {
		return model.CategoryFood
	}
	return model.CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}
