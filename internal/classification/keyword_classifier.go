// Package classification guesses an expense category from free text.
package classification

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
)

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category model.CategoryCode
	Keywords []string
	Priority int // Higher priority rules are checked first
}

// Match reports the first keyword of the rule found in lowered text.
func (r Rule) Match(lowered string) (string, bool) {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return kw, true
		}
	}
	return "", false
}

// KeywordClassifier picks the first rule, by priority, with a substring hit.
// It is a first-match policy, not a scorer: keyword frequency is ignored.
type KeywordClassifier struct {
	rules []Rule
}

// NewKeywordClassifier builds a classifier from rules. Keywords are
// lowercased; rules with equal priority keep their given order.
func NewKeywordClassifier(rules []Rule) (*KeywordClassifier, error) {
	sorted := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if !r.Category.Valid() {
			return nil, fmt.Errorf("rule has unknown category %q", r.Category)
		}
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("rule for %s has an empty keyword", r.Category)
			}
			kws = append(kws, kw)
		}
		r.Keywords = kws
		sorted = append(sorted, r)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	return &KeywordClassifier{rules: sorted}, nil
}

// NewDefaultClassifier returns a classifier over DefaultRules.
func NewDefaultClassifier() *KeywordClassifier {
	c, err := NewKeywordClassifier(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("default classification rules are invalid: %v", err))
	}
	return c
}

// Classify returns the category for text, or model.CategoryOther.
func (c *KeywordClassifier) Classify(text string) model.CategoryCode {
	category, _ := c.Explain(text)
	return category
}

// Explain is Classify plus the keyword that decided it.
func (c *KeywordClassifier) Explain(text string) (model.CategoryCode, string) {
	lowered := strings.ToLower(text)
	for _, r := range c.rules {
		if kw, ok := r.Match(lowered); ok {
			return r.Category, kw
		}
	}
	return model.CategoryOther, ""
}

// Rules returns the rules in evaluation order.
func (c *KeywordClassifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
