package harness

import (
	"errors"
	"strings"
)

// baseKeyword is the reserved configuration key designating the fallback
// color for tokens that match no other rule.
const baseKeyword = "base"

// ErrDuplicateBase is returned when a configuration defines more than one
// base rule.
var ErrDuplicateBase = errors.New("duplicate base rule")

// Rule pairs a configuration keyword with its resolved color. Keyword keeps
// the case it was written with in the configuration file.
type Rule struct {
	Keyword string
	Color   ColorSpec
}

// Rules is the ordered keyword table built from a configuration file.
// Matching is first-match-wins in file order. Rules is immutable after
// construction and safe to share across the stream pipelines without
// synchronization.
type Rules struct {
	rules      []Rule
	folded     []string
	base       *ColorSpec
	ignoreCase bool
}

// NewRules builds a keyword table from rules in file order. An entry whose
// keyword is the reserved word "base" (any case) becomes the fallback color;
// a second such entry fails with ErrDuplicateBase.
func NewRules(rules []Rule, ignoreCase bool) (*Rules, error) {
	r := &Rules{ignoreCase: ignoreCase}
	for _, rule := range rules {
		if strings.EqualFold(rule.Keyword, baseKeyword) {
			if r.base != nil {
				return nil, ErrDuplicateBase
			}
			base := rule.Color
			r.base = &base
			continue
		}
		key := rule.Keyword
		if ignoreCase {
			key = strings.ToLower(key)
		}
		r.rules = append(r.rules, rule)
		r.folded = append(r.folded, key)
	}
	return r, nil
}

// Match returns the color for a token: the first rule whose keyword equals
// the token's comparison form, falling back to the base color when one is
// configured. ok is false when the token should pass through uncolored.
func (r *Rules) Match(token string) (ColorSpec, bool) {
	if i := r.matchIndex(token); i >= 0 {
		return r.rules[i].Color, true
	}
	if r.base != nil {
		return *r.base, true
	}
	return ColorSpec{}, false
}

// matchIndex returns the index of the first keyword rule equal to the token's
// comparison form, or -1. The base rule never participates here.
func (r *Rules) matchIndex(token string) int {
	if r.ignoreCase {
		token = strings.ToLower(token)
	}
	for i, key := range r.folded {
		if token == key {
			return i
		}
	}
	return -1
}

// Base reports the configured fallback color, if any.
func (r *Rules) Base() (ColorSpec, bool) {
	if r.base == nil {
		return ColorSpec{}, false
	}
	return *r.base, true
}

// IgnoreCase reports whether token comparison folds case.
func (r *Rules) IgnoreCase() bool {
	return r.ignoreCase
}

// Len returns the number of keyword rules, excluding the base rule.
func (r *Rules) Len() int {
	return len(r.rules)
}
