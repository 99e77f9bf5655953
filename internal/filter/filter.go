// Package filter provides glob-based head filtering using doublestar patterns.
package filter

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jokarl/branchsource/internal/scm"
)

// Patterns holds the include and exclude patterns for one head kind
type Patterns struct {
	Include []string
	Exclude []string
}

// Filter excludes heads by name. Each head kind has its own patterns; kinds
// without patterns are never excluded.
type Filter struct {
	rules map[scm.Kind]Patterns
}

// New creates a Filter, failing on the first invalid pattern
func New(rules map[scm.Kind]Patterns) (*Filter, error) {
	f := &Filter{rules: make(map[scm.Kind]Patterns, len(rules))}
	for kind, p := range rules {
		for _, pattern := range append(append([]string{}, p.Include...), p.Exclude...) {
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid %s filter pattern %q", kind, pattern)
			}
		}
		f.rules[kind] = p
	}
	return f, nil
}

// IsExcluded reports whether head is filtered out.
//
// A head is kept when it matches an include pattern (or there are none) and
// matches no exclude pattern. Pull requests are matched on both their head
// name and their source branch name.
func (f *Filter) IsExcluded(head scm.Head) bool {
	if f == nil {
		return false
	}
	p, ok := f.rules[head.Kind()]
	if !ok {
		return false
	}

	names := candidates(head)

	if len(p.Include) > 0 && !matchAny(p.Include, names) {
		return true
	}
	return matchAny(p.Exclude, names)
}

// Empty reports whether the filter has no patterns at all
func (f *Filter) Empty() bool {
	if f == nil {
		return true
	}
	for _, p := range f.rules {
		if len(p.Include) > 0 || len(p.Exclude) > 0 {
			return false
		}
	}
	return true
}

func candidates(head scm.Head) []string {
	if pr, ok := head.(scm.PullRequestHead); ok && pr.OriginName != "" {
		return []string{pr.Name, pr.OriginName}
	}
	return []string{head.HeadName()}
}

func matchAny(patterns, names []string) bool {
	for _, pattern := range patterns {
		for _, name := range names {
			if doublestar.MatchUnvalidated(pattern, name) {
				return true
			}
		}
	}
	return false
}
