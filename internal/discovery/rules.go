package discovery

import "github.com/jokarl/branchsource/internal/scm"

// Rule transforms a configuration into a new one. Rules never modify their
// input.
type Rule func(Configuration) Configuration

// Build folds rules, in order, over an empty configuration.
// Without rules nothing is discovered.
func Build(rules ...Rule) Configuration {
	var cfg Configuration
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		cfg = rule(cfg)
	}
	return cfg
}

// DefaultRules returns the rules used when none are configured: branches,
// tags, and pull requests from the repository itself built merged onto
// their target.
func DefaultRules() []Rule {
	return []Rule{
		DiscoverBranches(),
		DiscoverTags(),
		DiscoverOriginPullRequests(scm.StrategyMerge),
	}
}

// DiscoverBranches enables branch discovery and trusts every branch.
func DiscoverBranches() Rule {
	return func(c Configuration) Configuration {
		c.WantBranches = true
		return c.withAuthority(AlwaysTrustBranch{})
	}
}

// DiscoverTags enables tag discovery and trusts every tag.
func DiscoverTags() Rule {
	return func(c Configuration) Configuration {
		c.WantTags = true
		return c.withAuthority(AlwaysTrustTag{})
	}
}

// DiscoverOriginPullRequests enables discovery of pull requests whose source
// branch lives in the repository itself. Those pull requests are trusted.
func DiscoverOriginPullRequests(strategy scm.CheckoutStrategy) Rule {
	return func(c Configuration) Configuration {
		c.WantOriginPRs = true
		c.OriginPRStrategy = strategy
		return c.withAuthority(TrustOriginPROnly{})
	}
}

// DiscoverForkPullRequests enables discovery of pull requests opened from
// forks. No authority is registered: fork contributions are never trusted.
func DiscoverForkPullRequests(strategy scm.CheckoutStrategy) Rule {
	return func(c Configuration) Configuration {
		c.WantForkPRs = true
		c.ForkPRStrategy = strategy
		return c
	}
}
