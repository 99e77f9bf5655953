// Package discovery assembles the discovery configuration from rules and
// enumerates the heads of a repository according to it.
package discovery

import "github.com/jokarl/branchsource/internal/scm"

// Configuration selects which categories of heads are discovered and how pull
// requests are checked out. It is built once per discovery run with Build and
// not modified afterwards.
type Configuration struct {
	WantBranches bool
	WantTags     bool

	WantOriginPRs    bool
	OriginPRStrategy scm.CheckoutStrategy

	WantForkPRs    bool
	ForkPRStrategy scm.CheckoutStrategy

	// Authorities lists the trust authorities registered by the rules, in
	// rule order.
	Authorities []Authority
}

// WantAnyPRs reports whether any pull request category is enabled.
func (c Configuration) WantAnyPRs() bool {
	return c.WantOriginPRs || c.WantForkPRs
}

// Trusts reports whether an authority applicable to the head's origin trusts
// the head.
func (c Configuration) Trusts(head scm.Head) bool {
	origin := scm.DefaultOrigin
	if pr, ok := head.(scm.PullRequestHead); ok {
		origin = pr.Origin
	}
	for _, a := range c.Authorities {
		if a.AppliesTo(origin) && a.IsTrusted(head) {
			return true
		}
	}
	return false
}

// withAuthority returns a copy of c with a appended to its authorities.
// The backing array of c is never shared with the result.
func (c Configuration) withAuthority(a Authority) Configuration {
	authorities := make([]Authority, 0, len(c.Authorities)+1)
	authorities = append(authorities, c.Authorities...)
	c.Authorities = append(authorities, a)
	return c
}
