package discovery

import "github.com/jokarl/branchsource/internal/scm"

// Authority decides whether heads of some origin may supply trusted build
// configuration. The implementations in this package are the only ones.
type Authority interface {
	// Name identifies the authority in output
	Name() string

	// AppliesTo reports whether the authority covers heads of origin
	AppliesTo(origin scm.Origin) bool

	// IsTrusted reports whether head is trusted by this authority
	IsTrusted(head scm.Head) bool

	isAuthority()
}

// AlwaysTrustBranch trusts every branch of the repository.
type AlwaysTrustBranch struct{}

func (AlwaysTrustBranch) Name() string                     { return "always-trust-branch" }
func (AlwaysTrustBranch) AppliesTo(origin scm.Origin) bool { return origin.IsDefault() }
func (AlwaysTrustBranch) isAuthority()                     {}

func (AlwaysTrustBranch) IsTrusted(head scm.Head) bool {
	_, ok := head.(scm.BranchHead)
	return ok
}

// AlwaysTrustTag trusts every tag of the repository.
type AlwaysTrustTag struct{}

func (AlwaysTrustTag) Name() string                     { return "always-trust-tag" }
func (AlwaysTrustTag) AppliesTo(origin scm.Origin) bool { return origin.IsDefault() }
func (AlwaysTrustTag) isAuthority()                     {}

func (AlwaysTrustTag) IsTrusted(head scm.Head) bool {
	_, ok := head.(scm.TagHead)
	return ok
}

// TrustOriginPROnly trusts pull requests whose source branch lives in the
// repository itself.
type TrustOriginPROnly struct{}

func (TrustOriginPROnly) Name() string                     { return "trust-origin-pull-requests" }
func (TrustOriginPROnly) AppliesTo(origin scm.Origin) bool { return origin.IsDefault() }
func (TrustOriginPROnly) isAuthority()                     {}

func (TrustOriginPROnly) IsTrusted(head scm.Head) bool {
	pr, ok := head.(scm.PullRequestHead)
	return ok && pr.Origin.IsDefault()
}
