// Package trust determines which revision may supply trusted build
// configuration for a discovered revision.
package trust

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/branchsource/internal/scm"
)

// Resolve returns the revision whose contents may be trusted when building
// rev.
//
// Branches, tags and pull requests from the repository itself are returned
// unchanged. A pull request from a fork resolves to its target branch pinned
// at the base commit, so nothing from the fork is ever trusted.
func Resolve(rev scm.Revision) scm.Revision {
	switch r := rev.(type) {
	case scm.PullRequestRevision:
		if r.Head.Origin.IsDefault() {
			return r
		}
		return scm.BranchRevision{Head: r.Head.Target, Hash: r.BaseHash()}
	case scm.BranchRevision, scm.TagRevision:
		return r
	default:
		return rev
	}
}

// Resolver is Resolve with logging.
type Resolver struct {
	Logger hclog.Logger
}

// Resolve returns the trusted counterpart of rev and logs when a fork pull
// request is replaced by its target.
func (r *Resolver) Resolve(rev scm.Revision) scm.Revision {
	trusted := Resolve(rev)
	if trusted == rev {
		return trusted
	}

	log := r.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log.Info("loading trusted files from target branch rather than the pull request",
		"target", trusted.RevisionHead().HeadName(),
		"target_revision", trusted.String(),
		"pull_request", rev.RevisionHead().HeadName(),
		"pull_request_revision", rev.String())
	return trusted
}
