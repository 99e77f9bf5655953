package scm

// Revision is a content snapshot of a Head.
type Revision interface {
	// RevisionHead returns the head this revision belongs to.
	RevisionHead() Head

	// String returns the display form of the revision.
	String() string

	isRevision()
}

// BranchRevision pins a branch to a commit.
type BranchRevision struct {
	Head BranchHead
	Hash string
}

func (r BranchRevision) RevisionHead() Head { return r.Head }
func (r BranchRevision) String() string     { return r.Hash }
func (BranchRevision) isRevision()          {}

// TagRevision pins a tag to a commit.
type TagRevision struct {
	Head TagHead
	Hash string
}

func (r TagRevision) RevisionHead() Head { return r.Head }
func (r TagRevision) String() string     { return r.Hash }
func (TagRevision) isRevision()          {}

// PullRequestRevision pins a pull request to a pair of commits: the target
// branch at discovery time and the source branch at discovery time.
type PullRequestRevision struct {
	Head   PullRequestHead
	Target BranchRevision
	Origin BranchRevision
}

func (r PullRequestRevision) RevisionHead() Head { return r.Head }
func (PullRequestRevision) isRevision()          {}

// BaseHash is the commit of the target branch.
func (r PullRequestRevision) BaseHash() string { return r.Target.Hash }

// HeadHash is the commit of the source branch.
func (r PullRequestRevision) HeadHash() string { return r.Origin.Hash }

// IsMerge reports whether the revision is built by merging onto the target.
func (r PullRequestRevision) IsMerge() bool {
	return r.Head.Strategy == StrategyMerge
}

// String returns base+head for merge builds and head otherwise.
func (r PullRequestRevision) String() string {
	if r.IsMerge() {
		return r.BaseHash() + "+" + r.HeadHash()
	}
	return r.HeadHash()
}

// EquivalencePolicy decides when two snapshots of the same pull request
// represent the same change.
type EquivalencePolicy int

const (
	// OriginOnly treats revisions as equivalent when their source commits
	// match, regardless of where the target branch moved.
	OriginOnly EquivalencePolicy = iota
	// TargetAware additionally requires matching base commits for merge
	// builds, since their output depends on the target. Head builds still
	// compare the source commit only.
	TargetAware
)

// Equivalent reports whether a and b represent the same change under policy.
func Equivalent(a, b PullRequestRevision, policy EquivalencePolicy) bool {
	if a.Origin != b.Origin {
		return false
	}
	if policy == TargetAware && (a.IsMerge() || b.IsMerge()) {
		return a.BaseHash() == b.BaseHash()
	}
	return true
}
