package output

import (
	"github.com/jokarl/branchsource/internal/checkout"
	"github.com/jokarl/branchsource/internal/scm"
)

// Entry describes a head and its revision for display
type Entry struct {
	Name     string   `json:"name"`
	Kind     scm.Kind `json:"kind"`
	Revision string   `json:"revision"`
	Trusted  bool     `json:"trusted"`

	// Pull request details
	Number     int64  `json:"number,omitempty"`
	Title      string `json:"title,omitempty"`
	Target     string `json:"target,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Origin     string `json:"origin,omitempty"`
	OriginName string `json:"origin_branch,omitempty"`
}

// NewEntry builds the display entry of rev.
func NewEntry(rev scm.Revision, trusted bool) Entry {
	head := rev.RevisionHead()
	e := Entry{
		Name:     head.HeadName(),
		Kind:     head.Kind(),
		Revision: rev.String(),
		Trusted:  trusted,
	}
	if pr, ok := head.(scm.PullRequestHead); ok {
		e.Number = pr.Number
		e.Title = pr.Title
		e.Target = pr.Target.Name
		e.Strategy = pr.Strategy.String()
		e.Origin = pr.Origin.String()
		e.OriginName = pr.OriginName
	}
	return e
}

// DiscoveryResult lists discovered heads
type DiscoveryResult struct {
	Repository string  `json:"repository"`
	Entries    []Entry `json:"heads"`
}

// PlanResult is the checkout plan of one head
type PlanResult struct {
	Repository string   `json:"repository"`
	Head       Entry    `json:"head"`
	Remote     string   `json:"remote"`
	RefSpecs   []string `json:"refspecs"`
	// MergeTarget and MergeBase are set for merge builds
	MergeTarget string `json:"merge_target,omitempty"`
	MergeBase   string `json:"merge_base,omitempty"`
}

// NewPlanResult builds the display form of plan for head, with refspecs
// already expanded for remote.
func NewPlanResult(repository string, head Entry, remote string, plan *checkout.Plan, refspecs []string) *PlanResult {
	r := &PlanResult{
		Repository: repository,
		Head:       head,
		Remote:     remote,
		RefSpecs:   refspecs,
	}
	if plan.Merge != nil {
		r.MergeTarget = plan.Merge.Target
		r.MergeBase = plan.Merge.BaseHash
	}
	return r
}

// TrustResult shows which revision supplies trusted files for a head
type TrustResult struct {
	Head Entry `json:"head"`
	// TrustedRevision is the revision trusted files are loaded from
	TrustedRevision Entry `json:"trusted_revision"`
	// Replaced is true when trusted files come from another revision
	Replaced bool `json:"replaced"`
}

// CheckoutResult describes a materialized checkout
type CheckoutResult struct {
	Head     Entry    `json:"head"`
	Dir      string   `json:"dir"`
	RefSpecs []string `json:"refspecs"`
	Commit   string   `json:"commit"`
	HEAD     string   `json:"head_commit"`
	Merged   bool     `json:"merged"`
}
