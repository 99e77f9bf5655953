package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/config"

	"github.com/jokarl/branchsource/internal/scm"
)

// ErrRevisionMismatch is returned when a revision does not belong to the head
// it is planned with.
var ErrRevisionMismatch = errors.New("revision does not match head")

// MergeInstruction asks the executor to merge BaseHash into the checked out
// pull request head before building.
type MergeInstruction struct {
	// Target is the name of the branch the pull request merges into.
	Target   string
	BaseHash string
}

func (m MergeInstruction) String() string {
	return fmt.Sprintf("merge %s (%s)", m.BaseHash, m.Target)
}

// Plan lists what to fetch and whether to merge when checking out a head.
type Plan struct {
	// RefSpecs are fetched in order. They still contain RemoteToken.
	RefSpecs []config.RefSpec
	// Merge is nil unless the head is a pull request built merged onto its
	// target.
	Merge *MergeInstruction
}

// NewPlan returns the checkout plan for head at rev. rev may be nil, in which
// case the plan carries no merge instruction.
func NewPlan(head scm.Head, rev scm.Revision) (*Plan, error) {
	if head == nil {
		return nil, errors.New("no head to plan")
	}
	if rev != nil {
		rh := rev.RevisionHead()
		if rh.Kind() != head.Kind() || rh.HeadName() != head.HeadName() {
			return nil, fmt.Errorf("%w: %s %q paired with %s %q",
				ErrRevisionMismatch, head.Kind(), head.HeadName(), rh.Kind(), rh.HeadName())
		}
	}

	switch h := head.(type) {
	case scm.BranchHead:
		return &Plan{RefSpecs: []config.RefSpec{BranchRefSpec(h.Name)}}, nil

	case scm.TagHead:
		return &Plan{RefSpecs: []config.RefSpec{TagRefSpec(h.Name)}}, nil

	case scm.PullRequestHead:
		plan := &Plan{
			RefSpecs: []config.RefSpec{
				PullRefSpec(h),
				BranchRefSpec(h.Target.Name),
			},
		}
		if rev == nil {
			return plan, nil
		}
		pr, ok := rev.(scm.PullRequestRevision)
		if !ok {
			return nil, fmt.Errorf("%w: pull request %q needs a pull request revision, got %T",
				ErrRevisionMismatch, h.Name, rev)
		}
		if pr.IsMerge() {
			plan.Merge = &MergeInstruction{Target: h.Target.Name, BaseHash: pr.BaseHash()}
		}
		return plan, nil

	default:
		return nil, fmt.Errorf("unsupported head type %T", head)
	}
}

// Apply returns the refspecs to fetch given the checkout mechanism's defaults.
// The plan is authoritative, so defaults are discarded.
func (p *Plan) Apply(defaults []config.RefSpec) []config.RefSpec {
	out := make([]config.RefSpec, len(p.RefSpecs))
	copy(out, p.RefSpecs)
	return out
}

// Expand substitutes remote for RemoteToken and validates each refspec.
func (p *Plan) Expand(remote string) ([]config.RefSpec, error) {
	if remote == "" || strings.ContainsAny(remote, " :/") {
		return nil, fmt.Errorf("invalid remote name %q", remote)
	}

	out := make([]config.RefSpec, 0, len(p.RefSpecs))
	for _, rs := range p.RefSpecs {
		expanded := config.RefSpec(strings.ReplaceAll(string(rs), RemoteToken, remote))
		if err := expanded.Validate(); err != nil {
			return nil, fmt.Errorf("refspec %q: %w", expanded, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

// Strings returns the refspecs as strings.
func (p *Plan) Strings() []string {
	out := make([]string, len(p.RefSpecs))
	for i, rs := range p.RefSpecs {
		out[i] = rs.String()
	}
	return out
}
