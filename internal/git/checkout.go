package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/branchsource/internal/checkout"
	"github.com/jokarl/branchsource/internal/scm"
)

// DefaultRemote is the remote alias used when a Request names none.
const DefaultRemote = "origin"

// Identity used for the merge commit of merge builds.
const (
	mergeUserName  = "branchsource"
	mergeUserEmail = "branchsource@localhost"
)

// Request describes a checkout.
type Request struct {
	// Dir is created if missing and initialized as a repository.
	Dir       string
	RemoteURL string
	// Remote is the alias substituted into the plan. Defaults to DefaultRemote.
	Remote string

	Head scm.Head
	// Revision pins the checkout. When nil the fetched ref is checked out.
	Revision scm.Revision
	// Plan defaults to checkout.NewPlan(Head, Revision).
	Plan *checkout.Plan

	Logger hclog.Logger
}

// Result describes a completed checkout.
type Result struct {
	Dir      string
	RefSpecs []config.RefSpec
	// Commit is the checked out commit before merging.
	Commit string
	// HEAD is the final commit; the merge commit for merge builds.
	HEAD   string
	Merged bool
}

// Checkout fetches exactly the plan's refspecs into req.Dir, checks out the
// revision detached, and applies the plan's merge instruction.
func Checkout(ctx context.Context, req Request) (*Result, error) {
	log := req.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if req.Head == nil {
		return nil, fmt.Errorf("no head to check out")
	}
	remote := req.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	plan := req.Plan
	if plan == nil {
		var err error
		plan, err = checkout.NewPlan(req.Head, req.Revision)
		if err != nil {
			return nil, err
		}
	}

	if err := CheckMinVersion(ctx); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkout directory: %w", err)
	}
	opts := &RunOptions{Dir: req.Dir}

	if _, err := Run(ctx, []string{"init", "-q"}, opts); err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", req.Dir, err)
	}

	refspecs, err := configureRemote(ctx, opts, remote, req.RemoteURL, plan)
	if err != nil {
		return nil, err
	}

	log.Debug("fetching", "remote", remote, "url", req.RemoteURL, "refspecs", refspecs)
	if _, err := Run(ctx, []string{"fetch", "--no-tags", "--force", remote}, opts); err != nil {
		return nil, fetchError(req.RemoteURL, err)
	}

	target := checkoutTarget(remote, req.Head, req.Revision)
	commit, err := ResolveRef(ctx, req.Dir, target)
	if err != nil {
		if req.Revision == nil {
			return nil, err
		}
		return nil, movedError(ctx, log, req.RemoteURL, remoteHeadRef(req.Head), target, err)
	}

	log.Debug("checking out", "target", target, "commit", commit)
	if _, err := Run(ctx, []string{"checkout", "-q", "--detach", commit}, opts); err != nil {
		return nil, fmt.Errorf("failed to check out %s: %w", commit, err)
	}

	res := &Result{Dir: req.Dir, RefSpecs: refspecs, Commit: commit, HEAD: commit}

	if m := plan.Merge; m != nil {
		if _, err := ResolveRef(ctx, req.Dir, m.BaseHash); err != nil {
			return nil, movedError(ctx, log, req.RemoteURL, plumbing.NewBranchReferenceName(m.Target), m.BaseHash, err)
		}

		log.Debug("merging base", "target", m.Target, "base", m.BaseHash)
		_, err := Run(ctx, []string{
			"-c", "user.name=" + mergeUserName,
			"-c", "user.email=" + mergeUserEmail,
			"merge", "--no-edit", "-q", m.BaseHash,
		}, opts)
		if err != nil {
			_, _ = Run(ctx, []string{"merge", "--abort"}, opts)
			return nil, &MergeConflictError{Target: m.Target, BaseHash: m.BaseHash, Err: err}
		}
		head, err := ResolveRef(ctx, req.Dir, "HEAD")
		if err != nil {
			return nil, err
		}
		res.HEAD = head
		res.Merged = true
	}

	return res, nil
}

// configureRemote points remote at url and replaces its fetch refspecs with
// the plan's.
func configureRemote(ctx context.Context, opts *RunOptions, remote, url string, plan *checkout.Plan) ([]config.RefSpec, error) {
	if _, err := Run(ctx, []string{"remote", "add", remote, url}, opts); err != nil {
		if _, err := Run(ctx, []string{"remote", "set-url", remote, url}, opts); err != nil {
			return nil, fmt.Errorf("failed to configure remote %s: %w", remote, err)
		}
	}

	key := "remote." + remote + ".fetch"
	var defaults []config.RefSpec
	if out, err := Run(ctx, []string{"config", "--get-all", key}, opts); err == nil {
		for _, line := range strings.Split(out, "\n") {
			if line != "" {
				defaults = append(defaults, config.RefSpec(line))
			}
		}
	}

	planned := &checkout.Plan{RefSpecs: plan.Apply(defaults), Merge: plan.Merge}
	refspecs, err := planned.Expand(remote)
	if err != nil {
		return nil, err
	}

	if len(defaults) > 0 {
		if _, err := Run(ctx, []string{"config", "--unset-all", key}, opts); err != nil {
			return nil, fmt.Errorf("failed to reset fetch refspecs: %w", err)
		}
	}
	for _, rs := range refspecs {
		if _, err := Run(ctx, []string{"config", "--add", key, rs.String()}, opts); err != nil {
			return nil, fmt.Errorf("failed to add fetch refspec %s: %w", rs, err)
		}
	}
	return refspecs, nil
}

// checkoutTarget returns what to check out: the pinned commit when a
// revision is known, the fetched ref otherwise.
func checkoutTarget(remote string, head scm.Head, rev scm.Revision) string {
	switch r := rev.(type) {
	case scm.BranchRevision:
		return r.Hash
	case scm.TagRevision:
		return r.Hash
	case scm.PullRequestRevision:
		return r.HeadHash()
	}

	switch h := head.(type) {
	case scm.TagHead:
		return plumbing.NewTagReferenceName(h.Name).String()
	default:
		return plumbing.NewRemoteReferenceName(remote, head.HeadName()).String()
	}
}

// fetchError wraps a failed fetch, pointing at credentials when git reports
// an authentication failure.
func fetchError(url string, err error) error {
	if IsAuthError(err) {
		return fmt.Errorf("failed to fetch from %s: %w\n\n"+
			"Check the credentials git uses for this remote (credential helper, SSH key or URL).", url, err)
	}
	return fmt.Errorf("failed to fetch from %s: %w", url, err)
}

// movedError turns a missing pinned commit into *ErrHeadMoved when ref still
// exists on the remote. Otherwise err is returned unchanged.
func movedError(ctx context.Context, log hclog.Logger, url string, ref plumbing.ReferenceName, pinned string, err error) error {
	var notFound *ErrRefNotFound
	if !errors.As(err, &notFound) {
		return err
	}

	current, name, lerr := ResolveRemoteRef(ctx, url, ref.String())
	if lerr != nil {
		log.Debug("could not resolve remote ref", "ref", ref, "error", lerr)
		return err
	}
	return &ErrHeadMoved{Ref: name, Pinned: pinned, Current: current, Err: err}
}

// remoteHeadRef returns the ref head is published under on the remote.
func remoteHeadRef(head scm.Head) plumbing.ReferenceName {
	switch h := head.(type) {
	case scm.TagHead:
		return plumbing.NewTagReferenceName(h.Name)
	case scm.PullRequestHead:
		return plumbing.ReferenceName(fmt.Sprintf("refs/pull/%d/head", h.Number))
	default:
		return plumbing.NewBranchReferenceName(head.HeadName())
	}
}
