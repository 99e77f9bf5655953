package discovery

import (
	"context"
	"iter"

	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/branchsource/internal/api"
	"github.com/jokarl/branchsource/internal/scm"
)

// RemoteAPI is the subset of the repository API the driver depends on.
// *api.Client satisfies it.
type RemoteAPI interface {
	ListBranches(ctx context.Context) ([]api.Branch, error)
	GetBranch(ctx context.Context, name string) (*api.Branch, error)
	ListTags(ctx context.Context) ([]api.Tag, error)
	GetTag(ctx context.Context, name string) (*api.Tag, error)
	GetPull(ctx context.Context, number int64) (*api.PullRequest, error)
	ListPulls(ctx context.Context) ([]api.PullRequest, error)
}

var _ RemoteAPI = (*api.Client)(nil)

// Excluder decides whether a head is filtered out of discovery.
type Excluder interface {
	IsExcluded(head scm.Head) bool
}

// ExcluderFunc adapts a function to the Excluder interface.
type ExcluderFunc func(head scm.Head) bool

// IsExcluded calls f(head).
func (f ExcluderFunc) IsExcluded(head scm.Head) bool {
	return f(head)
}

// NoExclusions excludes nothing.
var NoExclusions Excluder = ExcluderFunc(func(scm.Head) bool { return false })

// Driver enumerates the heads enabled by Config.
//
// Categories are visited in a fixed order: branches, tags, then pull
// requests. Within a category heads keep the order returned by the API.
// Disabled categories are never fetched.
type Driver struct {
	API      RemoteAPI
	Config   Configuration
	Excluder Excluder
	Logger   hclog.Logger
}

func (d *Driver) logger() hclog.Logger {
	if d.Logger == nil {
		return hclog.NewNullLogger()
	}
	return d.Logger
}

func (d *Driver) excluded(head scm.Head) bool {
	if d.Excluder == nil {
		return false
	}
	return d.Excluder.IsExcluded(head)
}

// All returns the revisions of every discovered head.
//
// The sequence is lazy: nothing is fetched until it is ranged over, and each
// range starts a new run. Breaking out of the loop stops the run before any
// further category is fetched. A failure is yielded once as a nil revision
// with a non-nil error and ends the sequence.
func (d *Driver) All(ctx context.Context) iter.Seq2[scm.Revision, error] {
	return func(yield func(scm.Revision, error) bool) {
		if d.Config.WantBranches && !d.branches(ctx, yield) {
			return
		}
		if d.Config.WantTags && !d.tags(ctx, yield) {
			return
		}
		if d.Config.WantAnyPRs() {
			d.pulls(ctx, yield)
		}
	}
}

// Observe hands every discovered head to obs until obs stops observing.
// Returning early because of obs is not an error.
func (d *Driver) Observe(ctx context.Context, obs Observer) error {
	for rev, err := range d.All(ctx) {
		if err != nil {
			return err
		}
		if !obs.IsObserving() {
			return nil
		}
		obs.Observe(rev.RevisionHead(), rev)
	}
	return nil
}

func (d *Driver) branches(ctx context.Context, yield func(scm.Revision, error) bool) bool {
	log := d.logger()

	log.Debug("Listing branches")
	branches, err := d.API.ListBranches(ctx)
	if err != nil {
		yield(nil, err)
		return false
	}
	log.Debug("Found branches total", "count", len(branches))

	for _, b := range branches {
		rev, err := api.ToBranchRevision(b)
		if err != nil {
			yield(nil, err)
			return false
		}
		if d.excluded(rev.Head) {
			log.Debug("Branch is excluded, skipping", "branch", b.Name)
			continue
		}
		log.Debug("Processing branch", "branch", b.Name)
		if !yield(rev, nil) {
			return false
		}
	}
	return true
}

func (d *Driver) tags(ctx context.Context, yield func(scm.Revision, error) bool) bool {
	log := d.logger()

	log.Debug("Listing tags")
	tags, err := d.API.ListTags(ctx)
	if err != nil {
		yield(nil, err)
		return false
	}
	log.Debug("Found tags total", "count", len(tags))

	for _, t := range tags {
		rev, err := api.ToTagRevision(t)
		if err != nil {
			yield(nil, err)
			return false
		}
		if d.excluded(rev.Head) {
			log.Debug("Tag is excluded, skipping", "tag", t.Name)
			continue
		}
		log.Debug("Processing tag", "tag", t.Name)
		if !yield(rev, nil) {
			return false
		}
	}
	return true
}

// pulls fetches the pull request list once and emits the origin partition
// before the fork partition, each mapped with its own strategy.
func (d *Driver) pulls(ctx context.Context, yield func(scm.Revision, error) bool) bool {
	log := d.logger()

	log.Debug("Listing pull requests")
	pulls, err := d.API.ListPulls(ctx)
	if err != nil {
		yield(nil, err)
		return false
	}
	log.Debug("Found pull requests total", "count", len(pulls))

	partitions := []struct {
		want       bool
		sameOrigin bool
		strategy   scm.CheckoutStrategy
	}{
		{d.Config.WantOriginPRs, true, d.Config.OriginPRStrategy},
		{d.Config.WantForkPRs, false, d.Config.ForkPRStrategy},
	}

	for _, part := range partitions {
		if !part.want {
			continue
		}
		for _, pr := range pulls {
			if pr.SameOrigin != part.sameOrigin {
				continue
			}
			rev, err := api.ToPullRequestRevision(pr, part.strategy)
			if err != nil {
				yield(nil, err)
				return false
			}
			if d.excluded(rev.Head) {
				log.Debug("Pull request is excluded, skipping", "pull_request", rev.Head.Name)
				continue
			}
			log.Debug("Processing pull request", "pull_request", rev.Head.Name, "origin", rev.Head.Origin.String())
			if !yield(rev, nil) {
				return false
			}
		}
	}
	return true
}
