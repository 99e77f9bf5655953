// Package source ties discovery, trust resolution and checkout planning to a
// single remote repository.
package source

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/branchsource/internal/api"
	"github.com/jokarl/branchsource/internal/checkout"
	"github.com/jokarl/branchsource/internal/discovery"
	"github.com/jokarl/branchsource/internal/scm"
	"github.com/jokarl/branchsource/internal/trust"
)

// ErrHeadNotFound is returned when no discovered head has the requested name.
var ErrHeadNotFound = errors.New("head not found")

// Credentials authenticate API requests. Token takes precedence over the
// username and password.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Source is a repository configured for discovery.
type Source struct {
	repo     *api.RepoURL
	api      discovery.RemoteAPI
	config   discovery.Configuration
	excluder discovery.Excluder
	logger   hclog.Logger
}

// Option configures a Source.
type Option func(*options)

type options struct {
	credentials Credentials
	rules       []discovery.Rule
	excluder    discovery.Excluder
	logger      hclog.Logger
	remote      discovery.RemoteAPI
	clientOpts  []api.Option
}

// WithCredentials authenticates API requests.
func WithCredentials(c Credentials) Option {
	return func(o *options) { o.credentials = c }
}

// WithRules replaces the default discovery rules.
// An empty, non-nil list discovers nothing.
func WithRules(rules []discovery.Rule) Option {
	return func(o *options) { o.rules = rules }
}

// WithExcluder filters discovered heads.
func WithExcluder(e discovery.Excluder) Option {
	return func(o *options) { o.excluder = e }
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRemoteAPI replaces the API client built from the repository URL.
func WithRemoteAPI(r discovery.RemoteAPI) Option {
	return func(o *options) { o.remote = r }
}

// WithClientOptions passes options to the API client.
func WithClientOptions(opts ...api.Option) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, opts...) }
}

// New creates a source for the repository at repositoryURL. It fails if the
// URL cannot be decomposed into owner and repository.
func New(repositoryURL string, opts ...Option) (*Source, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	repo, err := api.ParseRepoURL(repositoryURL)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	remote := o.remote
	if remote == nil {
		clientOpts := []api.Option{}
		switch {
		case o.credentials.Token != "":
			clientOpts = append(clientOpts, api.WithToken(o.credentials.Token))
		case o.credentials.Username != "":
			clientOpts = append(clientOpts, api.WithBasicAuth(o.credentials.Username, o.credentials.Password))
		}
		clientOpts = append(clientOpts, o.clientOpts...)
		client, err := api.New(repositoryURL, clientOpts...)
		if err != nil {
			return nil, err
		}
		remote = client
	}

	rules := o.rules
	if rules == nil {
		rules = discovery.DefaultRules()
	}

	excluder := o.excluder
	if excluder == nil {
		excluder = discovery.NoExclusions
	}

	return &Source{
		repo:     repo,
		api:      remote,
		config:   discovery.Build(rules...),
		excluder: excluder,
		logger:   logger,
	}, nil
}

// Repo returns the decomposed repository URL.
func (s *Source) Repo() *api.RepoURL {
	return s.repo
}

// Configuration returns the discovery configuration built from the rules.
func (s *Source) Configuration() discovery.Configuration {
	return s.config
}

func (s *Source) driver() *discovery.Driver {
	return &discovery.Driver{
		API:      s.api,
		Config:   s.config,
		Excluder: s.excluder,
		Logger:   s.logger.Named("discovery"),
	}
}

// All returns the lazy sequence of discovered revisions.
func (s *Source) All(ctx context.Context) iter.Seq2[scm.Revision, error] {
	return s.driver().All(ctx)
}

// Retrieve hands discovered heads to obs until it stops observing.
func (s *Source) Retrieve(ctx context.Context, obs discovery.Observer) error {
	s.logger.Debug("retrieving heads", "repository", s.repo.FullName())
	return s.driver().Observe(ctx, obs)
}

// RetrieveHead fetches the current revision of head directly, without
// enumerating the repository. A head the remote does not know is reported
// with ErrHeadNotFound.
func (s *Source) RetrieveHead(ctx context.Context, head scm.Head) (scm.Revision, error) {
	rev, err := s.retrieveHead(ctx, head)
	if api.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s: %w", ErrHeadNotFound, head.HeadName(), err)
	}
	return rev, err
}

func (s *Source) retrieveHead(ctx context.Context, head scm.Head) (scm.Revision, error) {
	switch h := head.(type) {
	case scm.BranchHead:
		b, err := s.api.GetBranch(ctx, h.Name)
		if err != nil {
			return nil, err
		}
		return api.ToBranchRevision(*b)

	case scm.TagHead:
		t, err := s.api.GetTag(ctx, h.Name)
		if err != nil {
			return nil, err
		}
		return api.ToTagRevision(*t)

	case scm.PullRequestHead:
		pr, err := s.api.GetPull(ctx, h.Number)
		if err != nil {
			return nil, err
		}
		return api.ToPullRequestRevision(*pr, h.Strategy)

	default:
		return nil, fmt.Errorf("unsupported head type %T", head)
	}
}

// HeadFromName builds the head of the given kind called name, for use with
// RetrieveHead. Pull request names must have the PR-<number>-<STRATEGY> form.
func HeadFromName(kind scm.Kind, name string) (scm.Head, error) {
	switch kind {
	case scm.KindBranch:
		return scm.BranchHead{Name: name}, nil
	case scm.KindTag:
		return scm.TagHead{Name: name}, nil
	case scm.KindPullRequest:
		number, strategy, err := scm.ParsePullRequestName(name)
		if err != nil {
			return nil, err
		}
		return scm.PullRequestHead{Name: name, Number: number, Strategy: strategy}, nil
	default:
		return nil, fmt.Errorf("unsupported head kind %s", kind)
	}
}

// RetrieveByName discovers the head called name and returns its revision.
func (s *Source) RetrieveByName(ctx context.Context, name string) (scm.Revision, error) {
	obs := discovery.NewNamedObserver(name)
	if err := s.Retrieve(ctx, obs); err != nil {
		return nil, err
	}
	if obs.Result() == nil {
		return nil, fmt.Errorf("%w: %s", ErrHeadNotFound, name)
	}
	return obs.Result(), nil
}

// RetrieveRevisions returns the names of all discovered heads, sorted.
func (s *Source) RetrieveRevisions(ctx context.Context) ([]string, error) {
	var names []string
	for rev, err := range s.All(ctx) {
		if err != nil {
			return nil, err
		}
		names = append(names, rev.RevisionHead().HeadName())
	}
	sort.Strings(names)
	return names, nil
}

// TrustedRevision returns the revision whose contents may be trusted when
// building rev.
func (s *Source) TrustedRevision(rev scm.Revision) scm.Revision {
	r := &trust.Resolver{Logger: s.logger.Named("trust")}
	return r.Resolve(rev)
}

// Trusted reports whether a registered authority trusts head.
func (s *Source) Trusted(head scm.Head) bool {
	return s.config.Trusts(head)
}

// Plan returns the checkout plan for head at rev.
func (s *Source) Plan(head scm.Head, rev scm.Revision) (*checkout.Plan, error) {
	return checkout.NewPlan(head, rev)
}
