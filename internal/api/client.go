// Package api provides a client for the Gitea-compatible REST API served by
// DAGsHub and similar hosts, and maps its records onto scm revisions.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultUserAgent = "branchsource"

// Client handles interactions with the repository API.
// It is safe for concurrent use; it holds no state besides the HTTP client.
type Client struct {
	httpClient *http.Client
	repo       *RepoURL
	username   string
	password   string
	token      string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth authenticates every request with HTTP basic auth.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithToken authenticates every request with an access token.
// It takes precedence over basic auth.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the repository at repoURL.
// It fails when repoURL cannot be decomposed into owner and repository.
func New(repoURL string, opts ...Option) (*Client, error) {
	repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		repo:      repo,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Repo returns the decomposed repository URL.
func (c *Client) Repo() *RepoURL {
	return c.repo
}

// ListBranches lists all branches of the repository.
func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	// TODO: follow the Link header once the API paginates branch listings
	var branches []Branch
	if err := c.get(ctx, "list branches", []string{"branches"}, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// GetBranch fetches a single branch by name.
func (c *Client) GetBranch(ctx context.Context, name string) (*Branch, error) {
	var branch Branch
	if err := c.get(ctx, "get branch "+name, []string{"branches", name}, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListTags lists all tags of the repository.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.get(ctx, "list tags", []string{"tags"}, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag fetches a single tag by name.
func (c *Client) GetTag(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	if err := c.get(ctx, "get tag "+name, []string{"tags", name}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetPull fetches a single pull request by its repository-local number.
func (c *Client) GetPull(ctx context.Context, number int64) (*PullRequest, error) {
	var pull PullRequest
	op := fmt.Sprintf("get pull request #%d", number)
	if err := c.get(ctx, op, []string{"pulls", strconv.FormatInt(number, 10)}, &pull); err != nil {
		return nil, err
	}
	return &pull, nil
}

// ListPulls lists the pull requests of the repository.
func (c *Client) ListPulls(ctx context.Context) ([]PullRequest, error) {
	var pulls []PullRequest
	if err := c.get(ctx, "list pull requests", []string{"pulls"}, &pulls); err != nil {
		return nil, err
	}
	return pulls, nil
}

// endpoint builds the URL of /repos/<owner>/<repo>/<segments...>.
// Each segment is escaped on its own, so branch names containing slashes
// keep them as path separators.
func (c *Client) endpoint(segments []string) string {
	parts := []string{"repos", url.PathEscape(c.repo.Owner), url.PathEscape(c.repo.Repo)}
	for _, seg := range segments {
		for _, p := range strings.Split(seg, "/") {
			parts = append(parts, url.PathEscape(p))
		}
	}
	ref, _ := url.Parse(strings.Join(parts, "/"))
	return c.repo.APIRoot.ResolveReference(ref).String()
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, op string, segments []string, out any) error {
	endpoint := c.endpoint(segments)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, URL: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	return nil
}

// setHeaders sets common headers for API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "token "+c.token)
	case c.username != "":
		req.SetBasicAuth(c.username, c.password)
	}
}
