package api

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidRepoURL is returned when a repository URL cannot be decomposed
// into an owner and a repository name.
var ErrInvalidRepoURL = errors.New("not a valid repository URL")

// repoPathPattern requires the path to end with /<owner>/<repo>.
var repoPathPattern = regexp.MustCompile(`.*/[^/]+/[^/]+$`)

// RepoURL is a repository web URL decomposed into its API coordinates.
type RepoURL struct {
	// Owner is the user or organization owning the repository.
	Owner string
	// Repo is the repository name without any .git suffix.
	Repo string
	// APIRoot is the base of the REST API, e.g. https://dagshub.com/api/v1/
	APIRoot *url.URL
	// Raw is the URL as given by the user.
	Raw string
}

// FullName returns owner/repo.
func (u *RepoURL) FullName() string {
	return u.Owner + "/" + u.Repo
}

// String returns the URL as given by the user.
func (u *RepoURL) String() string {
	return u.Raw
}

// ParseRepoURL decomposes a repository web URL such as
// https://dagshub.com/owner/repo.git into owner, repo and API root.
//
// One trailing slash and then one .git suffix are stripped. Hosts served
// under a path prefix keep it: https://host/sub/owner/repo has the API root
// https://host/sub/api/v1/.
func ParseRepoURL(raw string) (*RepoURL, error) {
	// TODO: accept scp-style SSH remotes (git@host:owner/repo.git) once the API host can be derived from them
	trimmed := strings.TrimSuffix(raw, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRepoURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s (expected an http or https URL)", ErrInvalidRepoURL, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %s (missing host)", ErrInvalidRepoURL, raw)
	}
	if !repoPathPattern.MatchString(u.Path) {
		return nil, fmt.Errorf("%w: %s (expected a path ending in /owner/repo)", ErrInvalidRepoURL, raw)
	}

	idx := strings.LastIndex(u.Path, "/")
	repo := u.Path[idx+1:]
	withoutRepo := u.Path[:idx]
	owner := withoutRepo[strings.LastIndex(withoutRepo, "/")+1:]

	u.RawQuery = ""
	u.Fragment = ""
	apiRoot := u.ResolveReference(&url.URL{Path: "../api/v1/"})

	return &RepoURL{
		Owner:   owner,
		Repo:    repo,
		APIRoot: apiRoot,
		Raw:     raw,
	}, nil
}
