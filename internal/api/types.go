package api

import "time"

// Commit is the commit reference embedded in branch and tag records.
// Branch records carry the hash in "id", tag records in "sha".
type Commit struct {
	ID        string     `json:"id"`
	SHA       string     `json:"sha"`
	Message   string     `json:"message,omitempty"`
	URL       string     `json:"url,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Created   *time.Time `json:"created,omitempty"`
}

// Hash returns the commit hash, whichever field carried it.
func (c *Commit) Hash() string {
	if c == nil {
		return ""
	}
	if c.ID != "" {
		return c.ID
	}
	return c.SHA
}

// Time returns the commit time if the record includes one.
func (c *Commit) Time() time.Time {
	switch {
	case c == nil:
		return time.Time{}
	case c.Created != nil:
		return *c.Created
	case c.Timestamp != nil:
		return *c.Timestamp
	default:
		return time.Time{}
	}
}

// Branch is a branch record.
type Branch struct {
	Name   string  `json:"name"`
	Commit *Commit `json:"commit"`
}

// Tag is a tag record.
type Tag struct {
	Name   string  `json:"name"`
	ID     string  `json:"id,omitempty"`
	Commit *Commit `json:"commit"`
}

// User is an account record. Deployments disagree on the login field name.
type User struct {
	ID       int64  `json:"id"`
	Login    string `json:"login,omitempty"`
	Username string `json:"username,omitempty"`
	UserName string `json:"user_name,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Name returns the login of the user.
func (u *User) Name() string {
	switch {
	case u == nil:
		return ""
	case u.Login != "":
		return u.Login
	case u.Username != "":
		return u.Username
	default:
		return u.UserName
	}
}

// Repository is a repository record.
type Repository struct {
	ID            int64       `json:"id"`
	Owner         *User       `json:"owner"`
	Name          string      `json:"name"`
	FullName      string      `json:"full_name"`
	Description   string      `json:"description,omitempty"`
	Private       bool        `json:"private"`
	Fork          bool        `json:"fork"`
	Parent        *Repository `json:"parent,omitempty"`
	Empty         bool        `json:"empty"`
	Mirror        bool        `json:"mirror"`
	HTMLURL       string      `json:"html_url"`
	SSHURL        string      `json:"ssh_url,omitempty"`
	CloneURL      string      `json:"clone_url,omitempty"`
	DefaultBranch string      `json:"default_branch,omitempty"`
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
}

// PullRequestState is the lifecycle state of a pull request.
type PullRequestState string

const (
	PullRequestOpen   PullRequestState = "open"
	PullRequestClosed PullRequestState = "closed"
)

// PullRequest is a pull request record.
type PullRequest struct {
	ID       int64            `json:"id"`
	Number   int64            `json:"number"`
	User     *User            `json:"user,omitempty"`
	Title    string           `json:"title"`
	Body     string           `json:"body,omitempty"`
	Assignee *User            `json:"assignee,omitempty"`
	State    PullRequestState `json:"state"`
	Comments int              `json:"comments"`

	HeadBranch string      `json:"head_branch"`
	HeadCommit *Commit     `json:"head_commit"`
	HeadRepo   *Repository `json:"head_repo"`
	BaseBranch string      `json:"base_branch"`
	BaseCommit *Commit     `json:"base_commit"`
	BaseRepo   *Repository `json:"base_repo"`
	SameOrigin bool        `json:"same_origin"`

	HTMLURL         string     `json:"html_url,omitempty"`
	Mergeable       *bool      `json:"mergeable,omitempty"`
	HasMerged       bool       `json:"has_merged"`
	MergedAt        *time.Time `json:"merged_at,omitempty"`
	MergedCommitSHA string     `json:"merged_commit_sha,omitempty"`
	MergedBy        *User      `json:"merged_by,omitempty"`
}
