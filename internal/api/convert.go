package api

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/jokarl/branchsource/internal/scm"
)

// ToBranchRevision maps a branch record onto a branch revision.
func ToBranchRevision(b Branch) (scm.BranchRevision, error) {
	if b.Name == "" {
		return scm.BranchRevision{}, &IntegrityError{Record: "branch", Field: "name"}
	}
	record := "branch " + b.Name
	hash, err := commitHash(record, "commit id", b.Commit)
	if err != nil {
		return scm.BranchRevision{}, err
	}
	return scm.BranchRevision{
		Head: scm.BranchHead{Name: b.Name},
		Hash: hash,
	}, nil
}

// ToTagRevision maps a tag record onto a tag revision.
func ToTagRevision(t Tag) (scm.TagRevision, error) {
	if t.Name == "" {
		return scm.TagRevision{}, &IntegrityError{Record: "tag", Field: "name"}
	}
	record := "tag " + t.Name
	hash, err := commitHash(record, "commit sha", t.Commit)
	if err != nil {
		return scm.TagRevision{}, err
	}
	return scm.TagRevision{
		Head: scm.TagHead{Name: t.Name, Timestamp: t.Commit.Time()},
		Hash: hash,
	}, nil
}

// ToPullRequestRevision maps a pull request record onto a revision built
// with strategy. Pull requests from the repository itself get the default
// origin; all others are forks named after the head repository.
func ToPullRequestRevision(pr PullRequest, strategy scm.CheckoutStrategy) (scm.PullRequestRevision, error) {
	record := fmt.Sprintf("pull request #%d", pr.Number)

	if pr.BaseBranch == "" {
		return scm.PullRequestRevision{}, &IntegrityError{Record: record, Field: "base_branch"}
	}
	if pr.HeadBranch == "" {
		return scm.PullRequestRevision{}, &IntegrityError{Record: record, Field: "head_branch"}
	}
	baseHash, err := commitHash(record, "base_commit", pr.BaseCommit)
	if err != nil {
		return scm.PullRequestRevision{}, err
	}
	headHash, err := commitHash(record, "head_commit", pr.HeadCommit)
	if err != nil {
		return scm.PullRequestRevision{}, err
	}

	origin := scm.DefaultOrigin
	if !pr.SameOrigin {
		if pr.HeadRepo == nil || pr.HeadRepo.FullName == "" {
			return scm.PullRequestRevision{}, &IntegrityError{Record: record, Field: "head_repo.full_name"}
		}
		origin = scm.ForkOrigin(pr.HeadRepo.FullName)
	}

	var originOwner, originRepoURL string
	if pr.HeadRepo != nil {
		originOwner = pr.HeadRepo.Owner.Name()
		originRepoURL = pr.HeadRepo.HTMLURL
	}
	if originRepoURL == "" && pr.BaseRepo != nil {
		originRepoURL = pr.BaseRepo.HTMLURL
	}

	target := scm.BranchHead{Name: pr.BaseBranch}
	head := scm.PullRequestHead{
		Name:          scm.PullRequestName(pr.Number, strategy),
		ID:            pr.ID,
		Number:        pr.Number,
		Target:        target,
		Strategy:      strategy,
		Origin:        origin,
		OriginOwner:   originOwner,
		OriginRepoURL: originRepoURL,
		OriginName:    pr.HeadBranch,
		Title:         pr.Title,
	}

	return scm.PullRequestRevision{
		Head:   head,
		Target: scm.BranchRevision{Head: target, Hash: baseHash},
		Origin: scm.BranchRevision{Head: scm.BranchHead{Name: pr.HeadBranch}, Hash: headHash},
	}, nil
}

// commitHash extracts and validates the hash of c.
func commitHash(record, field string, c *Commit) (string, error) {
	hash := c.Hash()
	if hash == "" {
		return "", &IntegrityError{Record: record, Field: field}
	}
	if !plumbing.IsHash(hash) {
		return "", &IntegrityError{Record: record, Field: field, Value: hash}
	}
	return hash, nil
}
