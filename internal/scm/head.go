// Package scm defines the head and revision model shared by discovery,
// trust resolution and checkout planning.
//
// Heads and revisions are closed sum types: the only implementations are the
// ones in this package, so a type switch over them is exhaustive.
package scm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant of a Head.
type Kind int

const (
	// KindBranch is a branch on the canonical repository
	KindBranch Kind = iota
	// KindTag is a tag on the canonical repository
	KindTag
	// KindPullRequest is a pull request targeting a branch of the canonical repository
	KindPullRequest
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindTag:
		return "tag"
	case KindPullRequest:
		return "pull_request"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ParseKind parses a string into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "branch":
		return KindBranch, nil
	case "tag":
		return KindTag, nil
	case "pull_request":
		return KindPullRequest, nil
	default:
		return KindBranch, fmt.Errorf("unknown head kind: %s", s)
	}
}

// Head is an addressable, buildable reference independent of its content.
type Head interface {
	// HeadName returns the unique name of the head within its source.
	HeadName() string

	// Kind returns the variant of the head.
	Kind() Kind

	isHead()
}

// BranchHead is a branch of the canonical repository.
type BranchHead struct {
	Name string
}

func (h BranchHead) HeadName() string { return h.Name }
func (h BranchHead) Kind() Kind       { return KindBranch }
func (BranchHead) isHead()            {}

// TagHead is a tag of the canonical repository.
type TagHead struct {
	Name string
	// Timestamp is the tag time when the remote reports it; zero otherwise.
	Timestamp time.Time
}

func (h TagHead) HeadName() string { return h.Name }
func (h TagHead) Kind() Kind       { return KindTag }
func (TagHead) isHead()            {}

// PullRequestHead is a pull request built with a given checkout strategy.
//
// The same pull request discovered under two strategies yields two distinct
// heads, because the strategy is part of the name.
type PullRequestHead struct {
	// Name is PR-<number>-<STRATEGY>.
	Name string
	// ID is the globally unique issue/pull request id.
	ID int64
	// Number is the repository-local sequence number.
	Number int64
	// Target is the branch the pull request merges into. Pull requests never
	// target other pull requests.
	Target   BranchHead
	Strategy CheckoutStrategy
	Origin   Origin
	// OriginOwner is the owner of the repository the change comes from.
	OriginOwner string
	// OriginRepoURL is the web URL of the repository the change comes from.
	OriginRepoURL string
	// OriginName is the source branch name.
	OriginName string
	Title      string
}

func (h PullRequestHead) HeadName() string { return h.Name }
func (h PullRequestHead) Kind() Kind       { return KindPullRequest }
func (PullRequestHead) isHead()            {}

// PullRequestName returns the head name of a pull request built with strategy.
func PullRequestName(number int64, strategy CheckoutStrategy) string {
	return fmt.Sprintf("PR-%d-%s", number, strategy)
}

// ParsePullRequestName inverts PullRequestName.
func ParsePullRequestName(name string) (number int64, strategy CheckoutStrategy, err error) {
	rest, ok := strings.CutPrefix(name, "PR-")
	if !ok {
		return 0, 0, fmt.Errorf("not a pull request name: %s", name)
	}
	num, strat, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, 0, fmt.Errorf("not a pull request name: %s", name)
	}
	number, err = strconv.ParseInt(num, 10, 64)
	if err != nil || number <= 0 {
		return 0, 0, fmt.Errorf("invalid pull request number in %s", name)
	}
	// names are always upper case
	if strat != strings.ToUpper(strat) {
		return 0, 0, fmt.Errorf("unknown checkout strategy in %s", name)
	}
	strategy, err = ParseCheckoutStrategy(strat)
	if err != nil {
		return 0, 0, err
	}
	return number, strategy, nil
}
