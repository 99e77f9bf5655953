package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ErrGitNotFound is returned when git is not installed or not in PATH.
var ErrGitNotFound = errors.New("git is not installed or not in PATH")

// GitError wraps errors from git command execution with full context.
type GitError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *GitError) Error() string {
	name := "command"
	if len(e.Command) > 0 {
		name = e.Command[0]
	}
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed (exit %d): %s", name, e.ExitCode, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("git %s failed (exit %d)", name, e.ExitCode)
}

// ErrRefNotFound is returned when a ref or commit is missing after fetching.
type ErrRefNotFound struct {
	Ref    string
	Remote string // empty for local refs
}

func (e *ErrRefNotFound) Error() string {
	if e.Remote != "" {
		return fmt.Sprintf("ref '%s' not found in '%s'", e.Ref, e.Remote)
	}
	return fmt.Sprintf("ref '%s' not found\n\n"+
		"The revision may have moved since it was discovered. Retrieve the head again and retry.", e.Ref)
}

// ErrHeadMoved is returned when a discovered commit is no longer reachable
// from its ref on the remote, typically after a force push.
type ErrHeadMoved struct {
	Ref plumbing.ReferenceName
	// Pinned is the commit recorded at discovery.
	Pinned string
	// Current is the commit Ref points to now.
	Current string
	Err     error
}

func (e *ErrHeadMoved) Error() string {
	return fmt.Sprintf("%s moved since discovery: discovered at %s, now at %s\n\n"+
		"Retrieve the head again and retry.", e.Ref, e.Pinned, e.Current)
}

func (e *ErrHeadMoved) Unwrap() error {
	return e.Err
}

// ErrVersionTooOld is returned when git version is below the minimum required.
type ErrVersionTooOld struct {
	Current  string
	Required string
}

func (e *ErrVersionTooOld) Error() string {
	return fmt.Sprintf("git version %s is below minimum required %s\n\n"+
		"Please upgrade git: https://git-scm.com/downloads", e.Current, e.Required)
}

// MergeConflictError is returned when merging the base commit into a pull
// request fails.
type MergeConflictError struct {
	Target   string
	BaseHash string
	Err      error
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("failed to merge %s (%s): %v", e.Target, e.BaseHash, e.Err)
}

func (e *MergeConflictError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error indicates a ref was not found.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var refErr *ErrRefNotFound
	if errors.As(err, &refErr) {
		return true
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		stderr := strings.ToLower(gitErr.Stderr)

		if isAuthErrorStderr(stderr) {
			return false
		}

		// rev-parse --verify --quiet exits 1, ls-remote --exit-code exits 2
		if gitErr.ExitCode == 1 || gitErr.ExitCode == 2 {
			return true
		}

		if gitErr.ExitCode == 128 {
			for _, pattern := range []string{
				"unknown revision",
				"bad object",
				"couldn't find remote ref",
				"does not exist",
				"needed a single revision",
				"bad revision",
				"not our ref",
			} {
				if strings.Contains(stderr, pattern) {
					return true
				}
			}
		}
	}

	return false
}

// IsAuthError returns true if the error indicates an authentication failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		return false
	}

	return isAuthErrorStderr(strings.ToLower(gitErr.Stderr))
}

var authErrorPatterns = []string{
	// SSH
	"permission denied",
	"publickey",
	"could not read from remote repository",
	"host key verification failed",
	"connection refused",
	// HTTPS
	"401",
	"403",
	"authentication",
	"invalid credentials",
	"could not authenticate",
	"terminal prompts disabled",
	"permission to", // "Permission to org/repo.git denied"
}

func isAuthErrorStderr(stderr string) bool {
	for _, pattern := range authErrorPatterns {
		if strings.Contains(stderr, pattern) {
			return true
		}
	}
	return false
}
