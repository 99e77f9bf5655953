package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ResolveRemoteRef resolves a ref to its commit SHA in a remote repository
// without cloning it. Returns the SHA and the full ref name. Short names are
// tried as a branch, then as a tag.
func ResolveRemoteRef(ctx context.Context, url, ref string) (string, plumbing.ReferenceName, error) {
	refs, err := ListRemoteRefs(ctx, url, ref)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve remote ref %q: %w", ref, err)
	}

	for _, name := range []plumbing.ReferenceName{
		plumbing.ReferenceName(ref),
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewTagReferenceName(ref),
	} {
		if sha, ok := refs[name]; ok {
			return sha, name, nil
		}
	}
	return "", "", &ErrRefNotFound{Ref: ref, Remote: url}
}

// ListRemoteRefs lists the refs of a remote repository, keyed by full name.
// If patterns are provided, only matching refs are returned.
func ListRemoteRefs(ctx context.Context, url string, patterns ...string) (map[plumbing.ReferenceName]string, error) {
	args := append([]string{"ls-remote", url}, patterns...)

	out, err := Run(ctx, args, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote refs: %w", err)
	}

	refs := make(map[plumbing.ReferenceName]string)
	for _, r := range parseLsRemote(out) {
		refs[r.name] = r.hash
	}
	return refs, nil
}

// ResolveRef resolves a local ref or hash to the commit it names.
func ResolveRef(ctx context.Context, dir, ref string) (string, error) {
	sha, err := Run(ctx, []string{"rev-parse", "--verify", "--quiet", ref + "^{commit}"}, &RunOptions{Dir: dir})
	if err != nil {
		if IsNotFound(err) {
			return "", &ErrRefNotFound{Ref: ref}
		}
		return "", fmt.Errorf("failed to resolve ref %q: %w", ref, err)
	}
	return sha, nil
}

type remoteRef struct {
	hash string
	name plumbing.ReferenceName
}

// parseLsRemote parses lines of "<sha>\t<ref>", skipping malformed ones.
func parseLsRemote(out string) []remoteRef {
	var refs []remoteRef
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || !plumbing.IsHash(fields[0]) {
			continue
		}
		refs = append(refs, remoteRef{hash: fields[0], name: plumbing.ReferenceName(fields[1])})
	}
	return refs
}
