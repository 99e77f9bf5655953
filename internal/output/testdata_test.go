package output

import (
	"strings"

	"github.com/jokarl/branchsource/internal/scm"
)

var (
	baseSHA = strings.Repeat("a", 40)
	headSHA = strings.Repeat("b", 40)
)

func branchRevision() scm.Revision {
	return scm.BranchRevision{Head: scm.BranchHead{Name: "main"}, Hash: baseSHA}
}

func tagRevision() scm.Revision {
	return scm.TagRevision{Head: scm.TagHead{Name: "v1.0"}, Hash: baseSHA}
}

func forkPullRevision() scm.PullRequestRevision {
	target := scm.BranchHead{Name: "main"}
	return scm.PullRequestRevision{
		Head: scm.PullRequestHead{
			Name:       scm.PullRequestName(7, scm.StrategyMerge),
			ID:         107,
			Number:     7,
			Target:     target,
			Strategy:   scm.StrategyMerge,
			Origin:     scm.ForkOrigin("alice/repo"),
			OriginName: "feature",
			Title:      "Add feature",
		},
		Target: scm.BranchRevision{Head: target, Hash: baseSHA},
		Origin: scm.BranchRevision{Head: scm.BranchHead{Name: "feature"}, Hash: headSHA},
	}
}

func sampleDiscovery() *DiscoveryResult {
	return &DiscoveryResult{
		Repository: "https://dagshub.com/owner/repo",
		Entries: []Entry{
			NewEntry(branchRevision(), true),
			NewEntry(tagRevision(), true),
			NewEntry(forkPullRevision(), false),
		},
	}
}
