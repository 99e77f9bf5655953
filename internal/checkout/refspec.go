// Package checkout plans the fetch refspecs and merge step needed to
// materialize a head as a local checkout.
package checkout

import (
	"fmt"

	"github.com/go-git/go-git/v5/config"

	"github.com/jokarl/branchsource/internal/scm"
)

// RemoteToken stands for the remote alias in planned refspecs. It is replaced
// by Plan.Expand.
const RemoteToken = "@{remote}"

// BranchRefSpec fetches branch into the remote-tracking namespace.
func BranchRefSpec(branch string) config.RefSpec {
	return config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, RemoteToken, branch))
}

// TagRefSpec fetches tag onto the same ref name locally.
func TagRefSpec(tag string) config.RefSpec {
	return config.RefSpec(fmt.Sprintf("+refs/tags/%s:refs/tags/%s", tag, tag))
}

// PullRefSpec fetches the source tip of a pull request into the
// remote-tracking namespace under the head name.
func PullRefSpec(head scm.PullRequestHead) config.RefSpec {
	return config.RefSpec(fmt.Sprintf("+refs/pull/%d/head:refs/remotes/%s/%s", head.Number, RemoteToken, head.Name))
}
