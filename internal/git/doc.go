// Package git materializes checkout plans with the system git binary.
//
// Authentication is left to the user's git configuration (credential
// helpers, SSH agent); this package never stores credentials.
//
// Checkout turns a planned head into a working tree:
//
//	plan, err := checkout.NewPlan(rev.RevisionHead(), rev)
//	if err != nil {
//	    return err
//	}
//	res, err := git.Checkout(ctx, git.Request{
//	    Dir:       "/tmp/build",
//	    RemoteURL: "https://dagshub.com/owner/repo.git",
//	    Head:      rev.RevisionHead(),
//	    Revision:  rev,
//	    Plan:      plan,
//	})
//
// Only the plan's refspecs are fetched. Merge builds of pull requests end with
// the base commit merged into the pull request tip.
package git
