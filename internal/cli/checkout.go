package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/git"
	"github.com/jokarl/branchsource/internal/output"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <name> <dir>",
	Short: "Check out a head into a directory",
	Long: `Discover the head called <name> and check it out into <dir> with system git.

Only the refs the head needs are fetched. The discovered revision is checked
out detached, so a head that moved since discovery still builds what was
discovered. Pull requests built with the MERGE strategy are merged with their
target branch at the discovered target revision.

Requires git ` + fmt.Sprintf("%d.%d", git.MinVersionMajor, git.MinVersionMinor) + ` or later.`,
	Args: cobra.ExactArgs(2),
	RunE: withHints(runCheckout),
}

func init() {
	rootCmd.AddCommand(checkoutCmd)

	checkoutCmd.Flags().StringVar(&kindFlag, "kind", "", "Fetch the head directly as this kind instead of discovering it")

	checkoutCmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote alias to fetch into (overrides checkout.remote)")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	name, dir := args[0], args[1]
	ctx := cmd.Context()

	if err := git.CheckMinVersion(ctx); err != nil {
		return err
	}

	cfg, src, err := loadSource()
	if err != nil {
		return err
	}

	rev, err := retrieve(ctx, src, name, kindFlag)
	if err != nil {
		return err
	}
	plan, err := src.Plan(rev.RevisionHead(), rev)
	if err != nil {
		return err
	}

	res, err := git.Checkout(ctx, git.Request{
		Dir:       dir,
		RemoteURL: cfg.RepositoryURL(),
		Remote:    checkoutRemote(cfg.Checkout.Remote, remoteFlag),
		Head:      rev.RevisionHead(),
		Revision:  rev,
		Plan:      plan,
		Logger:    logger.Named("git"),
	})
	if err != nil {
		return err
	}

	refspecs := make([]string, len(res.RefSpecs))
	for i, rs := range res.RefSpecs {
		refspecs[i] = rs.String()
	}

	w := cmd.OutOrStdout()
	renderer, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	result := &output.CheckoutResult{
		Head:     entry(src, rev),
		Dir:      res.Dir,
		RefSpecs: refspecs,
		Commit:   res.Commit,
		HEAD:     res.HEAD,
		Merged:   res.Merged,
	}
	if err := renderer.RenderCheckout(w, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
