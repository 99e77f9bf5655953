package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/output"
)

var remoteFlag string

var planCmd = &cobra.Command{
	Use:   "plan <name>",
	Short: "Show the refspecs and merge step needed to check out a head",
	Long: `Show how the head called <name> would be checked out: the refspecs fetched
from the remote and, for pull requests built with the MERGE strategy, the
target branch commit merged on top.`,
	Args: cobra.ExactArgs(1),
	RunE: withHints(runPlan),
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&kindFlag, "kind", "", "Fetch the head directly as this kind instead of discovering it")

	planCmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote alias used in refspecs (overrides checkout.remote)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, src, err := loadSource()
	if err != nil {
		return err
	}

	rev, err := retrieve(cmd.Context(), src, args[0], kindFlag)
	if err != nil {
		return err
	}

	plan, err := src.Plan(rev.RevisionHead(), rev)
	if err != nil {
		return err
	}

	remote := checkoutRemote(cfg.Checkout.Remote, remoteFlag)
	refspecs, err := plan.Expand(remote)
	if err != nil {
		return err
	}
	strs := make([]string, len(refspecs))
	for i, rs := range refspecs {
		strs[i] = rs.String()
	}

	w := cmd.OutOrStdout()
	renderer, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	result := output.NewPlanResult(cfg.RepositoryURL(), entry(src, rev), remote, plan, strs)
	if err := renderer.RenderPlan(w, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}

// checkoutRemote returns the flag value when set, the configured remote otherwise.
func checkoutRemote(configured, flag string) string {
	if flag != "" {
		return flag
	}
	return configured
}
