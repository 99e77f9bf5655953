package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/discovery"
	"github.com/jokarl/branchsource/internal/output"
)

var (
	namesFlag bool
	limitFlag int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the heads of the repository",
	Long: `List every branch, tag and pull request the configured discovery rules
select, in that order, with its current revision and whether it is trusted.

Pull requests are named PR-<number>-<MERGE|HEAD> after their checkout strategy.

With --names only the head names are printed, sorted, one per line.`,
	Args: cobra.NoArgs,
	RunE: withHints(runDiscover),
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().BoolVar(&namesFlag, "names", false, "Print sorted head names only")
	discoverCmd.Flags().IntVar(&limitFlag, "limit", 0, "Stop after this many heads (0 for all)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if limitFlag < 0 {
		return fmt.Errorf("invalid --limit value: %d (must not be negative)", limitFlag)
	}

	cfg, src, err := loadSource()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if namesFlag {
		names, err := src.RetrieveRevisions(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	obs := &discovery.CollectingObserver{Limit: limitFlag}
	if err := src.Retrieve(cmd.Context(), obs); err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	logger.Debug("Discovery finished", "heads", len(obs.Revisions))

	result := &output.DiscoveryResult{Repository: cfg.RepositoryURL()}
	for _, rev := range obs.Revisions {
		result.Entries = append(result.Entries, entry(src, rev))
	}

	renderer, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	if err := renderer.RenderDiscovery(w, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
