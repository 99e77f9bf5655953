package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/output"
)

var trustCmd = &cobra.Command{
	Use:   "trust <name>",
	Short: "Show which revision trusted files are loaded from",
	Long: `Show the revision whose files may be trusted when building the head
called <name>.

For pull requests from forks this is the target branch at the revision the
pull request was discovered against, never the pull request itself.`,
	Args: cobra.ExactArgs(1),
	RunE: withHints(runTrust),
}

func init() {
	rootCmd.AddCommand(trustCmd)

	trustCmd.Flags().StringVar(&kindFlag, "kind", "", "Fetch the head directly as this kind instead of discovering it")
}

func runTrust(cmd *cobra.Command, args []string) error {
	cfg, src, err := loadSource()
	if err != nil {
		return err
	}

	rev, err := retrieve(cmd.Context(), src, args[0], kindFlag)
	if err != nil {
		return err
	}

	// the trusted revision is trusted by construction, whatever the authorities say
	trusted := src.TrustedRevision(rev)
	result := &output.TrustResult{
		Head:            entry(src, rev),
		TrustedRevision: output.NewEntry(trusted, true),
		Replaced:        trusted.RevisionHead().HeadName() != rev.RevisionHead().HeadName(),
	}

	w := cmd.OutOrStdout()
	renderer, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	if err := renderer.RenderTrust(w, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
