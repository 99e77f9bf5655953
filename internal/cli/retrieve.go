package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/output"
	"github.com/jokarl/branchsource/internal/scm"
	"github.com/jokarl/branchsource/internal/source"
)

var kindFlag string

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <name>",
	Short: "Show the current revision of one head",
	Long: `Discover the head called <name> and show its current revision.

Discovery stops as soon as the head is found. Heads are named as listed by
'branchsource discover', e.g. main, v1.0 or PR-4-MERGE.

With --kind (branch, tag or pull_request) the head is fetched directly with a
single request instead of being discovered. Discovery rules and filters do not
apply to a direct fetch.`,
	Args: cobra.ExactArgs(1),
	RunE: withHints(runRetrieve),
}

func init() {
	rootCmd.AddCommand(retrieveCmd)

	retrieveCmd.Flags().StringVar(&kindFlag, "kind", "", "Fetch the head directly as this kind: branch, tag, pull_request")
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	cfg, src, err := loadSource()
	if err != nil {
		return err
	}

	rev, err := retrieve(cmd.Context(), src, args[0], kindFlag)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	renderer, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	result := &output.DiscoveryResult{
		Repository: cfg.RepositoryURL(),
		Entries:    []output.Entry{entry(src, rev)},
	}
	if err := renderer.RenderDiscovery(w, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}

// retrieve looks name up by discovery, or fetches it directly when kind is set.
func retrieve(ctx context.Context, src *source.Source, name, kind string) (scm.Revision, error) {
	if kind == "" {
		return src.RetrieveByName(ctx, name)
	}

	k, err := scm.ParseKind(kind)
	if err != nil {
		return nil, fmt.Errorf("invalid --kind value: %w", err)
	}
	head, err := source.HeadFromName(k, name)
	if err != nil {
		return nil, err
	}
	return src.RetrieveHead(ctx, head)
}
