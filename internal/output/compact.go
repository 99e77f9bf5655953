package output

import (
	"fmt"
	"io"
)

// CompactRenderer renders output in a condensed single-line-per-item format.
// This format is useful for scripts and quick scanning.
type CompactRenderer struct{}

// RenderDiscovery writes one line per head: kind name revision
func (r *CompactRenderer) RenderDiscovery(w io.Writer, result *DiscoveryResult) error {
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%s %s %s\n", e.Kind, e.Name, e.Revision)
	}
	return nil
}

// RenderPlan writes one refspec per line, then the merge step if any
func (r *CompactRenderer) RenderPlan(w io.Writer, result *PlanResult) error {
	for _, rs := range result.RefSpecs {
		fmt.Fprintf(w, "fetch %s\n", rs)
	}
	if result.MergeBase != "" {
		fmt.Fprintf(w, "merge %s %s\n", result.MergeTarget, result.MergeBase)
	}
	return nil
}

// RenderTrust writes the name and revision trusted files come from
func (r *CompactRenderer) RenderTrust(w io.Writer, result *TrustResult) error {
	fmt.Fprintf(w, "%s %s\n", result.TrustedRevision.Name, result.TrustedRevision.Revision)
	return nil
}

// RenderCheckout writes the directory and the checked out commit
func (r *CompactRenderer) RenderCheckout(w io.Writer, result *CheckoutResult) error {
	fmt.Fprintf(w, "%s %s\n", result.Dir, result.HEAD)
	return nil
}
