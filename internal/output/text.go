package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jokarl/branchsource/internal/scm"
)

// TextRenderer renders output in human-readable text format
type TextRenderer struct {
	ColorEnabled bool
}

// configure overrides fatih/color's terminal detection, which only looks at stdout
func (r *TextRenderer) configure() {
	color.NoColor = !r.ColorEnabled
}

// RenderDiscovery writes the discovered heads grouped by kind
func (r *TextRenderer) RenderDiscovery(w io.Writer, result *DiscoveryResult) error {
	r.configure()

	fmt.Fprintf(w, "branchsource: %s\n\n", result.Repository)

	for _, e := range result.Entries {
		r.renderEntry(w, e)
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	r.renderSummary(w, result)
	return nil
}

// RenderPlan writes the refspecs and merge step of a plan
func (r *TextRenderer) RenderPlan(w io.Writer, result *PlanResult) error {
	r.configure()

	fmt.Fprintf(w, "branchsource: plan for %s (%s)\n\n", result.Head.Name, result.Repository)
	r.renderEntry(w, result.Head)

	fmt.Fprintf(w, "Fetch from %s:\n", result.Remote)
	for _, rs := range result.RefSpecs {
		fmt.Fprintf(w, "  %s\n", rs)
	}

	if result.MergeBase != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Merge %s at %s into the checkout\n", result.MergeTarget, result.MergeBase)
	}
	return nil
}

// RenderTrust writes where trusted files come from
func (r *TextRenderer) RenderTrust(w io.Writer, result *TrustResult) error {
	r.configure()

	r.renderEntry(w, result.Head)
	if result.Replaced {
		fmt.Fprintf(w, "Trusted files: %s at %s %s\n",
			result.TrustedRevision.Name, result.TrustedRevision.Revision,
			r.paint(color.FgYellow, "(pull request not trusted)"))
	} else {
		fmt.Fprintf(w, "Trusted files: %s at %s\n", result.TrustedRevision.Name, result.TrustedRevision.Revision)
	}
	return nil
}

// RenderCheckout writes the outcome of a checkout
func (r *TextRenderer) RenderCheckout(w io.Writer, result *CheckoutResult) error {
	r.configure()

	r.renderEntry(w, result.Head)
	fmt.Fprintf(w, "Checked out %s into %s\n", result.Commit, result.Dir)
	if result.Merged {
		fmt.Fprintf(w, "Merged target, HEAD is now %s\n", result.HEAD)
	}
	fmt.Fprintf(w, "Result: %s\n", r.paint(color.FgGreen, "OK"))
	return nil
}

func (r *TextRenderer) renderEntry(w io.Writer, e Entry) {
	fmt.Fprintf(w, "%s  %s  %s\n", r.colorKind(e.Kind), e.Name, e.Revision)

	if e.Kind == scm.KindPullRequest {
		if e.Title != "" {
			fmt.Fprintf(w, "  %s\n", e.Title)
		}
		fmt.Fprintf(w, "  %s -> %s (%s, %s)\n", e.OriginName, e.Target, e.Origin, e.Strategy)
	}

	if e.Trusted {
		fmt.Fprintf(w, "  %s\n", r.paint(color.FgGreen, "[TRUSTED]"))
	} else {
		fmt.Fprintf(w, "  %s\n", r.paint(color.FgYellow, "[UNTRUSTED]"))
	}

	fmt.Fprintln(w)
}

func (r *TextRenderer) renderSummary(w io.Writer, result *DiscoveryResult) {
	var branches, tags, pulls int
	for _, e := range result.Entries {
		switch e.Kind {
		case scm.KindBranch:
			branches++
		case scm.KindTag:
			tags++
		case scm.KindPullRequest:
			pulls++
		}
	}

	parts := []string{}
	if branches > 0 {
		parts = append(parts, fmt.Sprintf("%d branch", branches))
	}
	if tags > 0 {
		parts = append(parts, fmt.Sprintf("%d tag", tags))
	}
	if pulls > 0 {
		parts = append(parts, fmt.Sprintf("%d pull request", pulls))
	}
	if len(parts) == 0 {
		parts = append(parts, "no heads found")
	}

	fmt.Fprintf(w, "Summary: %s\n", strings.Join(parts, ", "))
}

func (r *TextRenderer) paint(attr color.Attribute, s string) string {
	if !r.ColorEnabled {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (r *TextRenderer) colorKind(k scm.Kind) string {
	str := strings.ToUpper(k.String())
	if !r.ColorEnabled {
		return str
	}

	switch k {
	case scm.KindBranch:
		return color.New(color.FgCyan, color.Bold).Sprint(str)
	case scm.KindTag:
		return color.New(color.FgMagenta).Sprint(str)
	case scm.KindPullRequest:
		return color.New(color.FgBlue).Sprint(str)
	default:
		return str
	}
}
