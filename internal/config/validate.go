package config

import (
	"fmt"
	"strings"

	"github.com/jokarl/branchsource/internal/api"
	"github.com/jokarl/branchsource/internal/output"
)

// ValidDiscoverKinds contains the accepted discover block labels
var ValidDiscoverKinds = map[string]bool{
	DiscoverBranches:           true,
	DiscoverTags:               true,
	DiscoverOriginPullRequests: true,
	DiscoverForkPullRequests:   true,
}

// Validate validates the configuration
func Validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (only version 1 is supported)", cfg.Version)
	}

	if url := cfg.RepositoryURL(); url != "" {
		if _, err := api.ParseRepoURL(url); err != nil {
			return fmt.Errorf("invalid repository_url: %w", err)
		}
	}

	seen := make(map[string]bool)
	for _, d := range cfg.Discover {
		if !ValidDiscoverKinds[d.Kind] {
			return fmt.Errorf("unknown discover kind: %s (must be one of %s)", d.Kind, validKindList())
		}
		if seen[d.Kind] {
			return fmt.Errorf("duplicate discover block: %s", d.Kind)
		}
		seen[d.Kind] = true

		if d.BuildOnPullHead && d.Kind != DiscoverOriginPullRequests && d.Kind != DiscoverForkPullRequests {
			return fmt.Errorf("build_on_pull_head is only valid for pull request discovery, not %s", d.Kind)
		}
	}

	if _, err := cfg.Filter(); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	if cfg.Output != nil && cfg.Output.Format != "" {
		if _, err := output.ParseFormat(cfg.Output.Format); err != nil {
			return err
		}
	}

	if cfg.Output != nil && cfg.Output.Color != "" {
		switch cfg.Output.Color {
		case "auto", "always", "never":
			// valid
		default:
			return fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", cfg.Output.Color)
		}
	}

	if cfg.Checkout != nil && strings.ContainsAny(cfg.Checkout.Remote, " :/") {
		return fmt.Errorf("invalid checkout remote: %q", cfg.Checkout.Remote)
	}

	return nil
}

func validKindList() string {
	return strings.Join([]string{
		DiscoverBranches,
		DiscoverTags,
		DiscoverOriginPullRequests,
		DiscoverForkPullRequests,
	}, ", ")
}
