// Package config handles loading and validating branchsource configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/jokarl/branchsource/internal/discovery"
	"github.com/jokarl/branchsource/internal/filter"
	"github.com/jokarl/branchsource/internal/scm"
	"github.com/jokarl/branchsource/internal/source"
)

// FileName is the configuration file searched for when no path is given.
const FileName = ".branchsource.hcl"

// Discovery kinds accepted as discover block labels
const (
	DiscoverBranches           = "branches"
	DiscoverTags               = "tags"
	DiscoverOriginPullRequests = "origin_pull_requests"
	DiscoverForkPullRequests   = "fork_pull_requests"
)

// Config represents the branchsource configuration
type Config struct {
	Version  int               `hcl:"version,attr"`
	Source   *SourceConfig     `hcl:"source,block"`
	Discover []*DiscoverConfig `hcl:"discover,block"`
	Filters  []*FilterConfig   `hcl:"filter,block"`
	Output   *OutputConfig     `hcl:"output,block"`
	Checkout *CheckoutConfig   `hcl:"checkout,block"`

	// Internal: path to the loaded config file (empty if using defaults)
	configPath string
}

// SourceConfig identifies the repository and how to authenticate
type SourceConfig struct {
	RepositoryURL string `hcl:"repository_url,optional"`
	Username      string `hcl:"username,optional"`
	Password      string `hcl:"password,optional"`
	Token         string `hcl:"token,optional"`
}

// DiscoverConfig enables one category of heads
type DiscoverConfig struct {
	Kind string `hcl:"kind,label"`
	// BuildOnPullHead selects the HEAD strategy for pull requests instead of MERGE
	BuildOnPullHead bool `hcl:"build_on_pull_head,optional"`
}

// FilterConfig holds name patterns for one head kind
type FilterConfig struct {
	Kind    string   `hcl:"kind,label"`
	Include []string `hcl:"include,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

// OutputConfig defines output settings
type OutputConfig struct {
	Format string `hcl:"format,optional"`
	Color  string `hcl:"color,optional"`
}

// CheckoutConfig defines checkout settings
type CheckoutConfig struct {
	Remote string `hcl:"remote,optional"`
}

// ConfigPath returns the path to the loaded config file, or empty if using defaults
func (c *Config) ConfigPath() string {
	return c.configPath
}

// Rules returns the discovery rules of the discover blocks, in file order.
// Without discover blocks the default rules apply.
func (c *Config) Rules() ([]discovery.Rule, error) {
	if len(c.Discover) == 0 {
		return discovery.DefaultRules(), nil
	}

	rules := make([]discovery.Rule, 0, len(c.Discover))
	for _, d := range c.Discover {
		strategy := scm.StrategyMerge
		if d.BuildOnPullHead {
			strategy = scm.StrategyHead
		}
		switch d.Kind {
		case DiscoverBranches:
			rules = append(rules, discovery.DiscoverBranches())
		case DiscoverTags:
			rules = append(rules, discovery.DiscoverTags())
		case DiscoverOriginPullRequests:
			rules = append(rules, discovery.DiscoverOriginPullRequests(strategy))
		case DiscoverForkPullRequests:
			rules = append(rules, discovery.DiscoverForkPullRequests(strategy))
		default:
			return nil, fmt.Errorf("unknown discover kind: %s", d.Kind)
		}
	}
	return rules, nil
}

// Filter builds the exclusion filter of the filter blocks.
func (c *Config) Filter() (*filter.Filter, error) {
	rules := make(map[scm.Kind]filter.Patterns, len(c.Filters))
	for _, f := range c.Filters {
		kind, err := scm.ParseKind(f.Kind)
		if err != nil {
			return nil, err
		}
		p := rules[kind]
		p.Include = append(p.Include, f.Include...)
		p.Exclude = append(p.Exclude, f.Exclude...)
		rules[kind] = p
	}
	return filter.New(rules)
}

// Credentials returns the credentials of the source block.
func (c *Config) Credentials() source.Credentials {
	if c.Source == nil {
		return source.Credentials{}
	}
	return source.Credentials{
		Username: c.Source.Username,
		Password: c.Source.Password,
		Token:    c.Source.Token,
	}
}

// RepositoryURL returns the configured repository URL, if any.
func (c *Config) RepositoryURL() string {
	if c.Source == nil {
		return ""
	}
	return c.Source.RepositoryURL
}

// Load loads configuration from the specified path or searches for it.
// Search order: configPath (if provided), FileName in dir (or the working
// directory when dir is empty).
func Load(configPath, dir string) (*Config, error) {
	var path string

	if configPath != "" {
		path = configPath
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		path = findConfigFile(dir)
	}

	if path == "" {
		return Default(), nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(src, path)
}

// findConfigFile returns the path of FileName in dir, or "" if absent
func findConfigFile(dir string) string {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Parse decodes, completes and validates configuration source.
// filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", formatDiagnostics(diags))
	}

	var config Config
	decodeDiags := gohcl.DecodeBody(file.Body, evalContext(), &config)
	if decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", formatDiagnostics(decodeDiags))
	}

	config.configPath = filename

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// evalContext exposes the process environment as env.<NAME> so secrets can
// stay out of the file.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// formatDiagnostics formats HCL diagnostics into a readable error string
func formatDiagnostics(diags hcl.Diagnostics) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, diag := range diags {
		if i > 0 {
			b.WriteString("; ")
		}
		if diag.Subject != nil {
			fmt.Fprintf(&b, "%s:%d: ", diag.Subject.Filename, diag.Subject.Start.Line)
		}
		b.WriteString(diag.Summary)
		if diag.Detail != "" {
			b.WriteString(": ")
			b.WriteString(diag.Detail)
		}
	}
	return b.String()
}

// applyDefaults fills in default values for missing optional config blocks
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Output == nil {
		cfg.Output = defaults.Output
	} else {
		if cfg.Output.Format == "" {
			cfg.Output.Format = defaults.Output.Format
		}
		if cfg.Output.Color == "" {
			cfg.Output.Color = defaults.Output.Color
		}
	}

	if cfg.Checkout == nil {
		cfg.Checkout = defaults.Checkout
	} else if cfg.Checkout.Remote == "" {
		cfg.Checkout.Remote = defaults.Checkout.Remote
	}
}
