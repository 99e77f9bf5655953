package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/config"
	"github.com/jokarl/branchsource/internal/output"
	"github.com/jokarl/branchsource/internal/scm"
	"github.com/jokarl/branchsource/internal/source"
)

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// Global flags
var (
	configFlag  string
	repoFlag    string
	formatFlag  string
	colorFlag   string
	verboseFlag bool
)

// logger is built in PersistentPreRunE from --verbose
var logger hclog.Logger = hclog.NewNullLogger()

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "branchsource",
	Short: "Discover and check out branches, tags and pull requests",
	Long: `branchsource discovers the branches, tags and pull requests of a repository
hosted on a Gitea-compatible API such as DAGsHub, decides which of them are
trusted, and checks out any of them with exactly the refs it needs.

Pull requests from forks are never trusted: files that drive the build are
loaded from the target branch instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verboseFlag)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, cancelling API requests and
// git commands when ctx is done.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file (default: ./"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository URL (overrides source.repository_url)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Output format: text, json, compact (overrides output.format)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color mode: auto, always, never (overrides output.color)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
}

func newLogger(w io.Writer, verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "branchsource",
		Level:  level,
		Output: w,
	})
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag, "")
	if err != nil {
		return nil, err
	}

	if repoFlag != "" {
		if cfg.Source == nil {
			cfg.Source = &config.SourceConfig{}
		}
		cfg.Source.RepositoryURL = repoFlag
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if colorFlag != "" {
		cfg.Output.Color = colorFlag
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.RepositoryURL() == "" {
		return nil, fmt.Errorf("no repository configured: set source.repository_url in %s or pass --repo", config.FileName)
	}

	if path := cfg.ConfigPath(); path != "" {
		logger.Debug("Loaded configuration", "path", path)
	}
	return cfg, nil
}

// newSource builds the source described by cfg.
func newSource(cfg *config.Config) (*source.Source, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	f, err := cfg.Filter()
	if err != nil {
		return nil, err
	}

	opts := []source.Option{
		source.WithCredentials(cfg.Credentials()),
		source.WithRules(rules),
		source.WithLogger(logger),
	}
	if !f.Empty() {
		opts = append(opts, source.WithExcluder(f))
	}

	return source.New(cfg.RepositoryURL(), opts...)
}

// loadSource loads the configuration and builds its source.
func loadSource() (*config.Config, *source.Source, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	src, err := newSource(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, src, nil
}

// newRenderer creates the renderer configured for w.
func newRenderer(cfg *config.Config, w io.Writer) (output.Renderer, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(format, shouldUseColor(cfg.Output.Color, w)), nil
}

func shouldUseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
}

// entry builds the display entry of rev, trusted when src trusts its head.
func entry(src *source.Source, rev scm.Revision) output.Entry {
	return output.NewEntry(rev, src.Trusted(rev.RevisionHead()))
}
