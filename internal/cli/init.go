package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jokarl/branchsource/internal/config"
)

var forceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create starter " + config.FileName + " configuration",
	Long: `Create a new ` + config.FileName + ` configuration file in the current directory
with documented default settings.

The generated configuration includes comments explaining each option.
Fill in source.repository_url before running other commands.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(".", config.FileName)

	if _, err := os.Stat(configPath); err == nil {
		if !forceFlag {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
		}
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultConfigHCL()), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
