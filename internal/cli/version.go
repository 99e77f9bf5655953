package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit, and build date of branchsource.",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "branchsource version %s\n", versionStr)
		if commitStr != "none" && commitStr != "" {
			fmt.Fprintf(w, "  commit: %s\n", commitStr)
		}
		if dateStr != "unknown" && dateStr != "" {
			fmt.Fprintf(w, "  built:  %s\n", dateStr)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
