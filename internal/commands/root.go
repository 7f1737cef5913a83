package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tapsheet-dev/tapsheet/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tapsheet",
		Short:   "Service reports from point-of-sale CSV exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}
