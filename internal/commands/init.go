package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tapsheet-dev/tapsheet/internal/config"
)

// configFile is the project configuration filename.
const configFile = "tapsheet.yaml"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tapsheet project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir)
		},
	}
	return cmd
}

func runInit(cmd *cobra.Command, dir string) error {
	cfg := config.Default()

	if err := os.MkdirAll(filepath.Join(dir, cfg.Layout.OutputDir), 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists in %s", configFile, dir)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized tapsheet project at %s\n", dir)
	fmt.Fprintf(cmd.OutOrStdout(), "Fill in the KPI groups in %s before the first report.\n", configFile)
	return nil
}
