package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tapsheet-dev/tapsheet/internal/categories"
	"github.com/tapsheet-dev/tapsheet/internal/importer"
)

func newCategoriesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories <export.csv>",
		Short: "List the distinct descriptions in an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "sumup-fr", "export format")
	return cmd
}

func runCategories(cmd *cobra.Command, csvPath, format string) error {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (have %v)", format, importer.DefaultRegistry().Formats())
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing export: %w", err)
	}

	counts := categories.Counts(txns)
	for _, desc := range categories.Distinct(txns) {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", counts[desc], desc)
	}
	return nil
}
