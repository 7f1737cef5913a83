package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tapsheet-dev/tapsheet/internal/categories"
	"github.com/tapsheet-dev/tapsheet/internal/chart"
	"github.com/tapsheet-dev/tapsheet/internal/config"
	"github.com/tapsheet-dev/tapsheet/internal/importer"
	"github.com/tapsheet-dev/tapsheet/internal/model"
	"github.com/tapsheet-dev/tapsheet/internal/report"
	"github.com/tapsheet-dev/tapsheet/internal/summary"
	"github.com/tapsheet-dev/tapsheet/internal/xlsx"
)

const dateFlagFormat = "2006-01-02"

// reportOptions collects the report command's flag values.
type reportOptions struct {
	selection  []string
	from       string
	to         string
	format     string
	configPath string
	template   string
	sheet      string
	out        string
	chartOut   string
	csvOut     string
	prev       []string
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report <export.csv>",
		Short: "Generate the service report for an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.selection, "select", nil, "descriptions to include (repeatable or comma-separated)")
	cmd.Flags().StringVar(&opts.from, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&opts.to, "to", "", "end date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&opts.format, "format", "", "export format (overrides config)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to tapsheet.yaml")
	cmd.Flags().StringVar(&opts.template, "template", "", "xlsx template to write into")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sheet name (required with --template)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output xlsx path")
	cmd.Flags().StringVar(&opts.chartOut, "chart", "", "write the half-hour sales chart PNG here")
	cmd.Flags().StringVar(&opts.csvOut, "csv-out", "", "write the totals table as CSV here")
	cmd.Flags().StringArrayVar(&opts.prev, "prev", nil, "prior-period group quantity, as group=quantity (repeatable)")

	return cmd
}

func runReport(cmd *cobra.Command, csvPath string, opts reportOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}

	parser, err := cfg.Parser(importer.DefaultRegistry())
	if err != nil {
		return err
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

	dr, err := parseDateRange(opts.from, opts.to)
	if err != nil {
		return err
	}

	prev, err := parsePrev(opts.prev)
	if err != nil {
		return err
	}

	svc := categories.NewService(cfg.Groups)
	res, err := report.Build(txns, report.Params{
		Selection: opts.selection,
		DateRange: dr,
		Groups:    svc.Groups(),
	})
	if errors.Is(err, report.ErrEmptySelection) {
		fmt.Fprintln(cmd.OutOrStdout(), "No descriptions selected; nothing to report. Use --select, see `tapsheet categories`.")
		return nil
	}
	if err != nil {
		return err
	}

	if len(cfg.Groups) > 0 {
		for _, desc := range opts.selection {
			if !svc.Known(desc) {
				fmt.Fprintf(cmd.OutOrStdout(), "note: %q is not in any KPI group\n", desc)
			}
		}
	}

	currency := currencyOf(parser)
	summary.Print(cmd.OutOrStdout(), res, currency, prev)

	buf, err := renderWorkbook(cfg, opts, res, currency)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = filepath.Join(cfg.Layout.OutputDir, "report.xlsx")
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", out)

	if opts.chartOut != "" {
		if err := chart.RenderFile(opts.chartOut, res.Buckets, currency); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", opts.chartOut)
	}

	if opts.csvOut != "" {
		cf, err := os.Create(opts.csvOut)
		if err != nil {
			return fmt.Errorf("creating totals CSV: %w", err)
		}
		if err := report.WriteTotals(cf, res.Totals, res.GrandTotal); err != nil {
			cf.Close()
			return err
		}
		if err := cf.Close(); err != nil {
			return fmt.Errorf("closing totals CSV: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Totals written to %s\n", opts.csvOut)
	}

	return nil
}

// loadConfig reads the named config, falling back to ./tapsheet.yaml when
// present, and package defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(configFile); err == nil {
		return config.Load(configFile)
	}
	return config.Default(), nil
}

func parseDateRange(from, to string) (*model.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("--from and --to must be given together")
	}

	start, err := time.Parse(dateFlagFormat, from)
	if err != nil {
		return nil, fmt.Errorf("parsing --from %q: %w", from, err)
	}
	end, err := time.Parse(dateFlagFormat, to)
	if err != nil {
		return nil, fmt.Errorf("parsing --to %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return &model.DateRange{Start: start, End: end}, nil
}

// parsePrev parses repeated "group=quantity" comparison values.
func parsePrev(values []string) (map[string]decimal.Decimal, error) {
	if len(values) == 0 {
		return nil, nil
	}
	prev := make(map[string]decimal.Decimal, len(values))
	for _, v := range values {
		name, qty, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --prev %q: want group=quantity", v)
		}
		d, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, fmt.Errorf("invalid --prev %q: %w", v, err)
		}
		prev[name] = d
	}
	return prev, nil
}

// currencyOf extracts the locale currency symbol from a parser, defaulting
// to the euro the SumUp exports use.
func currencyOf(p importer.Parser) string {
	if sumup, ok := p.(*importer.SumUpParser); ok && sumup.Locale.CurrencySymbol != "" {
		return sumup.Locale.CurrencySymbol
	}
	return "€"
}

func renderWorkbook(cfg *config.Config, opts reportOptions, res *report.Result, currency string) (*bytes.Buffer, error) {
	if opts.template != "" {
		if opts.sheet == "" {
			return nil, fmt.Errorf("--sheet is required with --template")
		}
		tf, err := os.Open(opts.template)
		if err != nil {
			return nil, fmt.Errorf("opening template: %w", err)
		}
		defer tf.Close()
		return xlsx.RenderIntoTemplate(tf, opts.sheet, res)
	}

	sheet := opts.sheet
	if sheet == "" {
		sheet = cfg.Layout.SheetName
	}
	return xlsx.RenderDashboard(res, sheet, currency)
}
