package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/pipeline"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/feature/compare"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Flags for compare
	maxDiffs    int
	noNormalize bool
	tolerance   float64
	jsonOutput  bool
	failOnDiff  bool

	readFlags    readOverrideFlags
	prepareFlags pipeline.Options
	renameFlags  []string
)

// readOverrideFlags backs the decoding flags shared by compare and inspect.
type readOverrideFlags struct {
	headerRows  int
	indexColumn int
	indexKind   string
	freq        string
	decimal     bool
}

func (r *readOverrideFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&r.headerRows, "header-rows", 1, "Number of CSV header rows (2 for grouped columns)")
	fs.IntVar(&r.indexColumn, "index-col", 0, "Position of the row index column, -1 for none")
	fs.StringVar(&r.indexKind, "index-kind", "", "Index key kind: auto, label, int, instant, period")
	fs.StringVar(&r.freq, "freq", "", "Period frequency when --index-kind=period (D, W, M, Q, Y)")
	fs.BoolVar(&r.decimal, "decimal", false, "Read fractional numbers as exact decimals")
}

// overrides converts the flags that were set on the command line.
func (r *readOverrideFlags) overrides(fs *pflag.FlagSet) compare.ReadOverrides {
	var o compare.ReadOverrides
	if fs.Changed("header-rows") {
		o.HeaderRows = &r.headerRows
	}
	if fs.Changed("index-col") {
		o.IndexColumn = &r.indexColumn
	}
	if fs.Changed("decimal") {
		o.Decimal = &r.decimal
	}
	o.IndexKind = dataset.IndexKind(r.indexKind)
	o.PeriodFreq = dataset.Freq(r.freq)
	return o
}

// compareCmd reconciles two datasets.
var compareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Compare two datasets and report their differences",
	Long: `Compare two datasets and report shape, index, column, type and value differences.

A dataset reference is one of:
  path/to/file.csv                 local CSV, TSV or JSON file
  s3://bucket/key.csv              object in S3 compatible storage (s3://key.csv uses the default bucket)
  db://table?index=col&freq=M      SQL table, ordered by its index column

Examples:
  # Compare two files
  compare expected.csv actual.csv

  # Two-level headers, monthly periods kept as periods
  compare --header-rows 2 --index-kind period --freq M --no-normalize a.csv b.csv

  # Exit with status 2 when the datasets differ
  compare --fail-on-diff s3://datasets/prices/2024.csv 'db://prices?index=day'`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	fs := compareCmd.Flags()
	fs.IntVar(&maxDiffs, "max-diffs", 0, "Maximum value differences to list before summarizing (default from config)")
	fs.BoolVar(&noNormalize, "no-normalize", false, "Compare period indices as periods instead of start instants")
	fs.Float64Var(&tolerance, "tolerance", 0, "Absolute tolerance for numeric cells")
	fs.BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	fs.BoolVar(&failOnDiff, "fail-on-diff", false, "Exit with status 2 when the datasets differ")
	readFlags.register(fs)

	fs.StringArrayVar(&renameFlags, "rename", nil, "Rename a column before comparing, as old=new (repeatable)")
	fs.StringSliceVar(&prepareFlags.Select, "select", nil, "Keep only these columns, in order")
	fs.StringVar(&prepareFlags.Group, "group", "", "Keep one column group of a two-level dataset")
	fs.BoolVar(&prepareFlags.NormalizeNames, "normalize-names", false, "Rewrite column names as lowercase ASCII identifiers")
	fs.BoolVar(&prepareFlags.DropMissing, "dropna", false, "Drop rows where every cell is missing")
	fs.BoolVar(&prepareFlags.Sort, "sort", false, "Sort rows by index before comparing")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	req := compare.Request{
		A:       args[0],
		B:       args[1],
		Read:    readFlags.overrides(cmd.Flags()),
		Prepare: prepareFlags,
	}
	if cmd.Flags().Changed("max-diffs") {
		req.Options.MaxReportedDiffs = &maxDiffs
	}
	if noNormalize {
		normalize := false
		req.Options.NormalizePeriods = &normalize
	}
	if cmd.Flags().Changed("tolerance") {
		req.Options.Tolerance = &tolerance
	}
	if req.Prepare.Rename, err = parseRenames(renameFlags); err != nil {
		return err
	}

	client, db, err := openBackends(cfg, l, req.A, req.B)
	if err != nil {
		return err
	}

	loader := source.NewLoader(client, cfg.Storage, db, l, cfg.Source)
	svc := compare.NewService(loader, l, cfg.Compare, cfg.Read)

	report, err := svc.Compare(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := printReport(cmd, report); err != nil {
		return err
	}
	if failOnDiff && !report.Identical {
		exitCode = 2
	}
	return nil
}

func printReport(cmd *cobra.Command, report *reconcile.Report) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return reconcile.Render(out, report)
}

// parseRenames turns old=new pairs into a rename map.
func parseRenames(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	renames := make(map[string]string, len(pairs))
	for _, p := range pairs {
		from, to, ok := strings.Cut(p, "=")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid --rename %q, expected old=new", p)
		}
		renames[from] = to
	}
	return renames, nil
}
