package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	cfgpkg "github.com/KaramelBytes/tabloom-cli/internal/config"
	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
	"github.com/KaramelBytes/tabloom-cli/internal/project"
	"github.com/KaramelBytes/tabloom-cli/internal/report"
	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/spf13/cobra"
)

// tabFlags are the tabulation and input flags shared by tab and tab-batch.
type tabFlags struct {
	counter         string
	by              string
	multiplier      float64
	digits          int
	propTotal       bool
	colTotals       bool
	rowTotals       bool
	explicitMissing bool
	bins            int
	levels          []string
	groupLevels     []string
	format          string
	project         string
	description     string
	delimiter       string
	decimal         string
	thousands       string
	sheetName       string
	sheetIndex      int
	maxRows         int
}

func (s *tabFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&s.counter, "counter", "c", "", "column whose levels are counted (required)")
	f.StringVarP(&s.by, "by", "b", "", "optional grouping column")
	f.Float64Var(&s.multiplier, "multiplier", 100, "scale factor for proportions (100 = percent)")
	f.IntVar(&s.digits, "digits", 1, "decimal places for proportions (negative = no rounding)")
	f.BoolVar(&s.propTotal, "prop-total", false, "proportions over the whole table instead of per group")
	f.BoolVar(&s.colTotals, "col-totals", false, "append a Total row")
	f.BoolVar(&s.rowTotals, "row-totals", false, "append a Total column of counts")
	f.BoolVar(&s.explicitMissing, "explicit-missing", true, "count missing counter values as a 'Missing' level instead of dropping them")
	f.IntVar(&s.bins, "bins", 4, "number of quantile bins for numeric columns")
	f.StringSliceVar(&s.levels, "levels", nil, "declared counter levels, in display order")
	f.StringSliceVar(&s.groupLevels, "group-levels", nil, "declared grouper levels, in display order")
	f.StringVar(&s.format, "format", "", "output format: md|csv|json|yaml (default from config)")
	f.StringVarP(&s.project, "project", "p", "", "project name to save tables into")
	f.StringVar(&s.description, "desc", "", "description when saving to a project")
	f.StringVar(&s.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	f.StringVar(&s.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	f.StringVar(&s.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	f.StringVar(&s.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	f.IntVar(&s.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	f.IntVar(&s.maxRows, "max-rows", 0, "maximum rows to process (0 = unlimited)")
}

// tabulateOptions layers the options: config, then project, then any flag
// set explicitly on the command line.
func (s *tabFlags) tabulateOptions(cmd *cobra.Command, c *cfgpkg.Global, p *project.Project) (tabulate.Options, error) {
	opt := c.TabulateOptions()
	if p != nil {
		p.Config.Apply(&opt)
	}
	f := cmd.Flags()
	opt.Grouper = s.by
	if f.Changed("multiplier") {
		if s.multiplier <= 0 {
			return opt, fmt.Errorf("--multiplier must be positive, got %v", s.multiplier)
		}
		opt.Multiplier = s.multiplier
	}
	if f.Changed("digits") {
		opt.Digits = s.digits
	}
	if f.Changed("prop-total") {
		opt.PropTotal = s.propTotal
	}
	if f.Changed("col-totals") {
		opt.ColTotals = s.colTotals
	}
	if f.Changed("row-totals") {
		opt.RowTotals = s.rowTotals
	}
	if f.Changed("explicit-missing") {
		opt.ExplicitMissing = s.explicitMissing
	}
	if f.Changed("bins") {
		if s.bins < 1 {
			return opt, fmt.Errorf("--bins must be at least 1, got %d", s.bins)
		}
		opt.Binner = tabulate.QuantileBinner{Bins: s.bins}
	}
	opt.CounterLevels = s.levels
	opt.GrouperLevels = s.groupLevels
	return opt, nil
}

func (s *tabFlags) datasetOptions(cmd *cobra.Command, c *cfgpkg.Global) (dataset.Options, error) {
	opt, err := c.DatasetOptions()
	if err != nil {
		return opt, err
	}
	f := cmd.Flags()
	if s.delimiter != "" {
		if opt.Delimiter, err = cfgpkg.ParseDelimiter(s.delimiter); err != nil {
			return opt, fmt.Errorf("--delimiter: %w", err)
		}
	}
	if s.decimal != "" {
		if opt.DecimalSeparator, err = cfgpkg.ParseDecimal(s.decimal); err != nil {
			return opt, fmt.Errorf("--decimal: %w", err)
		}
	}
	if s.thousands != "" {
		if opt.ThousandsSeparator, err = cfgpkg.ParseThousands(s.thousands); err != nil {
			return opt, fmt.Errorf("--thousands: %w", err)
		}
	}
	opt.SheetName = s.sheetName
	if f.Changed("sheet-index") {
		opt.SheetIndex = s.sheetIndex
	}
	if s.maxRows > 0 {
		opt.MaxRows = s.maxRows
	}
	return opt, nil
}

// outputFormat picks the flag, then the output file extension, then config.
func (s *tabFlags) outputFormat(c *cfgpkg.Global, outPath string) (report.Format, error) {
	if s.format != "" {
		return report.ParseFormat(s.format)
	}
	if outPath != "" {
		switch strings.ToLower(filepath.Ext(outPath)) {
		case ".csv":
			return report.CSV, nil
		case ".json":
			return report.JSON, nil
		case ".yaml", ".yml":
			return report.YAML, nil
		case ".md":
			return report.Markdown, nil
		}
	}
	return report.ParseFormat(c.Format)
}

// loadProject returns nil when no project name is given.
func loadProject(name string) (*project.Project, error) {
	if name == "" {
		return nil, nil
	}
	dir, err := resolveProjectDirByName(name)
	if err != nil {
		return nil, err
	}
	return project.LoadProject(dir)
}

// tabulateFile loads one dataset and tabulates it.
func tabulateFile(path, counter string, topt tabulate.Options, dopt dataset.Options) (*tabulate.Result, error) {
	t, err := dataset.Load(path, dopt)
	if err != nil {
		return nil, err
	}
	debugf("%s: loaded %d rows, %d columns", filepath.Base(path), t.Len(), len(t.Columns()))
	for _, name := range t.Columns() {
		if k, err := t.Kind(name); err == nil {
			debugf("%s: column %q is %s", filepath.Base(path), name, k)
		}
	}
	res, err := tabulate.Descriptive(t, counter, topt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	debugf("%s: %d levels, %d columns", filepath.Base(path), len(res.DataRows()), len(res.Columns))
	return res, nil
}

func printWarnings(w io.Writer, path string, res *tabulate.Result) {
	for _, msg := range res.WarningMessages() {
		fmt.Fprintf(w, "⚠ Warning: %s: %s\n", filepath.Base(path), msg)
	}
}
