// Package dataset loads CSV, TSV and XLSX files into tabulate tables,
// inferring a numeric, boolean or categorical kind per column.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
)

// ErrUnsupported indicates a file format that cannot be loaded.
var ErrUnsupported = errors.New("unsupported dataset format")

// Options controls how raw cells are read and typed.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// MissingTokens are cell texts (case-insensitive, trimmed) read as missing.
	MissingTokens []string
	// XLSX sheet selection: by name, else by 1-based index.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{
		MissingTokens: []string{"", "NA", "N/A", "NULL"},
		SheetIndex:    1,
	}
}

// Load reads the file at path, dispatching on its extension.
func Load(path string, opt Options) (*tabulate.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return LoadCSV(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}
}

// build types each column and assembles the table. Short rows are padded
// with missing values; long rows are truncated to the header width.
func build(header []string, records [][]string, opt Options) (*tabulate.Table, error) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}
	missing := make(map[string]struct{}, len(opt.MissingTokens))
	for _, tok := range opt.MissingTokens {
		missing[strings.ToLower(strings.TrimSpace(tok))] = struct{}{}
	}
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		records = records[:opt.MaxRows]
	}

	ncol := len(names)
	cols := make([][]tabulate.Value, ncol)
	for j := 0; j < ncol; j++ {
		raw := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				raw[i] = strings.TrimSpace(rec[j])
			}
		}
		cols[j] = typeColumn(raw, missing, opt)
	}

	t := tabulate.NewTable(names...)
	row := make([]tabulate.Value, ncol)
	for i := range records {
		for j := range cols {
			row[j] = cols[j][i]
		}
		if err := t.Append(row...); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return t, nil
}

// typeColumn picks the column kind by all-or-nothing parsing of the
// non-missing cells: numeric first, then boolean, else categorical text.
func typeColumn(raw []string, missing map[string]struct{}, opt Options) []tabulate.Value {
	out := make([]tabulate.Value, len(raw))
	isMissing := func(s string) bool {
		_, ok := missing[strings.ToLower(s)]
		return ok
	}

	nums := make([]float64, len(raw))
	allNum, allBool := true, true
	for i, s := range raw {
		if isMissing(s) {
			continue
		}
		if allNum {
			x, ok := parseNumeric(s, opt)
			if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
				allNum = false
			}
			nums[i] = x
		}
		if allBool {
			if _, ok := parseBool(s); !ok {
				allBool = false
			}
		}
		if !allNum && !allBool {
			break
		}
	}

	for i, s := range raw {
		switch {
		case isMissing(s):
			out[i] = tabulate.Missing()
		case allNum:
			out[i] = tabulate.Number(nums[i])
		case allBool:
			b, _ := parseBool(s)
			out[i] = tabulate.Bool(b)
		default:
			out[i] = tabulate.String(s)
		}
	}
	return out
}
