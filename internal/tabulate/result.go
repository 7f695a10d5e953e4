package tabulate

import "fmt"

// ColumnKind tags an output column with the role it was created for.
type ColumnKind int

const (
	ColumnLabel ColumnKind = iota
	ColumnCount
	ColumnProportion
	ColumnTotal
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnCount:
		return "count"
	case ColumnProportion:
		return "proportion"
	case ColumnTotal:
		return "total"
	default:
		return "label"
	}
}

func (k ColumnKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ColumnKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "count":
		*k = ColumnCount
	case "proportion":
		*k = ColumnProportion
	case "total":
		*k = ColumnTotal
	case "label":
		*k = ColumnLabel
	default:
		return fmt.Errorf("unknown column kind %q", b)
	}
	return nil
}

// Column describes one output column. Group is the grouper level the
// column belongs to, empty for ungrouped and total columns.
type Column struct {
	Name  string     `json:"name" yaml:"name"`
	Kind  ColumnKind `json:"kind" yaml:"kind"`
	Group string     `json:"group,omitempty" yaml:"group,omitempty"`
}

// Row is one output row. Values align with Result.Columns[1:].
type Row struct {
	Label  string    `json:"label" yaml:"label"`
	Values []float64 `json:"values" yaml:"values"`
}

// Result is the wide output of a tabulation.
type Result struct {
	Counter string   `json:"counter" yaml:"counter"`
	Grouper string   `json:"grouper,omitempty" yaml:"grouper,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	// Cells is the long table the wide layout was built from.
	Cells []Cell `json:"cells" yaml:"cells"`
	// HasTotalRow reports whether the last row is the synthetic "Total" row.
	HasTotalRow bool      `json:"has_total_row" yaml:"has_total_row"`
	Warnings    []Warning `json:"-" yaml:"-"`
}

// DataRows returns the rows excluding a synthetic Total row.
func (r *Result) DataRows() []Row {
	if r.HasTotalRow && len(r.Rows) > 0 {
		return r.Rows[:len(r.Rows)-1]
	}
	return r.Rows
}

// TotalRow returns the synthetic Total row, if present.
func (r *Result) TotalRow() (Row, bool) {
	if !r.HasTotalRow || len(r.Rows) == 0 {
		return Row{}, false
	}
	return r.Rows[len(r.Rows)-1], true
}

// ColumnIndex returns the position of the named column within Row.Values.
func (r *Result) ColumnIndex(name string) (int, bool) {
	for i, c := range r.Columns[1:] {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Value looks up a cell by row label and column name.
func (r *Result) Value(rowLabel, column string) (float64, bool) {
	j, ok := r.ColumnIndex(column)
	if !ok {
		return 0, false
	}
	for _, row := range r.Rows {
		if row.Label == rowLabel {
			return row.Values[j], true
		}
	}
	return 0, false
}

// Count returns the count for a counter level within a grouper level.
// Pass an empty group for ungrouped results.
func (r *Result) Count(level, group string) (int, bool) {
	for _, c := range r.Cells {
		if c.Level == level && c.Group == group {
			return c.N, true
		}
	}
	return 0, false
}

// Proportion returns the proportion for a counter level within a grouper level.
func (r *Result) Proportion(level, group string) (float64, bool) {
	for _, c := range r.Cells {
		if c.Level == level && c.Group == group {
			return c.Proportion, true
		}
	}
	return 0, false
}

// WarningMessages renders the warnings as strings.
func (r *Result) WarningMessages() []string {
	out := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		out[i] = w.Warning()
	}
	return out
}
