package tabulate

import "fmt"

// Table is an ordered set of named columns and rows of cell values.
// Column names are not required to be unique; selecting a duplicated name
// fails with ColumnNotFoundError.
type Table struct {
	columns []string
	rows    [][]Value
}

// NewTable constructs an empty table with the given column names.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// Append adds a row. The number of values must match the number of columns.
func (t *Table) Append(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("append row: got %d values for %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns a copy of the column names in declaration order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Column returns a copy of the values stored under name.
func (t *Table) Column(name string) ([]Value, error) {
	idx, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	return t.columnAt(idx), nil
}

// Kind reports the predominant kind of a column: the shared kind of all
// non-missing cells, KindString when kinds are mixed, KindMissing when
// every cell is missing.
func (t *Table) Kind(name string) (Kind, error) {
	idx, err := t.resolve(name)
	if err != nil {
		return KindMissing, err
	}
	return kindOf(t.columnAt(idx)), nil
}

// resolve maps a literal column name to exactly one column index.
func (t *Table) resolve(name string) (int, error) {
	idx, matches := -1, 0
	for i, c := range t.columns {
		if c == name {
			if idx < 0 {
				idx = i
			}
			matches++
		}
	}
	if matches != 1 {
		return -1, &ColumnNotFoundError{Column: name, Matches: matches}
	}
	return idx, nil
}

func (t *Table) columnAt(idx int) []Value {
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[idx]
	}
	return out
}

func kindOf(vals []Value) Kind {
	kind := KindMissing
	for _, v := range vals {
		if v.IsMissing() {
			continue
		}
		switch {
		case kind == KindMissing:
			kind = v.Kind()
		case kind != v.Kind():
			return KindString
		}
	}
	return kind
}
