// Package tabulate builds descriptive frequency tables: counts and
// proportions of one categorical column, optionally broken down by a
// second grouping column, with optional row and column totals.
//
// A tabulation runs four stages in order: normalization (categorical
// coercion and missing-value policy), aggregation over the complete cross
// product of levels, the wide pivot, and totals. The input table is never
// modified.
package tabulate

// Descriptive tabulates the counter column of t according to opt.
// Selector failures return a *ColumnNotFoundError and no result; every
// other anomaly is reported in Result.Warnings.
func Descriptive(t *Table, counter string, opt Options) (*Result, error) {
	n, err := normalize(t, counter, opt)
	if err != nil {
		return nil, err
	}
	agg := aggregate(n, opt)
	res := layout(n, agg, opt)
	if opt.ColTotals {
		addColTotals(res)
	}
	if opt.RowTotals {
		addRowTotals(res)
	}
	res.Warnings = n.warnings
	return res, nil
}
