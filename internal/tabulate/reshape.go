package tabulate

// layout builds the output table from the aggregation. Without a grouper
// the long table already has one row per level and is emitted as a single
// n/proportion pair; with a grouper it is pivoted wide, one count and one
// proportion column per grouper level, grouped by level.
func layout(n *normalized, a *aggregation, opt Options) *Result {
	res := &Result{
		Counter: n.counter,
		Grouper: n.grouper,
		Cells:   a.cells,
		Columns: []Column{{Name: n.counter, Kind: ColumnLabel}},
	}
	if !n.grouped() {
		res.Columns = append(res.Columns,
			Column{Name: MetricCount, Kind: ColumnCount},
			Column{Name: MetricProportion, Kind: ColumnProportion},
		)
	} else {
		name := opt.naming()
		for _, g := range n.grouperLevels.Labels() {
			res.Columns = append(res.Columns,
				Column{Name: name(g, MetricCount), Kind: ColumnCount, Group: g},
				Column{Name: name(g, MetricProportion), Kind: ColumnProportion, Group: g},
			)
		}
	}

	ng := 1
	if n.grouped() {
		ng = n.grouperLevels.Len()
	}
	res.Rows = make([]Row, n.counterLevels.Len())
	for i := range res.Rows {
		// the cross-product aggregation is already complete, so every
		// cell is filled; unobserved combinations carry zero
		vals := make([]float64, 0, 2*ng)
		for g := 0; g < ng; g++ {
			vals = append(vals, float64(a.counts[i][g]), a.props[i][g])
		}
		res.Rows[i] = Row{Label: n.counterLevels.Label(i), Values: vals}
	}
	return res
}
