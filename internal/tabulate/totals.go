package tabulate

import "gonum.org/v1/gonum/floats"

// addColTotals appends a "Total" row holding the sum of every numeric
// column over the existing data rows.
func addColTotals(res *Result) {
	width := len(res.Columns) - 1
	sums := make([]float64, width)
	col := make([]float64, len(res.Rows))
	for j := 0; j < width; j++ {
		for i, row := range res.Rows {
			col[i] = row.Values[j]
		}
		sums[j] = floats.Sum(col)
	}
	res.Rows = append(res.Rows, Row{Label: TotalLabel, Values: sums})
	res.HasTotalRow = true
}

// addRowTotals appends a "Total" column to every row, including a Total
// row, summing only the columns tagged ColumnCount.
func addRowTotals(res *Result) {
	var countIdx []int
	for j, c := range res.Columns[1:] {
		if c.Kind == ColumnCount {
			countIdx = append(countIdx, j)
		}
	}
	counts := make([]float64, len(countIdx))
	for i := range res.Rows {
		for k, j := range countIdx {
			counts[k] = res.Rows[i].Values[j]
		}
		res.Rows[i].Values = append(res.Rows[i].Values, floats.Sum(counts))
	}
	res.Columns = append(res.Columns, Column{Name: TotalLabel, Kind: ColumnTotal})
}
