package tabulate

import (
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
)

// Binner converts numeric values into categories. Bin returns, for each
// input value, the index of its level, and the level labels in display order.
type Binner interface {
	Bin(values []float64) (assign []int, levels []string)
}

// BinnerFunc adapts a function to the Binner interface.
type BinnerFunc func(values []float64) ([]int, []string)

func (f BinnerFunc) Bin(values []float64) ([]int, []string) { return f(values) }

// QuantileBinner splits values at quantile break points into at most Bins
// intervals. Columns with no more than Bins distinct values keep one level
// per distinct value.
type QuantileBinner struct {
	Bins int
}

func (q QuantileBinner) Bin(values []float64) ([]int, []string) {
	bins := q.Bins
	if bins <= 0 {
		bins = 4
	}
	assign := make([]int, len(values))
	if len(values) == 0 {
		return assign, nil
	}
	distinct := distinctSorted(values)
	if len(distinct) <= bins {
		levels := make([]string, len(distinct))
		pos := make(map[float64]int, len(distinct))
		for i, x := range distinct {
			levels[i] = formatNum(x)
			pos[x] = i
		}
		for i, x := range values {
			assign[i] = pos[x]
		}
		return assign, levels
	}

	breaks := []float64{distinct[0]}
	for i := 1; i < bins; i++ {
		p, err := stats.Percentile(values, 100*float64(i)/float64(bins))
		if err != nil {
			continue
		}
		breaks = append(breaks, p)
	}
	breaks = append(breaks, distinct[len(distinct)-1])
	breaks = distinctSorted(breaks)

	n := len(breaks) - 1
	levels := make([]string, n)
	for i := 0; i < n; i++ {
		closing := ")"
		if i == n-1 {
			closing = "]"
		}
		levels[i] = "[" + formatNum(breaks[i]) + ", " + formatNum(breaks[i+1]) + closing
	}
	for i, x := range values {
		// first break strictly greater than x, minus one; the maximum
		// falls into the last, closed interval
		k := sort.SearchFloat64s(breaks, x)
		if k < len(breaks) && breaks[k] == x {
			k++
		}
		k--
		if k >= n {
			k = n - 1
		}
		if k < 0 {
			k = 0
		}
		assign[i] = k
	}
	return assign, levels
}

func distinctSorted(xs []float64) []float64 {
	cp := make([]float64, len(xs))
	copy(cp, xs)
	sort.Float64s(cp)
	out := cp[:0]
	for i, x := range cp {
		if i == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

func formatNum(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
