package tabulate

import "gonum.org/v1/gonum/floats/scalar"

// Cell is one (counter level, grouper level) combination of the long table.
// Group is empty when no grouper was requested.
type Cell struct {
	Level      string  `json:"level" yaml:"level"`
	Group      string  `json:"group,omitempty" yaml:"group,omitempty"`
	N          int     `json:"n" yaml:"n"`
	Proportion float64 `json:"proportion" yaml:"proportion"`
}

// aggregation holds the complete counts and proportions indexed by
// [counter level][grouper level]. Without a grouper there is one group.
type aggregation struct {
	counts [][]int
	props  [][]float64
	cells  []Cell
}

func aggregate(n *normalized, opt Options) *aggregation {
	nl := n.counterLevels.Len()
	ng := 1
	if n.grouped() {
		ng = n.grouperLevels.Len()
	}

	a := &aggregation{counts: make([][]int, nl), props: make([][]float64, nl)}
	for i := range a.counts {
		a.counts[i] = make([]int, ng)
		a.props[i] = make([]float64, ng)
	}
	for r, c := range n.counterCodes {
		g := 0
		if n.grouped() {
			g = n.grouperCodes[r]
		}
		a.counts[c][g]++
	}

	groupTotals := make([]int, ng)
	grand := 0
	for i := range a.counts {
		for g, cnt := range a.counts[i] {
			groupTotals[g] += cnt
			grand += cnt
		}
	}

	a.cells = make([]Cell, 0, nl*ng)
	for i := 0; i < nl; i++ {
		for g := 0; g < ng; g++ {
			denom := groupTotals[g]
			if opt.PropTotal {
				denom = grand
			}
			a.props[i][g] = proportion(a.counts[i][g], denom, opt)
			cell := Cell{Level: n.counterLevels.Label(i), N: a.counts[i][g], Proportion: a.props[i][g]}
			if n.grouped() {
				cell.Group = n.grouperLevels.Label(g)
			}
			a.cells = append(a.cells, cell)
		}
	}
	return a
}

// proportion scales count/denom by the multiplier and rounds to Digits.
// An empty denominator yields zero.
func proportion(count, denom int, opt Options) float64 {
	if denom == 0 {
		return 0
	}
	p := float64(count) / float64(denom) * opt.Multiplier
	if opt.Digits >= 0 {
		p = scalar.Round(p, opt.Digits)
	}
	return p
}
