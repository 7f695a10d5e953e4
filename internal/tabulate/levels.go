package tabulate

import (
	"math"
	"sort"
	"strconv"
)

// MissingLabel is the level that explicit-missing recoding assigns.
const MissingLabel = "Missing"

// Levels is an ordered set of distinct category labels.
type Levels struct {
	labels []string
	index  map[string]int
}

// NewLevels builds a level set in the given order, ignoring repeats.
func NewLevels(labels ...string) *Levels {
	l := &Levels{index: make(map[string]int, len(labels))}
	for _, s := range labels {
		l.Add(s)
	}
	return l
}

// Add appends label if it is not present and returns its index.
func (l *Levels) Add(label string) int {
	if i, ok := l.index[label]; ok {
		return i
	}
	l.index[label] = len(l.labels)
	l.labels = append(l.labels, label)
	return len(l.labels) - 1
}

// Index returns the position of label.
func (l *Levels) Index(label string) (int, bool) {
	i, ok := l.index[label]
	return i, ok
}

// Labels returns a copy of the labels in order.
func (l *Levels) Labels() []string {
	out := make([]string, len(l.labels))
	copy(out, l.labels)
	return out
}

func (l *Levels) Len() int { return len(l.labels) }

func (l *Levels) Label(i int) string { return l.labels[i] }

// sortedLevels returns the distinct labels in natural order: labels that
// parse as finite numbers first in numeric order, then the rest
// lexicographically. An observed "Missing" label always sorts last.
func sortedLevels(labels []string) *Levels {
	seen := make(map[string]struct{}, len(labels))
	distinct := make([]string, 0, len(labels))
	hasMissing := false
	for _, s := range labels {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		if s == MissingLabel {
			hasMissing = true
			continue
		}
		distinct = append(distinct, s)
	}
	sort.Slice(distinct, func(i, j int) bool {
		return naturalLess(distinct[i], distinct[j])
	})
	if hasMissing {
		distinct = append(distinct, MissingLabel)
	}
	return NewLevels(distinct...)
}

// naturalLess is a strict total order over distinct labels.
func naturalLess(a, b string) bool {
	fa, numA := finiteNumber(a)
	fb, numB := finiteNumber(b)
	switch {
	case numA && numB:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case numA:
		return true
	case numB:
		return false
	default:
		return a < b
	}
}

// finiteNumber parses s as a number, rejecting NaN and infinities so they
// order as text.
func finiteNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
