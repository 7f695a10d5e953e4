package tabulate

// Metric names used for pivot column naming.
const (
	MetricCount      = "n"
	MetricProportion = "proportion"
	TotalLabel       = "Total"
)

// ColumnNamer names a wide-layout column from a grouper level and a metric.
type ColumnNamer func(level, metric string) string

// DefaultColumnName joins level and metric with an underscore, e.g. "Male_n".
func DefaultColumnName(level, metric string) string { return level + "_" + metric }

// Options controls a tabulation.
type Options struct {
	// Grouper names the optional stratifying column; empty means none.
	Grouper string
	// Multiplier scales proportions (100 yields percentages).
	Multiplier float64
	// Digits is the rounding precision of proportions; negative keeps full precision.
	Digits int
	// PropTotal divides by the grand total instead of the per-group total.
	PropTotal bool
	// ColTotals appends a "Total" row of column sums.
	ColTotals bool
	// RowTotals appends a "Total" column summing the count columns.
	RowTotals bool
	// ExplicitMissing tabulates missing counter values as a "Missing" level
	// instead of dropping them. The grouper is always recoded explicitly.
	ExplicitMissing bool
	// CounterLevels and GrouperLevels declare the complete level set and its
	// order. Observed values outside a declared set are treated as missing.
	CounterLevels []string
	GrouperLevels []string
	// Binner categorizes a numeric counter column. Nil uses QuantileBinner{Bins: 4}.
	Binner Binner
	// Naming builds wide-layout column names. Nil uses DefaultColumnName.
	Naming ColumnNamer
}

// DefaultOptions returns the documented defaults: percentages with one
// decimal, per-group denominators, no totals, and explicit missing values.
func DefaultOptions() Options {
	return Options{
		Multiplier:      100,
		Digits:          1,
		ExplicitMissing: true,
		Binner:          QuantileBinner{Bins: 4},
		Naming:          DefaultColumnName,
	}
}

func (o Options) binner() Binner {
	if o.Binner == nil {
		return QuantileBinner{Bins: 4}
	}
	return o.Binner
}

func (o Options) naming() ColumnNamer {
	if o.Naming == nil {
		return DefaultColumnName
	}
	return o.Naming
}
