package tabulate

import (
	"math"
	"strconv"
)

// Kind identifies the type of a cell value.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "numeric"
	case KindBool:
		return "boolean"
	case KindString:
		return "categorical"
	default:
		return "missing"
	}
}

// Value is a single table cell: a number, a boolean, a string, or missing.
// The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	b    bool
	s    string
}

func Missing() Value { return Value{} }

// Number wraps f. NaN is not a number for tabulation and yields Missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload; ok is false for non-numeric values.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Label renders the value as a category label.
func (v Value) Label() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	default:
		return ""
	}
}
