package tabulate

import (
	"reflect"
	"testing"
)

func TestQuantileBinner_FewDistinctValues(t *testing.T) {
	assign, levels := QuantileBinner{Bins: 4}.Bin([]float64{2, 1, 2, 3.5})
	if want := []string{"1", "2", "3.5"}; !reflect.DeepEqual(levels, want) {
		t.Fatalf("levels = %v, want %v", levels, want)
	}
	if want := []int{1, 0, 1, 2}; !reflect.DeepEqual(assign, want) {
		t.Fatalf("assign = %v, want %v", assign, want)
	}
}

func TestQuantileBinner_Intervals(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	assign, levels := QuantileBinner{Bins: 4}.Bin(xs)
	want := []string{"[1, 3)", "[3, 6)", "[6, 9)", "[9, 12]"}
	if !reflect.DeepEqual(levels, want) {
		t.Fatalf("levels = %v, want %v", levels, want)
	}
	counts := make([]int, len(levels))
	for _, a := range assign {
		counts[a]++
	}
	if !reflect.DeepEqual(counts, []int{2, 3, 3, 4}) {
		t.Fatalf("bin counts = %v", counts)
	}
}

func TestQuantileBinner_Empty(t *testing.T) {
	assign, levels := QuantileBinner{}.Bin(nil)
	if len(assign) != 0 || len(levels) != 0 {
		t.Fatalf("expected empty binning, got %v %v", assign, levels)
	}
}

func TestLevels_AddIsIdempotent(t *testing.T) {
	l := NewLevels("b", "a", "b")
	if l.Len() != 2 {
		t.Fatalf("len = %d", l.Len())
	}
	if i := l.Add("a"); i != 1 {
		t.Fatalf("Add(a) = %d", i)
	}
	if i := l.Add(MissingLabel); i != 2 {
		t.Fatalf("Add(Missing) = %d", i)
	}
	if _, ok := l.Index("c"); ok {
		t.Fatalf("unexpected level c")
	}
}

func TestTable_AppendWidthMismatch(t *testing.T) {
	tbl := NewTable("a", "b")
	if err := tbl.Append(String("x")); err == nil {
		t.Fatalf("expected width error")
	}
	if tbl.Len() != 0 {
		t.Fatalf("row appended despite error")
	}
}

func TestTable_KindMixedIsCategorical(t *testing.T) {
	tbl := NewTable("a")
	_ = tbl.Append(Number(1))
	_ = tbl.Append(Missing())
	if k, _ := tbl.Kind("a"); k != KindNumber {
		t.Fatalf("kind = %v, want numeric", k)
	}
	_ = tbl.Append(String("x"))
	if k, _ := tbl.Kind("a"); k != KindString {
		t.Fatalf("kind = %v, want categorical", k)
	}
}
