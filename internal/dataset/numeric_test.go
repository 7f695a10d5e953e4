package dataset

import "testing"

func TestParseNumericAutoDetect(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,000", 1000},
		{"12,345,678", 12345678},
		{"-1,000", -1000},
		{"2,5", 2.5},
		{"1,0000", 1.0},
		{"1234,567", 1234.567},
		{"1.204,0", 1204},
		{"1,204.5", 1204.5},
		{"12.5%", 12.5},
		{"1 000", 1000},
	}
	for _, tt := range tests {
		got, ok := parseNumeric(tt.in, DefaultOptions())
		if !ok || got != tt.want {
			t.Errorf("parseNumeric(%q) = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
	}
}

func TestParseNumericExplicitDecimalComma(t *testing.T) {
	opt := DefaultOptions()
	opt.DecimalSeparator = ','
	if got, ok := parseNumeric("1,000", opt); !ok || got != 1 {
		t.Fatalf("with decimal comma, 1,000 = %v, %v; want 1", got, ok)
	}
}
