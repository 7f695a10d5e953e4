package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) *tabulate.Result {
	t.Helper()
	tbl := tabulate.NewTable("case", "sex")
	rows := [][2]string{{"A", "F"}, {"A", "M"}, {"B", "F"}, {"", "F"}}
	for _, r := range rows {
		c := tabulate.Missing()
		if r[0] != "" {
			c = tabulate.String(r[0])
		}
		if err := tbl.Append(c, tabulate.String(r[1])); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	opt := tabulate.DefaultOptions()
	opt.Grouper = "sex"
	opt.ExplicitMissing = false
	opt.ColTotals = true
	opt.RowTotals = true
	res, err := tabulate.Descriptive(tbl, "case", opt)
	if err != nil {
		t.Fatalf("descriptive: %v", err)
	}
	return res
}

func TestMarkdown(t *testing.T) {
	md := MarkdownString(sampleResult(t), Options{Name: "cases.csv", Digits: 1})
	for _, want := range []string{
		"[DESCRIPTIVE TABLE]",
		"File: cases.csv",
		"Grouped by: sex",
		"| case | F_n | F_proportion | M_n | M_proportion | Total |",
		"| --- | ---: | ---: | ---: | ---: | ---: |",
		"| A | 1 | 50.0 | 1 | 100.0 | 2 |",
		"| Total | 2 | 100.0 | 1 | 100.0 | 3 |",
		"[NOTES]",
		"- removed 1 rows with missing case",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleResult(t), CSV, Options{Digits: 2}); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 2 rows + total, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[1] != "A,1,50.00,1,100.00,2" {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := Render(&buf, res, JSON, Options{Name: "cases.csv", Digits: 1}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "proportion"`) {
		t.Fatalf("column kinds should encode as names:\n%s", buf.String())
	}
	back, name, err := DecodeJSON(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if name != "cases.csv" {
		t.Fatalf("name = %q", name)
	}
	if back.Columns[len(back.Columns)-1].Kind != tabulate.ColumnTotal {
		t.Fatalf("column kind lost in round trip")
	}
	if MarkdownString(back, Options{Digits: 1}) != MarkdownString(res, Options{Digits: 1}) {
		t.Fatalf("markdown differs after round trip")
	}
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleResult(t), YAML, Options{Digits: 1}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if doc["counter"] != "case" || doc["grouper"] != "sex" {
		t.Fatalf("unexpected yaml document: %v", doc)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Markdown, "markdown": Markdown, "YML": YAML, "csv": CSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}
