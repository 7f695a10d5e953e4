// Package report renders tabulation results as Markdown, CSV, JSON or YAML.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/KaramelBytes/tabloom-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	Markdown Format = "md"
	CSV      Format = "csv"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// ParseFormat accepts the format names and common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use md|csv|json|yaml)", s)
	}
}

// Ext returns the file extension for the format, with the leading dot.
func (f Format) Ext() string {
	if f == YAML {
		return ".yaml"
	}
	return "." + string(f)
}

// Options controls display formatting.
type Options struct {
	// Name labels the source, usually the input file name.
	Name string
	// Digits formats proportion cells; negative prints full precision.
	Digits int
}

// Render writes res to w in the requested format.
func Render(w io.Writer, res *tabulate.Result, f Format, opt Options) error {
	switch f {
	case Markdown:
		_, err := io.WriteString(w, MarkdownString(res, opt))
		return err
	case CSV:
		return writeCSV(w, res, opt)
	case JSON:
		b, err := utils.PrettyJSON(newDocument(res, opt))
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(res, opt)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

// document is the JSON/YAML view of a result.
type document struct {
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Counter  string            `json:"counter" yaml:"counter"`
	Grouper  string            `json:"grouper,omitempty" yaml:"grouper,omitempty"`
	Columns  []tabulate.Column `json:"columns" yaml:"columns"`
	Rows     []tabulate.Row    `json:"rows" yaml:"rows"`
	Cells    []tabulate.Cell   `json:"cells" yaml:"cells"`
	Total    bool              `json:"has_total_row" yaml:"has_total_row"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newDocument(res *tabulate.Result, opt Options) document {
	return document{
		Name:     opt.Name,
		Counter:  res.Counter,
		Grouper:  res.Grouper,
		Columns:  res.Columns,
		Rows:     res.Rows,
		Cells:    res.Cells,
		Total:    res.HasTotalRow,
		Warnings: res.WarningMessages(),
	}
}

// DecodeJSON restores a result written by Render in JSON format, along
// with the source name it was rendered with.
func DecodeJSON(b []byte) (*tabulate.Result, string, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, "", fmt.Errorf("decode result: %w", err)
	}
	res := &tabulate.Result{
		Counter:     doc.Counter,
		Grouper:     doc.Grouper,
		Columns:     doc.Columns,
		Rows:        doc.Rows,
		Cells:       doc.Cells,
		HasTotalRow: doc.Total,
	}
	for _, w := range doc.Warnings {
		res.Warnings = append(res.Warnings, note(w))
	}
	return res, doc.Name, nil
}

// note is a warning restored from its rendered text.
type note string

func (n note) Warning() string { return string(n) }

// MarkdownString renders a compact report suitable for standalone docs.
func MarkdownString(res *tabulate.Result, opt Options) string {
	var b strings.Builder
	b.WriteString("[DESCRIPTIVE TABLE]\n")
	if opt.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", opt.Name))
	}
	b.WriteString(fmt.Sprintf("Counter: %s\n", safeVal(res.Counter)))
	if res.Grouper != "" {
		b.WriteString(fmt.Sprintf("Grouped by: %s\n", safeVal(res.Grouper)))
	}
	b.WriteString("\n")

	b.WriteString("| ")
	for i, c := range res.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(c.Name))
	}
	b.WriteString(" |\n| ")
	for i, c := range res.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		if c.Kind == tabulate.ColumnLabel {
			b.WriteString("---")
		} else {
			b.WriteString("---:")
		}
	}
	b.WriteString(" |\n")
	for _, row := range res.Rows {
		b.WriteString("| ")
		b.WriteString(safeVal(row.Label))
		for j, v := range row.Values {
			b.WriteString(" | ")
			b.WriteString(formatCell(res.Columns[j+1], v, opt.Digits))
		}
		b.WriteString(" |\n")
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range res.WarningMessages() {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeCSV(w io.Writer, res *tabulate.Result, opt Options) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, len(res.Columns))
	for _, row := range res.Rows {
		rec[0] = row.Label
		for j, v := range row.Values {
			rec[j+1] = formatCell(res.Columns[j+1], v, opt.Digits)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatCell prints counts as integers and proportions with digits decimals.
func formatCell(c tabulate.Column, v float64, digits int) string {
	if c.Kind == tabulate.ColumnProportion {
		if digits < 0 {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strconv.FormatFloat(v, 'f', digits, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
