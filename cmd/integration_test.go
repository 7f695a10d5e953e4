package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/project"
	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const casesCSV = "case,sex\nA,F\nA,M\nB,F\nB,F\n,F\n"

// resetFlags restores every flag to its default so invocations do not
// leak bound values or Changed state into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(args ...string) (string, string, error) {
	resetFlags(rootCmd)
	cfg = nil
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errb.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) (string, string) {
	t.Helper()
	out, errOut, err := execute(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\nstderr: %s", args, err, errOut)
	}
	return out, errOut
}

// isolate points HOME at a temp dir so config and projects stay local.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeInput(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestCLI_TabMarkdownWithTotals(t *testing.T) {
	home := isolate(t)
	in := writeInput(t, filepath.Join(home, "cases.csv"), casesCSV)

	out, _ := runCmd(t, "tab", in, "--counter", "case", "--by", "sex", "--col-totals", "--row-totals")
	for _, want := range []string{
		"File: cases.csv",
		"| case | F_n | F_proportion | M_n | M_proportion | Total |",
		"| A | 1 | 25.0 | 1 | 100.0 | 2 |",
		"| B | 2 | 50.0 | 0 | 0.0 | 2 |",
		"| Missing | 1 | 25.0 | 0 | 0.0 | 1 |",
		"| Total | 4 | 100.0 | 1 | 100.0 | 5 |",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_TabDropMissingWarns(t *testing.T) {
	home := isolate(t)
	in := writeInput(t, filepath.Join(home, "cases.csv"), casesCSV)

	out, errOut := runCmd(t, "tab", in, "-c", "case", "--explicit-missing=false", "--format", "csv")
	if !strings.Contains(errOut, "⚠ Warning: cases.csv: removed 1 rows with missing case") {
		t.Fatalf("expected removal warning on stderr, got %q", errOut)
	}
	want := "case,n,proportion\nA,2,50.0\nB,2,50.0\n"
	if out != want {
		t.Fatalf("csv output = %q, want %q", out, want)
	}
}

func TestCLI_TabWritesOutputFile(t *testing.T) {
	home := isolate(t)
	in := writeInput(t, filepath.Join(home, "cases.csv"), casesCSV)
	outPath := filepath.Join(home, "table.json")

	out, _ := runCmd(t, "tab", in, "-c", "case", "-o", outPath)
	if !strings.Contains(out, "✓ Wrote table to") {
		t.Fatalf("unexpected output: %q", out)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(b), `"counter": "case"`) {
		t.Fatalf("format should follow the .json extension:\n%s", b)
	}
}

func TestCLI_TabUnknownColumn(t *testing.T) {
	home := isolate(t)
	in := writeInput(t, filepath.Join(home, "cases.csv"), casesCSV)

	_, _, err := execute("tab", in, "-c", "age")
	if !errors.Is(err, tabulate.ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	if _, _, err := execute("tab", in); err == nil {
		t.Fatalf("expected error without --counter")
	}
}

func TestCLI_ProjectSaveListShow(t *testing.T) {
	home := isolate(t)
	in := writeInput(t, filepath.Join(home, "cases.csv"), casesCSV)

	runCmd(t, "init", "surv", "-d", "surveillance")
	runCmd(t, "project", "set-defaults", "-p", "surv", "--multiplier", "1000")
	out, _ := runCmd(t, "tab", in, "-c", "case", "-b", "sex", "-p", "surv", "--desc", "weekly")
	if !strings.Contains(out, "✓ Added table to project 'surv' as cases__case-by-sex.json") {
		t.Fatalf("unexpected output: %q", out)
	}

	dir, err := resolveProjectDirByName("surv")
	if err != nil {
		t.Fatalf("resolve project: %v", err)
	}
	p, err := project.LoadProject(dir)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	tables := p.SortedTables()
	if len(tables) != 1 {
		t.Fatalf("expected one saved table, got %d", len(tables))
	}
	res, err := p.LoadResult(tables[0])
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if prop, _ := res.Proportion("A", "F"); prop != 250 {
		t.Fatalf("project multiplier not applied: A/F = %v", prop)
	}

	out, _ = runCmd(t, "list", "--tables", "-p", "surv")
	if !strings.Contains(out, tables[0].ID) || !strings.Contains(out, "case by sex") || !strings.Contains(out, "(weekly)") {
		t.Fatalf("unexpected list output: %q", out)
	}
	out, _ = runCmd(t, "list", "--projects")
	if !strings.Contains(out, "- surv") {
		t.Fatalf("unexpected projects list: %q", out)
	}

	out, _ = runCmd(t, "show", "-p", "surv", tables[0].ID[:8])
	if !strings.Contains(out, "Grouped by: sex") || !strings.Contains(out, "| A | 1 | 250.0 | 1 | 1000.0 |") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	if _, _, err := execute("init", "surv"); err == nil {
		t.Fatalf("expected error re-initializing an existing project")
	}
}

func TestCLI_TabBatchIntoProject(t *testing.T) {
	home := isolate(t)
	writeInput(t, filepath.Join(home, "d1", "metrics.csv"), casesCSV)
	writeInput(t, filepath.Join(home, "d2", "metrics.csv"), "case,sex\nC,F\nC,M\n")

	runCmd(t, "init", "batchp")
	out, _ := runCmd(t, "tab-batch", filepath.Join(home, "d*", "metrics.csv"), "-c", "case", "-p", "batchp", "--jobs", "2")
	if !strings.Contains(out, "[1/2] Processing metrics.csv...") || !strings.Contains(out, "[2/2] Processing metrics.csv...") {
		t.Fatalf("missing progress lines:\n%s", out)
	}

	dir, err := resolveProjectDirByName("batchp")
	if err != nil {
		t.Fatalf("resolve project: %v", err)
	}
	for _, name := range []string{"metrics__case.json", "metrics__case__2.json"} {
		if _, err := os.Stat(filepath.Join(dir, "tables", name)); err != nil {
			t.Fatalf("missing saved table %s: %v", name, err)
		}
	}
	p, err := project.LoadProject(dir)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if len(p.Tables) != 2 {
		t.Fatalf("expected two saved tables, got %d", len(p.Tables))
	}
}

func TestCLI_TabBatchFailureKeepsProjectConsistent(t *testing.T) {
	home := isolate(t)
	writeInput(t, filepath.Join(home, "d1", "metrics.csv"), casesCSV)
	writeInput(t, filepath.Join(home, "d2", "metrics.csv"), casesCSV)

	runCmd(t, "init", "partial")
	dir, err := resolveProjectDirByName("partial")
	if err != nil {
		t.Fatalf("resolve project: %v", err)
	}
	// a directory in place of the second table's temp file makes that write fail
	if err := os.MkdirAll(filepath.Join(dir, "tables", "metrics__case__2.json.tmp"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, _, err := execute("tab-batch", filepath.Join(home, "d*", "metrics.csv"), "-c", "case", "-p", "partial"); err == nil {
		t.Fatalf("expected the second table write to fail")
	}

	p, err := project.LoadProject(dir)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	saved, err := filepath.Glob(filepath.Join(dir, "tables", "*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(saved) != 1 || len(p.Tables) != 1 {
		t.Fatalf("want 1 table file and 1 project entry, got %d files and %d entries", len(saved), len(p.Tables))
	}
	for _, tab := range p.Tables {
		if filepath.Join(dir, tab.File) != saved[0] {
			t.Fatalf("project entry %s does not match file %s", tab.File, saved[0])
		}
	}
}

func TestCLI_TabBatchStdoutInInputOrder(t *testing.T) {
	home := isolate(t)
	a := writeInput(t, filepath.Join(home, "a.csv"), "case\nX\n")
	b := writeInput(t, filepath.Join(home, "b.csv"), "case\nY\n")

	out, _ := runCmd(t, "tab-batch", b, a, "-c", "case", "--format", "csv")
	ia, ib := strings.Index(out, "X,1,100.0"), strings.Index(out, "Y,1,100.0")
	if ia < 0 || ib < 0 || ia > ib {
		t.Fatalf("expected a.csv before b.csv:\n%s", out)
	}

	if _, _, err := execute("tab-batch", filepath.Join(home, "nothing-*.csv"), "-c", "case"); err == nil {
		t.Fatalf("expected error when no inputs match")
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := isolate(t)

	runCmd(t, "config", "set", "digits", "2")
	runCmd(t, "config", "set", "row_totals", "true")
	if _, err := os.Stat(filepath.Join(home, ".tabloom", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out, _ := runCmd(t, "config", "show")
	if !strings.Contains(out, "digits: 2") || !strings.Contains(out, "row_totals: true") {
		t.Fatalf("unexpected config show:\n%s", out)
	}
	if _, _, err := execute("config", "set", "format", "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, _, err := execute("config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}

	in := writeInput(t, filepath.Join(home, "cases.csv"), casesCSV)
	out, _ = runCmd(t, "tab", in, "-c", "case", "--format", "csv")
	if !strings.Contains(out, "case,n,proportion,Total\nA,2,40.00,2\n") {
		t.Fatalf("config defaults not applied:\n%s", out)
	}
}
