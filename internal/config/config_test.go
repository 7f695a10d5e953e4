package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Multiplier != 100 || c.Digits != 1 || !c.ExplicitMissing {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if filepath.Base(c.ProjectsDir) != "projects" {
		t.Fatalf("projects_dir default = %s", c.ProjectsDir)
	}
	opt := c.TabulateOptions()
	if opt.Binner != (tabulate.QuantileBinner{Bins: 4}) {
		t.Fatalf("binner = %#v", opt.Binner)
	}
}

func TestSaveLoadAndEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(home, "custom.yaml")

	c, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Multiplier = 1000
	c.RowTotals = true
	c.ExplicitMissing = false
	c.Delimiter = ";"
	if err := Save(c, cfgPath); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	t.Setenv("TABLOOM_DIGITS", "3")
	back, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	opt := back.TabulateOptions()
	if opt.Multiplier != 1000 || !opt.RowTotals || opt.ExplicitMissing {
		t.Fatalf("saved values not applied: %+v", opt)
	}
	if opt.Digits != 3 {
		t.Fatalf("env override not applied: digits=%d", opt.Digits)
	}
	dopt, err := back.DatasetOptions()
	if err != nil {
		t.Fatalf("dataset options: %v", err)
	}
	if dopt.Delimiter != ';' {
		t.Fatalf("delimiter = %q", dopt.Delimiter)
	}
}

func TestParseSeparators(t *testing.T) {
	if _, err := ParseDelimiter("|"); err == nil {
		t.Fatalf("expected error for '|'")
	}
	if r, _ := ParseDecimal("comma"); r != ',' {
		t.Fatalf("decimal comma = %q", r)
	}
	if r, _ := ParseThousands("space"); r != ' ' {
		t.Fatalf("thousands space = %q", r)
	}
}
