package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Tabulation defaults
	Multiplier      float64 `mapstructure:"multiplier" yaml:"multiplier"`
	Digits          int     `mapstructure:"digits" yaml:"digits"`
	PropTotal       bool    `mapstructure:"prop_total" yaml:"prop_total"`
	ColTotals       bool    `mapstructure:"col_totals" yaml:"col_totals"`
	RowTotals       bool    `mapstructure:"row_totals" yaml:"row_totals"`
	ExplicitMissing bool    `mapstructure:"explicit_missing" yaml:"explicit_missing"`
	Bins            int     `mapstructure:"bins" yaml:"bins"`

	// Input parsing
	MissingTokens      []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`
	Delimiter          string   `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string   `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string   `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	// Output and storage
	Format      string `mapstructure:"format" yaml:"format"`
	ProjectsDir string `mapstructure:"projects_dir" yaml:"projects_dir"`
	Jobs        int    `mapstructure:"jobs" yaml:"jobs"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tabloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tabloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env (including a local .env) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TABLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("multiplier", 100.0)
	v.SetDefault("digits", 1)
	v.SetDefault("prop_total", false)
	v.SetDefault("col_totals", false)
	v.SetDefault("row_totals", false)
	v.SetDefault("explicit_missing", true)
	v.SetDefault("bins", 4)
	v.SetDefault("missing_tokens", dataset.DefaultOptions().MissingTokens)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("format", "md")
	v.SetDefault("jobs", 4)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ProjectsDir == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		c.ProjectsDir = filepath.Join(dir, "projects")
	}
	return &c, nil
}

// TabulateOptions maps the configured defaults onto tabulation options.
func (c *Global) TabulateOptions() tabulate.Options {
	opt := tabulate.DefaultOptions()
	opt.Multiplier = c.Multiplier
	opt.Digits = c.Digits
	opt.PropTotal = c.PropTotal
	opt.ColTotals = c.ColTotals
	opt.RowTotals = c.RowTotals
	opt.ExplicitMissing = c.ExplicitMissing
	if c.Bins > 0 {
		opt.Binner = tabulate.QuantileBinner{Bins: c.Bins}
	}
	return opt
}

// DatasetOptions maps the configured input parsing onto loader options.
func (c *Global) DatasetOptions() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	if c.MissingTokens != nil {
		opt.MissingTokens = c.MissingTokens
	}
	var err error
	if opt.Delimiter, err = ParseDelimiter(c.Delimiter); err != nil {
		return opt, err
	}
	if opt.DecimalSeparator, err = ParseDecimal(c.DecimalSeparator); err != nil {
		return opt, err
	}
	if opt.ThousandsSeparator, err = ParseThousands(c.ThousandsSeparator); err != nil {
		return opt, err
	}
	return opt, nil
}

// ParseDelimiter maps a delimiter name to its rune; empty means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}

// ParseDecimal maps a decimal separator name to its rune; empty means auto.
func ParseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported decimal separator: %s (use '.'|'comma')", s)
	}
}

// ParseThousands maps a thousands separator name to its rune; empty means auto.
func ParseThousands(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space", " ":
		return ' ', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported thousands separator: %s (use ','|'.'|'space')", s)
	}
}
