package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/tabloom-cli/internal/config"
	"github.com/KaramelBytes/tabloom-cli/internal/report"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Tabloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "multiplier: %g\n", c.Multiplier)
		fmt.Fprintf(out, "digits: %d\n", c.Digits)
		fmt.Fprintf(out, "prop_total: %t\n", c.PropTotal)
		fmt.Fprintf(out, "col_totals: %t\n", c.ColTotals)
		fmt.Fprintf(out, "row_totals: %t\n", c.RowTotals)
		fmt.Fprintf(out, "explicit_missing: %t\n", c.ExplicitMissing)
		fmt.Fprintf(out, "bins: %d\n", c.Bins)
		fmt.Fprintf(out, "missing_tokens: %s\n", quoteTokens(c.MissingTokens))
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %s\n", c.DecimalSeparator)
		}
		if c.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %s\n", c.ThousandsSeparator)
		}
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "jobs: %d\n", c.Jobs)
		fmt.Fprintf(out, "projects_dir: %s\n", c.ProjectsDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := setConfigValue(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "multiplier":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid positive float for multiplier: %v", val)
		}
		c.Multiplier = f
	case "digits":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for digits: %w", err)
		}
		c.Digits = i
	case "prop_total", "col_totals", "row_totals", "explicit_missing":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		switch key {
		case "prop_total":
			c.PropTotal = b
		case "col_totals":
			c.ColTotals = b
		case "row_totals":
			c.RowTotals = b
		default:
			c.ExplicitMissing = b
		}
	case "bins", "jobs":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		if key == "bins" {
			c.Bins = i
		} else {
			c.Jobs = i
		}
	case "missing_tokens":
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c.MissingTokens = parts
	case "delimiter":
		if _, err := cfgpkg.ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "decimal_separator":
		if _, err := cfgpkg.ParseDecimal(val); err != nil {
			return err
		}
		c.DecimalSeparator = val
	case "thousands_separator":
		if _, err := cfgpkg.ParseThousands(val); err != nil {
			return err
		}
		c.ThousandsSeparator = val
	case "format":
		f, err := report.ParseFormat(val)
		if err != nil {
			return err
		}
		c.Format = string(f)
	case "projects_dir":
		c.ProjectsDir = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func quoteTokens(tokens []string) string {
	q := make([]string, len(tokens))
	for i, t := range tokens {
		q[i] = strconv.Quote(t)
	}
	return "[" + strings.Join(q, ", ") + "]"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
