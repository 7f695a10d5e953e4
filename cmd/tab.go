package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/tabloom-cli/internal/report"
	"github.com/KaramelBytes/tabloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	tabSettings   tabFlags
	tabOutputPath string
)

var tabCmd = &cobra.Command{
	Use:   "tab <file>",
	Short: "Tabulate one column of a CSV/TSV/XLSX, optionally by a grouping column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if tabSettings.counter == "" {
			return fmt.Errorf("--counter is required")
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		p, err := loadProject(tabSettings.project)
		if err != nil {
			return err
		}
		topt, err := tabSettings.tabulateOptions(cmd, c, p)
		if err != nil {
			return err
		}
		dopt, err := tabSettings.datasetOptions(cmd, c)
		if err != nil {
			return err
		}
		format, err := tabSettings.outputFormat(c, tabOutputPath)
		if err != nil {
			return err
		}

		res, err := tabulateFile(path, tabSettings.counter, topt, dopt)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), path, res)
		ropt := report.Options{Name: filepath.Base(path), Digits: topt.Digits}

		// Decide where to write: --output path, or save to project, or stdout
		written := false
		if tabOutputPath != "" {
			var buf bytes.Buffer
			if err := report.Render(&buf, res, format, ropt); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(tabOutputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote table to %s\n", tabOutputPath)
			written = true
		}
		if p != nil {
			tab, err := p.AddTabulation(res, path, tabSettings.description, topt.Digits)
			if err != nil {
				return err
			}
			if err := p.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added table to project '%s' as %s (id %s)\n", p.Name, filepath.Base(tab.File), tab.ID)
			written = true
		}
		if !written {
			return report.Render(cmd.OutOrStdout(), res, format, ropt)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tabCmd)
	tabSettings.bind(tabCmd)
	tabCmd.Flags().StringVarP(&tabOutputPath, "output", "o", "", "optional path to write the table (format inferred from extension)")
}
