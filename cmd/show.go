package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/tabloom-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	showProject string
	showFormat  string
)

var showCmd = &cobra.Command{
	Use:   "show <table-id>",
	Short: "Print a table saved in a project",
	Long:  "Print a saved table by its ID or a unique ID prefix, as listed by 'tabloom list --tables'.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showProject == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProject(showProject)
		if err != nil {
			return err
		}
		t, err := p.Tabulation(args[0])
		if err != nil {
			return err
		}
		res, err := p.LoadResult(t)
		if err != nil {
			return err
		}
		format := report.Markdown
		if showFormat != "" {
			if format, err = report.ParseFormat(showFormat); err != nil {
				return err
			}
		}
		return report.Render(cmd.OutOrStdout(), res, format, report.Options{Name: filepath.Base(t.Source), Digits: t.Digits})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showProject, "project", "p", "", "project name")
	showCmd.Flags().StringVar(&showFormat, "format", "", "output format: md|csv|json|yaml")
}
