package cmd

import (
	"fmt"

	"github.com/KaramelBytes/tabloom-cli/internal/project"
	"github.com/spf13/cobra"
)

var (
	pdProject    string
	pdMultiplier float64
	pdDigits     int
	pdClear      bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage per-project settings",
}

var projectSetDefaultsCmd = &cobra.Command{
	Use:   "set-defaults",
	Short: "Set or clear a project's multiplier and digits defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pdProject == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProject(pdProject)
		if err != nil {
			return err
		}
		if p.Config == nil {
			p.Config = &project.ProjectConfig{}
		}
		f := cmd.Flags()
		switch {
		case pdClear:
			p.Config.Multiplier = 0
			p.Config.Digits = nil
		case !f.Changed("multiplier") && !f.Changed("digits"):
			return fmt.Errorf("set --multiplier and/or --digits, or pass --clear")
		default:
			if f.Changed("multiplier") {
				if pdMultiplier <= 0 {
					return fmt.Errorf("--multiplier must be positive, got %v", pdMultiplier)
				}
				p.Config.Multiplier = pdMultiplier
			}
			if f.Changed("digits") {
				d := pdDigits
				p.Config.Digits = &d
			}
		}
		if err := p.Save(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if pdClear {
			fmt.Fprintf(out, "✓ Cleared project defaults for %s\n", pdProject)
			return nil
		}
		fmt.Fprintf(out, "✓ Set project defaults for %s:", pdProject)
		if p.Config.Multiplier != 0 {
			fmt.Fprintf(out, " multiplier=%g", p.Config.Multiplier)
		}
		if p.Config.Digits != nil {
			fmt.Fprintf(out, " digits=%d", *p.Config.Digits)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectSetDefaultsCmd)

	projectSetDefaultsCmd.Flags().StringVarP(&pdProject, "project", "p", "", "project name")
	projectSetDefaultsCmd.Flags().Float64Var(&pdMultiplier, "multiplier", 100, "proportion multiplier for tables saved to this project")
	projectSetDefaultsCmd.Flags().IntVar(&pdDigits, "digits", 1, "proportion digits for tables saved to this project")
	projectSetDefaultsCmd.Flags().BoolVar(&pdClear, "clear", false, "clear the project's overrides")
}
