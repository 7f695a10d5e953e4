package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	listProjects bool
	listTables   bool
	listProjName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects or saved tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listProjects == listTables { // either both true or both false
			return fmt.Errorf("specify exactly one of --projects or --tables")
		}
		if listProjects {
			return listAllProjects(out)
		}
		if listProjName == "" {
			return fmt.Errorf("--project is required when using --tables")
		}
		p, err := loadProject(listProjName)
		if err != nil {
			return err
		}
		tables := p.SortedTables()
		if len(tables) == 0 {
			fmt.Fprintln(out, "(no tables)")
			return nil
		}
		for _, t := range tables {
			subject := t.Counter
			if t.Grouper != "" {
				subject += " by " + t.Grouper
			}
			fmt.Fprintf(out, "- %s: %s [%s] %d levels", t.ID, filepath.Base(t.Source), subject, t.Rows)
			if t.Description != "" {
				fmt.Fprintf(out, " (%s)", t.Description)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func listAllProjects(out io.Writer) error {
	root, err := defaultProjectsDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read projects dir: %w", err)
	}
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		pj := filepath.Join(root, e.Name(), "project.json")
		if _, err := os.Stat(pj); err == nil {
			fmt.Fprintf(out, "- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Fprintln(out, "(no projects)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listProjects, "projects", false, "list projects")
	listCmd.Flags().BoolVar(&listTables, "tables", false, "list saved tables in a project")
	listCmd.Flags().StringVarP(&listProjName, "project", "p", "", "project name for --tables")
}
