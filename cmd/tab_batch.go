package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/KaramelBytes/tabloom-cli/internal/report"
	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	batchSettings tabFlags
	batchJobs     int
	batchQuiet    bool
)

var tabBatchCmd = &cobra.Command{
	Use:   "tab-batch <files...>",
	Short: "Tabulate the same column across multiple CSV/TSV/XLSX files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchSettings.counter == "" {
			return fmt.Errorf("--counter is required")
		}
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}

		c, err := currentConfig()
		if err != nil {
			return err
		}
		p, err := loadProject(batchSettings.project)
		if err != nil {
			return err
		}
		topt, err := batchSettings.tabulateOptions(cmd, c, p)
		if err != nil {
			return err
		}
		dopt, err := batchSettings.datasetOptions(cmd, c)
		if err != nil {
			return err
		}
		format, err := batchSettings.outputFormat(c, "")
		if err != nil {
			return err
		}
		jobs := c.Jobs
		if cmd.Flags().Changed("jobs") {
			jobs = batchJobs
		}
		if jobs < 1 {
			jobs = 1
		}

		results := make([]*tabulate.Result, len(files))
		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(jobs)
		for i, path := range files {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := tabulateFile(path, batchSettings.counter, topt, dopt)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		// Report and save in input order; the project is not safe for
		// concurrent mutation. project.json is saved after every table so it
		// lists every file written under tables/.
		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			res := results[i]
			if !batchQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
				printWarnings(cmd.ErrOrStderr(), path, res)
			}
			if p != nil {
				tab, err := p.AddTabulation(res, path, batchSettings.description, topt.Digits)
				if err != nil {
					return err
				}
				if err := p.Save(); err != nil {
					return err
				}
				if !batchQuiet {
					fmt.Fprintf(out, "✓ Added table to project '%s' as %s\n", p.Name, filepath.Base(tab.File))
				}
				continue
			}
			if batchQuiet {
				continue
			}
			var buf bytes.Buffer
			if err := report.Render(&buf, res, format, report.Options{Name: filepath.Base(path), Digits: topt.Digits}); err != nil {
				return err
			}
			fmt.Fprintln(out, buf.String())
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates and sorts the result.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(tabBatchCmd)
	batchSettings.bind(tabBatchCmd)
	tabBatchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 4, "number of files tabulated concurrently")
	tabBatchCmd.Flags().BoolVar(&batchQuiet, "quiet", false, "suppress progress and non-essential output")
}
