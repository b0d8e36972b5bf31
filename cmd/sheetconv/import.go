package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/output"
	"golang.org/x/sync/errgroup"
)

var (
	importOutput string
	importOutDir string
	pretty       bool
	concurrency  int
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [input.xlsx...]",
		Short: "Read the first sheet of xlsx workbooks into JSON records",
		Long: `Read the first sheet of each workbook. With one input the output is
the array of records; with several it is an array of
{"source", "sheet", "rows"} objects in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&importOutDir, "out-dir", "", "Directory for per-workbook output files")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Workbooks read at the same time")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	tables, err := importAll(cmd, args)
	if err != nil {
		return err
	}

	if importOutDir != "" {
		if err := output.WriteTableFiles(tables, importOutDir, pretty); err != nil {
			return fmt.Errorf("failed to write table files: %w", err)
		}
		if importOutput == "" {
			return nil
		}
	}

	var v interface{} = tables
	if len(tables) == 1 {
		v = tables[0].Rows
	}

	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if importOutput != "" {
		if err := os.WriteFile(importOutput, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

// importAll reads every input concurrently and returns the tables in
// argument order.
func importAll(cmd *cobra.Command, paths []string) ([]models.Table, error) {
	tables := make([]models.Table, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			table, err := sheetconv.ImportTable(ctx, path, sheetconv.FromFile(path))
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			tables[i] = table

			logrus.WithFields(logrus.Fields{
				"file":  path,
				"sheet": table.Sheet,
				"rows":  len(table.Rows),
			}).Debug("workbook read")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
