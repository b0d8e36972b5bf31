package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
)

var (
	exportOutDir   string
	exportStyles   string
	parseDates     bool
	skipEmpty      bool
	exportToStdout bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [job.json]",
		Short: "Write a JSON export job into an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	cmd.Flags().StringVarP(&exportOutDir, "output", "o", ".", "Output directory")
	cmd.Flags().StringVar(&exportStyles, "styles", "", "YAML style set applied to the job's sheets")
	cmd.Flags().BoolVar(&parseDates, "parse-dates", false, "Convert date-looking strings into dates")
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty", false, "Leave sheets without rows out instead of failing")
	cmd.Flags().BoolVar(&exportToStdout, "stdout", false, "Write the workbook to stdout")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read job: %w", err)
	}

	var job models.ExportJob
	if err := job.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid job %s: %w", inputPath, err)
	}

	if exportStyles != "" {
		styleData, err := os.ReadFile(exportStyles)
		if err != nil {
			return fmt.Errorf("failed to read styles: %w", err)
		}
		set, err := models.ParseStyleSet(styleData)
		if err != nil {
			return err
		}
		set.Apply(&job)
	}

	if parseDates {
		for i := range job.Sheets {
			n := models.ParseDates(job.Sheets[i].Rows, time.UTC)
			logrus.WithFields(logrus.Fields{"sheet": job.Sheets[i].Name, "dates": n}).Debug("parsed dates")
		}
	}

	opts := cfg.Options()
	if skipEmpty {
		opts.EmptySheets = sheetconv.EmptySheetSkip
	}

	sink := sheetconv.ToDir(exportOutDir)
	if exportToStdout {
		sink = sheetconv.ToWriter(cmd.OutOrStdout())
	}

	if err := sheetconv.ExportTo(cmd.Context(), job, sink, opts); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"file":   sheetconv.Filename(job),
		"sheets": len(job.Sheets),
	}).Info("workbook written")
	return nil
}
