// Package main provides the CLI entry point for sheetconv-go.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetconv-go/internal/config"
)

var (
	logLevel string
	envFile  string

	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetconv",
		Short: "Convert between JSON tables and styled Excel workbooks",
		Long: `sheetconv-go writes JSON export jobs into styled xlsx workbooks,
reads the first sheet of xlsx workbooks back into JSON records,
and serves both conversions over HTTP.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+config.EnvLogLevel+" or info)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Environment file to load (default: .env when present)")

	rootCmd.AddCommand(newExportCmd(), newImportCmd(), newServeCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if logLevel != "" {
		if level, err = logrus.ParseLevel(logLevel); err != nil {
			return err
		}
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	return nil
}
