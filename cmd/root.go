package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warehouse-sim/warehouse-sim/sim/results"
)

var (
	// Output sinks shared by run and sweep
	logLevel     string // Log verbosity level
	outputPath   string // CSV destination; stdout when empty
	headerPath   string // YAML header destination
	sqlitePath   string // SQLite database for the result table
	printSummary bool   // Print a summary block to stderr
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "warehouse-sim",
	Short: "Discrete-event simulator for a two-lane warehouse intake",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// emit forwards a finished table to every configured sink.
func emit(ctx context.Context, stdout io.Writer, header *results.Header, table *results.Table) error {
	if outputPath == "" {
		if err := results.WriteCSV(stdout, table.Rows()); err != nil {
			return err
		}
	} else {
		if err := results.WriteCSVFile(outputPath, table); err != nil {
			return err
		}
		logrus.Infof("results written to %s", outputPath)
	}

	if headerPath != "" {
		if err := results.WriteHeader(headerPath, header); err != nil {
			return err
		}
	}

	if sqlitePath != "" {
		store, err := results.OpenStore(sqlitePath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if err := store.SaveTable(ctx, header, table); err != nil {
			return fmt.Errorf("saving sweep %s: %w", header.SweepID, err)
		}
		logrus.Infof("sweep %s saved to %s", header.SweepID, sqlitePath)
	}

	if printSummary {
		results.Summarize(table).Print(os.Stderr)
	}
	return nil
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "CSV output file (stdout when empty)")
	rootCmd.PersistentFlags().StringVar(&headerPath, "header", "", "YAML header file describing the run")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "SQLite database to store the result table in")
	rootCmd.PersistentFlags().BoolVar(&printSummary, "summary", false, "Print a summary to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
