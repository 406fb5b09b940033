package cmd

import (
	"fmt"
	"os"

	"dataset-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dataset-reconciler",
	Short: "Dataset Reconciler",
	Long: `Dataset Reconciler compares two tabular datasets and reports how they differ:
shape, row index, columns, column types and individual cell values.
Datasets are read from local files, S3 compatible storage or SQL tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCode is set by commands that finish without error but must signal a
// result to the shell, such as compare --fail-on-diff.
var exitCode int

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads better on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	os.Exit(exitCode)
}
