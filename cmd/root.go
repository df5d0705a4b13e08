package cmd

import (
	"fmt"
	"os"

	"sheet-merger/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sheet-merger",
	Short: "Spreadsheet key-value reconciliation",
	Long: `Sheet Merger extracts key-value pairs from child workbooks, checks them
against a parent workbook, and fills the parent's blank values.
It runs as a CLI or as an HTTP service with S3 exports and run history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with "debug" level gives ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
