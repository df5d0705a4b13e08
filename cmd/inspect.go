package cmd

import (
	"encoding/json"
	"fmt"

	"sheet-merger/core/config"
	"sheet-merger/core/logger"
	"sheet-merger/core/sheet"
	"sheet-merger/feature/merge"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inspectSheet      string
	inspectJSONOutput bool
)

// inspectCmd lists the sheets and columns of a workbook.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "List the sheets and column letters of a workbook",
	Long:  `Parses a workbook and shows its sheets and the column letters available for --parent-key, --parent-value, --child-key and --child-value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		upload, err := readUploadFile(args[0])
		if err != nil {
			return err
		}

		svc := merge.NewService(cfg.Merge, sheet.NewLoader(0), nil, "", nil, l)
		info, err := svc.Inspect(cmd.Context(), upload, inspectSheet)
		if err != nil {
			return err
		}

		if inspectJSONOutput {
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode workbook info: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		l.Info("Workbook",
			zap.String("name", info.Name),
			zap.Strings("sheets", info.Sheets),
			zap.String("sheet", info.Sheet),
			zap.Int("rows", info.Rows),
			zap.Strings("columns", info.Columns),
		)
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "Sheet to describe (default: merge.default_sheet, then the first sheet)")
	inspectCmd.Flags().BoolVar(&inspectJSONOutput, "json", false, "Print JSON instead of a log line")
	RootCmd.AddCommand(inspectCmd)
}
