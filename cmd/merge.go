package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"sheet-merger/core/config"
	"sheet-merger/core/logger"
	"sheet-merger/core/reconcile"
	"sheet-merger/core/sheet"
	"sheet-merger/feature/merge"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for merge command
	parentPath      string
	childPaths      []string
	parentSheet     string
	childSheet      string
	mergeColumns    reconcile.Columns
	recordsOut      string
	filledOut       string
	uploadExports   bool
	mergeJSONOutput bool
	yesConfirm      bool
)

// sampleSize caps how many conflicts and new keys are logged individually.
const sampleSize = 5

// mergeCmd reconciles child workbooks against a parent workbook.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Reconcile key-value pairs from child workbooks into a parent workbook",
	Long: `Extracts key-value pairs from the chosen columns of every child workbook,
reports keys whose values disagree with the parent and keys the parent does
not know, and fills blank parent values.

Examples:
  # Report only
  sheet-merger merge --parent master.xlsx --child a.xlsx --child b.xlsx

  # Key in column B, value in column D, write both exports
  sheet-merger merge --parent master.xlsx --child a.xlsx \
    --parent-key B --parent-value D \
    --out extracted_key_value_pairs.xlsx --filled-out master_filled.xlsx

  # Machine readable report
  sheet-merger merge --parent master.xlsx --child a.xlsx --json`,
	RunE: runMerge,
}

func init() {
	f := mergeCmd.Flags()
	f.StringVar(&parentPath, "parent", "", "Parent workbook (.xlsx)")
	f.StringArrayVar(&childPaths, "child", nil, "Child workbook (.xlsx), repeatable")
	f.StringVar(&parentSheet, "sheet", "", "Parent sheet (default: merge.default_sheet, then the first sheet)")
	f.StringVar(&childSheet, "child-sheet", "", "Sheet read from every child (default: the parent's sheet when present)")
	f.StringVar(&mergeColumns.ParentKey, "parent-key", "A", "Parent key column letters")
	f.StringVar(&mergeColumns.ParentValue, "parent-value", "B", "Parent value column letters")
	f.StringVar(&mergeColumns.ChildKey, "child-key", "", "Child key column letters (default: --parent-key)")
	f.StringVar(&mergeColumns.ChildValue, "child-value", "", "Child value column letters (default: --parent-value)")
	f.StringVar(&recordsOut, "out", "", "Write the extracted records workbook to this path")
	f.StringVar(&filledOut, "filled-out", "", "Write the filled parent workbook to this path")
	f.BoolVar(&uploadExports, "upload", false, "Upload exports to the configured object storage")
	f.BoolVar(&mergeJSONOutput, "json", false, "Print the full report as JSON")
	f.BoolVar(&yesConfirm, "yes", false, "Overwrite existing output files without asking")

	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	req := merge.Request{
		Sheet:      parentSheet,
		ChildSheet: childSheet,
		Columns:    mergeColumns,
	}
	if parentPath != "" {
		parent, err := readUploadFile(parentPath)
		if err != nil {
			return err
		}
		req.Parent = &parent
	}
	for _, p := range childPaths {
		child, err := readUploadFile(p)
		if err != nil {
			return err
		}
		req.Children = append(req.Children, child)
	}

	deps, err := openDependencies(ctx, cfg, l, uploadExports)
	if err != nil {
		return err
	}
	defer deps.Close()

	svc := merge.NewService(cfg.Merge, nil, deps.client, cfg.Storage.Bucket, deps.repo, l)

	report, err := svc.Merge(ctx, req)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if mergeJSONOutput {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(out))
	} else {
		printMergeReport(l, report)
	}

	if report.Status != merge.StatusOK {
		return nil
	}

	if recordsOut != "" {
		if err := writeExport(recordsOut, report.Result.WriteRecords); err != nil {
			return err
		}
		l.Info("Wrote extracted records", zap.String("path", recordsOut))
	}
	if filledOut != "" {
		err := writeExport(filledOut, func(w io.Writer) error {
			return report.Result.WriteFilled(w, report.Parent.Sheet)
		})
		if err != nil {
			return err
		}
		l.Info("Wrote filled parent", zap.String("path", filledOut))
	}

	return nil
}

// printMergeReport logs a merge report.
func printMergeReport(l *zap.Logger, report *merge.Report) {
	l = logger.WithRun(l, report.RunID)

	switch report.Status {
	case merge.StatusIdle:
		l.Info("Nothing to merge", zap.String("reason", report.Message))
		return
	case merge.StatusEmpty:
		l.Info("No non-empty key-value pairs found",
			zap.String("child_key", report.Selection.ChildKey),
			zap.String("child_value", report.Selection.ChildValue),
		)
		return
	}

	s := report.Summary
	l.Info("Merge report",
		zap.String("parent", report.Parent.Name),
		zap.String("sheet", report.Parent.Sheet),
		zap.Int("children", s.Children),
		zap.Int("records", s.Records),
		zap.Int("conflicts", s.Conflicts),
		zap.Int("new_keys", s.NewKeys),
		zap.Int("filled", s.Filled),
	)

	for i, c := range report.Conflicts {
		if i == sampleSize {
			l.Info("Additional conflicts not shown", zap.Int("count", len(report.Conflicts)-sampleSize))
			break
		}
		l.Warn("Conflicting values", zap.Stringer("key", c.Key), zap.Strings("values", cellStrings(c.Values)))
	}

	for i, k := range report.NewKeys {
		if i == sampleSize {
			l.Info("Additional new keys not shown", zap.Int("count", len(report.NewKeys)-sampleSize))
			break
		}
		l.Warn("Key missing from parent", zap.Stringer("key", k.Key), zap.String("source", k.Source))
	}

	if s.Filled > 0 {
		l.Info("Filled blank parent values", zap.Int("count", s.Filled))
	}
	l.Info("Fill the parent in Excel with", zap.String("formula", report.Formula))

	if report.Artifacts != nil {
		l.Info("Uploaded exports",
			zap.String("records", report.Artifacts.Records),
			zap.String("filled", report.Artifacts.Filled),
		)
	}
}

func cellStrings(cells []sheet.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}

func readUploadFile(path string) (merge.Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return merge.Upload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return merge.Upload{Name: filepath.Base(path), Content: content}, nil
}

// writeExport writes a workbook to path, asking before it replaces a file.
func writeExport(path string, write func(io.Writer) error) error {
	if _, err := os.Stat(path); err == nil {
		if !confirmOverwrite(path) {
			return fmt.Errorf("refusing to overwrite %s", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// confirmOverwrite prompts the user for confirmation or uses --yes flag.
func confirmOverwrite(path string) bool {
	if yesConfirm {
		return true
	}

	fmt.Printf("%s exists. Type 'yes' to overwrite: ", path)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
