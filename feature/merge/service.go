package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"sheet-merger/core/column"
	"sheet-merger/core/history"
	"sheet-merger/core/logger"
	"sheet-merger/core/reconcile"
	"sheet-merger/core/sheet"
	"sheet-merger/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidUpload is returned for uploads that are empty, too large, not
	// xlsx, or fail to parse.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrStorageDisabled is returned for downloads when no storage is configured.
	ErrStorageDisabled = errors.New("export storage is not configured")
	// ErrHistoryDisabled is returned for history queries when history is off.
	ErrHistoryDisabled = errors.New("run history is not enabled")
	// ErrUnknownArtifact is returned for an unsupported artifact kind.
	ErrUnknownArtifact = errors.New("unknown artifact")
)

// Service runs merges and serves their history and exports.
type Service struct {
	cfg    Config
	loader *sheet.Loader
	client storage.Client
	bucket string
	repo   *history.Repository
	logger *zap.Logger
}

// NewService creates a merge service. client and repo may be nil, which
// disables exports and history respectively.
func NewService(cfg Config, loader *sheet.Loader, client storage.Client, bucket string, repo *history.Repository, logger *zap.Logger) *Service {
	if loader == nil {
		loader = sheet.NewLoader(cfg.CacheTTL)
	}
	return &Service{
		cfg:    cfg,
		loader: loader,
		client: client,
		bucket: bucket,
		repo:   repo,
		logger: logger,
	}
}

// Inspect parses a workbook and describes preferred, or the sheet chosen in
// its place.
func (s *Service) Inspect(ctx context.Context, upload Upload, preferred string) (*SheetInfo, error) {
	wb, err := s.load(ctx, upload)
	if err != nil {
		return nil, err
	}
	if preferred == "" {
		preferred = s.cfg.DefaultSheet
	}
	info, _, err := describe(wb, preferred)
	return info, err
}

// Merge reconciles the children against the parent.
func (s *Service) Merge(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		Status:    StatusIdle,
		Message:   "upload a parent workbook and at least one child workbook",
		Children:  []SheetInfo{},
		Records:   []reconcile.Record{},
		Conflicts: []reconcile.Conflict{},
		NewKeys:   []reconcile.NewKey{},
	}

	var parent sheet.Table
	if req.Parent != nil {
		wb, err := s.load(ctx, *req.Parent)
		if err != nil {
			return nil, err
		}
		preferred := req.Sheet
		if preferred == "" {
			preferred = s.cfg.DefaultSheet
		}
		info, t, err := describe(wb, preferred)
		if err != nil {
			return nil, err
		}
		report.Parent = info
		parent = t
	}

	if req.Parent == nil || len(req.Children) == 0 {
		return report, nil
	}

	books, err := s.loadAll(ctx, req.Children)
	if err != nil {
		return nil, err
	}

	childSheet := req.ChildSheet
	if childSheet == "" {
		childSheet = report.Parent.Sheet
	}

	sources := make([]reconcile.Source, 0, len(books))
	childWidth := 0
	for _, wb := range books {
		info, t, err := describe(wb, childSheet)
		if err != nil {
			return nil, err
		}
		report.Children = append(report.Children, *info)
		sources = append(sources, reconcile.Source{ID: wb.Name, Table: t})
		childWidth = max(childWidth, t.Width())
	}

	// Empty sheets have no columns to select from.
	switch {
	case parent.Width() == 0:
		report.Message = fmt.Sprintf("parent sheet %q of %s has no columns", report.Parent.Sheet, report.Parent.Name)
		s.logger.Info("Merge skipped", zap.String("reason", report.Message))
		return report, nil
	case childWidth == 0:
		report.Message = fmt.Sprintf("child sheet %q has no columns in any child workbook", childSheet)
		s.logger.Info("Merge skipped", zap.String("reason", report.Message))
		return report, nil
	}

	sel := req.Columns.Resolve(parent.Width(), childWidth)
	res := reconcile.Reconcile(parent, sel, sources)

	report.RunID = uuid.NewString()
	report.Selection = sel.Letters()
	report.Summary = res.Summary
	report.Records = res.Records
	report.Conflicts = res.Conflicts
	report.NewKeys = res.NewKeys
	report.Result = res

	l := logger.WithRun(s.logger, report.RunID)

	if !res.Extracted() {
		report.Status = StatusEmpty
		report.Message = "no non-empty key-value pairs found"
		l.Info("Merge extracted nothing", zap.Int("children", res.Summary.Children))
		s.record(ctx, l, report, "")
		return report, nil
	}

	report.Status = StatusOK
	report.Message = fmt.Sprintf("filled %d values in the parent", res.Summary.Filled)
	report.Formula = res.LookupFormula(report.Selection.ParentKey)

	if len(res.Conflicts) > 0 {
		l.Warn("Conflicting values found", zap.Int("conflicts", len(res.Conflicts)))
	}
	if len(res.NewKeys) > 0 {
		l.Warn("Child keys missing from parent", zap.Int("new_keys", len(res.NewKeys)))
	}

	prefix := ""
	if s.client != nil {
		artifacts, err := s.export(ctx, report.RunID, report.Parent.Sheet, res)
		if err != nil {
			l.Error("Export failed", zap.Error(err))
			return nil, err
		}
		report.Artifacts = artifacts
		prefix = s.runPrefix(report.RunID)
	}

	l.Info("Merge finished",
		zap.Int("records", res.Summary.Records),
		zap.Int("conflicts", res.Summary.Conflicts),
		zap.Int("new_keys", res.Summary.NewKeys),
		zap.Int("filled", res.Summary.Filled),
	)
	s.record(ctx, l, report, prefix)

	return report, nil
}

// Runs lists recent merges, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]history.MergeRun, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.List(ctx, limit)
}

// Artifact downloads an export of a previous run. It returns the content and
// the file name to serve it under.
func (s *Service) Artifact(ctx context.Context, runID, kind string) ([]byte, string, error) {
	if s.client == nil {
		return nil, "", ErrStorageDisabled
	}
	if _, err := uuid.Parse(runID); err != nil {
		return nil, "", history.ErrRunNotFound
	}

	name, err := artifactFileName(kind)
	if err != nil {
		return nil, "", err
	}

	data, err := storage.Download(ctx, s.client, s.bucket, path.Join(s.runPrefix(runID), name))
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, "", history.ErrRunNotFound
		}
		return nil, "", err
	}
	return data, name, nil
}

// PurgeCache drops expired workbooks from the loader cache.
func (s *Service) PurgeCache() int {
	return s.loader.Purge()
}

func artifactFileName(kind string) (string, error) {
	switch kind {
	case ArtifactRecords, "":
		return reconcile.RecordsFileName, nil
	case ArtifactFilled:
		return FilledFileName, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownArtifact, kind)
	}
}

func (s *Service) runPrefix(runID string) string {
	return path.Join(s.cfg.ExportPrefix, runID)
}

func (s *Service) export(ctx context.Context, runID, parentSheet string, res *reconcile.Result) (*Artifacts, error) {
	prefix := s.runPrefix(runID)
	artifacts := &Artifacts{
		Records: path.Join(prefix, reconcile.RecordsFileName),
		Filled:  path.Join(prefix, FilledFileName),
	}

	var buf bytes.Buffer
	if err := res.WriteRecords(&buf); err != nil {
		return nil, fmt.Errorf("failed to write records: %w", err)
	}
	if err := storage.Upload(ctx, s.client, s.bucket, artifacts.Records, buf.Bytes(), sheet.ContentType); err != nil {
		return nil, err
	}

	buf.Reset()
	if err := res.WriteFilled(&buf, parentSheet); err != nil {
		return nil, fmt.Errorf("failed to write filled parent: %w", err)
	}
	if err := storage.Upload(ctx, s.client, s.bucket, artifacts.Filled, buf.Bytes(), sheet.ContentType); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// record stores the run summary. History is best effort.
func (s *Service) record(ctx context.Context, l *zap.Logger, report *Report, artifactKey string) {
	if s.repo == nil {
		return
	}
	run := &history.MergeRun{
		ID:          report.RunID,
		ParentName:  report.Parent.Name,
		ParentSheet: report.Parent.Sheet,
		ChildCount:  report.Summary.Children,
		Records:     report.Summary.Records,
		Conflicts:   report.Summary.Conflicts,
		NewKeys:     report.Summary.NewKeys,
		Filled:      report.Summary.Filled,
		ArtifactKey: artifactKey,
	}
	if err := s.repo.Save(ctx, run); err != nil {
		l.Warn("Failed to record merge run", zap.Error(err))
	}
}

func (s *Service) validate(u Upload) error {
	if u.Name == "" || len(u.Content) == 0 {
		return fmt.Errorf("%w: %q is empty", ErrInvalidUpload, u.Name)
	}
	if !strings.EqualFold(filepath.Ext(u.Name), ".xlsx") {
		return fmt.Errorf("%w: %q is not an .xlsx file", ErrInvalidUpload, u.Name)
	}
	if limit := s.cfg.MaxUploadBytes(); limit > 0 && int64(len(u.Content)) > limit {
		return fmt.Errorf("%w: %q exceeds %d MB", ErrInvalidUpload, u.Name, s.cfg.MaxUploadMB)
	}
	return nil
}

func (s *Service) load(ctx context.Context, u Upload) (*sheet.Workbook, error) {
	if err := s.validate(u); err != nil {
		return nil, err
	}
	wb, err := s.loader.Load(ctx, u.Name, u.Content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}
	return wb, nil
}

// loadAll parses uploads concurrently and returns them in input order.
func (s *Service) loadAll(ctx context.Context, uploads []Upload) ([]*sheet.Workbook, error) {
	books := make([]*sheet.Workbook, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers())
	for i, u := range uploads {
		g.Go(func() error {
			wb, err := s.load(gctx, u)
			if err != nil {
				return err
			}
			books[i] = wb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return books, nil
}

// describe picks a sheet of wb and summarises it.
func describe(wb *sheet.Workbook, preferred string) (*SheetInfo, sheet.Table, error) {
	name := sheet.ResolveSheet(wb.Sheets, preferred)
	t, err := wb.Table(name)
	if err != nil {
		return nil, nil, err
	}
	return &SheetInfo{
		Name:    wb.Name,
		Sheets:  wb.Sheets,
		Sheet:   name,
		Rows:    len(t),
		Columns: column.Letters(t.Width()),
	}, t, nil
}
