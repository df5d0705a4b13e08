package merge_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"sheet-merger/core/database"
	"sheet-merger/core/history"
	"sheet-merger/core/reconcile"
	"sheet-merger/core/sheet"
	"sheet-merger/core/storage/mocks"
	"sheet-merger/feature/merge"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testConfig = merge.Config{
	ParseWorkers: 2,
	MaxUploadMB:  1,
	ExportPrefix: "exports",
}

func workbook(t *testing.T, sheetName string, rows ...[]any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheet.WriteTable(&buf, sheetName, sheet.NewTable(rows...)))
	return buf.Bytes()
}

func setupRepo(t *testing.T) *history.Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	repo := history.NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

// scenarioRequest builds the basic parent/child example: A1 conflicts and
// B1 fills the blank parent cell.
func scenarioRequest(t *testing.T) merge.Request {
	parent := merge.Upload{Name: "parent.xlsx", Content: workbook(t, "Data",
		[]any{"A1", "A2"},
		[]any{"B1", nil},
	)}
	child := merge.Upload{Name: "child.xlsx", Content: workbook(t, "Data",
		[]any{"A1", "V1"},
		[]any{"B1", "V2"},
	)}
	return merge.Request{
		Parent:   &parent,
		Children: []merge.Upload{child},
		Columns:  reconcile.Columns{ParentKey: "A", ParentValue: "B"},
	}
}

func TestService_MergeIdle(t *testing.T) {
	svc := merge.NewService(testConfig, nil, nil, "", nil, zap.NewNop())
	ctx := context.Background()

	t.Run("NothingUploaded", func(t *testing.T) {
		report, err := svc.Merge(ctx, merge.Request{})
		require.NoError(t, err)
		assert.Equal(t, merge.StatusIdle, report.Status)
		assert.Nil(t, report.Parent)
		assert.Empty(t, report.RunID)
	})

	t.Run("ParentOnly", func(t *testing.T) {
		req := scenarioRequest(t)
		req.Children = nil

		report, err := svc.Merge(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, merge.StatusIdle, report.Status)
		require.NotNil(t, report.Parent)
		assert.Equal(t, []string{"Data"}, report.Parent.Sheets)
		assert.Equal(t, []string{"A", "B"}, report.Parent.Columns)
		assert.Equal(t, 2, report.Parent.Rows)
	})

	t.Run("EmptySheets", func(t *testing.T) {
		client := new(mocks.Client)
		repo := setupRepo(t)
		svc := merge.NewService(testConfig, nil, client, "bucket", repo, zap.NewNop())

		tests := []struct {
			name    string
			parent  [][]any
			child   [][]any
			message string
		}{
			{
				name:    "Parent",
				child:   [][]any{{"A1", "V1"}},
				message: "parent sheet",
			},
			{
				name:    "Child",
				parent:  [][]any{{"A1", nil}},
				message: "child sheet",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := merge.Request{
					Parent:   &merge.Upload{Name: "parent.xlsx", Content: workbook(t, "Data", tt.parent...)},
					Children: []merge.Upload{{Name: "child.xlsx", Content: workbook(t, "Data", tt.child...)}},
					Columns:  reconcile.Columns{ParentKey: "B", ParentValue: "C"},
				}

				report, err := svc.Merge(ctx, req)
				require.NoError(t, err)
				assert.Equal(t, merge.StatusIdle, report.Status)
				assert.Contains(t, report.Message, tt.message)
				assert.Empty(t, report.RunID)
				assert.Nil(t, report.Result)
				assert.Nil(t, report.Artifacts)
				assert.Empty(t, report.Records)
				require.Len(t, report.Children, 1)
			})
		}

		runs, err := svc.Runs(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_MergeOK(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	repo := setupRepo(t)

	svc := merge.NewService(testConfig, nil, client, "bucket", repo, zap.NewNop())
	ctx := context.Background()

	report, err := svc.Merge(ctx, scenarioRequest(t))
	require.NoError(t, err)

	assert.Equal(t, merge.StatusOK, report.Status)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, reconcile.Summary{Children: 1, Records: 2, Conflicts: 1, NewKeys: 0, Filled: 1}, report.Summary)
	assert.Equal(t, reconcile.Columns{ParentKey: "A", ParentValue: "B", ChildKey: "A", ChildValue: "B"}, report.Selection)
	assert.Equal(t, "=VLOOKUP(A, [extracted_key_value_pairs.xlsx]Sheet1!$B:$C, 2, FALSE)", report.Formula)
	require.Len(t, report.Children, 1)
	assert.Equal(t, "Data", report.Children[0].Sheet)

	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, []sheet.Cell{sheet.Text("A2"), sheet.Text("V1")}, report.Conflicts[0].Values)
	assert.Equal(t, sheet.Text("V2"), report.Result.Filled.At(1, 1))

	require.NotNil(t, report.Artifacts)
	assert.Equal(t, "exports/"+report.RunID+"/extracted_key_value_pairs.xlsx", report.Artifacts.Records)
	assert.Equal(t, "exports/"+report.RunID+"/filled_parent.xlsx", report.Artifacts.Filled)
	client.AssertNumberOfCalls(t, "PutObject", 2)

	runs, err := svc.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, report.RunID, runs[0].ID)
	assert.Equal(t, "parent.xlsx", runs[0].ParentName)
	assert.Equal(t, "exports/"+report.RunID, runs[0].ArtifactKey)
	assert.Equal(t, 1, runs[0].Filled)
}

func TestService_MergeEmpty(t *testing.T) {
	// No expectations: any upload would fail the test.
	client := new(mocks.Client)
	svc := merge.NewService(testConfig, nil, client, "bucket", nil, zap.NewNop())

	req := scenarioRequest(t)
	req.Children = []merge.Upload{{Name: "blank.xlsx", Content: workbook(t, "Data", []any{"A1", nil}, []any{"B1", ""})}}

	report, err := svc.Merge(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, merge.StatusEmpty, report.Status)
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, report.Records)
	assert.Empty(t, report.Formula)
	assert.Nil(t, report.Artifacts)
	assert.Equal(t, 0, report.Summary.Filled)
}

func TestService_MergeChildSheetFallback(t *testing.T) {
	svc := merge.NewService(testConfig, nil, nil, "", nil, zap.NewNop())

	req := scenarioRequest(t)
	req.Children = []merge.Upload{
		{Name: "other.xlsx", Content: workbook(t, sheet.DefaultSheet, []any{"B1", "X"})},
		{Name: "same.xlsx", Content: workbook(t, "Data", []any{"A1", "A2"})},
	}

	report, err := svc.Merge(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, report.Children, 2)
	assert.Equal(t, sheet.DefaultSheet, report.Children[0].Sheet)
	assert.Equal(t, "Data", report.Children[1].Sheet)
	assert.Equal(t, "other.xlsx", report.Records[0].Source)
	assert.Empty(t, report.Conflicts)
	assert.Equal(t, 1, report.Summary.Filled)
}

func TestService_MergeInvalidUpload(t *testing.T) {
	svc := merge.NewService(testConfig, nil, nil, "", nil, zap.NewNop())
	valid := scenarioRequest(t)

	tests := []struct {
		name   string
		upload merge.Upload
	}{
		{name: "Empty", upload: merge.Upload{Name: "c.xlsx"}},
		{name: "WrongExtension", upload: merge.Upload{Name: "c.csv", Content: []byte("a,b")}},
		{name: "Corrupt", upload: merge.Upload{Name: "c.xlsx", Content: []byte("not a zip")}},
		{name: "TooLarge", upload: merge.Upload{Name: "c.xlsx", Content: make([]byte, 1<<20+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Children = []merge.Upload{valid.Children[0], tt.upload}

			report, err := svc.Merge(context.Background(), req)
			assert.ErrorIs(t, err, merge.ErrInvalidUpload)
			assert.Nil(t, report)
		})
	}
}

func TestService_MergeExportFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	svc := merge.NewService(testConfig, nil, client, "bucket", nil, zap.NewNop())

	report, err := svc.Merge(context.Background(), scenarioRequest(t))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, report)
}

func TestService_Artifact(t *testing.T) {
	ctx := context.Background()
	runID := "0b5f7a52-8d0e-4d6b-9d55-2b1f4f9a2c11"

	t.Run("StorageDisabled", func(t *testing.T) {
		svc := merge.NewService(testConfig, nil, nil, "", nil, zap.NewNop())
		_, _, err := svc.Artifact(ctx, runID, merge.ArtifactRecords)
		assert.ErrorIs(t, err, merge.ErrStorageDisabled)
	})

	t.Run("BadID", func(t *testing.T) {
		svc := merge.NewService(testConfig, nil, new(mocks.Client), "bucket", nil, zap.NewNop())
		_, _, err := svc.Artifact(ctx, "../etc", merge.ArtifactRecords)
		assert.ErrorIs(t, err, history.ErrRunNotFound)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		svc := merge.NewService(testConfig, nil, new(mocks.Client), "bucket", nil, zap.NewNop())
		_, _, err := svc.Artifact(ctx, runID, "parent")
		assert.ErrorIs(t, err, merge.ErrUnknownArtifact)
	})

	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "exports/"+runID+"/filled_parent.xlsx", mock.Anything).
			Return(io.NopCloser(strings.NewReader("xlsx")), nil)

		svc := merge.NewService(testConfig, nil, client, "bucket", nil, zap.NewNop())
		data, name, err := svc.Artifact(ctx, runID, merge.ArtifactFilled)
		require.NoError(t, err)
		assert.Equal(t, []byte("xlsx"), data)
		assert.Equal(t, merge.FilledFileName, name)
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		svc := merge.NewService(testConfig, nil, client, "bucket", nil, zap.NewNop())
		_, _, err := svc.Artifact(ctx, runID, merge.ArtifactRecords)
		assert.ErrorIs(t, err, history.ErrRunNotFound)
	})
}

func TestService_RunsDisabled(t *testing.T) {
	svc := merge.NewService(testConfig, nil, nil, "", nil, zap.NewNop())
	_, err := svc.Runs(context.Background(), 10)
	assert.ErrorIs(t, err, merge.ErrHistoryDisabled)
}

func TestService_Inspect(t *testing.T) {
	cfg := testConfig
	cfg.DefaultSheet = "Second"
	svc := merge.NewService(cfg, sheet.NewLoader(0), nil, "", nil, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, sheet.WriteTable(&buf, "First", sheet.NewTable([]any{"a"})))
	content := buf.Bytes()

	info, err := svc.Inspect(context.Background(), merge.Upload{Name: "one.xlsx", Content: content}, "")
	require.NoError(t, err)
	assert.Equal(t, "First", info.Sheet, "missing default falls back to the first sheet")
	assert.Equal(t, []string{"A"}, info.Columns)

	_, err = svc.Inspect(context.Background(), merge.Upload{Name: "one.txt", Content: content}, "")
	assert.ErrorIs(t, err, merge.ErrInvalidUpload)
}
