package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"sheet-merger/core/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkbook(t *testing.T, path, sheetName string, rows ...[]any) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheet.WriteTable(&buf, sheetName, sheet.NewTable(rows...)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "parent.xlsx")
	child := filepath.Join(dir, "child.xlsx")
	out := filepath.Join(dir, "records.xlsx")
	filled := filepath.Join(dir, "filled.xlsx")

	writeWorkbook(t, parent, "Data", []any{"A1", "A2"}, []any{"B1", nil})
	writeWorkbook(t, child, "Data", []any{"A1", "V1"}, []any{"B1", "V2"})

	RootCmd.SetArgs([]string{
		"merge",
		"--parent", parent,
		"--child", child,
		"--out", out,
		"--filled-out", filled,
		"--yes",
	})
	require.NoError(t, RootCmd.Execute())

	content, err := os.ReadFile(filled)
	require.NoError(t, err)
	wb, err := sheet.Parse("filled.xlsx", content)
	require.NoError(t, err)
	tbl, err := wb.Table("Data")
	require.NoError(t, err)
	assert.Equal(t, sheet.Text("V2"), tbl.At(1, 1))
	assert.Equal(t, sheet.Text("A2"), tbl.At(0, 1), "conflicting parent values are kept")

	content, err = os.ReadFile(out)
	require.NoError(t, err)
	wb, err = sheet.Parse("records.xlsx", content)
	require.NoError(t, err)
	tbl, err = wb.Table(sheet.DefaultSheet)
	require.NoError(t, err)
	assert.Len(t, tbl, 3)
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	write := func(data string) func(io.Writer) error {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, data)
			return err
		}
	}

	require.NoError(t, writeExport(path, write("first")))

	yesConfirm = true
	t.Cleanup(func() { yesConfirm = false })
	require.NoError(t, writeExport(path, write("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestReadUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	u, err := readUploadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", u.Name)

	_, err = readUploadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
