package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockExporters(exp *testutil.MockExporter) ExporterFactory {
	return func(format string) (domain.Exporter, error) {
		if format != exp.Name {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
		}
		return exp, nil
	}
}

func TestExportTasks_Execute_Stdout(t *testing.T) {
	var buf bytes.Buffer
	uc := NewExportTasks(listFixture(), mockExporters(&testutil.MockExporter{Name: "fake"}), domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ExportTasksInput{Format: "fake", Stdout: &buf})

	require.NoError(t, err)
	assert.Equal(t, 4, out.Count)
	assert.Equal(t, "fake", out.Format)
	assert.Empty(t, out.Path)
	assert.Equal(t, "1:todo\n2:done\n3:todo\n4:in-progress\n", buf.String())
}

func TestExportTasks_Execute_FilterByStatus(t *testing.T) {
	var buf bytes.Buffer
	uc := NewExportTasks(listFixture(), mockExporters(&testutil.MockExporter{Name: "fake"}), domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ExportTasksInput{Format: "fake", Status: domain.StatusTodo, Stdout: &buf})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "1:todo\n3:todo\n", buf.String())
}

func TestExportTasks_Execute_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	uc := NewExportTasks(listFixture(), mockExporters(&testutil.MockExporter{Name: "fake"}), domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ExportTasksInput{Format: "fake", Path: path})

	require.NoError(t, err)
	assert.Equal(t, path, out.Path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1:todo\n2:done\n3:todo\n4:in-progress\n", string(content))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportTasks_Execute_UnknownFormat(t *testing.T) {
	store := listFixture()
	uc := NewExportTasks(store, mockExporters(&testutil.MockExporter{Name: "fake"}), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), ExportTasksInput{Format: "docx", Stdout: &bytes.Buffer{}})

	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
	assert.Zero(t, store.LoadCalls)
}

func TestExportTasks_Execute_ExporterErrorKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))
	uc := NewExportTasks(listFixture(), mockExporters(&testutil.MockExporter{Name: "fake", Err: assert.AnError}), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), ExportTasksInput{Format: "fake", Path: path})

	assert.ErrorIs(t, err, assert.AnError)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))
}
