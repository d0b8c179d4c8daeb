package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/infra/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []*domain.Task {
	created := domain.NewTimestamp(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	updated := domain.NewTimestamp(time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC))
	return []*domain.Task{
		{ID: 1, Description: "Buy milk", Status: domain.StatusTodo, CreatedAt: created, UpdatedAt: created},
		{ID: 3, Description: "Fix a|b pipe", Status: domain.StatusDone, CreatedAt: created, UpdatedAt: updated},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		input  string
		format string
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"csv", FormatCSV},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"pdf", FormatPDF},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := New(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.format, e.Format())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New("docx")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
	assert.Contains(t, err.Error(), "markdown")
}

func TestJSONExport_MatchesStoreFormat(t *testing.T) {
	tasks := sampleTasks()
	e, err := New(FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Export(&buf, tasks))

	stored, err := filestore.JSONCodec{}.Marshal(tasks)
	require.NoError(t, err)
	assert.Equal(t, string(stored)+"\n", buf.String())
}

func TestYAMLExport_RoundTrips(t *testing.T) {
	tasks := sampleTasks()
	e, err := New(FormatYAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Export(&buf, tasks))

	got, err := filestore.YAMLCodec{}.Unmarshal(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].ID)
	assert.True(t, tasks[1].UpdatedAt.Equal(got[1].UpdatedAt.Time))
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVExporter{}.Export(&buf, sampleTasks()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "description", "status", "createdAt", "updatedAt"}, records[0])
	assert.Equal(t, []string{"1", "Buy milk", "todo", "2025-03-01T08:00:00.000Z", "2025-03-01T08:00:00.000Z"}, records[1])
	assert.Equal(t, "done", records[2][2])
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarkdownExporter{}.Export(&buf, sampleTasks()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "# Tasks", lines[0])
	assert.Equal(t, "| ID | Status | Description | Created | Updated |", lines[2])
	assert.Equal(t, "| 1 | To Do | Buy milk | 2025-03-01T08:00:00.000Z | 2025-03-01T08:00:00.000Z |", lines[4])
	assert.Contains(t, lines[5], `Fix a\|b pipe`)
	assert.Contains(t, lines[5], "| Done |")
}

func TestMarkdownExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarkdownExporter{}.Export(&buf, nil))
	assert.Equal(t, "# Tasks\n\n_No tasks._\n", buf.String())
}

func TestEscapeMarkdownCell(t *testing.T) {
	assert.Equal(t, `a\|b`, escapeMarkdownCell("a|b"))
	assert.Equal(t, "line1<br>line2", escapeMarkdownCell("line1\nline2"))
	assert.Equal(t, `back\\slash`, escapeMarkdownCell(`back\slash`))
}

func TestPDFExport(t *testing.T) {
	e := NewPDFExporter()
	e.now = func() time.Time { return time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) }

	tasks := append(sampleTasks(), &domain.Task{
		ID:          4,
		Description: strings.Repeat("long description ", 10) + "café",
		Status:      domain.StatusInProgress,
	})

	var buf bytes.Buffer
	require.NoError(t, e.Export(&buf, tasks))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}
