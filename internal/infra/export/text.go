package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
)

// CSVExporter writes one header row and one row per task.
type CSVExporter struct{}

// Format returns "csv".
func (CSVExporter) Format() string { return FormatCSV }

// Export writes tasks as CSV.
func (CSVExporter) Export(w io.Writer, tasks []*domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "description", "status", "createdAt", "updatedAt"}); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.ID),
			t.Description,
			string(t.Status),
			t.CreatedAt.String(),
			t.UpdatedAt.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarkdownExporter writes tasks as a Markdown table grouped under a heading.
type MarkdownExporter struct{}

// Format returns "markdown".
func (MarkdownExporter) Format() string { return FormatMarkdown }

// Export writes tasks as a Markdown document.
func (MarkdownExporter) Export(w io.Writer, tasks []*domain.Task) error {
	bw := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(bw, "# Tasks")
	_, _ = fmt.Fprintln(bw)
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(bw, "_No tasks._")
		return bw.Flush()
	}

	_, _ = fmt.Fprintln(bw, "| ID | Status | Description | Created | Updated |")
	_, _ = fmt.Fprintln(bw, "|---:|---|---|---|---|")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(bw, "| %d | %s | %s | %s | %s |\n",
			t.ID,
			t.Status.Display(),
			escapeMarkdownCell(t.Description),
			t.CreatedAt.String(),
			t.UpdatedAt.String(),
		)
	}
	return bw.Flush()
}

var markdownCellReplacer = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
)

func escapeMarkdownCell(s string) string {
	return markdownCellReplacer.Replace(s)
}
