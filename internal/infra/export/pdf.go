package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/runoshun/task-cli/internal/domain"
)

// PDFExporter renders tasks as a one-table A4 report.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter creates a PDFExporter stamped with the current time.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{now: time.Now}
}

// Format returns "pdf".
func (*PDFExporter) Format() string { return FormatPDF }

// Column widths in mm; they add up to the printable A4 width with 10mm margins.
var pdfColumns = []struct {
	title string
	width float64
}{
	{"ID", 12},
	{"Status", 28},
	{"Description", 100},
	{"Updated", 50},
}

// Export writes tasks as a PDF document.
func (e *PDFExporter) Export(w io.Writer, tasks []*domain.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetCreator("task-cli", true)
	pdf.SetCreationDate(e.now())
	// Core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("%d tasks, generated %s", len(tasks), domain.NewTimestamp(e.now()).String()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		cells := []string{
			fmt.Sprintf("%d", t.ID),
			t.Status.Display(),
			tr(truncate(t.Description, 60)),
			t.UpdatedAt.String(),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
