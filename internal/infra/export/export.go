// Package export renders task collections for use outside task-cli.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/infra/filestore"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// Formats returns all supported export formats.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, FormatPDF}
}

// New returns the exporter for format. Format names are case-insensitive
// and "md" is accepted for markdown.
func New(format string) (domain.Exporter, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return &codecExporter{codec: filestore.JSONCodec{}}, nil
	case FormatYAML, "yml":
		return &codecExporter{codec: filestore.YAMLCodec{}}, nil
	case FormatCSV:
		return CSVExporter{}, nil
	case FormatMarkdown, "md":
		return MarkdownExporter{}, nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

// codecExporter writes the collection in the same shape as the file store.
type codecExporter struct {
	codec filestore.Codec
}

func (e *codecExporter) Format() string { return e.codec.Name() }

func (e *codecExporter) Export(w io.Writer, tasks []*domain.Task) error {
	data, err := e.codec.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.codec.Name(), err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
