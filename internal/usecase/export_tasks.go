package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

// ExporterFactory returns the exporter for a format name.
type ExporterFactory func(format string) (domain.Exporter, error)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Stdout io.Writer     // Destination when Path is empty
	Format string        // Export format (json, yaml, csv, markdown, pdf)
	Status domain.Status // Exact status filter (empty = all tasks)
	Path   string        // Destination file (empty = Stdout)
}

// ExportTasksOutput contains the result of exporting tasks.
type ExportTasksOutput struct {
	LoadErr error
	Format  string
	Path    string // Written file, empty when exported to Stdout
	Count   int    // Number of exported tasks
}

// ExportTasks is the use case for exporting the collection.
type ExportTasks struct {
	store     domain.TaskStore
	exporters ExporterFactory
	logger    domain.Logger
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store domain.TaskStore, exporters ExporterFactory, logger domain.Logger) *ExportTasks {
	return &ExportTasks{
		store:     store,
		exporters: exporters,
		logger:    logger,
	}
}

// Execute renders the (optionally filtered) collection.
// The format is resolved before anything is read or written.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	exporter, err := uc.exporters(in.Format)
	if err != nil {
		return nil, err
	}

	tasks, loadErr := shared.LoadTasks(ctx, uc.store, uc.logger)
	tasks = domain.FilterByStatus(tasks, in.Status)

	if in.Path == "" {
		if err := exporter.Export(in.Stdout, tasks); err != nil {
			return nil, shared.Failed(loadErr, fmt.Errorf("export %s: %w", exporter.Format(), err))
		}
	} else if err := exportToFile(in.Path, exporter, tasks); err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	uc.logger.Info(0, "export", fmt.Sprintf("exported %d task(s) as %s", len(tasks), exporter.Format()))
	return &ExportTasksOutput{
		Format:  exporter.Format(),
		Path:    in.Path,
		Count:   len(tasks),
		LoadErr: loadErr,
	}, nil
}

// exportToFile writes through a temp file in the destination directory and
// renames it into place.
func exportToFile(path string, exporter domain.Exporter, tasks []*domain.Task) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := exporter.Export(tmp, tasks); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("export %s: %w", exporter.Format(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename export file: %w", err)
	}
	return nil
}
