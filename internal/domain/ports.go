package domain

import (
	"context"
	"io"
	"time"
)

// TaskStore persists the task collection as one unit.
type TaskStore interface {
	// Load reads the whole collection.
	// A missing store yields an empty collection and no error.
	// Unreadable or malformed content yields an empty collection and an
	// error wrapping ErrStorageRead.
	Load(ctx context.Context) ([]*Task, error)

	// Save replaces the whole collection.
	// Failures wrap ErrStorageWrite.
	Save(ctx context.Context, tasks []*Task) error

	// Path returns the storage location.
	Path() string
}

// Logger records operations to the application log.
type Logger interface {
	Debug(taskID int, category, msg string)
	Info(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration.
	Load() (*Config, error)
}

// DocumentReader is implemented by stores that can return their content
// undecoded, as the maps, slices and scalars of a JSON document.
type DocumentReader interface {
	// ReadDocument reads the stored content. A missing store reads as an
	// empty array. Failures wrap ErrStorageRead.
	ReadDocument(ctx context.Context) (any, error)
}

// CollectionValidator checks stored tasks against their schema.
type CollectionValidator interface {
	// Validate checks doc, the stored content as read by a DocumentReader,
	// and tasks, the same content decoded. A nil doc is derived from tasks.
	// It returns one problem per violation; nil means valid.
	Validate(doc any, tasks []*Task) ([]string, error)
}

// Exporter renders a task collection in a specific format.
type Exporter interface {
	// Format returns the format name, e.g. "json".
	Format() string

	// Export writes tasks to w.
	Export(w io.Writer, tasks []*Task) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
