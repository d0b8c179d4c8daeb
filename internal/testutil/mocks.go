// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/runoshun/task-cli/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskStore is a test double for domain.TaskStore.
// Fields are ordered to minimize memory padding.
type MockTaskStore struct {
	LoadErr   error
	SaveErr   error
	StorePath string
	Tasks     []*domain.Task
	Saved     [][]*domain.Task // Snapshot of every successful Save
	LoadCalls int
	SaveCalls int
}

// NewMockTaskStore creates a MockTaskStore holding tasks.
func NewMockTaskStore(tasks ...*domain.Task) *MockTaskStore {
	return &MockTaskStore{
		Tasks:     tasks,
		StorePath: "tasks.json",
	}
}

// Load returns a copy of Tasks, or an empty collection and LoadErr.
func (m *MockTaskStore) Load(_ context.Context) ([]*domain.Task, error) {
	m.LoadCalls++
	if m.LoadErr != nil {
		return []*domain.Task{}, m.LoadErr
	}
	return cloneTasks(m.Tasks), nil
}

// Save replaces Tasks unless SaveErr is set.
func (m *MockTaskStore) Save(_ context.Context, tasks []*domain.Task) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = cloneTasks(tasks)
	m.Saved = append(m.Saved, cloneTasks(tasks))
	return nil
}

// Path returns StorePath.
func (m *MockTaskStore) Path() string {
	return m.StorePath
}

// Get returns the stored task with id, or nil.
func (m *MockTaskStore) Get(id int) *domain.Task {
	return domain.FindTask(m.Tasks, id)
}

func cloneTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		c := *t
		out = append(out, &c)
	}
	return out
}

// LogEntry is a single entry captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
}

func (m *MockLogger) add(level string, taskID int, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.add("debug", taskID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) { m.add("info", taskID, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.add("warn", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) { m.add("error", taskID, category, msg) }

// HasLevel reports whether any entry was recorded at level.
func (m *MockLogger) HasLevel(level string) bool {
	for _, e := range m.Entries {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockValidator is a test double for domain.CollectionValidator.
type MockValidator struct {
	Err      error
	GotDoc   any
	Problems []string
	Got      []*domain.Task
}

// Validate returns the configured problems.
func (m *MockValidator) Validate(doc any, tasks []*domain.Task) ([]string, error) {
	m.GotDoc = doc
	m.Got = tasks
	return m.Problems, m.Err
}

// MockDocumentStore is a MockTaskStore that also implements
// domain.DocumentReader.
type MockDocumentStore struct {
	*MockTaskStore
	Document    any
	DocumentErr error
}

// ReadDocument returns Document or DocumentErr.
func (m *MockDocumentStore) ReadDocument(_ context.Context) (any, error) {
	if m.DocumentErr != nil {
		return nil, m.DocumentErr
	}
	return m.Document, nil
}

// MockExporter is a test double for domain.Exporter.
// It writes one "id:status" line per task.
type MockExporter struct {
	Err  error
	Name string
}

// Format returns Name.
func (m *MockExporter) Format() string { return m.Name }

// Export writes the task ids or returns Err.
func (m *MockExporter) Export(w io.Writer, tasks []*domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintf(w, "%d:%s\n", t.ID, t.Status); err != nil {
			return err
		}
	}
	return nil
}

// Compile-time interface checks.
var (
	_ domain.Clock               = (*MockClock)(nil)
	_ domain.TaskStore           = (*MockTaskStore)(nil)
	_ domain.Logger              = (*MockLogger)(nil)
	_ domain.CollectionValidator = (*MockValidator)(nil)
	_ domain.DocumentReader      = (*MockDocumentStore)(nil)
	_ domain.Exporter            = (*MockExporter)(nil)
)
