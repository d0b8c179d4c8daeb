// Package sqlitestore provides a SQLite implementation of domain.TaskStore.
// The collection is still handled as a unit: Save replaces every row in a
// single transaction and a position column preserves the collection order.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/runoshun/task-cli/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER NOT NULL,
	id          INTEGER NOT NULL,
	description TEXT    NOT NULL,
	status      TEXT    NOT NULL,
	created_at  TEXT    NOT NULL,
	updated_at  TEXT    NOT NULL
)`

// Store implements domain.TaskStore using a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// New creates a new Store for the given database path.
// The database is opened lazily and created on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all tasks ordered by position.
func (s *Store) Load(ctx context.Context) ([]*domain.Task, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return []*domain.Task{}, nil
	}

	tasks, err := s.load(ctx)
	if err != nil {
		return []*domain.Task{}, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}
	return tasks, nil
}

// Save replaces all rows with tasks in one transaction.
func (s *Store) Save(ctx context.Context, tasks []*domain.Task) error {
	if err := s.save(ctx, tasks); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return nil
}

// Close closes the database connection if it was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) load(ctx context.Context) ([]*domain.Task, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, description, status, created_at, updated_at FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		var (
			task                 domain.Task
			status               string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&task.ID, &task.Description, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Status = domain.Status(status)
		if err := task.CreatedAt.UnmarshalText([]byte(createdAt)); err != nil {
			return nil, fmt.Errorf("task %d: %w", task.ID, err)
		}
		if err := task.UpdatedAt.UnmarshalText([]byte(updatedAt)); err != nil {
			return nil, fmt.Errorf("task %d: %w", task.ID, err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) save(ctx context.Context, tasks []*domain.Task) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (position, id, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Description, string(t.Status),
			t.CreatedAt.String(), t.UpdatedAt.String()); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// open returns the shared connection, creating the database and schema on first use.
func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// - busy_timeout=5000: Wait 5s on lock instead of failing immediately
	// - synchronous=NORMAL
	dsn := s.path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite doesn't support multiple writers, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s.db = db
	return db, nil
}

// Ensure Store implements TaskStore.
var _ domain.TaskStore = (*Store)(nil)
