// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/infra/config"
	"github.com/runoshun/task-cli/internal/infra/export"
	"github.com/runoshun/task-cli/internal/infra/filestore"
	"github.com/runoshun/task-cli/internal/infra/logging"
	"github.com/runoshun/task-cli/internal/infra/schema"
	"github.com/runoshun/task-cli/internal/infra/sqlitestore"
	"github.com/runoshun/task-cli/internal/usecase"
)

// Config holds the resolved application settings.
type Config struct {
	WorkDir   string // Directory relative store paths resolve against
	Backend   string // Store backend (json, yaml, sqlite)
	StorePath string // Resolved store location
	LogDir    string // Directory for task-cli.log (empty = logging disabled)
	Strict    bool   // Exit non-zero on not-found, usage and storage errors
}

// Overrides holds command-line overrides applied on top of the loaded configuration.
type Overrides struct {
	Strict    *bool  // nil = keep configured value
	Backend   string // Empty = keep configured backend
	StorePath string // Empty = keep configured path
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store        domain.TaskStore
	Clock        domain.Clock
	OpLog        domain.Logger // Operation log (task-cli.log)
	ConfigLoader domain.ConfigLoader

	// Pointer fields
	Logger    *slog.Logger   // Diagnostics on stderr
	AppConfig *domain.Config // Merged file and environment configuration

	// Configuration
	Config Config

	closers []io.Closer
}

// New creates a new Container for workDir from the configuration files and
// environment.
func New(workDir string) (*Container, error) {
	configLoader := config.NewLoader(workDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	if appConfig.Log.Dir == "" {
		appConfig.Log.Dir = config.DefaultLogDir()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	fileLogger := logging.New(appConfig.Log.Dir, logging.ParseLevel(appConfig.Log.Level))

	c := &Container{
		Clock:        domain.RealClock{},
		OpLog:        fileLogger,
		ConfigLoader: configLoader,
		Logger:       logger,
		AppConfig:    appConfig,
		Config: Config{
			WorkDir: workDir,
			LogDir:  appConfig.Log.Dir,
			Strict:  appConfig.Strict,
		},
		closers: []io.Closer{fileLogger},
	}

	if err := c.bindStore(appConfig.Store); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.TaskStore, clock domain.Clock, opLog domain.Logger, logger *slog.Logger) *Container {
	if opLog == nil {
		opLog = domain.NopLogger{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Backend == "" {
		cfg.Backend = domain.StoreJSON
	}
	appConfig := domain.NewDefaultConfig()
	appConfig.Strict = cfg.Strict
	appConfig.Store.Backend = cfg.Backend
	appConfig.Store.Path = cfg.StorePath
	appConfig.Log.Dir = cfg.LogDir

	return &Container{
		Store:     store,
		Clock:     clock,
		OpLog:     opLog,
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// NewStore creates the TaskStore for a backend.
func NewStore(backend, path string) (domain.TaskStore, error) {
	switch backend {
	case domain.StoreSQLite:
		return sqlitestore.New(path), nil
	default:
		codec, err := filestore.CodecFor(backend)
		if err != nil {
			return nil, err
		}
		return filestore.New(path, codec), nil
	}
}

// ApplyOverrides applies command-line overrides, rebinding the store when
// its backend or location changes.
func (c *Container) ApplyOverrides(ov Overrides) error {
	if ov.Strict != nil {
		c.Config.Strict = *ov.Strict
	}
	if ov.Backend == "" && ov.StorePath == "" {
		return nil
	}

	storeCfg := c.AppConfig.Store
	if ov.Backend != "" && ov.Backend != storeCfg.Backend {
		storeCfg.Backend = ov.Backend
		// A configured path belongs to the configured backend
		storeCfg.Path = ""
	}
	if ov.StorePath != "" {
		storeCfg.Path = ov.StorePath
	}

	if old, ok := c.Store.(io.Closer); ok {
		_ = old.Close()
		c.closers = removeCloser(c.closers, old)
	}
	return c.bindStore(storeCfg)
}

func (c *Container) bindStore(storeCfg domain.StoreConfig) error {
	if !domain.IsValidStoreBackend(storeCfg.Backend) {
		return fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownStore, storeCfg.Backend, strings.Join(domain.StoreBackends(), ", "))
	}
	path := storeCfg.ResolvePath(c.Config.WorkDir)
	store, err := NewStore(storeCfg.Backend, path)
	if err != nil {
		return err
	}

	c.Store = store
	c.Config.Backend = storeCfg.Backend
	c.Config.StorePath = path
	if closer, ok := store.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	c.Logger.Debug("store selected", "backend", storeCfg.Backend, "path", path)
	return nil
}

func removeCloser(closers []io.Closer, target io.Closer) []io.Closer {
	kept := closers[:0]
	for _, cl := range closers {
		if cl != target {
			kept = append(kept, cl)
		}
	}
	return kept
}

// Close releases the store and log file.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Warnings returns configuration warnings collected while loading.
func (c *Container) Warnings() []string {
	if c.AppConfig == nil {
		return nil
	}
	return c.AppConfig.Warnings
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store, c.Clock, c.OpLog)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.OpLog)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Store, c.Clock, c.OpLog)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.OpLog)
}

// SetTaskStatusUseCase returns a new SetTaskStatus use case.
func (c *Container) SetTaskStatusUseCase() *usecase.SetTaskStatus {
	return usecase.NewSetTaskStatus(c.Store, c.Clock, c.OpLog)
}

// CheckTasksUseCase returns a new CheckTasks use case.
func (c *Container) CheckTasksUseCase() (*usecase.CheckTasks, error) {
	validator, err := schema.New()
	if err != nil {
		return nil, err
	}
	return usecase.NewCheckTasks(c.Store, validator, c.OpLog), nil
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, export.New, c.OpLog)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	cfg := *c.AppConfig
	cfg.Store.Backend = c.Config.Backend
	cfg.Strict = c.Config.Strict
	return usecase.NewShowConfig(&cfg, c.Config.StorePath)
}
