// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Description string // Task description (required)
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Task    *domain.Task // The created task
	LoadErr error        // Non-nil when the store was unreadable and an empty collection was used
}

// AddTask is the use case for adding a task.
type AddTask struct {
	store  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store domain.TaskStore, clock domain.Clock, logger domain.Logger) *AddTask {
	return &AddTask{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute appends a new todo task to the collection.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrEmptyDescription
	}

	tasks, loadErr := shared.LoadTasks(ctx, uc.store, uc.logger)

	now := domain.NewTimestamp(uc.clock.Now())
	task := &domain.Task{
		ID:          domain.NextID(tasks),
		Description: in.Description,
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tasks = append(tasks, task)

	if err := shared.SaveTasks(ctx, uc.store, uc.logger, task.ID, tasks); err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	uc.logger.Info(task.ID, "add", fmt.Sprintf("task added: %q", task.Description))
	return &AddTaskOutput{Task: task, LoadErr: loadErr}, nil
}
