package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

// UpdateTaskInput contains the parameters for updating a task.
type UpdateTaskInput struct {
	Description string // New description (required)
	TaskID      int    // Task ID to update
}

// UpdateTaskOutput contains the result of updating a task.
type UpdateTaskOutput struct {
	Task    *domain.Task // The updated task
	LoadErr error
}

// UpdateTask is the use case for replacing a task's description.
type UpdateTask struct {
	store  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(store domain.TaskStore, clock domain.Clock, logger domain.Logger) *UpdateTask {
	return &UpdateTask{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute replaces the description and refreshes UpdatedAt.
// Nothing is saved when the task does not exist.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrEmptyDescription
	}

	tasks, loadErr := shared.LoadTasks(ctx, uc.store, uc.logger)

	task, err := shared.GetTask(tasks, in.TaskID)
	if err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	old := task.Description
	task.Description = in.Description
	task.Touch(uc.clock.Now())

	if err := shared.SaveTasks(ctx, uc.store, uc.logger, task.ID, tasks); err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	uc.logger.Info(task.ID, "update", fmt.Sprintf("description changed: %q -> %q", old, task.Description))
	return &UpdateTaskOutput{Task: task, LoadErr: loadErr}, nil
}
