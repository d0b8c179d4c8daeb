package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task    *domain.Task // The removed task
	LoadErr error
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store  domain.TaskStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store domain.TaskStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		store:  store,
		logger: logger,
	}
}

// Execute removes the task with the given ID.
// Nothing is saved when no task was removed.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	tasks, loadErr := shared.LoadTasks(ctx, uc.store, uc.logger)

	removed := domain.FindTask(tasks, in.TaskID)
	remaining, ok := domain.RemoveTask(tasks, in.TaskID)
	if !ok {
		return nil, shared.Failed(loadErr, fmt.Errorf("%w: %d", domain.ErrTaskNotFound, in.TaskID))
	}

	if err := shared.SaveTasks(ctx, uc.store, uc.logger, in.TaskID, remaining); err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	uc.logger.Info(in.TaskID, "delete", fmt.Sprintf("task deleted: %q", removed.Description))
	return &DeleteTaskOutput{Task: removed, LoadErr: loadErr}, nil
}
