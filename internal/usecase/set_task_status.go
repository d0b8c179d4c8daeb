package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

// SetTaskStatusInput contains the parameters for changing a task's status.
type SetTaskStatusInput struct {
	Status domain.Status // Target status
	TaskID int           // Task ID to change
}

// SetTaskStatusOutput contains the result of changing a task's status.
type SetTaskStatusOutput struct {
	Task    *domain.Task
	LoadErr error
}

// SetTaskStatus is the use case behind mark-in-progress and mark-done.
type SetTaskStatus struct {
	store  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewSetTaskStatus creates a new SetTaskStatus use case.
func NewSetTaskStatus(store domain.TaskStore, clock domain.Clock, logger domain.Logger) *SetTaskStatus {
	return &SetTaskStatus{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute sets the status and refreshes UpdatedAt.
// Any status may replace any other, including itself.
func (uc *SetTaskStatus) Execute(ctx context.Context, in SetTaskStatusInput) (*SetTaskStatusOutput, error) {
	if !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	tasks, loadErr := shared.LoadTasks(ctx, uc.store, uc.logger)

	task, err := shared.GetTask(tasks, in.TaskID)
	if err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	prev := task.Status
	task.Status = in.Status
	task.Touch(uc.clock.Now())

	if err := shared.SaveTasks(ctx, uc.store, uc.logger, task.ID, tasks); err != nil {
		return nil, shared.Failed(loadErr, err)
	}

	uc.logger.Info(task.ID, "status", fmt.Sprintf("status changed: %s -> %s", prev, task.Status))
	return &SetTaskStatusOutput{Task: task, LoadErr: loadErr}, nil
}
