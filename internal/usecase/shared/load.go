// Package shared provides helpers used by several use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/task-cli/internal/domain"
)

// LoadTasks loads the collection leniently.
// A read failure is logged and returned as loadErr while tasks degrades to
// an empty collection, so callers can carry on with the operation.
func LoadTasks(ctx context.Context, store domain.TaskStore, logger domain.Logger) (tasks []*domain.Task, loadErr error) {
	tasks, err := store.Load(ctx)
	if err != nil {
		logger.Warn(0, "store", fmt.Sprintf("load %s failed, using empty collection: %v", store.Path(), err))
		return []*domain.Task{}, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask looks a task up by ID and returns domain.ErrTaskNotFound if it is missing.
func GetTask(tasks []*domain.Task, taskID int) (*domain.Task, error) {
	task := domain.FindTask(tasks, taskID)
	if task == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrTaskNotFound, taskID)
	}
	return task, nil
}

// SaveTasks writes the collection and logs failures.
func SaveTasks(ctx context.Context, store domain.TaskStore, logger domain.Logger, taskID int, tasks []*domain.Task) error {
	if err := store.Save(ctx, tasks); err != nil {
		logger.Error(taskID, "store", fmt.Sprintf("save %s failed: %v", store.Path(), err))
		return err
	}
	return nil
}
