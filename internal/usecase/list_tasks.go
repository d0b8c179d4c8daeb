package usecase

import (
	"context"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Status domain.Status // Exact status filter (empty = all tasks)
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	LoadErr error
	Tasks   []*domain.Task // Tasks matching the filter, in collection order
	Total   int            // Size of the unfiltered collection
}

// ListTasks is the use case for listing tasks. It never writes.
type ListTasks struct {
	store  domain.TaskStore
	logger domain.Logger
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.TaskStore, logger domain.Logger) *ListTasks {
	return &ListTasks{
		store:  store,
		logger: logger,
	}
}

// Execute returns all tasks, or those whose status equals in.Status.
// The status is not validated; an unknown value simply matches nothing.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, loadErr := shared.LoadTasks(ctx, uc.store, uc.logger)

	return &ListTasksOutput{
		Tasks:   domain.FilterByStatus(tasks, in.Status),
		Total:   len(tasks),
		LoadErr: loadErr,
	}, nil
}
