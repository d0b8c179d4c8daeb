package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-cli/internal/domain"
)

// CheckTasksInput contains the parameters for checking the store.
type CheckTasksInput struct{}

// CheckTasksOutput contains the result of checking the store.
type CheckTasksOutput struct {
	Path     string   // Storage location that was checked
	Problems []string // One entry per problem (empty = store is valid)
	Total    int      // Number of tasks read
}

// OK reports whether no problems were found.
func (o *CheckTasksOutput) OK() bool {
	return len(o.Problems) == 0
}

// CheckTasks validates the stored collection.
// Unlike the other use cases a read failure is reported as a problem
// rather than degraded to an empty collection.
// Stores implementing domain.DocumentReader are validated on their raw
// content; others on the decoded collection.
type CheckTasks struct {
	store     domain.TaskStore
	validator domain.CollectionValidator
	logger    domain.Logger
}

// NewCheckTasks creates a new CheckTasks use case.
func NewCheckTasks(store domain.TaskStore, validator domain.CollectionValidator, logger domain.Logger) *CheckTasks {
	return &CheckTasks{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Execute loads the collection and validates it.
func (uc *CheckTasks) Execute(ctx context.Context, _ CheckTasksInput) (*CheckTasksOutput, error) {
	out := &CheckTasksOutput{Path: uc.store.Path()}

	tasks, err := uc.store.Load(ctx)
	if err != nil {
		out.Problems = append(out.Problems, err.Error())
		uc.logger.Warn(0, "check", fmt.Sprintf("%s: %v", out.Path, err))
		return out, nil
	}
	out.Total = len(tasks)

	// Stores that expose their content are checked as stored, so missing
	// and unknown fields are not hidden by decoding
	var doc any
	if reader, ok := uc.store.(domain.DocumentReader); ok {
		if doc, err = reader.ReadDocument(ctx); err != nil {
			out.Problems = append(out.Problems, err.Error())
			uc.logger.Warn(0, "check", fmt.Sprintf("%s: %v", out.Path, err))
			return out, nil
		}
	}

	problems, err := uc.validator.Validate(doc, tasks)
	if err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	out.Problems = append(out.Problems, problems...)

	if !out.OK() {
		uc.logger.Warn(0, "check", fmt.Sprintf("%s: %d problem(s) found", out.Path, len(out.Problems)))
	}
	return out, nil
}
