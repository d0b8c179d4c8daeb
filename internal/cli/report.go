package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase/shared"
)

var errUnknownCommand = errors.New("unknown command")

// ExitError signals that the failure has already been reported to the
// user and the process should exit with status 1.
type ExitError struct {
	Err error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// failure returns nil in lenient mode, or an ExitError in strict mode.
func failure(c *app.Container, err error) error {
	if c != nil && c.Config.Strict {
		return &ExitError{Err: err}
	}
	return nil
}

// usage prints a usage message for a missing operand.
func usage(cmd *cobra.Command, c *app.Container, problem, example string) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Error: Please provide %s.\n", problem)
	_, _ = fmt.Fprintf(out, "Usage: task-cli %s\n", example)
	return failure(c, domain.ErrInvalidArguments)
}

// reportLoadErr prints a degraded load to stderr.
// It returns the strict-mode result, or nil when loadErr is nil.
func reportLoadErr(cmd *cobra.Command, c *app.Container, loadErr error) error {
	if loadErr == nil {
		return nil
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error reading tasks file: %s\n", cause(loadErr, domain.ErrStorageRead))
	return failure(c, loadErr)
}

// reportError prints a use case failure. idArg is the task id as typed.
// Errors that are not part of the task workflow are returned unchanged.
func reportError(cmd *cobra.Command, c *app.Container, idArg string, err error) error {
	_ = reportLoadErr(cmd, c, shared.LoadError(err))

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Error: Task with ID %s not found.\n", idArg)
	case errors.Is(err, domain.ErrStorageWrite):
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error writing tasks file: %s\n", cause(err, domain.ErrStorageWrite))
	default:
		return err
	}
	return failure(c, err)
}

// cause strips the sentinel prefix from a wrapped storage error.
func cause(err, sentinel error) string {
	msg := err.Error()
	if trimmed, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return trimmed
	}
	return msg
}
