package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase"
)

// statusColumnWidth pads the status column of list output.
const statusColumnWidth = 11

// parseTaskID parses a task id operand.
// Operands that are not integers cannot match any task.
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrTaskNotFound, arg)
	}
	return id, nil
}

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a new task",
		Long: `Add a new task with status "todo".

All arguments are joined with single spaces to form the description.
Arguments are taken literally, so global flags go before the command.`,
		Example: `  task-cli add "Buy groceries"
  task-cli add Call the plumber`,
		Args: cobra.ArbitraryArgs,
		// Operands such as "-v" or "-1" are text, not flags
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage(cmd, c, "a task description", `add "Your task here"`)
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Description: domain.NormalizeDescription(args...),
			})
			if errors.Is(err, domain.ErrEmptyDescription) {
				return usage(cmd, c, "a task description", `add "Your task here"`)
			}
			if err != nil {
				return reportError(cmd, c, "", err)
			}

			loadResult := reportLoadErr(cmd, c, out.LoadErr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task added successfully (ID: %d)\n", out.Task.ID)
			return loadResult
		},
	}
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list [status]",
		Short: "List tasks",
		Long: `List all tasks, or only those whose status matches exactly.

Statuses: todo, in-progress, done.`,
		Example: `  task-cli list
  task-cli list done`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status domain.Status
			if len(args) > 0 {
				status = domain.Status(args[0])
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Status: status})
			if err != nil {
				return err
			}
			loadResult := reportLoadErr(cmd, c, out.LoadErr)

			w := cmd.OutOrStdout()
			if out.Total == 0 {
				_, _ = fmt.Fprintln(w, "No tasks found.")
				return loadResult
			}

			_, _ = fmt.Fprintln(w, "--- Your Tasks ---")
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintf(w, "No tasks with status \"%s\" found.\n", status)
				return loadResult
			}
			for _, task := range out.Tasks {
				_, _ = fmt.Fprintf(w, "ID: %d | Status: %-*s | Description: %s\n",
					task.ID, statusColumnWidth, task.Status, task.Description)
			}
			_, _ = fmt.Fprintln(w, "------------------")
			return loadResult
		},
	}
}

// newUpdateCommand creates the update command.
func newUpdateCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <description...>",
		Short:   "Replace a task's description",
		Example: `  task-cli update 1 "Buy groceries and cook dinner"`,
		Args:    cobra.ArbitraryArgs,

		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usage(cmd, c, "a task ID and new description", `update <id> "New description"`)
			}

			id, err := parseTaskID(args[0])
			if err != nil {
				return reportError(cmd, c, args[0], err)
			}

			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID:      id,
				Description: domain.NormalizeDescription(args[1:]...),
			})
			if errors.Is(err, domain.ErrEmptyDescription) {
				return usage(cmd, c, "a task ID and new description", `update <id> "New description"`)
			}
			if err != nil {
				return reportError(cmd, c, args[0], err)
			}

			loadResult := reportLoadErr(cmd, c, out.LoadErr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s updated successfully.\n", args[0])
			return loadResult
		},
	}
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a task",
		Example: `  task-cli delete 3`,
		Args:    cobra.ArbitraryArgs,

		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage(cmd, c, "a task ID to delete", "delete <id>")
			}

			id, err := parseTaskID(args[0])
			if err != nil {
				return reportError(cmd, c, args[0], err)
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: id})
			if err != nil {
				return reportError(cmd, c, args[0], err)
			}

			loadResult := reportLoadErr(cmd, c, out.LoadErr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s deleted successfully.\n", args[0])
			return loadResult
		},
	}
}

// newMarkCommand creates mark-in-progress and mark-done.
func newMarkCommand(c *app.Container, name string, status domain.Status) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <id>",
		Short:   fmt.Sprintf("Set a task's status to %q", status),
		Example: fmt.Sprintf("  task-cli %s 1", name),
		Args:    cobra.ArbitraryArgs,

		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage(cmd, c, "a task ID to mark", name+" <id>")
			}

			id, err := parseTaskID(args[0])
			if err != nil {
				return reportError(cmd, c, args[0], err)
			}

			out, err := c.SetTaskStatusUseCase().Execute(cmd.Context(), usecase.SetTaskStatusInput{
				TaskID: id,
				Status: status,
			})
			if err != nil {
				return reportError(cmd, c, args[0], err)
			}

			loadResult := reportLoadErr(cmd, c, out.LoadErr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s marked as %s.\n", args[0], out.Task.Status)
			return loadResult
		},
	}
}
