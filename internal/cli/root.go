// Package cli provides the command-line interface for task-cli.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-cli/internal/app"
)

// Command group IDs.
const (
	groupTask  = "task"
	groupStore = "store"
)

// availableCommands is printed for a missing or unrecognized command.
var availableCommands = []string{
	`  add "<description>"`,
	`  list [status]`,
	`  update <id> "<new description>"`,
	`  delete <id>`,
	`  mark-in-progress <id>`,
	`  mark-done <id>`,
}

// NewRootCommand creates the root command for task-cli.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var (
		storePath string
		backend   string
		strict    bool
	)

	root := &cobra.Command{
		Use:   "task-cli",
		Short: "Track tasks from the command line",
		Long: `task-cli keeps a list of tasks in a local file.

Tasks have an id, a description and a status (todo, in-progress, done).
Every command reads the whole list, applies one change and writes it back.`,
		Version: version,
		// Unrecognized commands reach RunE instead of failing in cobra
		Args: cobra.ArbitraryArgs,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		// Global flags are parsed before the subcommand is resolved, so
		// operand-only commands can turn off their own flag parsing
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			ov := app.Overrides{StorePath: storePath, Backend: backend}
			if cmd.Flags().Changed("strict") {
				ov.Strict = &strict
			}
			if err := c.ApplyOverrides(ov); err != nil {
				return err
			}

			for _, w := range c.Warnings() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			printAvailableCommands(cmd.OutOrStdout())
			return failure(c, errUnknownCommand)
		},
	}

	root.PersistentFlags().StringVarP(&storePath, "file", "f", "", "Task store location (default: tasks.json in the current directory)")
	root.PersistentFlags().StringVar(&backend, "store", "", "Store backend: json, yaml or sqlite")
	root.PersistentFlags().BoolVar(&strict, "strict", false, "Exit with status 1 when a command fails")
	// Traverse looks flags up in root.Flags(), which holds the persistent
	// flags only after they are merged; otherwise --strict would take the
	// command name as its value
	root.InitDefaultHelpFlag()

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupStore, Title: "Store Commands:"},
	)

	for _, cmd := range []*cobra.Command{
		newAddCommand(c),
		newListCommand(c),
		newUpdateCommand(c),
		newDeleteCommand(c),
		newMarkCommand(c, "mark-in-progress", "in-progress"),
		newMarkCommand(c, "mark-done", "done"),
	} {
		cmd.GroupID = groupTask
		root.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		newCheckCommand(c),
		newExportCommand(c),
		newConfigCommand(c),
	} {
		cmd.GroupID = groupStore
		root.AddCommand(cmd)
	}

	return root
}

func printAvailableCommands(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Unknown command. Available commands:")
	for _, line := range availableCommands {
		_, _ = fmt.Fprintln(w, line)
	}
}
