package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/infra/export"
	"github.com/runoshun/task-cli/internal/usecase"
)

// newCheckCommand creates the check command.
func newCheckCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the task store",
		Long: `Validate the task store against the task schema.

Every problem is printed on its own line. The exit status is 1 when any
problem is found, regardless of --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.CheckTasksUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.CheckTasksInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.OK() {
				_, _ = fmt.Fprintf(w, "Store OK (%d tasks)\n", out.Total)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Store %s has %d problem(s):\n", out.Path, len(out.Problems))
			for _, p := range out.Problems {
				_, _ = fmt.Fprintf(w, "  %s\n", p)
			}
			return &ExitError{Err: fmt.Errorf("%d problem(s) in %s", len(out.Problems), out.Path)}
		},
	}
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "export <format> [file]",
		Short: "Export tasks",
		Long: fmt.Sprintf(`Export tasks in another format.

Formats: %s.
Without a file the export is written to standard output.`, strings.Join(export.Formats(), ", ")),
		Example: `  task-cli export markdown
  task-cli export pdf tasks.pdf --status done`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage(cmd, c, "an export format", "export <format> [file]")
			}

			in := usecase.ExportTasksInput{
				Format: args[0],
				Status: domain.Status(status),
				Stdout: cmd.OutOrStdout(),
			}
			if len(args) > 1 {
				in.Path = args[1]
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), in)
			if errors.Is(err, domain.ErrUnknownFormat) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Error: Unknown export format %q. Available formats: %s\n",
					args[0], strings.Join(export.Formats(), ", "))
				return failure(c, err)
			}
			if err != nil {
				return reportError(cmd, c, "", err)
			}

			loadResult := reportLoadErr(cmd, c, out.LoadErr)
			if out.Path != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s (%s).\n", out.Count, out.Path, out.Format)
			}
			return loadResult
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Export only tasks with this status")
	return cmd
}

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration as TOML.

Configuration is merged from, in increasing precedence:
  ~/.config/task-cli/config.toml
  .task-cli.toml in the current directory
  .env in the current directory and TASK_CLI_* environment variables
  command-line flags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			data, err := toml.Marshal(out.Effective)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(out.Loaded) == 0 {
				_, _ = fmt.Fprintln(w, "# Config files: none")
			} else {
				_, _ = fmt.Fprintf(w, "# Config files: %s\n", strings.Join(out.Loaded, ", "))
			}
			_, _ = w.Write(data)
			return nil
		},
	}
}
