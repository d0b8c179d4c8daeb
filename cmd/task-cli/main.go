// Package main is the entry point for the task-cli CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: failed to get current directory: %v\n", err)
		return 1
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return exitCode(rootCmd.Execute(), stderr)
}

// exitCode maps a command error to an exit status.
// Failures already reported by a command are not printed again.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
